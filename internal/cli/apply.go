// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// apply.go - "redraft apply" command handler.
//
// Reads directive text from a file (or stdin when no file is given),
// parses it, applies the directives to the working tree, and prints a
// per-file report plus the batch summary.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/kestrelworks/redraft/internal/config"
	"github.com/kestrelworks/redraft/internal/document"
	"github.com/kestrelworks/redraft/internal/plan"
)

// HandleApplyCommand applies directive text from args.File or stdin.
func HandleApplyCommand(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	root := cfg.Apply.Root
	if args.Root != "" {
		root = args.Root
	}

	var text []byte
	if args.File != "" {
		text, err = os.ReadFile(args.File)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args.File, err)
		}
	} else {
		if IsTTY() {
			return fmt.Errorf("no input: pass a file or pipe directive text on stdin")
		}
		text, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	store := document.NewStore(root)
	store.SetBackup(cfg.Apply.Backup)
	report, err := runApply(string(text), store, args.Quiet, true)
	if err != nil {
		return err
	}
	fmt.Print(report)
	return nil
}

// runApply executes the parse/apply/save pipeline and formats a plain
// text report. Shared by the apply, ask, and chat commands. When save
// is false the documents stay in memory and the report says so.
func runApply(text string, store *document.Store, quiet, save bool) (string, error) {
	directives, warnings := plan.Parse(text)

	var out string
	if !quiet {
		for _, w := range warnings {
			out += "warning: " + w.String() + "\n"
		}
	}
	if len(directives) == 0 {
		return out + "no directives found\n", nil
	}

	batch, bc := plan.ApplyAll(directives, store)

	var saveErrs map[string]error
	if save {
		saveErrs = bc.SaveAll(store)
	}

	for _, r := range batch.Results {
		if r.Success {
			if saveErr := saveErrs[r.Path]; saveErr != nil {
				out += fmt.Sprintf("  %s: save failed: %v\n", r.Path, saveErr)
				continue
			}
			if !quiet {
				out += fmt.Sprintf("  %s: ok\n", r.Path)
			}
		} else {
			out += fmt.Sprintf("  %s: %s\n", r.Path, r.Reason)
		}
	}
	out += batch.Summary() + "\n"
	if !save && len(bc.Touched()) > 0 {
		out += "changes held in memory (apply.auto_save is off)\n"
	}
	return out, nil
}
