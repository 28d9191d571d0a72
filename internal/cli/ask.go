// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - "redraft ask" command handler.
//
// Sends a single request to the model and streams the response to
// stdout. With --apply, the response's edit directives are applied to
// the working tree afterwards.
//
// Examples:
//   redraft ask "add a doc comment to Store.Load in store.go"
//   redraft ask --file main.go "simplify the flag handling here"
//   redraft ask --apply "fix the off-by-one in SplitLines"
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/kestrelworks/redraft/internal/chat"
	"github.com/kestrelworks/redraft/internal/config"
	"github.com/kestrelworks/redraft/internal/document"
	"github.com/kestrelworks/redraft/internal/plan"
	"github.com/kestrelworks/redraft/internal/ui/styles"
	"github.com/kestrelworks/redraft/internal/util"
)

// MaxFileSize is the largest file included with --file (256KB).
const MaxFileSize = 256 * 1024

// HandleAskCommand runs a one-shot request.
func HandleAskCommand(args Args) error {
	if args.Query == "" {
		return fmt.Errorf("usage: redraft ask \"request\"")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if args.Model != "" {
		cfg.Chat.Model = args.Model
	}
	if args.Root != "" {
		cfg.Apply.Root = args.Root
	}

	client := chat.NewClientWithConfig(&chat.ClientConfig{
		BaseURL:           cfg.Chat.BaseURL,
		Timeout:           time.Duration(cfg.Chat.TimeoutSecs) * time.Second,
		DefaultModel:      cfg.Chat.Model,
		RequestsPerMinute: cfg.Chat.RequestsPerMinute,
	})

	ctx := context.Background()
	if err := client.CheckRunning(ctx); err != nil {
		return err
	}

	query := args.Query
	if args.File != "" {
		content, err := readIncludedFile(args.File)
		if err != nil {
			return err
		}
		query = fmt.Sprintf("%s\n\nfile: %s\n```\n%s\n```", query, args.File, content)
	}

	messages := []chat.Message{
		chat.NewSystemMessage(plan.SystemPrompt),
		chat.NewUserMessage(query),
	}

	var response string
	render := cfg.UI.Markdown && IsStdoutTTY()
	err = client.ChatStream(ctx, cfg.Chat.Model, messages, func(chunk chat.StreamChunk) {
		response += chunk.Content
		if !render {
			fmt.Print(chunk.Content)
		}
	})
	if err != nil {
		return err
	}

	if render {
		printMarkdown(response, cfg.UI.Theme)
	} else {
		fmt.Println()
	}

	return reportDirectives(response, cfg, args)
}

// reportDirectives applies the response's directives when --apply is
// set, and otherwise just says how many were found.
func reportDirectives(response string, cfg *config.Config, args Args) error {
	if args.Apply {
		store := document.NewStore(cfg.Apply.Root)
		store.SetBackup(cfg.Apply.Backup)
		report, err := runApply(response, store, args.Quiet, true)
		if err != nil {
			return err
		}
		fmt.Print(report)
		return nil
	}

	directives, _ := plan.Parse(response)
	if len(directives) > 0 && !args.Quiet {
		fmt.Printf("%d %s found; rerun with --apply to write %s\n",
			len(directives),
			util.Plural(len(directives), "directive", "directives"),
			util.Plural(len(directives), "it", "them"))
	}
	return nil
}

// printMarkdown renders markdown to the terminal, falling back to raw
// text when rendering fails.
func printMarkdown(text, theme string) {
	r, err := glamour.NewTermRenderer(
		styles.GlamourStyle(theme),
		glamour.WithWordWrap(TerminalWidth()),
	)
	if err != nil {
		fmt.Println(text)
		return
	}
	rendered, err := r.Render(text)
	if err != nil {
		fmt.Println(text)
		return
	}
	fmt.Print(rendered)
}

// readIncludedFile reads a file for --file, enforcing the size cap.
func readIncludedFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%s is too large to include (%d bytes, max %d)",
			path, info.Size(), MaxFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}
