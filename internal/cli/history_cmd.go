// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - "redraft history" command handler.
//
// Subcommands:
//   list    List saved conversations (default)
//   show    Print a conversation transcript by ID
//   delete  Delete a conversation by ID
package cli

import (
	"fmt"

	"github.com/kestrelworks/redraft/internal/config"
	"github.com/kestrelworks/redraft/internal/history"
	"github.com/kestrelworks/redraft/internal/util"
)

// HandleHistory dispatches the history subcommands.
func HandleHistory(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled (redraft config set history.enabled true)")
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	hist, err := history.Open(path)
	if err != nil {
		return err
	}
	defer hist.Close()
	hist.MaxConversations = cfg.History.MaxConversations

	switch args.Subcommand {
	case "", "list":
		return historyList(hist)
	case "show":
		if len(args.Raw) == 0 {
			return fmt.Errorf("usage: redraft history show <id>")
		}
		return historyShow(hist, args.Raw[0])
	case "delete":
		if len(args.Raw) == 0 {
			return fmt.Errorf("usage: redraft history delete <id>")
		}
		if err := hist.Delete(args.Raw[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	default:
		return fmt.Errorf("unknown history subcommand %q (try list, show, delete)", args.Subcommand)
	}
}

func historyList(hist *history.Store) error {
	metas, err := hist.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("no saved conversations")
		return nil
	}
	for _, m := range metas {
		fmt.Printf("%s  %s  %3d msgs  %s\n",
			m.ID[:8], m.UpdatedAt.Format("2006-01-02 15:04"), m.MessageCount,
			util.TruncateWidth(m.Summary, 60))
	}
	return nil
}

func historyShow(hist *history.Store, prefix string) error {
	id, err := resolveID(hist, prefix)
	if err != nil {
		return err
	}
	conv, err := hist.Get(id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s, %s)\n\n", conv.Summary, conv.Model,
		conv.UpdatedAt.Format("2006-01-02 15:04"))
	for _, m := range conv.Messages {
		fmt.Printf("[%s] %s\n\n", m.Role, m.Content)
	}
	return nil
}

// resolveID accepts a full conversation ID or a unique prefix.
func resolveID(hist *history.Store, prefix string) (string, error) {
	metas, err := hist.List()
	if err != nil {
		return "", err
	}
	var match string
	for _, m := range metas {
		if m.ID == prefix {
			return m.ID, nil
		}
		if len(prefix) >= 4 && len(m.ID) >= len(prefix) && m.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix %q", prefix)
			}
			match = m.ID
		}
	}
	if match == "" {
		return "", history.ErrNotFound
	}
	return match, nil
}
