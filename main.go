// redraft - a terminal pair editor backed by a local LLM.
//
// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	chatclient "github.com/kestrelworks/redraft/internal/chat"
	"github.com/kestrelworks/redraft/internal/cli"
	"github.com/kestrelworks/redraft/internal/config"
	"github.com/kestrelworks/redraft/internal/document"
	"github.com/kestrelworks/redraft/internal/history"
	"github.com/kestrelworks/redraft/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		exitOnError(cli.HandleAskCommand(args))
	case cli.CmdChat:
		exitOnError(cli.HandleChatCommand(args))
	case cli.CmdApply:
		exitOnError(cli.HandleApplyCommand(args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))
	case cli.CmdHistory:
		exitOnError(cli.HandleHistory(args))
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires the config, chat client, document store, and history
// together and starts the Bubble Tea program.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		exitOnError(err)
	}
	if args.Model != "" {
		cfg.Chat.Model = args.Model
	}
	if args.Root != "" {
		cfg.Apply.Root = args.Root
	}

	client := chatclient.NewClientWithConfig(&chatclient.ClientConfig{
		BaseURL:           cfg.Chat.BaseURL,
		Timeout:           time.Duration(cfg.Chat.TimeoutSecs) * time.Second,
		DefaultModel:      cfg.Chat.Model,
		RequestsPerMinute: cfg.Chat.RequestsPerMinute,
	})
	if err := client.CheckRunning(context.Background()); err != nil {
		exitOnError(err)
	}

	store := document.NewStore(cfg.Apply.Root)
	store.SetBackup(cfg.Apply.Backup)
	if cfg.Apply.Watch {
		if watcher, err := store.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	var hist *history.Store
	if cfg.History.Enabled {
		if path, err := cfg.HistoryPath(); err == nil {
			if h, err := history.Open(path); err == nil {
				hist = h
				hist.MaxConversations = cfg.History.MaxConversations
				defer hist.Close()
			}
		}
	}

	m := chat.New(cfg, client, store, hist)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
