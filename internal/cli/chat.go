// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - "redraft chat" interactive REPL handler.
//
// A plain-terminal alternative to the TUI. Responses stream to stdout
// and their edit directives are applied after each turn.
//
// Interactive commands:
//   /help           Show available commands
//   /clear          Clear conversation history
//   /model [name]   Show or switch model
//   /quit           Exit chat
//   Ctrl+C          Cancel current generation
//   Ctrl+D          Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/peterh/liner"

	"github.com/kestrelworks/redraft/internal/chat"
	"github.com/kestrelworks/redraft/internal/config"
	"github.com/kestrelworks/redraft/internal/document"
	"github.com/kestrelworks/redraft/internal/history"
	"github.com/kestrelworks/redraft/internal/plan"
	"github.com/kestrelworks/redraft/internal/util"
)

// historyFileName stores liner input history under the config dir.
const historyFileName = "input_history"

// HandleChatCommand runs the interactive chat REPL.
func HandleChatCommand(args Args) error {
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
	if err := client.CheckRunning(context.Background()); err != nil {
		return err
	}

	store := document.NewStore(cfg.Apply.Root)
	store.SetBackup(cfg.Apply.Backup)

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

	conversation := []chat.Message{chat.NewSystemMessage(plan.SystemPrompt)}
	var convID string

	if args.Resume != "" {
		if hist == nil {
			return fmt.Errorf("cannot resume: history is unavailable")
		}
		id, err := resolveID(hist, args.Resume)
		if err != nil {
			return fmt.Errorf("cannot resume %q: %w", args.Resume, err)
		}
		conv, err := hist.Get(id)
		if err != nil {
			return fmt.Errorf("cannot resume %q: %w", args.Resume, err)
		}
		for _, msg := range conv.Messages {
			conversation = append(conversation, chat.Message{Role: msg.Role, Content: msg.Content})
		}
		convID = conv.ID
		if conv.Model != "" && args.Model == "" {
			cfg.Chat.Model = conv.Model
		}
		if !args.Quiet {
			fmt.Printf("resumed %s (%d messages): %s\n", conv.ID[:8], len(conv.Messages), conv.Summary)
		}
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	loadInputHistory(line)
	defer saveInputHistory(line)

	if !args.Quiet {
		fmt.Printf("redraft chat (%s). /help for commands, Ctrl+D to exit.\n", cfg.Chat.Model)
	}

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			// Ctrl+D or terminal closed.
			fmt.Println()
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := handleSlashCommand(input, &conversation, cfg); quit {
				break
			}
			continue
		}

		conversation = append(conversation, chat.NewUserMessage(input))
		response, err := streamTurn(client, cfg, conversation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		conversation = append(conversation, chat.NewAssistantMessage(response))

		report, err := runApply(response, store, args.Quiet, cfg.Apply.AutoSave)
		if err != nil {
			fmt.Fprintf(os.Stderr, "apply error: %v\n", err)
		} else if !strings.HasPrefix(report, "no directives") {
			fmt.Print(report)
		}

		saveChatHistory(hist, cfg, conversation, &convID)
	}

	return nil
}

// streamTurn sends the conversation and streams the reply to stdout.
// Ctrl+C cancels generation without exiting the REPL.
func streamTurn(client *chat.Client, cfg *config.Config, conversation []chat.Message) (string, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	var response strings.Builder
	err := client.ChatStream(ctx, cfg.Chat.Model, conversation, func(chunk chat.StreamChunk) {
		response.WriteString(chunk.Content)
		fmt.Print(chunk.Content)
	})
	fmt.Println()

	if err != nil && ctx.Err() == context.Canceled {
		fmt.Println("(canceled)")
		return response.String(), nil
	}
	return response.String(), err
}

// handleSlashCommand executes an interactive command. Returns true when
// the REPL should exit.
func handleSlashCommand(input string, conversation *[]chat.Message, cfg *config.Config) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/clear", "/c":
		*conversation = (*conversation)[:1] // keep the system prompt
		fmt.Println("conversation cleared")

	case "/model", "/m":
		if len(fields) > 1 {
			cfg.Chat.Model = fields[1]
			fmt.Printf("model set to %s\n", cfg.Chat.Model)
		} else {
			fmt.Printf("model: %s\n", cfg.Chat.Model)
		}

	case "/help", "/h":
		fmt.Println("/clear  clear conversation history")
		fmt.Println("/model  show or switch model")
		fmt.Println("/quit   exit chat")

	default:
		fmt.Printf("unknown command %s (try /help)\n", fields[0])
	}
	return false
}

// saveChatHistory persists the conversation if history is enabled. The
// conversation ID survives across turns so each save updates one row.
func saveChatHistory(hist *history.Store, cfg *config.Config, conversation []chat.Message, convID *string) {
	if hist == nil {
		return
	}
	conv := &history.Conversation{ID: *convID, Model: cfg.Chat.Model}
	for _, msg := range conversation {
		if msg.Role == "system" {
			continue
		}
		if conv.Summary == "" && msg.Role == "user" {
			conv.Summary = util.TruncateRunes(msg.Content, 64)
		}
		conv.Messages = append(conv.Messages, history.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	if err := hist.Save(conv); err != nil {
		fmt.Fprintf(os.Stderr, "history save failed: %v\n", err)
		return
	}
	*convID = conv.ID
}

// loadInputHistory loads liner history from the config directory.
func loadInputHistory(line *liner.State) {
	dir, err := config.ConfigDir()
	if err != nil {
		return
	}
	if f, err := os.Open(filepath.Join(dir, historyFileName)); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
}

// saveInputHistory writes liner history to the config directory.
func saveInputHistory(line *liner.State) {
	dir, err := config.ConfigDir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	if f, err := os.Create(filepath.Join(dir, historyFileName)); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
}
