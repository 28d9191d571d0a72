// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive TUI for redraft.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	chatclient "github.com/kestrelworks/redraft/internal/chat"
	"github.com/kestrelworks/redraft/internal/config"
	"github.com/kestrelworks/redraft/internal/document"
	"github.com/kestrelworks/redraft/internal/history"
	"github.com/kestrelworks/redraft/internal/plan"
	"github.com/kestrelworks/redraft/internal/ui/styles"
	"github.com/kestrelworks/redraft/internal/util"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat interface. It owns the
// transcript, the streaming state, and the pipeline that parses and
// applies edit directives from assistant responses.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	client *chatclient.Client
	store  *document.Store
	cfg    *config.Config
	hist   *history.Store
	convID string

	// conversation is the message history sent to the model; entries is
	// the rendered transcript, which also includes apply reports.
	conversation []chatclient.Message
	entries      []Entry
	partial      string

	buffer    *StreamingBuffer
	doneCh    chan StreamDoneMsg
	cancel    context.CancelFunc
	streaming bool

	width  int
	height int
	ready  bool
	err    error
}

// New creates the chat model. hist may be nil when history is disabled.
func New(cfg *config.Config, client *chatclient.Client, store *document.Store, hist *history.Store) *Model {
	ta := textarea.New()
	ta.Placeholder = "Describe the edit you want..."
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := styles.NewTheme()
	ta.FocusedStyle.Prompt = theme.InputPrompt
	ta.FocusedStyle.Placeholder = theme.InputPlaceholder

	m := &Model{
		theme:    theme,
		keys:     DefaultKeyMap(),
		textarea: ta,
		spinner:  sp,
		client:   client,
		store:    store,
		cfg:      cfg,
		hist:     hist,
		buffer:   NewStreamingBuffer(),
		doneCh:   make(chan StreamDoneMsg, 1),
	}
	m.spinner.Style = m.theme.Spinner
	m.conversation = []chatclient.Message{
		chatclient.NewSystemMessage(plan.SystemPrompt),
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// =============================================================================
// STREAMING PIPELINE
// =============================================================================

// startStream launches the chat request in a goroutine. Tokens flow into
// the streaming buffer; completion is delivered on doneCh.
func (m *Model) startStream() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.streaming = true
	m.partial = ""
	m.buffer.Reset()

	model := m.cfg.Chat.Model
	messages := append([]chatclient.Message(nil), m.conversation...)

	client := m.client
	done := m.doneCh
	go func() {
		start := time.Now()
		var final StreamDoneMsg
		err := client.ChatStream(ctx, model, messages, func(chunk chatclient.StreamChunk) {
			if chunk.Content != "" {
				m.buffer.Write(chunk.Content)
			}
			if chunk.Done {
				final.Model = chunk.Model
				final.PromptTokens = chunk.PromptTokens
				final.CompletionTokens = chunk.CompletionTokens
			}
		})
		final.Duration = time.Since(start)
		final.Err = err
		done <- final
	}()

	return tea.Batch(m.spinner.Tick, streamTickCmd(), waitDoneCmd(m.doneCh))
}

// waitDoneCmd blocks until the streaming goroutine reports completion.
func waitDoneCmd(done <-chan StreamDoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

// applyCmd runs the full response through the plan engine: parse the
// directives, apply them in order, then persist every touched document.
func (m *Model) applyCmd(response string) tea.Cmd {
	store := m.store
	autoSave := m.cfg.Apply.AutoSave
	return func() tea.Msg {
		directives, warnings := plan.Parse(response)
		batch, bc := plan.ApplyAll(directives, store)

		var saveErrs map[string]error
		saved := autoSave && len(bc.Touched()) > 0
		if saved {
			saveErrs = bc.SaveAll(store)
		}
		return ApplyDoneMsg{
			Directives: directives,
			Warnings:   warnings,
			Batch:      batch,
			SaveErrs:   saveErrs,
			Saved:      saved || len(bc.Touched()) == 0,
		}
	}
}

// saveHistory persists the conversation if history is enabled.
func (m *Model) saveHistory() {
	if m.hist == nil {
		return
	}
	conv := &history.Conversation{
		ID:      m.convID,
		Summary: summarize(m.conversation),
		Model:   m.cfg.Chat.Model,
	}
	for _, msg := range m.conversation {
		if msg.Role == "system" {
			continue
		}
		conv.Messages = append(conv.Messages, history.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	if err := m.hist.Save(conv); err == nil {
		m.convID = conv.ID
	}
}

// summarize derives a short conversation summary from the first user message.
func summarize(msgs []chatclient.Message) string {
	for _, msg := range msgs {
		if msg.Role == "user" {
			return util.TruncateRunes(msg.Content, 64)
		}
	}
	return "(empty)"
}
