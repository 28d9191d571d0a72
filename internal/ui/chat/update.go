// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive TUI for redraft.
package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	chatclient "github.com/kestrelworks/redraft/internal/chat"
	"github.com/kestrelworks/redraft/internal/ui/components"
	"github.com/kestrelworks/redraft/internal/ui/styles"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.saveHistory()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Cancel):
			if m.streaming {
				m.cancelStream()
				return m, nil
			}

		case key.Matches(msg, m.keys.Clear):
			if !m.streaming {
				m.entries = nil
				m.partial = ""
				m.refreshViewport()
				return m, nil
			}

		case key.Matches(msg, m.keys.PageUp):
			m.viewport.HalfViewUp()
			return m, nil

		case key.Matches(msg, m.keys.PageDown):
			m.viewport.HalfViewDown()
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			if !m.streaming {
				if cmd := m.submit(); cmd != nil {
					return m, cmd
				}
				return m, nil
			}
		}

	case StreamTickMsg:
		if m.streaming {
			if content, ok := m.buffer.Flush(); ok {
				m.partial += content
				m.refreshViewport()
			}
			cmds = append(cmds, streamTickCmd())
		}

	case StreamDoneMsg:
		return m, m.finishStream(msg)

	case ApplyDoneMsg:
		m.recordApply(msg)

	case spinner.TickMsg:
		if m.streaming {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.streaming {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

// resize lays out the viewport and input for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	inputHeight := m.textarea.Height() + 2
	vpHeight := height - inputHeight - 2 // header + status bar
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(width - 2)

	if r, err := glamour.NewTermRenderer(
		styles.GlamourStyle(m.cfg.UI.Theme),
		glamour.WithWordWrap(width-4),
	); err == nil {
		m.renderer = r
	}
	m.refreshViewport()
}

// submit sends the current input as a user message and starts streaming.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return nil
	}
	m.textarea.Reset()
	m.err = nil

	m.entries = append(m.entries, Entry{Kind: entryUser, Content: text, Time: time.Now()})
	m.conversation = append(m.conversation, chatclient.NewUserMessage(text))
	m.refreshViewport()

	return m.startStream()
}

// cancelStream aborts the in-flight request, keeping any partial output
// in the transcript as a system note.
func (m *Model) cancelStream() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.streaming = false
	m.buffer.Reset()
	if m.partial != "" {
		m.entries = append(m.entries, Entry{
			Kind:    entrySystem,
			Content: "(canceled)\n" + m.partial,
			Time:    time.Now(),
		})
		m.partial = ""
	}
	m.refreshViewport()
}

// finishStream records the completed response and kicks off directive
// application.
func (m *Model) finishStream(msg StreamDoneMsg) tea.Cmd {
	if tail, ok := m.buffer.ForceFlush(); ok {
		m.partial += tail
	}
	m.streaming = false
	m.cancel = nil

	if msg.Err != nil {
		m.err = msg.Err
		m.partial = ""
		m.refreshViewport()
		return nil
	}

	response := m.partial
	m.partial = ""
	m.entries = append(m.entries, Entry{Kind: entryAssistant, Content: response, Time: time.Now()})
	m.conversation = append(m.conversation, chatclient.NewAssistantMessage(response))
	m.saveHistory()
	m.refreshViewport()

	return m.applyCmd(response)
}

// recordApply appends an apply report entry when the response carried
// directives or produced warnings.
func (m *Model) recordApply(msg ApplyDoneMsg) {
	if msg.Batch.Total == 0 && len(msg.Warnings) == 0 {
		return
	}

	var parts []string
	if w := components.RenderWarnings(msg.Warnings); w != "" {
		parts = append(parts, w)
	}
	for i, d := range msg.Directives {
		if i < len(msg.Batch.Results) && msg.Batch.Results[i].Success {
			parts = append(parts, components.RenderDirective(d, m.width, m.cfg.UI.SyntaxTheme))
		}
	}
	if msg.Batch.Total > 0 {
		parts = append(parts, components.RenderBatchResult(msg.Batch))
	}
	for path, err := range msg.SaveErrs {
		if err != nil {
			parts = append(parts, m.theme.ApplyFailure.Render("save failed for "+path+": "+err.Error()))
		}
	}
	if !msg.Saved {
		parts = append(parts, m.theme.WarningText.Render("changes held in memory (apply.auto_save is off)"))
	}

	m.entries = append(m.entries, Entry{
		Kind:    entryReport,
		Content: strings.Join(parts, "\n"),
		Time:    time.Now(),
	})
	m.refreshViewport()
}
