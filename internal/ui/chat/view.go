// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive TUI for redraft.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return m.theme.App.Render(b.String())
}

// renderHeader renders the title bar with the active model name.
func (m *Model) renderHeader() string {
	title := m.theme.HeaderBold.Render("redraft")
	model := m.theme.ShortcutDesc.Render(" " + m.cfg.Chat.Model)
	return m.theme.Header.Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, title, model))
}

// renderInput renders the textarea, or the spinner while streaming.
func (m *Model) renderInput() string {
	if m.streaming {
		return m.theme.InputContainer.Width(m.width).Render(
			m.spinner.View() + m.theme.ThinkingText.Render(" waiting for response..."))
	}
	return m.theme.InputContainer.Width(m.width).Render(m.textarea.View())
}

// renderStatusBar renders shortcut hints and any current error.
func (m *Model) renderStatusBar() string {
	if m.err != nil {
		return m.theme.StatusBar.Width(m.width).Render(
			m.theme.ErrorTitle.Render("error: ") + m.err.Error())
	}

	var hints []string
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		hints = append(hints,
			m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(hints, "  "))
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport rebuilds the transcript and scrolls to the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders all entries plus any in-flight partial text.
func (m *Model) renderTranscript() string {
	var parts []string
	for _, e := range m.entries {
		parts = append(parts, m.renderEntry(e))
	}
	if m.streaming && m.partial != "" {
		parts = append(parts, m.theme.AssistantMessage.Render(m.partial))
	}
	return strings.Join(parts, "\n\n")
}

// renderEntry renders one transcript entry. Assistant messages go through
// glamour when markdown rendering is enabled.
func (m *Model) renderEntry(e Entry) string {
	switch e.Kind {
	case entryUser:
		return m.theme.UserMessage.Render(e.Content)
	case entryAssistant:
		if m.cfg.UI.Markdown && m.renderer != nil {
			if rendered, err := m.renderer.Render(e.Content); err == nil {
				return m.theme.AssistantMessage.Render(strings.TrimRight(rendered, "\n"))
			}
		}
		return m.theme.AssistantMessage.Render(e.Content)
	case entryReport:
		return e.Content
	default:
		return m.theme.SystemMessage.Render(e.Content)
	}
}
