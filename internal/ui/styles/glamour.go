// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the redraft TUI.
package styles

import "github.com/charmbracelet/glamour"

// GlamourStyle maps the ui.theme config value to a glamour renderer
// option. "auto" detects the terminal background; anything else is
// treated as a named standard style.
func GlamourStyle(theme string) glamour.TermRendererOption {
	switch theme {
	case "", "auto":
		return glamour.WithAutoStyle()
	default:
		return glamour.WithStandardStyle(theme)
	}
}
