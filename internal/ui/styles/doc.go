// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the redraft TUI.
//
// It defines an adaptive color palette and a Theme type that bundles the
// Lip Gloss styles used across the interface. Colors adjust automatically
// to light and dark terminal backgrounds via lipgloss.AdaptiveColor, and
// the theme records the detected termenv color profile so callers can
// degrade gracefully on limited terminals.
package styles
