// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the redraft TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Teal - Brand color, prompts, user highlights
var Teal = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}

// Indigo - Primary accent, assistant messages, selections
var Indigo = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}

// Green - Applied edits, success states
var Green = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}

// Red - Failed edits, errors
var Red = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// Yellow - Parse warnings, caution states
var Yellow = lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: "#FACC15"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// SurfaceDim - Slightly darker/lighter surface for headers and code
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F4F4F5", Dark: "#16161E"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E4E4E7", Dark: "#2E2E3E"}

// OverlayDim - Dimmer overlay for badges
var OverlayDim = lipgloss.AdaptiveColor{Light: "#D4D4D8", Dark: "#3F3F51"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#18181B", Dark: "#D6D9E8"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#52525B", Dark: "#A0A4BC"}

// TextMuted - Hints, line numbers, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#A1A1AA", Dark: "#62667D"}
