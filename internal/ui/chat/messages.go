// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive TUI for redraft.
package chat

import (
	"time"

	"github.com/kestrelworks/redraft/internal/plan"
)

// =============================================================================
// TRANSCRIPT ENTRIES
// =============================================================================

// entryKind identifies how a transcript entry is rendered.
type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entrySystem
	entryReport
)

// Entry is one rendered item in the chat transcript.
type Entry struct {
	Kind    entryKind
	Content string
	Time    time.Time
}

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// StreamTickMsg drives buffered rendering of an in-flight stream.
type StreamTickMsg struct {
	Time time.Time
}

// StreamDoneMsg is sent when a streamed response finishes or fails.
type StreamDoneMsg struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Duration         time.Duration
	Err              error
}

// ApplyDoneMsg carries the outcome of applying a response's directives.
type ApplyDoneMsg struct {
	Directives []plan.Directive
	Warnings   []plan.ParseWarning
	Batch      plan.BatchResult
	SaveErrs   map[string]error
	// Saved is false when auto_save is off and documents stayed in memory.
	Saved bool
}
