// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive TUI for redraft.
//
// The model wires together four concerns:
//
//   - a transcript viewport with glamour markdown rendering
//   - a textarea for composing prompts
//   - a streaming pipeline that batches tokens through StreamingBuffer
//     for flicker-free rendering at a capped frame rate
//   - the plan engine, which parses each completed response for edit
//     directives, applies them to the document store, and reports the
//     outcome inline in the transcript
//
// Streaming happens in a goroutine; tokens cross into the Bubble Tea
// loop via the buffer and a 30fps tick command, and completion arrives
// as a StreamDoneMsg on a channel.
package chat
