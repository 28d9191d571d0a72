// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive TUI for redraft.
package chat

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// STREAMING BUFFER
// =============================================================================

// StreamingBuffer batches streamed tokens for flicker-free rendering.
// Tokens accumulate until either the batch size threshold is reached or
// enough time has passed since the last flush (capped at maxFPS frames
// per second).
//
// Thread-safety: streaming happens in a goroutine while rendering happens
// in the main Bubble Tea loop, so all operations take the mutex.
type StreamingBuffer struct {
	mu         sync.Mutex
	buffer     strings.Builder
	tokenCount int
	lastFlush  time.Time

	batchSize  int
	maxFPS     int
	minFlushMs time.Duration
}

// NewStreamingBuffer creates a streaming buffer with default settings:
// 15 tokens per batch at up to 30 frames per second.
func NewStreamingBuffer() *StreamingBuffer {
	return NewStreamingBufferWithConfig(15, 30)
}

// NewStreamingBufferWithConfig creates a streaming buffer with custom
// batch size and frame rate. Out-of-range values fall back to defaults.
func NewStreamingBufferWithConfig(batchSize, maxFPS int) *StreamingBuffer {
	if batchSize <= 0 {
		batchSize = 15
	}
	if maxFPS <= 0 || maxFPS > 60 {
		maxFPS = 30
	}
	return &StreamingBuffer{
		batchSize:  batchSize,
		maxFPS:     maxFPS,
		minFlushMs: time.Duration(1000/maxFPS) * time.Millisecond,
		lastFlush:  time.Now(),
	}
}

// Write adds a token to the buffer. Called from the streaming goroutine.
func (sb *StreamingBuffer) Write(token string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.buffer.WriteString(token)
	sb.tokenCount++
}

// Flush returns accumulated content if a flush threshold has been reached.
// The second return value reports whether anything was flushed.
func (sb *StreamingBuffer) Flush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.shouldFlushLocked() {
		return "", false
	}
	return sb.drainLocked()
}

// ForceFlush immediately returns all buffered content regardless of
// thresholds. Used when a stream completes.
func (sb *StreamingBuffer) ForceFlush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.buffer.Len() == 0 {
		return "", false
	}
	return sb.drainLocked()
}

// Reset clears the buffer without flushing. Used when canceling a stream.
func (sb *StreamingBuffer) Reset() {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.buffer.Reset()
	sb.tokenCount = 0
	sb.lastFlush = time.Now()
}

// Pending returns the number of tokens waiting to be flushed.
func (sb *StreamingBuffer) Pending() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.tokenCount
}

// shouldFlushLocked checks flush conditions. Caller must hold the lock.
func (sb *StreamingBuffer) shouldFlushLocked() bool {
	if sb.buffer.Len() == 0 {
		return false
	}
	if sb.tokenCount >= sb.batchSize {
		return true
	}
	return time.Since(sb.lastFlush) >= sb.minFlushMs
}

// drainLocked extracts the buffer content. Caller must hold the lock.
func (sb *StreamingBuffer) drainLocked() (string, bool) {
	content := sb.buffer.String()
	sb.buffer.Reset()
	sb.tokenCount = 0
	sb.lastFlush = time.Now()
	return content, true
}

// =============================================================================
// STREAMING TICK COMMAND
// =============================================================================

// streamTickCmd sends StreamTickMsg at roughly 30fps while a stream is
// active, driving buffered transcript updates.
func streamTickCmd() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg {
		return StreamTickMsg{Time: t}
	})
}
