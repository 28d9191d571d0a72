// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive TUI for redraft.
package chat

import (
	"strings"
	"sync"
	"testing"
	"time"

	chatclient "github.com/kestrelworks/redraft/internal/chat"
)

func TestStreamingBufferBatchFlush(t *testing.T) {
	sb := NewStreamingBufferWithConfig(3, 30)

	sb.Write("a")
	sb.Write("b")
	if content, ok := sb.Flush(); ok {
		t.Errorf("expected no flush below batch size, got %q", content)
	}

	sb.Write("c")
	content, ok := sb.Flush()
	if !ok {
		t.Fatal("expected flush at batch size")
	}
	if content != "abc" {
		t.Errorf("expected 'abc', got %q", content)
	}
	if sb.Pending() != 0 {
		t.Errorf("expected empty buffer after flush, got %d pending", sb.Pending())
	}
}

func TestStreamingBufferTimeFlush(t *testing.T) {
	sb := NewStreamingBufferWithConfig(100, 30)

	sb.Write("token")
	time.Sleep(40 * time.Millisecond)

	content, ok := sb.Flush()
	if !ok {
		t.Fatal("expected time-based flush")
	}
	if content != "token" {
		t.Errorf("expected 'token', got %q", content)
	}
}

func TestStreamingBufferForceFlush(t *testing.T) {
	sb := NewStreamingBuffer()

	if _, ok := sb.ForceFlush(); ok {
		t.Error("expected no content from empty buffer")
	}

	sb.Write("tail")
	content, ok := sb.ForceFlush()
	if !ok || content != "tail" {
		t.Errorf("expected forced flush of 'tail', got %q (%v)", content, ok)
	}
}

func TestStreamingBufferReset(t *testing.T) {
	sb := NewStreamingBuffer()

	sb.Write("discard")
	sb.Reset()

	if _, ok := sb.ForceFlush(); ok {
		t.Error("expected nothing after reset")
	}
	if sb.Pending() != 0 {
		t.Errorf("expected 0 pending after reset, got %d", sb.Pending())
	}
}

func TestStreamingBufferConcurrentWrites(t *testing.T) {
	sb := NewStreamingBufferWithConfig(10000, 30)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sb.Write("x")
			}
		}()
	}
	wg.Wait()

	content, ok := sb.ForceFlush()
	if !ok {
		t.Fatal("expected content after concurrent writes")
	}
	if len(content) != 800 {
		t.Errorf("expected 800 tokens, got %d", len(content))
	}
}

func TestStreamingBufferConfigClamping(t *testing.T) {
	sb := NewStreamingBufferWithConfig(0, 999)
	if sb.batchSize != 15 {
		t.Errorf("expected default batch size 15, got %d", sb.batchSize)
	}
	if sb.maxFPS != 30 {
		t.Errorf("expected default max fps 30, got %d", sb.maxFPS)
	}
}

func TestSummarize(t *testing.T) {
	long := strings.Repeat("a", 100)
	msgs := []chatclient.Message{
		chatclient.NewSystemMessage("you are an editor"),
		chatclient.NewUserMessage(long),
	}
	if got := summarize(msgs); len(got) != 64 {
		t.Errorf("expected 64-char summary, got %d chars", len(got))
	}

	onlySystem := []chatclient.Message{chatclient.NewSystemMessage("sys")}
	if got := summarize(onlySystem); got != "(empty)" {
		t.Errorf("expected '(empty)' for no user messages, got %q", got)
	}
}
