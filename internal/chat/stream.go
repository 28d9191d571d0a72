// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the HTTP client for the streaming chat service.
package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"
)

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader parses a line-delimited JSON response stream, handing each
// delta to a callback and accumulating the full text. The plan engine only
// ever sees the accumulated text after the terminal chunk, never partial
// output.
type StreamReader struct {
	reader      *bufio.Reader
	accumulator strings.Builder
	tokenCount  int
	model       string
}

// NewStreamReader creates a stream reader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader: bufio.NewReader(r),
	}
}

// Process reads the stream and calls the callback for each chunk. It
// blocks until the stream completes or the context is cancelled.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			chunk, err := s.readChunk()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			if chunk != nil {
				callback(*chunk)
				if chunk.Done {
					return nil
				}
			}
		}
	}
}

// readChunk reads and parses a single line from the stream.
func (s *StreamReader) readChunk() (*StreamChunk, error) {
	line, err := s.reader.ReadBytes('\n')
	if err != nil {
		if len(line) == 0 {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}
		// Process the final unterminated line before surfacing EOF.
	}

	if len(line) == 0 {
		return nil, nil
	}

	var response struct {
		Model      string    `json:"model"`
		CreatedAt  time.Time `json:"created_at"`
		Message    struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		Done            bool   `json:"done"`
		DoneReason      string `json:"done_reason,omitempty"`
		TotalDuration   int64  `json:"total_duration,omitempty"`
		EvalDuration    int64  `json:"eval_duration,omitempty"`
		PromptEvalCount int    `json:"prompt_eval_count,omitempty"`
		EvalCount       int    `json:"eval_count,omitempty"`
	}
	if err := json.Unmarshal(line, &response); err != nil {
		// Skip malformed lines rather than killing the stream.
		return nil, nil
	}

	if response.Model != "" {
		s.model = response.Model
	}

	content := response.Message.Content
	if content != "" {
		s.accumulator.WriteString(content)
		s.tokenCount++
	}

	chunk := &StreamChunk{
		Content:    content,
		Done:       response.Done,
		DoneReason: response.DoneReason,
		Model:      s.model,
	}
	if response.Done {
		chunk.TotalDuration = time.Duration(response.TotalDuration)
		chunk.EvalDuration = time.Duration(response.EvalDuration)
		chunk.PromptTokens = response.PromptEvalCount
		chunk.CompletionTokens = response.EvalCount
	}
	return chunk, nil
}

// Accumulated returns all content received so far.
func (s *StreamReader) Accumulated() string {
	return s.accumulator.String()
}

// TokenCount returns the number of content-bearing chunks received.
func (s *StreamReader) TokenCount() int {
	return s.tokenCount
}

// Model returns the model name reported by the stream.
func (s *StreamReader) Model() string {
	return s.model
}
