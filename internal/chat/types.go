// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the HTTP client for the streaming chat service.
package chat

import "time"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Message represents a chat message in the conversation.
type Message struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // The message content
}

// ChatRequest is the request body for the /api/chat endpoint.
type ChatRequest struct {
	Model    string    `json:"model"`             // Model name
	Messages []Message `json:"messages"`          // Conversation history
	Stream   bool      `json:"stream"`            // Enable streaming
	Options  *Options  `json:"options,omitempty"` // Model parameters
}

// Options contains model parameters for inference.
type Options struct {
	Temperature float64  `json:"temperature,omitempty"` // 0.0-2.0
	TopP        float64  `json:"top_p,omitempty"`       // 0.0-1.0
	NumCtx      int      `json:"num_ctx,omitempty"`     // Context window size
	NumPredict  int      `json:"num_predict,omitempty"` // Max tokens, -1 unlimited
	Stop        []string `json:"stop,omitempty"`        // Stop sequences
	Seed        int      `json:"seed,omitempty"`        // Random seed
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the non-streaming response from /api/chat.
type ChatResponse struct {
	Model           string    `json:"model"`
	CreatedAt       time.Time `json:"created_at"`
	Message         Message   `json:"message"`
	Done            bool      `json:"done"`
	DoneReason      string    `json:"done_reason,omitempty"`
	TotalDuration   int64     `json:"total_duration,omitempty"` // nanoseconds
	PromptEvalCount int       `json:"prompt_eval_count,omitempty"`
	EvalCount       int       `json:"eval_count,omitempty"`
}

// serviceError is the error body the chat service returns on failure.
type serviceError struct {
	Error string `json:"error"`
}

// =============================================================================
// STREAMING TYPES
// =============================================================================

// StreamChunk is a single incremental delta from a streaming response.
type StreamChunk struct {
	// Content is this chunk's text delta.
	Content string

	// Done marks the terminal chunk of the stream.
	Done       bool
	DoneReason string

	// Timing and token statistics, populated on the final chunk only.
	TotalDuration    time.Duration
	EvalDuration     time.Duration
	PromptTokens     int
	CompletionTokens int

	// Model that produced the stream.
	Model string

	// Error if any occurred during streaming.
	Error error
}

// =============================================================================
// HELPER METHODS
// =============================================================================

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}
