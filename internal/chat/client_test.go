// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the HTTP client for the streaming chat service.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient points a client at a test server with the limiter off.
func newTestClient(baseURL string) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL:           baseURL,
		RequestsPerMinute: 0,
	})
}

func TestCheckRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if err := client.CheckRunning(context.Background()); err != nil {
		t.Errorf("CheckRunning against live server: %v", err)
	}
}

func TestCheckRunningDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	err := client.CheckRunning(context.Background())
	if !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Stream {
			t.Error("Chat should request a non-streaming response")
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		json.NewEncoder(w).Encode(ChatResponse{
			Model:   "test-model",
			Message: Message{Role: "assistant", Content: "hi there"},
			Done:    true,
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.Chat(context.Background(), "test-model", []Message{NewUserMessage("hi")})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Message.Content != "hi there" {
		t.Errorf("Content = %q", resp.Message.Content)
	}
}

func TestChatModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Chat(context.Background(), "missing", nil)
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestChatDefaultModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "fallback" {
			t.Errorf("model = %q, want fallback", req.Model)
		}
		json.NewEncoder(w).Encode(ChatResponse{Done: true})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, DefaultModel: "fallback"})
	if _, err := client.Chat(context.Background(), "", nil); err != nil {
		t.Fatal(err)
	}
}

func TestChatStreamChan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleStream))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	var got string
	var done bool
	for chunk := range client.ChatStreamChan(context.Background(), "test-model", []Message{NewUserMessage("hi")}) {
		if chunk.Error != nil {
			t.Fatalf("chunk error: %v", chunk.Error)
		}
		got += chunk.Content
		if chunk.Done {
			done = true
		}
	}
	if got != "Hello" {
		t.Errorf("accumulated %q, want Hello", got)
	}
	if !done {
		t.Error("never saw the terminal chunk")
	}
}

func TestNewClientHasDefaults(t *testing.T) {
	client := NewClient()
	if client.config.BaseURL == "" {
		t.Error("default base URL should be set")
	}
	if client.config.DefaultModel == "" {
		t.Error("default model should be set")
	}
	if client.limiter == nil {
		t.Error("default config should enable the rate limiter")
	}
}
