// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the HTTP client for the streaming chat service.
//
// The service is an Ollama-compatible endpoint: role/content messages go
// in, line-delimited JSON deltas come back until a terminal done chunk.
// Responses are accumulated in full before anything downstream (notably
// the plan engine) sees them; partial text is only used for display.
//
// Outgoing requests pass through an optional rate limiter so a scripted
// caller cannot hammer the service.
package chat
