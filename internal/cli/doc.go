// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI command
// handlers for redraft: one-shot asks, the plain-terminal chat REPL,
// directive application from files or stdin, configuration management,
// and saved conversation history.
package cli
