// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the redraft TUI.
//
// It covers syntax-highlighted code blocks (chroma, terminal256 output)
// and the rendering of edit directives, parser warnings, and apply reports
// shown in the chat transcript after a response is processed.
package components
