// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection helpers for the redraft CLI.
package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultTerminalWidth = 80

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the stdout width, or a default when stdout is
// not a terminal.
func TerminalWidth() int {
	if !IsStdoutTTY() {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// ColorEnabled reports whether colored output should be used. It honors
// NO_COLOR and disables color for piped output.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !IsStdoutTTY() {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
