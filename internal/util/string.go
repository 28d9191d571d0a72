// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for redraft.
package util

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

// TruncateRunes truncates a string to a maximum number of runes, appending
// "..." when anything was cut. Counting runes rather than bytes keeps
// multi-byte UTF-8 characters intact.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to a maximum display width, accounting
// for double-width (CJK) characters.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth > 3 {
		return runewidth.Truncate(s, maxWidth, "...")
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// IntToStr converts an int to its decimal string form.
func IntToStr(i int) string {
	return strconv.Itoa(i)
}

// Plural returns singular when n is 1 and plural otherwise, for building
// user-facing counts.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
