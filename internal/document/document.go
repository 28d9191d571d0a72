// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package document models project files as in-memory line buffers with a
// stable path identity and explicit load/save.
package document

import (
	"strings"
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is a file's text content held as an ordered sequence of lines.
// Line numbers are 1-based everywhere in this package.
type Document struct {
	path  string
	lines []string
	dirty bool
}

// Path returns the path identifying this document.
func (d *Document) Path() string {
	return d.path
}

// LineCount returns the number of lines. A new or empty document has zero.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Lines returns a copy of the inclusive range [start, end]. Out-of-range
// bounds are clamped; an empty or inverted range yields an empty slice.
func (d *Document) Lines(start, end int) []string {
	if start < 1 {
		start = 1
	}
	if end > len(d.lines) {
		end = len(d.lines)
	}
	if start > end {
		return nil
	}
	out := make([]string, end-start+1)
	copy(out, d.lines[start-1:end])
	return out
}

// AllLines returns a copy of the full content.
func (d *Document) AllLines() []string {
	return d.Lines(1, len(d.lines))
}

// SetLines replaces the inclusive range [start, end] with repl. An empty
// range (end == start-1) is a pure insertion before start; the full range
// is a whole-document rewrite. Callers validate bounds; SetLines clamps
// defensively rather than panicking.
func (d *Document) SetLines(start, end int, repl []string) {
	if start < 1 {
		start = 1
	}
	if start > len(d.lines)+1 {
		start = len(d.lines) + 1
	}
	if end < start-1 {
		end = start - 1
	}
	if end > len(d.lines) {
		end = len(d.lines)
	}

	next := make([]string, 0, len(d.lines)-(end-start+1)+len(repl))
	next = append(next, d.lines[:start-1]...)
	next = append(next, repl...)
	next = append(next, d.lines[end:]...)
	d.lines = next
}

// MarkDirty flags the document as holding unsaved changes.
func (d *Document) MarkDirty() {
	d.dirty = true
}

// Dirty reports whether the document has unsaved changes.
func (d *Document) Dirty() bool {
	return d.dirty
}

// Content renders the document as file bytes. Non-empty documents carry a
// trailing newline so a written file round-trips line-for-line.
func (d *Document) Content() string {
	if len(d.lines) == 0 {
		return ""
	}
	return strings.Join(d.lines, "\n") + "\n"
}

// =============================================================================
// LINE SPLITTING
// =============================================================================

// SplitLines converts file bytes to lines, normalizing CRLF and bare CR
// endings and dropping the empty element a trailing final newline leaves
// behind. The empty string yields no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
