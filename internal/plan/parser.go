// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan parses edit directives out of assistant responses and
// applies them to documents.
package plan

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// DIRECTIVE GRAMMAR
// =============================================================================

// A directive looks like:
//
//	file: path/to/target.go
//	operation: replace
//	start: 4
//	end: 9
//	```go
//	<body lines>
//	```
//
// Headers are order-independent and prefix-matched per line; the last
// occurrence wins when one is repeated. The header section ends at the
// first fence opener. start: and end: are only meaningful for insert and
// replace.
var (
	fileRe  = regexp.MustCompile(`^file:\s*(.+)$`)
	opRe    = regexp.MustCompile(`^operation:\s*(\w+)$`)
	startRe = regexp.MustCompile(`^start:\s*(\d+)$`)
	endRe   = regexp.MustCompile(`^end:\s*(\d+)$`)
)

// scanState tracks where the line scanner is within a directive.
type scanState int

const (
	// stateIdle - outside any directive (prose, or before the first file:)
	stateIdle scanState = iota

	// stateHeader - inside a directive, before its fence opens
	stateHeader

	// stateBody - inside an open fence, capturing body lines verbatim
	stateBody

	// stateTrail - after a closed fence; lines are ignored until the
	// next file: header
	stateTrail
)

// isFenceOpener reports whether the line opens a fenced code block and
// returns its language tag.
func isFenceOpener(line string) (lang string, ok bool) {
	if !strings.HasPrefix(line, "```") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "```")), true
}

// isFenceCloser matches a line that is exactly a closing fence, modulo
// surrounding whitespace.
func isFenceCloser(line string) bool {
	return strings.TrimSpace(line) == "```"
}

// =============================================================================
// PARSER
// =============================================================================

// Parse scans an assistant response and extracts edit directives in the
// order they appear. Directives missing a required field are dropped and
// reported as warnings; parsing never fails outright.
//
// Recovery rules for ill-formed input:
//   - A file: header always begins a new directive, even inside an open
//     fence; an unterminated body runs to the next file: or end of input.
//   - A second fence opener before the closer is kept as literal body
//     content. A bare ``` line always closes the fence.
//   - Lines after a closed fence are ignored until the next directive.
func Parse(text string) ([]Directive, []ParseWarning) {
	var (
		directives []Directive
		warnings   []ParseWarning
		cur        *Directive
		state      = stateIdle
	)

	flush := func() {
		if cur == nil {
			return
		}
		if cur.Operation == "" {
			warnings = append(warnings, ParseWarning{
				Line:    cur.SourceLine,
				Message: "directive for " + cur.Path + " dropped: missing operation",
			})
		} else {
			directives = append(directives, *cur)
		}
		cur = nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lineNo := i + 1

		// file: starts a new directive from any state.
		if m := fileRe.FindStringSubmatch(line); m != nil {
			flush()
			cur = &Directive{
				Path:       strings.TrimSpace(m[1]),
				SourceLine: lineNo,
			}
			state = stateHeader
			continue
		}

		switch state {
		case stateIdle:
			// An operation header with no file: line means the model
			// emitted a directive we cannot target anywhere.
			if opRe.MatchString(line) {
				warnings = append(warnings, ParseWarning{
					Line:    lineNo,
					Message: "directive dropped: operation header without a file: line",
				})
			}

		case stateHeader:
			if m := opRe.FindStringSubmatch(line); m != nil {
				cur.Operation = Operation(m[1])
				continue
			}
			if m := startRe.FindStringSubmatch(line); m != nil {
				cur.StartLine, _ = strconv.Atoi(m[1])
				continue
			}
			if m := endRe.FindStringSubmatch(line); m != nil {
				cur.EndLine, _ = strconv.Atoi(m[1])
				continue
			}
			if lang, ok := isFenceOpener(line); ok {
				cur.Language = lang
				cur.Body = []string{}
				state = stateBody
			}
			// Anything else between headers is prose; skip it.

		case stateBody:
			if isFenceCloser(line) {
				state = stateTrail
				continue
			}
			// Body lines are preserved verbatim, fence-like openers
			// included.
			cur.Body = append(cur.Body, line)

		case stateTrail:
			// Ignored until the next file: header.
		}
	}
	flush()

	return directives, warnings
}
