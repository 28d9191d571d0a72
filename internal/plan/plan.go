// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan parses edit directives out of assistant responses and
// applies them to documents.
package plan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kestrelworks/redraft/internal/document"
)

// =============================================================================
// OPERATIONS
// =============================================================================

// Operation names the kind of edit a directive performs.
//
// The parser preserves unrecognized operation strings as-is; they are
// rejected when the directive is applied, not when it is parsed.
type Operation string

const (
	// OpWrite replaces a document's entire content with the directive body.
	OpWrite Operation = "write"

	// OpInsert splices the body in before a given line, shifting existing
	// content down.
	OpInsert Operation = "insert"

	// OpReplace removes an inclusive line range and splices the body in
	// its place.
	OpReplace Operation = "replace"
)

// Known reports whether the operation is one of the three supported kinds.
// Matching is case-sensitive.
func (o Operation) Known() bool {
	return o == OpWrite || o == OpInsert || o == OpReplace
}

// =============================================================================
// DIRECTIVE
// =============================================================================

// Directive is one edit instruction extracted from an assistant response.
type Directive struct {
	// Path is the target file path, relative to the document store root
	// unless absolute.
	Path string

	// Operation is the edit kind. Unrecognized values are kept verbatim
	// and fail at apply time.
	Operation Operation

	// StartLine is the 1-based first line the edit touches. Zero means
	// the header was absent; insert and replace reject that at apply time.
	StartLine int

	// EndLine is the 1-based last line of a replace range, inclusive.
	// Zero means absent.
	EndLine int

	// Body holds the literal lines of the fenced code block, in source
	// order. May be empty.
	Body []string

	// Language is the fence's language tag. Informational only.
	Language string

	// SourceLine is the line in the response text where this directive's
	// file: header appeared. Used in warnings and apply reporting.
	SourceLine int
}

// =============================================================================
// PARSE WARNINGS
// =============================================================================

// ParseWarning reports a directive that was dropped during parsing.
// Warnings are non-fatal; parsing always continues.
type ParseWarning struct {
	// Line is the 1-based line in the input where the problem starts.
	Line int

	// Message describes what was missing or malformed.
	Message string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// =============================================================================
// APPLY RESULTS
// =============================================================================

// ApplyResult is the outcome of applying a single directive.
type ApplyResult struct {
	// Path is the directive's target path.
	Path string

	// Success is true when the edit was applied (or was a no-op because
	// the target content already matched the body).
	Success bool

	// Reason explains a failure. Empty on success.
	Reason string
}

// BatchResult aggregates the outcomes of one batch of directives.
type BatchResult struct {
	// Applied is the number of directives that succeeded.
	Applied int

	// Total is the number of directives in the batch.
	Total int

	// Results holds the per-directive outcomes, in batch order.
	Results []ApplyResult
}

// Summary renders the "applied N/total" line shown to the user.
func (b BatchResult) Summary() string {
	return fmt.Sprintf("applied %d/%d", b.Applied, b.Total)
}

// Failures returns the results of directives that did not apply.
func (b BatchResult) Failures() []ApplyResult {
	var out []ApplyResult
	for _, r := range b.Results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// BATCH CONTEXT
// =============================================================================

// BatchContext tracks the documents touched while applying one batch.
// A fresh context is created per batch, so the engine keeps no state
// between batches.
type BatchContext struct {
	// ID identifies the batch, mostly for history records.
	ID string

	touched map[string]*document.Document
	order   []string
}

// NewBatchContext creates an empty batch context.
func NewBatchContext() *BatchContext {
	return &BatchContext{
		ID:      uuid.New().String(),
		touched: make(map[string]*document.Document),
	}
}

// Touch records a document as modified by this batch.
func (bc *BatchContext) Touch(doc *document.Document) {
	if _, ok := bc.touched[doc.Path()]; !ok {
		bc.order = append(bc.order, doc.Path())
	}
	bc.touched[doc.Path()] = doc
}

// Touched returns the modified documents in first-touch order.
func (bc *BatchContext) Touched() []*document.Document {
	out := make([]*document.Document, 0, len(bc.order))
	for _, p := range bc.order {
		out = append(out, bc.touched[p])
	}
	return out
}

// SaveAll persists every touched document through the store. Save failures
// are collected per path and do not roll back the in-memory edits.
func (bc *BatchContext) SaveAll(store *document.Store) map[string]error {
	var failed map[string]error
	for _, doc := range bc.Touched() {
		if err := store.Save(doc); err != nil {
			if failed == nil {
				failed = make(map[string]error)
			}
			failed[doc.Path()] = err
		}
	}
	return failed
}
