// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan parses edit directives out of assistant responses and
// applies them to documents.
package plan

import (
	"github.com/kestrelworks/redraft/internal/document"
)

// Failure reasons reported in ApplyResult. Expected bad input is always
// communicated through results, never through errors or panics.
const (
	reasonInvalidStart = "invalid start line"
	reasonInvalidEnd   = "invalid end line"
	reasonInvalidOp    = "invalid operation"
)

// =============================================================================
// SINGLE DIRECTIVE
// =============================================================================

// Apply resolves the directive's target document in the store and performs
// the edit. The target is loaded from disk when not yet in the store, or
// created (with parent directories) when it does not exist at all.
//
// Re-applying a directive whose target content already equals the body is
// a successful no-op; the document is not marked dirty again.
func Apply(d Directive, store *document.Store) ApplyResult {
	return apply(d, store, NewBatchContext())
}

func apply(d Directive, store *document.Store, bc *BatchContext) ApplyResult {
	doc, err := store.Resolve(d.Path)
	if err != nil {
		return ApplyResult{Path: d.Path, Reason: "cannot open " + d.Path + ": " + err.Error()}
	}

	switch d.Operation {
	case OpWrite:
		return applyWrite(d, doc, bc)
	case OpInsert:
		return applyInsert(d, doc, bc)
	case OpReplace:
		return applyReplace(d, doc, bc)
	default:
		return ApplyResult{Path: d.Path, Reason: reasonInvalidOp}
	}
}

// applyWrite replaces the whole document body. It has no line-bound
// constraints and always succeeds once the document is resolved.
func applyWrite(d Directive, doc *document.Document, bc *BatchContext) ApplyResult {
	if linesEqual(doc.Lines(1, doc.LineCount()), d.Body) {
		return ApplyResult{Path: d.Path, Success: true}
	}
	doc.SetLines(1, doc.LineCount(), d.Body)
	doc.MarkDirty()
	bc.Touch(doc)
	return ApplyResult{Path: d.Path, Success: true}
}

// applyInsert splices the body in before line StartLine, shifting existing
// content down. StartLine may be lineCount+1 to append.
func applyInsert(d Directive, doc *document.Document, bc *BatchContext) ApplyResult {
	n := doc.LineCount()
	if d.StartLine < 1 || d.StartLine > n+1 {
		return ApplyResult{Path: d.Path, Reason: reasonInvalidStart}
	}
	if len(d.Body) == 0 {
		return ApplyResult{Path: d.Path, Success: true}
	}
	// Duplicate-content detection: the body already sits at the insertion
	// point, so re-applying would double it up.
	last := d.StartLine + len(d.Body) - 1
	if last <= n && linesEqual(doc.Lines(d.StartLine, last), d.Body) {
		return ApplyResult{Path: d.Path, Success: true}
	}
	doc.SetLines(d.StartLine, d.StartLine-1, d.Body)
	doc.MarkDirty()
	bc.Touch(doc)
	return ApplyResult{Path: d.Path, Success: true}
}

// applyReplace removes lines [StartLine, EndLine] inclusive and splices
// the body in their place.
func applyReplace(d Directive, doc *document.Document, bc *BatchContext) ApplyResult {
	n := doc.LineCount()
	if d.StartLine < 1 {
		return ApplyResult{Path: d.Path, Reason: reasonInvalidStart}
	}
	if d.EndLine < d.StartLine || d.EndLine > n {
		return ApplyResult{Path: d.Path, Reason: reasonInvalidEnd}
	}
	if linesEqual(doc.Lines(d.StartLine, d.EndLine), d.Body) {
		return ApplyResult{Path: d.Path, Success: true}
	}
	doc.SetLines(d.StartLine, d.EndLine, d.Body)
	doc.MarkDirty()
	bc.Touch(doc)
	return ApplyResult{Path: d.Path, Success: true}
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// =============================================================================
// BATCH APPLY
// =============================================================================

// ApplyAll applies directives strictly in parse order. Later directives
// may rely on line numbers produced by earlier ones against the same
// document, so the batch must never be reordered or parallelized.
//
// A failed directive is counted and skipped; it does not abort the batch
// and nothing is rolled back. The returned context holds the touched
// documents so the caller can persist them.
func ApplyAll(directives []Directive, store *document.Store) (BatchResult, *BatchContext) {
	bc := NewBatchContext()
	result := BatchResult{
		Total:   len(directives),
		Results: make([]ApplyResult, 0, len(directives)),
	}
	for _, d := range directives {
		r := apply(d, store, bc)
		if r.Success {
			result.Applied++
		}
		result.Results = append(result.Results, r)
	}
	return result, bc
}
