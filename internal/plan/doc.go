// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan parses edit directives out of assistant responses and
// applies them to documents.
//
// A directive is a header block (file:, operation:, and for line edits
// start:/end:) followed by a fenced code body. Parse extracts an ordered
// batch of directives from one complete response; ApplyAll performs them
// in that order against a document store, isolating per-directive
// failures so one bad edit never aborts the rest.
//
// # Key Types
//
//   - Directive: one parsed edit instruction
//   - ParseWarning: a dropped directive, reported instead of failing
//   - ApplyResult / BatchResult: per-directive and per-batch outcomes
//   - BatchContext: the documents a batch touched, for saving afterwards
//
// # Usage
//
//	directives, warnings := plan.Parse(responseText)
//	result, batch := plan.ApplyAll(directives, store)
//	fmt.Println(result.Summary()) // "applied 2/3"
//	batch.SaveAll(store)
//
// The engine is synchronous and keeps no state between batches. All
// expected failures travel through result values; nothing here panics on
// malformed model output.
package plan
