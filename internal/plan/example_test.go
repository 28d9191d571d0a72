// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan parses edit directives out of assistant responses and
// applies them to documents.
package plan_test

import (
	"fmt"
	"os"

	"github.com/kestrelworks/redraft/internal/document"
	"github.com/kestrelworks/redraft/internal/plan"
)

// ExampleParse demonstrates extracting directives from a model response.
func ExampleParse() {
	response := "Here is the fix:\n\n" +
		"file: greet.go\n" +
		"operation: replace\n" +
		"start: 2\n" +
		"end: 2\n" +
		"```go\n" +
		"\tfmt.Println(\"hello\")\n" +
		"```\n\n" +
		"That replaces the body of main."

	directives, warnings := plan.Parse(response)
	fmt.Printf("directives: %d, warnings: %d\n", len(directives), len(warnings))

	d := directives[0]
	fmt.Printf("%s %s lines %d-%d (%s)\n", d.Operation, d.Path, d.StartLine, d.EndLine, d.Language)

	// Output:
	// directives: 1, warnings: 0
	// replace greet.go lines 2-2 (go)
}

// ExampleApplyAll demonstrates the full parse, apply, save pipeline.
func ExampleApplyAll() {
	dir, err := os.MkdirTemp("", "redraft-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	response := "file: notes.txt\n" +
		"operation: write\n" +
		"```\n" +
		"first line\n" +
		"second line\n" +
		"```\n"

	store := document.NewStore(dir)
	directives, _ := plan.Parse(response)
	result, batch := plan.ApplyAll(directives, store)
	batch.SaveAll(store)

	fmt.Println(result.Summary())
	for _, doc := range batch.Touched() {
		fmt.Println(doc.Path())
	}

	// Output:
	// applied 1/1
	// notes.txt
}
