// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan parses edit directives out of assistant responses and
// applies them to documents.
package plan

import (
	"strings"
	"testing"
)

func TestParseSingleDirective(t *testing.T) {
	input := strings.Join([]string{
		"Here is the fix:",
		"",
		"file: src/app.go",
		"operation: replace",
		"start: 4",
		"end: 9",
		"```go",
		"func fixed() {",
		"}",
		"```",
		"That should do it.",
	}, "\n")

	directives, warnings := Parse(input)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}

	d := directives[0]
	if d.Path != "src/app.go" {
		t.Errorf("Path = %q, want src/app.go", d.Path)
	}
	if d.Operation != OpReplace {
		t.Errorf("Operation = %q, want replace", d.Operation)
	}
	if d.StartLine != 4 || d.EndLine != 9 {
		t.Errorf("range = %d-%d, want 4-9", d.StartLine, d.EndLine)
	}
	if d.Language != "go" {
		t.Errorf("Language = %q, want go", d.Language)
	}
	want := []string{"func fixed() {", "}"}
	if !linesEqual(d.Body, want) {
		t.Errorf("Body = %v, want %v", d.Body, want)
	}
}

func TestParseMultipleDirectivesInOrder(t *testing.T) {
	input := strings.Join([]string{
		"file: a.txt",
		"operation: write",
		"```",
		"alpha",
		"```",
		"Some commentary between edits.",
		"file: b.txt",
		"operation: write",
		"```",
		"beta",
		"```",
	}, "\n")

	directives, warnings := Parse(input)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(directives) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(directives))
	}
	if directives[0].Path != "a.txt" || directives[1].Path != "b.txt" {
		t.Errorf("order wrong: %s, %s", directives[0].Path, directives[1].Path)
	}
}

func TestParseMissingOperationDropped(t *testing.T) {
	input := strings.Join([]string{
		"file: broken.txt",
		"start: 1",
		"```",
		"orphan body",
		"```",
		"file: good.txt",
		"operation: write",
		"```",
		"kept",
		"```",
	}, "\n")

	directives, warnings := Parse(input)
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if directives[0].Path != "good.txt" {
		t.Errorf("kept wrong directive: %s", directives[0].Path)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly 1 warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0].Message, "broken.txt") {
		t.Errorf("warning should name the dropped path: %q", warnings[0].Message)
	}
	if warnings[0].Line != 1 {
		t.Errorf("warning line = %d, want 1", warnings[0].Line)
	}
}

func TestParseOrphanOperationHeader(t *testing.T) {
	input := "operation: write\n```\nno target\n```\n"

	directives, warnings := Parse(input)
	if len(directives) != 0 {
		t.Fatalf("expected no directives, got %d", len(directives))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
}

func TestParseDuplicateHeaderLastWins(t *testing.T) {
	input := strings.Join([]string{
		"file: target.txt",
		"operation: insert",
		"start: 2",
		"start: 5",
		"```",
		"x",
		"```",
	}, "\n")

	directives, _ := Parse(input)
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if directives[0].StartLine != 5 {
		t.Errorf("StartLine = %d, want 5 (last wins)", directives[0].StartLine)
	}
}

func TestParseUnclosedFenceRunsToEnd(t *testing.T) {
	input := strings.Join([]string{
		"file: tail.txt",
		"operation: write",
		"```",
		"line one",
		"line two",
	}, "\n")

	directives, warnings := Parse(input)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	want := []string{"line one", "line two"}
	if !linesEqual(directives[0].Body, want) {
		t.Errorf("Body = %v, want %v", directives[0].Body, want)
	}
}

func TestParseFileHeaderCutsOpenFence(t *testing.T) {
	input := strings.Join([]string{
		"file: first.txt",
		"operation: write",
		"```",
		"partial",
		"file: second.txt",
		"operation: write",
		"```",
		"whole",
		"```",
	}, "\n")

	directives, _ := Parse(input)
	if len(directives) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(directives))
	}
	if !linesEqual(directives[0].Body, []string{"partial"}) {
		t.Errorf("first body = %v, want [partial]", directives[0].Body)
	}
	if !linesEqual(directives[1].Body, []string{"whole"}) {
		t.Errorf("second body = %v, want [whole]", directives[1].Body)
	}
}

func TestParseNestedFenceOpenerIsLiteral(t *testing.T) {
	input := strings.Join([]string{
		"file: doc.md",
		"operation: write",
		"```markdown",
		"Example:",
		"```go",
		"fmt.Println()",
		"```",
	}, "\n")

	directives, _ := Parse(input)
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	// The inner ```go opener stays in the body; the bare ``` closes.
	want := []string{"Example:", "```go", "fmt.Println()"}
	if !linesEqual(directives[0].Body, want) {
		t.Errorf("Body = %v, want %v", directives[0].Body, want)
	}
}

func TestParseTrailingLinesAfterCloseIgnored(t *testing.T) {
	input := strings.Join([]string{
		"file: a.txt",
		"operation: write",
		"```",
		"content",
		"```",
		"stray line",
		"operation: replace",
	}, "\n")

	directives, warnings := Parse(input)
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if directives[0].Operation != OpWrite {
		t.Errorf("trailing operation header leaked into directive: %q", directives[0].Operation)
	}
	if len(warnings) != 0 {
		t.Errorf("trailing lines should not warn, got %v", warnings)
	}
}

func TestParseEmptyBody(t *testing.T) {
	input := "file: empty.txt\noperation: write\n```\n```\n"

	directives, _ := Parse(input)
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if len(directives[0].Body) != 0 {
		t.Errorf("expected empty body, got %v", directives[0].Body)
	}
}

func TestParseAbsentLineHeaders(t *testing.T) {
	input := "file: a.txt\noperation: insert\n```\nx\n```\n"

	directives, _ := Parse(input)
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if directives[0].StartLine != 0 || directives[0].EndLine != 0 {
		t.Errorf("absent headers should stay zero, got %d/%d",
			directives[0].StartLine, directives[0].EndLine)
	}
}

func TestParseNoDirectives(t *testing.T) {
	directives, warnings := Parse("Just a plain answer with no edits.\n")
	if len(directives) != 0 || len(warnings) != 0 {
		t.Errorf("expected nothing, got %d directives, %d warnings",
			len(directives), len(warnings))
	}
}

func TestParseUnknownOperationKept(t *testing.T) {
	input := "file: a.txt\noperation: delete\n```\nx\n```\n"

	directives, warnings := Parse(input)
	if len(warnings) != 0 {
		t.Fatalf("unknown operations are an apply-time failure, got parse warnings %v", warnings)
	}
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if directives[0].Operation != "delete" {
		t.Errorf("Operation = %q, want delete kept verbatim", directives[0].Operation)
	}
	if directives[0].Operation.Known() {
		t.Error("delete should not be a known operation")
	}
}
