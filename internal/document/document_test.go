// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single line no newline", "hello", []string{"hello"}},
		{"trailing newline dropped", "a\nb\n", []string{"a", "b"}},
		{"crlf normalized", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr normalized", "a\rb", []string{"a", "b"}},
		{"interior blank kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"only newline", "\n", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestContentRoundTrip(t *testing.T) {
	for _, content := range []string{"", "one\n", "one\ntwo\nthree\n"} {
		d := &Document{path: "x", lines: SplitLines(content)}
		if d.Content() != content {
			t.Errorf("round trip of %q gave %q", content, d.Content())
		}
	}

	// A file without a final newline gains one on write.
	d := &Document{path: "x", lines: SplitLines("no newline")}
	if d.Content() != "no newline\n" {
		t.Errorf("Content() = %q, want trailing newline added", d.Content())
	}
}

func TestLinesClampsAndCopies(t *testing.T) {
	d := &Document{path: "x", lines: []string{"a", "b", "c"}}

	if got := d.Lines(0, 99); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("clamped range = %v", got)
	}
	if got := d.Lines(3, 2); got != nil {
		t.Errorf("inverted range = %v, want nil", got)
	}

	got := d.Lines(1, 1)
	got[0] = "mutated"
	if d.lines[0] != "a" {
		t.Error("Lines must return a copy")
	}
}

func TestSetLinesReplace(t *testing.T) {
	d := &Document{path: "x", lines: []string{"a", "b", "c", "d"}}
	d.SetLines(2, 3, []string{"B"})
	if !reflect.DeepEqual(d.lines, []string{"a", "B", "d"}) {
		t.Errorf("lines = %v", d.lines)
	}
}

func TestSetLinesPureInsert(t *testing.T) {
	d := &Document{path: "x", lines: []string{"a", "c"}}
	d.SetLines(2, 1, []string{"b"})
	if !reflect.DeepEqual(d.lines, []string{"a", "b", "c"}) {
		t.Errorf("lines = %v", d.lines)
	}

	// Insert at lineCount+1 appends.
	d.SetLines(4, 3, []string{"d"})
	if !reflect.DeepEqual(d.lines, []string{"a", "b", "c", "d"}) {
		t.Errorf("lines = %v", d.lines)
	}
}

func TestSetLinesWholeDocument(t *testing.T) {
	d := &Document{path: "x", lines: []string{"old"}}
	d.SetLines(1, d.LineCount(), []string{"new", "content"})
	if !reflect.DeepEqual(d.lines, []string{"new", "content"}) {
		t.Errorf("lines = %v", d.lines)
	}

	empty := &Document{path: "y"}
	empty.SetLines(1, 0, []string{"first"})
	if !reflect.DeepEqual(empty.lines, []string{"first"}) {
		t.Errorf("lines = %v", empty.lines)
	}
}

func TestDirtyFlag(t *testing.T) {
	d := &Document{path: "x"}
	if d.Dirty() {
		t.Error("new document should be clean")
	}
	d.MarkDirty()
	if !d.Dirty() {
		t.Error("MarkDirty did not stick")
	}
}
