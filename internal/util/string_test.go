// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for redraft.
package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		s    string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 0, ""},
		{"hello", 2, "he"},
		{"héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		if got := TruncateRunes(tt.s, tt.max); got != tt.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Errorf("no-op truncate = %q", got)
	}
	// Double-width characters count as two columns.
	got := TruncateWidth("日本語テキスト", 8)
	if got != "日本..." {
		t.Errorf("wide truncate = %q", got)
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "line", "lines"); got != "line" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := Plural(0, "line", "lines"); got != "lines" {
		t.Errorf("Plural(0) = %q", got)
	}
	if got := Plural(3, "line", "lines"); got != "lines" {
		t.Errorf("Plural(3) = %q", got)
	}
}
