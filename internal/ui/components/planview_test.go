// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the redraft TUI.
package components

import (
	"strings"
	"testing"

	"github.com/kestrelworks/redraft/internal/plan"
)

func TestDirectiveSummary(t *testing.T) {
	tests := []struct {
		name string
		d    plan.Directive
		want string
	}{
		{
			name: "write",
			d:    plan.Directive{Path: "main.go", Operation: plan.OpWrite, Body: []string{"a", "b"}},
			want: "write main.go (2 lines)",
		},
		{
			name: "write single line",
			d:    plan.Directive{Path: "main.go", Operation: plan.OpWrite, Body: []string{"a"}},
			want: "write main.go (1 line)",
		},
		{
			name: "insert",
			d:    plan.Directive{Path: "util.go", Operation: plan.OpInsert, StartLine: 3, Body: []string{"x"}},
			want: "insert 1 line before line 3 of util.go",
		},
		{
			name: "replace",
			d:    plan.Directive{Path: "cfg.toml", Operation: plan.OpReplace, StartLine: 2, EndLine: 5},
			want: "replace lines 2-5 of cfg.toml",
		},
		{
			name: "unknown operation",
			d:    plan.Directive{Path: "x.go", Operation: "delete"},
			want: "delete x.go",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirectiveSummary(tt.d); got != tt.want {
				t.Errorf("DirectiveSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderBatchResult(t *testing.T) {
	br := plan.BatchResult{
		Applied: 1,
		Total:   2,
		Results: []plan.ApplyResult{
			{Path: "a.go", Success: true},
			{Path: "b.go", Success: false, Reason: "invalid start line"},
		},
	}
	out := RenderBatchResult(br)
	if !strings.Contains(out, "a.go") {
		t.Errorf("output missing success path: %q", out)
	}
	if !strings.Contains(out, "invalid start line") {
		t.Errorf("output missing failure reason: %q", out)
	}
	if !strings.Contains(out, "applied 1/2") {
		t.Errorf("output missing summary: %q", out)
	}
}

func TestRenderWarnings(t *testing.T) {
	if RenderWarnings(nil) != "" {
		t.Error("expected empty output for no warnings")
	}
	out := RenderWarnings([]plan.ParseWarning{{Line: 4, Message: "directive for a.go has no operation"}})
	if !strings.Contains(out, "a.go") {
		t.Errorf("output missing warning text: %q", out)
	}
}
