// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the redraft TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelworks/redraft/internal/plan"
	"github.com/kestrelworks/redraft/internal/ui/styles"
	"github.com/kestrelworks/redraft/internal/util"
)

// =============================================================================
// DIRECTIVE PREVIEW
// =============================================================================

// DirectiveSummary returns a one-line description of an edit directive.
func DirectiveSummary(d plan.Directive) string {
	switch d.Operation {
	case plan.OpWrite:
		return fmt.Sprintf("write %s (%d %s)", d.Path,
			len(d.Body), util.Plural(len(d.Body), "line", "lines"))
	case plan.OpInsert:
		return fmt.Sprintf("insert %d %s before line %d of %s",
			len(d.Body), util.Plural(len(d.Body), "line", "lines"),
			d.StartLine, d.Path)
	case plan.OpReplace:
		return fmt.Sprintf("replace lines %d-%d of %s",
			d.StartLine, d.EndLine, d.Path)
	default:
		return fmt.Sprintf("%s %s", d.Operation, d.Path)
	}
}

// RenderDirective renders a directive header plus its highlighted body.
func RenderDirective(d plan.Directive, maxWidth int, syntaxStyle string) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Indigo).
		Render(DirectiveSummary(d))

	language := d.Language
	if language == "" {
		language = LanguageForPath(d.Path)
	}

	cb := NewCodeBlock(language, d.Body)
	cb.MaxWidth = maxWidth
	cb.Style = syntaxStyle
	if d.Operation != plan.OpWrite && d.StartLine > 0 {
		cb.StartLine = d.StartLine
	}

	return header + "\n" + cb.Render()
}

// =============================================================================
// WARNING AND APPLY REPORTS
// =============================================================================

// RenderWarnings renders parser warnings, one per line. Returns "" when
// there are none.
func RenderWarnings(warnings []plan.ParseWarning) string {
	if len(warnings) == 0 {
		return ""
	}
	warn := lipgloss.NewStyle().Foreground(styles.Yellow)
	var b strings.Builder
	for i, w := range warnings {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(warn.Render("! " + w.String()))
	}
	return b.String()
}

// RenderBatchResult renders the per-file outcome of an applied batch
// followed by its summary line.
func RenderBatchResult(br plan.BatchResult) string {
	ok := lipgloss.NewStyle().Foreground(styles.Green)
	fail := lipgloss.NewStyle().Foreground(styles.Red)
	summary := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimary)

	var b strings.Builder
	for _, r := range br.Results {
		if r.Success {
			b.WriteString(ok.Render("+ " + r.Path))
		} else {
			b.WriteString(fail.Render(fmt.Sprintf("x %s: %s", r.Path, r.Reason)))
		}
		b.WriteString("\n")
	}
	b.WriteString(summary.Render(br.Summary()))
	return b.String()
}
