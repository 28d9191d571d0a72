// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the redraft TUI.
package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelworks/redraft/internal/ui/styles"
	"github.com/kestrelworks/redraft/internal/util"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock renders source lines with syntax highlighting and line numbers.
// StartLine controls the number shown on the first line, so previews of
// mid-file edits show real file positions.
type CodeBlock struct {
	Language  string
	Lines     []string
	StartLine int
	MaxWidth  int
	Style     string // chroma style name, e.g. "monokai"
}

// NewCodeBlock creates a code block starting at line 1.
func NewCodeBlock(language string, lines []string) CodeBlock {
	return CodeBlock{
		Language:  language,
		Lines:     lines,
		StartLine: 1,
		MaxWidth:  80,
		Style:     "monokai",
	}
}

// Render renders the code block with a language badge and line numbers.
func (c CodeBlock) Render() string {
	code := strings.Join(c.Lines, "\n")

	language := c.Language
	if language == "" {
		language = detectLanguage(code)
	}

	highlighted := highlightCode(code, language, c.Style)
	lines := strings.Split(highlighted, "\n")

	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	start := c.StartLine
	if start < 1 {
		start = 1
	}

	var rendered []string
	for i, line := range lines {
		num := lineNumStyle.Render(util.IntToStr(start + i))
		rendered = append(rendered, num+line)
	}

	var header string
	if c.Language != "" {
		header = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.OverlayDim).
			Padding(0, 1).
			Bold(true).
			Render(c.Language) + "\n"
	}

	maxWidth := c.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(header + strings.Join(rendered, "\n"))
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// highlightCode applies syntax highlighting using chroma. Returns the code
// unchanged when tokenizing or formatting fails.
func highlightCode(code, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// detectLanguage attempts to detect the programming language of the code.
func detectLanguage(code string) string {
	lexer := lexers.Analyse(code)
	if lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

// LanguageForPath guesses a chroma language name from a file path.
func LanguageForPath(path string) string {
	lexer := lexers.Match(path)
	if lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
