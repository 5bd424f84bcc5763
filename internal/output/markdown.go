package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer re-renders accumulated responses that carry markdown
// structure. In plain mode it passes text through untouched.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer builds a renderer; useColor selects styled output.
func NewMarkdownRenderer(useColor bool) *MarkdownRenderer {
	if !useColor {
		return &MarkdownRenderer{}
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{renderer: renderer}
}

// Render writes the formatted markdown, falling back to the raw text when
// rendering fails.
func (m *MarkdownRenderer) Render(out io.Writer, markdown string) {
	if m.renderer == nil {
		fmt.Fprintln(out, markdown)
		return
	}
	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		fmt.Fprintln(out, markdown)
		return
	}
	fmt.Fprint(out, rendered)
}

// ContainsMarkdown reports whether text carries structural markers worth a
// formatted re-render: code fences, bold, headings, list items, or quotes.
func ContainsMarkdown(text string) bool {
	return strings.Contains(text, "```") ||
		strings.Contains(text, "**") ||
		strings.Contains(text, "##") ||
		strings.Contains(text, "- ") ||
		strings.Contains(text, "1. ") ||
		strings.Contains(text, "> ")
}
