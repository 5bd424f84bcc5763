package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biblec/biblec/internal/verse"
)

func TestContainsMarkdown(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"plain prose only", false},
		{"a ```go\nblock\n``` here", true},
		{"some **bold** text", true},
		{"## Heading", true},
		{"- first item", true},
		{"1. ordered item", true},
		{"> a quote", true},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsMarkdown(tt.text), "%q", tt.text)
	}
}

func TestVerseLinePlain(t *testing.T) {
	var buf bytes.Buffer
	style := NewWriter(ColorNever, &buf)

	v := verse.Verse{Book: "John", Chapter: 3, Verse: 16, Text: "For God so loved the world"}
	assert.Equal(t, "John 3:16  For God so loved the world", style.VerseLine(v))
	assert.Equal(t, "* John 3:16  For God so loved the world", style.MarkedVerseLine("*", v))
	assert.False(t, style.Color())
}

func TestTurnPlainMode(t *testing.T) {
	var buf bytes.Buffer
	style := NewWriter(ColorNever, &buf)

	style.Delta("Hello, ")
	style.Delta("**world**")
	style.Turn("Hello, **world**")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Hello, **world**"))
	// Plain mode never re-renders markdown.
	assert.Equal(t, 1, strings.Count(out, "world"))
}

func TestNoticePlain(t *testing.T) {
	var buf bytes.Buffer
	style := NewWriter(ColorNever, &buf)

	style.Notice("(chat reset)")
	assert.Equal(t, "(chat reset)\n", buf.String())
}

func TestPromptPlain(t *testing.T) {
	var buf bytes.Buffer
	style := NewWriter(ColorNever, &buf)

	style.Prompt()
	assert.Equal(t, "you> ", buf.String())
}

func TestMarkdownRendererPlainPassthrough(t *testing.T) {
	var buf bytes.Buffer
	r := NewMarkdownRenderer(false)
	r.Render(&buf, "**bold**")
	assert.Equal(t, "**bold**\n", buf.String())
}

func TestSeparatorPlainModeSilent(t *testing.T) {
	var buf bytes.Buffer
	style := NewWriter(ColorNever, &buf)

	style.Separator()
	assert.Empty(t, buf.String())
}
