// Package output renders verses, chat deltas, and diagnostics to the
// terminal. It implements the sink the chat session writes through.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/biblec/biblec/internal/verse"
)

// ColorMode selects whether styled output is used.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Style writes styled terminal output. One Style serves one command
// invocation; the chat session uses it as its Sink.
type Style struct {
	color bool
	out   io.Writer

	reference lipgloss.Style
	marker    lipgloss.Style
	prompt    lipgloss.Style
	dim       lipgloss.Style

	markdown *MarkdownRenderer
	spinner  *Spinner
}

// New builds a Style writing to stdout. ColorAuto honors NO_COLOR,
// CLICOLOR=0, TERM=dumb, and whether stdout is a terminal.
func New(mode ColorMode) *Style {
	return NewWriter(mode, os.Stdout)
}

// NewWriter builds a Style writing to out; used by tests to capture output.
func NewWriter(mode ColorMode, out io.Writer) *Style {
	color := false
	switch mode {
	case ColorAlways:
		color = true
	case ColorNever:
		color = false
	default:
		color = shouldColorAuto()
	}

	s := &Style{
		color:     color,
		out:       out,
		reference: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		marker:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		prompt:    lipgloss.NewStyle().Bold(true),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		markdown:  NewMarkdownRenderer(color),
	}
	s.spinner = newSpinner(s.dim, color)
	return s
}

// Color reports whether styled output is active.
func (s *Style) Color() bool { return s.color }

func (s *Style) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

// VerseLine formats one verse as "Book c:v  text" with a styled reference.
func (s *Style) VerseLine(v verse.Verse) string {
	return fmt.Sprintf("%s  %s", s.render(s.reference, v.Reference()), v.Text)
}

// MarkedVerseLine prefixes a verse line with a position marker; the "*"
// anchor marker is highlighted.
func (s *Style) MarkedVerseLine(marker string, v verse.Verse) string {
	if marker == "*" {
		marker = s.render(s.marker, marker)
	}
	return fmt.Sprintf("%s %s", marker, s.VerseLine(v))
}

// Println writes one plain line.
func (s *Style) Println(text string) {
	fmt.Fprintln(s.out, text)
}

// Separator prints a dim horizontal rule in color mode.
func (s *Style) Separator() {
	if !s.color {
		return
	}
	width := terminalWidth()
	if width > 60 {
		width = 60
	}
	fmt.Fprintln(s.out, s.render(s.dim, strings.Repeat("─", width)))
}

// ChatIntro prints the chat-mode banner.
func (s *Style) ChatIntro() {
	fmt.Fprintln(s.out, s.render(s.dim, "Chat mode. /help for commands, /exit to quit."))
}

// Prompt prints the input prompt without a trailing newline.
func (s *Style) Prompt() {
	fmt.Fprint(s.out, s.render(s.prompt, "you>")+" ")
}

// Thinking starts the in-flight indicator; the first delta or notice stops
// it.
func (s *Style) Thinking() {
	s.spinner.Start()
}

// Delta prints one streamed fragment immediately.
func (s *Style) Delta(text string) {
	s.spinner.Stop()
	fmt.Fprint(s.out, text)
}

// Turn finishes a streamed response: a newline after the raw deltas, plus a
// structured re-render when the text carries markdown markers.
func (s *Style) Turn(full string) {
	s.spinner.Stop()
	fmt.Fprintln(s.out)

	if s.color && full != "" && ContainsMarkdown(full) {
		fmt.Fprintln(s.out)
		s.Separator()
		s.markdown.Render(s.out, full)
		s.Separator()
	}
	fmt.Fprintln(s.out)
}

// Notice prints one dim diagnostic line.
func (s *Style) Notice(text string) {
	s.spinner.Stop()
	fmt.Fprintln(s.out, s.render(s.dim, text))
}

func shouldColorAuto() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}
