package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// StatementRenderer renders cached puzzle statements for the terminal.
type StatementRenderer struct {
	markdown *glamour.TermRenderer
}

// NewStatementRenderer uses a glamour standard style ("dark", "light",
// "notty", ...). An unknown style falls back to plain markdown output.
func NewStatementRenderer(style string, width int) *StatementRenderer {
	if style == "" {
		style = "dark"
	}
	if width <= 0 {
		width = 78
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		renderer = nil
	}
	return &StatementRenderer{markdown: renderer}
}

func (s *StatementRenderer) Render(md string) string {
	if s == nil || s.markdown == nil {
		return md
	}
	out, err := s.markdown.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}
