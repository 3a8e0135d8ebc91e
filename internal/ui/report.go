package ui

import (
	"fmt"
	"io"

	"adventctl/internal/remote"
	"adventctl/internal/runner"

	"github.com/charmbracelet/lipgloss"
)

// Console prints run events as they happen.
type Console struct {
	w     io.Writer
	theme Theme
}

func NewConsole(w io.Writer, theme Theme) *Console {
	return &Console{w: w, theme: theme}
}

func (c *Console) Report(ev runner.Event) {
	if line := c.Format(ev); line != "" {
		_, _ = fmt.Fprintln(c.w, line)
	}
}

func (c *Console) Format(ev runner.Event) string {
	t := c.theme
	switch ev.Stage {
	case runner.StageDayStarted:
		return t.Header.Render(fmt.Sprintf("Day %d", ev.Day))
	case runner.StageMissing:
		return t.Muted.Render(ev.Detail)
	case runner.StageTestFailed:
		return t.Fail.Render(fmt.Sprintf("Part %d test failed:", ev.Part)) + " " + ev.Detail
	case runner.StageTestPassed:
		return t.Pass.Render(fmt.Sprintf("Part %d test passed", ev.Part))
	case runner.StageNotImplemented:
		return t.Pending.Render(ev.Detail)
	case runner.StageSolved:
		return fmt.Sprintf("Part %d: %s", ev.Part, t.Accent.Render(ev.Answer))
	case runner.StageSubmitSkipped:
		return t.Muted.Render(fmt.Sprintf("Part %d already solved, not submitting", ev.Part))
	case runner.StageSubmitBlocked:
		return t.Pending.Render(ev.Detail)
	case runner.StageSubmitted:
		return c.verdictStyle(ev.Outcome.Verdict).Render(ev.Outcome.Message())
	case runner.StageFailed:
		return t.Fail.Render(fmt.Sprintf("Day %d failed:", ev.Day)) + " " + ev.Detail
	default:
		return ""
	}
}

func (c *Console) verdictStyle(v remote.Verdict) lipgloss.Style {
	return c.theme.verdictStyle(v.String())
}

var _ runner.Reporter = (*Console)(nil)
