package ui

import (
	"fmt"
	"strings"
	"time"

	"adventctl/internal/state"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// HistoryView is everything the history command prints.
type HistoryView struct {
	Year        int
	Day         int
	Summary     state.Summary
	Days        []state.DayStats
	Submissions []state.Submission
	Now         time.Time
}

func (t Theme) RenderHistory(v HistoryView) string {
	now := v.Now
	if now.IsZero() {
		now = time.Now()
	}
	var blocks []string

	title := fmt.Sprintf("Advent of Code %d", v.Year)
	if v.Day > 0 {
		title = fmt.Sprintf("%s, day %d", title, v.Day)
	}
	summary := fmt.Sprintf("%s\nruns %d  examples passed %d  submissions %d  correct %d",
		t.Header.Render(title),
		v.Summary.Runs,
		v.Summary.PartsPassed,
		v.Summary.Submissions,
		v.Summary.Correct,
	)
	blocks = append(blocks, t.Panel.Render(summary))

	if v.Day == 0 && len(v.Days) > 0 {
		rows := make([]string, 0, len(v.Days))
		for _, d := range v.Days {
			stars := strings.Repeat("*", d.Stars) + strings.Repeat(".", max(0, 2-d.Stars))
			rows = append(rows, fmt.Sprintf("%s %s  %d runs, %d submissions, last %s",
				cell(fmt.Sprintf("Day %d", d.Day), 7),
				t.Pending.Render(stars),
				d.Runs,
				d.Submissions,
				humanize.RelTime(d.LastRunTS, now, "ago", "from now"),
			))
		}
		blocks = append(blocks, strings.Join(rows, "\n"))
	}

	if len(v.Submissions) == 0 {
		blocks = append(blocks, t.Muted.Render("No submissions recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
	}
	rows := make([]string, 0, len(v.Submissions))
	for _, s := range v.Submissions {
		verdict := s.Verdict
		if s.Cooldown != "" {
			verdict = fmt.Sprintf("%s (%s)", verdict, s.Cooldown)
		}
		rows = append(rows, fmt.Sprintf("%s %s %s %s",
			cell(fmt.Sprintf("%d.%d", s.Day, s.Part), 6),
			cell(s.Answer, 16),
			t.verdictStyle(s.Verdict).Render(cell(verdict, 28)),
			t.Muted.Render(humanize.RelTime(s.SubmittedTS, now, "ago", "from now")),
		))
	}
	blocks = append(blocks, strings.Join(rows, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

func (t Theme) verdictStyle(verdict string) lipgloss.Style {
	switch verdict {
	case "correct":
		return t.Pass
	case "incorrect":
		return t.Fail
	case "too_soon":
		return t.Pending
	case "unrecognized":
		return t.Info
	default:
		return t.Muted
	}
}

func cell(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
