package state

import (
	"context"
	"time"
)

// Store is the run history. It is write-mostly and never consulted when
// deciding whether to submit.
type Store interface {
	EnsureSchema(ctx context.Context) error
	StartRun(ctx context.Context, run Run) (int64, error)
	RecordPartResult(ctx context.Context, res PartResult) error
	RecordSubmission(ctx context.Context, sub Submission) error
	ListSubmissions(ctx context.Context, year, day int) ([]Submission, error)
	ListDayStats(ctx context.Context, year int) ([]DayStats, error)
	GetSummary(ctx context.Context, year int) (Summary, error)
	GetLastRun(ctx context.Context) (*Run, error)
	Close() error
}

type Run struct {
	ID        int64
	SessionID string
	Year      int
	Day       int
	Submit    bool
	StartTS   time.Time
}

type PartResult struct {
	RunID      int64
	Part       int
	Stage      string
	Answer     string
	Detail     string
	RecordedTS time.Time
}

type Submission struct {
	RunID       int64
	Year        int
	Day         int
	Part        int
	Answer      string
	Verdict     string
	Cooldown    string
	SubmittedTS time.Time
}

type DayStats struct {
	Day         int
	Runs        int
	Submissions int
	Stars       int
	LastRunTS   time.Time
}

type Summary struct {
	Runs        int
	PartsPassed int
	Submissions int
	Correct     int
}
