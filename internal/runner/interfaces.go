package runner

import (
	"context"

	"adventctl/internal/assets"
	"adventctl/internal/remote"
	"adventctl/internal/state"
)

// Remote is the part of the puzzle service the runner talks to directly.
type Remote interface {
	CurrentSolvedLevel(ctx context.Context, day int) (int, error)
	Submit(ctx context.Context, day, part int, answer string) (remote.Outcome, error)
	Forget(day int)
}

type Assets interface {
	Load(ctx context.Context, ref assets.Ref) ([]string, error)
}

// Reporter receives every user-visible transition.
type Reporter interface {
	Report(ev Event)
}

// Recorder persists run history. Failures are logged, never fatal.
type Recorder interface {
	StartRun(ctx context.Context, run state.Run) (int64, error)
	RecordPartResult(ctx context.Context, res state.PartResult) error
	RecordSubmission(ctx context.Context, sub state.Submission) error
}

// Lookup resolves the solver for a day.
type Lookup interface {
	Lookup(day int) (Solver, bool)
}

var (
	_ Remote   = (*remote.Client)(nil)
	_ Assets   = (*assets.FSCache)(nil)
	_ Recorder = (*state.SQLiteStore)(nil)
	_ Lookup   = (*Registry)(nil)
)
