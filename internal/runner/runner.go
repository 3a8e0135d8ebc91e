package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"adventctl/internal/assets"
	"adventctl/internal/remote"
	"adventctl/internal/state"
	"adventctl/internal/telemetry"

	"github.com/google/uuid"
)

const DefaultMaxDays = 25

type Options struct {
	Year      int
	MaxDays   int
	Submit    bool
	SessionID string

	Remote   Remote
	Assets   Assets
	Reporter Reporter
	Recorder Recorder
	Logger   *telemetry.Logger
	Now      func() time.Time

	// Missing describes a day without a registered solver.
	Missing func(day int) string
}

// Runner drives one puzzle at a time through validate, solve and submit.
type Runner struct {
	opts Options
}

func New(opts Options) *Runner {
	if opts.MaxDays <= 0 {
		opts.MaxDays = DefaultMaxDays
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	if opts.Reporter == nil {
		opts.Reporter = ReporterFunc(func(Event) {})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Missing == nil {
		opts.Missing = func(day int) string {
			return fmt.Sprintf("Day %d has not been created yet.", day)
		}
	}
	return &Runner{opts: opts}
}

func (r *Runner) SessionID() string { return r.opts.SessionID }

func (r *Runner) MaxDays() int { return r.opts.MaxDays }

// Run validates and solves both parts of a day. Expected failures (a wrong
// or missing example answer) are reported and end the puzzle with a nil
// error. Missing assets, unimplemented parts and service errors are returned.
func (r *Runner) Run(ctx context.Context, day int, solver Solver) error {
	if day < 1 || day > r.opts.MaxDays {
		return fmt.Errorf("day %d out of range 1..%d", day, r.opts.MaxDays)
	}
	if solver == nil {
		return fmt.Errorf("day %d has no solver", day)
	}
	r.opts.Remote.Forget(day)
	runID := r.startRun(ctx, day)
	r.opts.Logger.Info("run.start", map[string]any{
		"session": r.opts.SessionID,
		"year":    r.opts.Year,
		"day":     day,
		"submit":  r.opts.Submit,
	})

	solved := 0
	if r.opts.Submit {
		lvl, err := r.opts.Remote.CurrentSolvedLevel(ctx, day)
		if err != nil {
			return fmt.Errorf("check solved level for day %d: %w", day, err)
		}
		solved = lvl
	}

	for _, part := range []int{1, 2} {
		ok, err := r.runTest(ctx, runID, day, part, solver)
		if err != nil {
			return fmt.Errorf("failed when running tests for part %d: %w", part, err)
		}
		if !ok {
			return nil
		}

		answer, err := r.runReal(ctx, day, part, solver)
		if err != nil {
			return fmt.Errorf("could not run part %d: %w", part, err)
		}
		r.emit(ctx, runID, Event{Day: day, Part: part, Stage: StageSolved, Answer: answer})

		if !r.opts.Submit {
			continue
		}
		if solved >= part {
			r.emit(ctx, runID, Event{Day: day, Part: part, Stage: StageSubmitSkipped, Answer: answer})
			continue
		}
		// The service only takes the next unsolved level.
		if part > solved+1 {
			r.emit(ctx, runID, Event{Day: day, Part: part, Stage: StageSubmitBlocked, Answer: answer,
				Detail: fmt.Sprintf("Part %d is not solved yet, not submitting part %d", part-1, part)})
			continue
		}
		out, err := r.opts.Remote.Submit(ctx, day, part, answer)
		if err != nil {
			return fmt.Errorf("could not submit solution for part %d: %w", part, err)
		}
		r.recordSubmission(ctx, runID, day, part, answer, out)
		r.emit(ctx, runID, Event{Day: day, Part: part, Stage: StageSubmitted, Answer: answer, Outcome: out, Detail: out.Message()})
		if out.Verdict == remote.Correct || out.Verdict == remote.AlreadySolved {
			solved = part
		}
	}
	return nil
}

// RunAll runs every day from 1 to MaxDays. Days without a solver are
// reported and skipped; a failing day is reported and the loop moves on.
// Cancellation and a missing credential stop the loop.
func (r *Runner) RunAll(ctx context.Context, solvers Lookup) error {
	var errs []error
	for day := 1; day <= r.opts.MaxDays; day++ {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		r.opts.Reporter.Report(Event{Day: day, Stage: StageDayStarted})
		solver, ok := solvers.Lookup(day)
		if !ok {
			r.opts.Reporter.Report(Event{Day: day, Stage: StageMissing, Detail: r.opts.Missing(day)})
			continue
		}
		if err := r.Run(ctx, day, solver); err != nil {
			r.opts.Logger.Error("run.failed", map[string]any{"day": day, "error": err.Error()})
			r.opts.Reporter.Report(Event{Day: day, Stage: StageFailed, Detail: err.Error()})
			errs = append(errs, fmt.Errorf("day %d: %w", day, err))
			if errors.Is(err, remote.ErrAuthMissing) || ctx.Err() != nil {
				return errors.Join(errs...)
			}
		}
	}
	return errors.Join(errs...)
}

// runTest reports whether the part's example passed. It loads the expected
// answer first so an unpublished answer never reaches the solver.
func (r *Runner) runTest(ctx context.Context, runID int64, day, part int, solver Solver) (bool, error) {
	expected, err := r.expectedAnswer(ctx, day, part, solver)
	if err != nil {
		return false, err
	}
	if expected == "" {
		r.emit(ctx, runID, Event{Day: day, Part: part, Stage: StageTestFailed, Detail: "Expected solution cannot be empty"})
		return false, nil
	}
	fixture, err := r.opts.Assets.Load(ctx, assets.Fixture(day, part))
	if err != nil {
		return false, err
	}

	got, err := Solve(solver, part, fixture)
	if errors.Is(err, ErrNotImplemented) {
		r.emit(ctx, runID, Event{Day: day, Part: part, Stage: StageNotImplemented, Detail: fmt.Sprintf("Solution function for part %d is not implemented", part)})
		return false, err
	}
	if err != nil {
		return false, err
	}
	if got == nil {
		r.emit(ctx, runID, Event{Day: day, Part: part, Stage: StageTestFailed, Detail: "Answer returned nil, is the function implemented?"})
		return false, nil
	}
	answer := FormatAnswer(got)
	if answer != expected {
		r.emit(ctx, runID, Event{Day: day, Part: part, Stage: StageTestFailed, Answer: answer, Detail: fmt.Sprintf("Expected %s, got %s", expected, answer)})
		return false, nil
	}
	r.emit(ctx, runID, Event{Day: day, Part: part, Stage: StageTestPassed, Answer: answer})
	return true, nil
}

func (r *Runner) expectedAnswer(ctx context.Context, day, part int, solver Solver) (string, error) {
	if pinned, ok := solver.(ExampleAnswerer); ok {
		if want, ok := pinned.ExampleAnswer(part); ok {
			return FormatAnswer(want), nil
		}
	}
	lines, err := r.opts.Assets.Load(ctx, assets.Answer(day, part))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func (r *Runner) runReal(ctx context.Context, day, part int, solver Solver) (string, error) {
	input, err := r.opts.Assets.Load(ctx, assets.Input(day))
	if err != nil {
		return "", err
	}
	got, err := Solve(solver, part, input)
	if err != nil {
		return "", err
	}
	if got == nil {
		return "", errors.New("answer returned nil")
	}
	return FormatAnswer(got), nil
}

func (r *Runner) emit(ctx context.Context, runID int64, ev Event) {
	r.opts.Reporter.Report(ev)
	r.opts.Logger.Debug("run.part", map[string]any{
		"day":    ev.Day,
		"part":   ev.Part,
		"stage":  string(ev.Stage),
		"answer": ev.Answer,
	})
	if r.opts.Recorder == nil || runID == 0 {
		return
	}
	err := r.opts.Recorder.RecordPartResult(ctx, state.PartResult{
		RunID:      runID,
		Part:       ev.Part,
		Stage:      string(ev.Stage),
		Answer:     ev.Answer,
		Detail:     ev.Detail,
		RecordedTS: r.opts.Now(),
	})
	if err != nil {
		r.opts.Logger.Warn("history.part_failed", map[string]any{"day": ev.Day, "part": ev.Part, "error": err.Error()})
	}
}

func (r *Runner) startRun(ctx context.Context, day int) int64 {
	if r.opts.Recorder == nil {
		return 0
	}
	id, err := r.opts.Recorder.StartRun(ctx, state.Run{
		SessionID: r.opts.SessionID,
		Year:      r.opts.Year,
		Day:       day,
		Submit:    r.opts.Submit,
		StartTS:   r.opts.Now(),
	})
	if err != nil {
		r.opts.Logger.Warn("history.run_failed", map[string]any{"day": day, "error": err.Error()})
		return 0
	}
	return id
}

func (r *Runner) recordSubmission(ctx context.Context, runID int64, day, part int, answer string, out remote.Outcome) {
	r.opts.Logger.Info("run.submitted", map[string]any{
		"day":      day,
		"part":     part,
		"verdict":  out.Verdict.String(),
		"cooldown": out.Cooldown,
	})
	if r.opts.Recorder == nil {
		return
	}
	err := r.opts.Recorder.RecordSubmission(ctx, state.Submission{
		RunID:       runID,
		Year:        r.opts.Year,
		Day:         day,
		Part:        part,
		Answer:      answer,
		Verdict:     out.Verdict.String(),
		Cooldown:    out.Cooldown,
		SubmittedTS: r.opts.Now(),
	})
	if err != nil {
		r.opts.Logger.Warn("history.submission_failed", map[string]any{"day": day, "part": part, "error": err.Error()})
	}
}
