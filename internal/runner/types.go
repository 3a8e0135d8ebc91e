package runner

import "adventctl/internal/remote"

type Stage string

const (
	StageDayStarted     Stage = "day_started"
	StageMissing        Stage = "missing"
	StageTestFailed     Stage = "test_failed"
	StageTestPassed     Stage = "test_passed"
	StageNotImplemented Stage = "not_implemented"
	StageSolved         Stage = "solved"
	StageSubmitted      Stage = "submitted"
	StageSubmitSkipped  Stage = "submit_skipped"
	StageSubmitBlocked  Stage = "submit_blocked"
	StageFailed         Stage = "failed"
)

// Event is one reported transition. Part is zero for day-level events.
type Event struct {
	Day     int
	Part    int
	Stage   Stage
	Detail  string
	Answer  string
	Outcome remote.Outcome
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ev Event)

func (f ReporterFunc) Report(ev Event) { f(ev) }
