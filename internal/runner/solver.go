package runner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotImplemented is returned by a solver part that has no code yet.
var ErrNotImplemented = errors.New("not implemented")

// Answer is whatever a part produces, usually an int or a string. Nil means
// the part produced nothing.
type Answer any

// Solver is one day's puzzle logic. ProcessData is called once per data set
// (example, then real input) and its result is handed to the part.
// Implementations must be free of side effects.
type Solver interface {
	ProcessData(lines []string) (any, error)
	Part1(data any) (Answer, error)
	Part2(data any) (Answer, error)
}

// ExampleAnswerer is implemented by solvers that pin their example answers
// instead of using the ones published on the puzzle page.
type ExampleAnswerer interface {
	ExampleAnswer(part int) (Answer, bool)
}

// FormatAnswer renders an answer the way it is cached and submitted.
func FormatAnswer(a Answer) string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(a))
}

// Funcs adapts plain functions to Solver. A nil Parse passes the lines
// through (T must then be []string); a nil part reports ErrNotImplemented.
// Want1 and Want2 pin the example answers when set.
type Funcs[T any] struct {
	Parse func(lines []string) (T, error)
	One   func(data T) (Answer, error)
	Two   func(data T) (Answer, error)
	Want1 Answer
	Want2 Answer
}

func (f Funcs[T]) ProcessData(lines []string) (any, error) {
	if f.Parse == nil {
		v, ok := any(lines).(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("solver has no Parse and cannot use lines as %T", zero)
		}
		return v, nil
	}
	return f.Parse(lines)
}

func (f Funcs[T]) ExampleAnswer(part int) (Answer, bool) {
	var want Answer
	switch part {
	case 1:
		want = f.Want1
	case 2:
		want = f.Want2
	}
	return want, want != nil
}

func (f Funcs[T]) Part1(data any) (Answer, error) { return call(f.One, data) }

func (f Funcs[T]) Part2(data any) (Answer, error) { return call(f.Two, data) }

func call[T any](fn func(T) (Answer, error), data any) (Answer, error) {
	if fn == nil {
		return nil, ErrNotImplemented
	}
	v, ok := data.(T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("solver got %T, want %T", data, zero)
	}
	return fn(v)
}

// Solve parses lines and runs one part. A panicking solver is turned into
// an error so a bad puzzle never takes the whole process down.
func Solve(s Solver, part int, lines []string) (ans Answer, err error) {
	defer func() {
		if r := recover(); r != nil {
			ans, err = nil, fmt.Errorf("solver panicked: %v", r)
		}
	}()
	data, err := s.ProcessData(lines)
	if err != nil {
		return nil, fmt.Errorf("process data: %w", err)
	}
	switch part {
	case 1:
		return s.Part1(data)
	case 2:
		return s.Part2(data)
	default:
		return nil, fmt.Errorf("unknown part %d", part)
	}
}

// Registry maps days to solvers.
type Registry struct {
	solvers map[int]Solver
}

func NewRegistry() *Registry {
	return &Registry{solvers: map[int]Solver{}}
}

func (r *Registry) Register(day int, s Solver) {
	r.solvers[day] = s
}

func (r *Registry) Lookup(day int) (Solver, bool) {
	s, ok := r.solvers[day]
	return s, ok
}

func (r *Registry) Days() []int {
	days := make([]int, 0, len(r.solvers))
	for d := range r.solvers {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
