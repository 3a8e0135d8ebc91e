package assets

import (
	"fmt"
	"path/filepath"
	"strconv"
)

type Kind int

const (
	RawInput Kind = iota
	TestFixture
	ExpectedTestAnswer
	Statement
)

func (k Kind) String() string {
	switch k {
	case RawInput:
		return "input"
	case TestFixture:
		return "test fixture"
	case ExpectedTestAnswer:
		return "expected test answer"
	case Statement:
		return "statement"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Ref names one asset. Part is ignored for day-level kinds.
type Ref struct {
	Day  int
	Kind Kind
	Part int
}

func Input(day int) Ref { return Ref{Day: day, Kind: RawInput} }
func Fixture(day, part int) Ref { return Ref{Day: day, Kind: TestFixture, Part: part} }
func Answer(day, part int) Ref { return Ref{Day: day, Kind: ExpectedTestAnswer, Part: part} }
func StatementOf(day int) Ref { return Ref{Day: day, Kind: Statement} }

func (r Ref) String() string {
	switch r.Kind {
	case TestFixture, ExpectedTestAnswer:
		return fmt.Sprintf("day %d part %d %s", r.Day, r.Part, r.Kind)
	default:
		return fmt.Sprintf("day %d %s", r.Day, r.Kind)
	}
}

// Layout maps refs to files under Root/<day>/.
type Layout struct {
	Root string
}

func (l Layout) DayDir(day int) string {
	return filepath.Join(l.Root, strconv.Itoa(day))
}

func (l Layout) Path(r Ref) string {
	var name string
	switch r.Kind {
	case RawInput:
		name = "input.txt"
	case TestFixture:
		name = fmt.Sprintf("test_%d.txt", r.Part)
	case ExpectedTestAnswer:
		name = fmt.Sprintf("answer_%d.txt", r.Part)
	case Statement:
		name = "puzzle.md"
	default:
		name = fmt.Sprintf("asset_%d.txt", int(r.Kind))
	}
	return filepath.Join(l.DayDir(r.Day), name)
}
