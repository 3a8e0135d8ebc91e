package day05

import (
	"testing"

	"adventctl/internal/runner"

	"github.com/google/go-cmp/cmp"
)

var example = []string{"3-5", "10-14", "16-20", "12-18", "", "1", "5", "8", "11", "17", "32"}

func TestExample(t *testing.T) {
	for part, want := range map[int]string{1: "3", 2: "14"} {
		got, err := runner.Solve(Solver, part, example)
		if err != nil {
			t.Fatalf("part %d: %v", part, err)
		}
		if runner.FormatAnswer(got) != want {
			t.Fatalf("part %d: expected %s, got %v", part, want, got)
		}
	}
}

func TestMergeJoinsTouchingSpans(t *testing.T) {
	got := merge([]span{{10, 14}, {1, 2}, {3, 5}, {12, 20}, {30, 30}})
	want := []span{{1, 5}, {10, 20}, {30, 30}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(span{})); diff != "" {
		t.Fatalf("unexpected merge (-want +got):\n%s", diff)
	}
}
