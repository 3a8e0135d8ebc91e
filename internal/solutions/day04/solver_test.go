package day04

import (
	"testing"

	"adventctl/internal/runner"
)

func TestSmallGrids(t *testing.T) {
	cases := []struct {
		grid     []string
		one, two string
	}{
		{[]string{"@@@", "@@@", "@@@"}, "4", "9"},
		{[]string{".@@.", "@@@@", ".@@.", "@..@"}, "4", "10"},
		{[]string{"...", ".@.", "..."}, "1", "1"},
	}
	for _, tc := range cases {
		for part, want := range map[int]string{1: tc.one, 2: tc.two} {
			got, err := runner.Solve(Solver, part, tc.grid)
			if err != nil {
				t.Fatalf("part %d: %v", part, err)
			}
			if runner.FormatAnswer(got) != want {
				t.Fatalf("%v part %d: expected %s, got %v", tc.grid, part, want, got)
			}
		}
	}
}

func TestRemoveAllLeavesInputIntact(t *testing.T) {
	rolls, _ := parse([]string{"@@@", "@@@", "@@@"})
	removeAll(rolls)
	if len(rolls) != 9 {
		t.Fatalf("expected the parsed grid to be untouched, got %d rolls", len(rolls))
	}
}
