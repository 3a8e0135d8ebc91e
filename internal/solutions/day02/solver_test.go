package day02

import (
	"testing"

	"adventctl/internal/runner"
)

var example = []string{
	"11-22,95-115,998-1012,1188511880-1188511890,222220-222224,",
	"1698522-1698528,446443-446449,38593856-38593862,565653-565659,",
	"824824821-824824827,2121212118-2121212124",
}

func TestExample(t *testing.T) {
	for part, want := range map[int]string{1: "1227775554", 2: "4174379265"} {
		got, err := runner.Solve(Solver, part, example)
		if err != nil {
			t.Fatalf("part %d: %v", part, err)
		}
		if runner.FormatAnswer(got) != want {
			t.Fatalf("part %d: expected %s, got %v", part, want, got)
		}
	}
}

func TestRepeatedPatterns(t *testing.T) {
	cases := []struct {
		id    string
		twice bool
		any   bool
	}{
		{"11", true, true},
		{"111", false, true},
		{"123123", true, true},
		{"121212", false, true},
		{"1", false, false},
		{"1234", false, false},
	}
	for _, tc := range cases {
		if got := repeatedTwice(tc.id); got != tc.twice {
			t.Fatalf("repeatedTwice(%s) = %v", tc.id, got)
		}
		if got := repeatedAny(tc.id); got != tc.any {
			t.Fatalf("repeatedAny(%s) = %v", tc.id, got)
		}
	}
}

func TestParseRejectsMalformedRange(t *testing.T) {
	if _, err := parse([]string{"11-22,95"}); err == nil {
		t.Fatalf("expected an error")
	}
}
