package day02

import (
	"fmt"
	"strconv"
	"strings"

	"adventctl/internal/runner"
)

type idRange struct {
	lo, hi int
}

// Solver sums product IDs made of a repeated digit sequence.
var Solver = runner.Funcs[[]idRange]{
	Parse: parse,
	One: func(ranges []idRange) (runner.Answer, error) {
		return sumInvalid(ranges, repeatedTwice), nil
	},
	Two: func(ranges []idRange) (runner.Answer, error) {
		return sumInvalid(ranges, repeatedAny), nil
	},
	Want1: 1227775554,
	Want2: 4174379265,
}

// parse reads "11-22,95-115,..." which may be wrapped over several lines.
func parse(lines []string) ([]idRange, error) {
	joined := strings.Join(lines, "")
	var out []idRange
	for _, field := range strings.Split(joined, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		lo, hi, ok := strings.Cut(field, "-")
		if !ok {
			return nil, fmt.Errorf("range %q has no dash", field)
		}
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", field, err)
		}
		b, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", field, err)
		}
		out = append(out, idRange{lo: a, hi: b})
	}
	return out, nil
}

func sumInvalid(ranges []idRange, invalid func(string) bool) int {
	total := 0
	for _, r := range ranges {
		for id := r.lo; id <= r.hi; id++ {
			if invalid(strconv.Itoa(id)) {
				total += id
			}
		}
	}
	return total
}

func repeatedTwice(s string) bool {
	n := len(s)
	return n%2 == 0 && s[:n/2] == s[n/2:]
}

func repeatedAny(s string) bool {
	n := len(s)
	for size := 1; size <= n/2; size++ {
		if n%size == 0 && strings.Repeat(s[:size], n/size) == s {
			return true
		}
	}
	return false
}
