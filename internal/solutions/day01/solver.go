package day01

import (
	"fmt"
	"strconv"
	"strings"

	"adventctl/internal/runner"
)

// Solver turns a dial that starts at 50 and counts how often it points at 0.
var Solver = runner.Funcs[[]int]{
	Parse: parse,
	One: func(steps []int) (runner.Answer, error) {
		return restsOnZero(steps), nil
	},
	Two: func(steps []int) (runner.Answer, error) {
		return passesZero(steps), nil
	},
	Want1: 3,
	Want2: 6,
}

// parse reads rotations like "L68" or "R48" as signed step counts.
func parse(lines []string) ([]int, error) {
	steps := make([]int, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		switch line[0] {
		case 'R':
		case 'L':
			n = -n
		default:
			return nil, fmt.Errorf("line %d: unknown direction %q", i+1, line[0])
		}
		steps = append(steps, n)
	}
	return steps, nil
}

func restsOnZero(steps []int) int {
	pos, zeros := 50, 0
	for _, s := range steps {
		pos += s
		if pos%100 == 0 {
			zeros++
		}
	}
	return zeros
}

// passesZero counts every click that lands on 0, not just where a rotation ends.
func passesZero(steps []int) int {
	pos, zeros := 50, 0
	for _, s := range steps {
		dir := 1
		if s < 0 {
			dir, s = -1, -s
		}
		for ; s > 0; s-- {
			pos += dir
			if pos%100 == 0 {
				zeros++
			}
		}
	}
	return zeros
}
