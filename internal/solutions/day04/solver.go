package day04

import (
	"strings"

	"adventctl/internal/runner"
)

type point struct {
	row, col int
}

// Solver counts paper rolls a forklift can reach: rolls with fewer than
// four rolls among their eight neighbours.
var Solver = runner.Funcs[map[point]bool]{
	Parse: parse,
	One: func(rolls map[point]bool) (runner.Answer, error) {
		return len(accessible(rolls)), nil
	},
	Two: func(rolls map[point]bool) (runner.Answer, error) {
		return removeAll(rolls), nil
	},
	Want1: 13,
	Want2: 43,
}

func parse(lines []string) (map[point]bool, error) {
	rolls := map[point]bool{}
	for r, line := range lines {
		for c, ch := range strings.TrimSpace(line) {
			if ch == '@' {
				rolls[point{r, c}] = true
			}
		}
	}
	return rolls, nil
}

func accessible(rolls map[point]bool) []point {
	var out []point
	for p := range rolls {
		neighbours := 0
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if (dr != 0 || dc != 0) && rolls[point{p.row + dr, p.col + dc}] {
					neighbours++
				}
			}
		}
		if neighbours < 4 {
			out = append(out, p)
		}
	}
	return out
}

// removeAll repeatedly clears every accessible roll and returns how many went.
// It works on a copy so the parsed grid can be reused.
func removeAll(rolls map[point]bool) int {
	grid := make(map[point]bool, len(rolls))
	for p := range rolls {
		grid[p] = true
	}
	total := 0
	for {
		gone := accessible(grid)
		if len(gone) == 0 {
			return total
		}
		for _, p := range gone {
			delete(grid, p)
		}
		total += len(gone)
	}
}
