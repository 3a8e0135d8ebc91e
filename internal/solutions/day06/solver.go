package day06

import (
	"fmt"
	"strconv"
	"strings"

	"adventctl/internal/runner"
)

// problem is one column block of the worksheet, rows kept as printed.
type problem struct {
	rows []string
	op   byte
}

// Solver evaluates a worksheet of vertically written arithmetic problems.
var Solver = runner.Funcs[[]problem]{
	Parse: parse,
	One: func(ps []problem) (runner.Answer, error) {
		return grandTotal(ps, rowNumbers)
	},
	Two: func(ps []problem) (runner.Answer, error) {
		return grandTotal(ps, columnNumbers)
	},
}

// parse splits the worksheet on columns that are blank in every row. The
// last non-empty line carries the operators.
func parse(lines []string) ([]problem, error) {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("worksheet needs numbers and operators, got %d lines", len(lines))
	}
	ops := strings.Fields(lines[len(lines)-1])
	rows := pad(lines[:len(lines)-1])
	width := len(rows[0])

	var blocks [][2]int
	start := 0
	for col := 0; col <= width; col++ {
		if col < width && !blankColumn(rows, col) {
			continue
		}
		if col > start {
			blocks = append(blocks, [2]int{start, col})
		}
		start = col + 1
	}
	if len(blocks) != len(ops) {
		return nil, fmt.Errorf("found %d problems but %d operators", len(blocks), len(ops))
	}

	out := make([]problem, 0, len(blocks))
	for i, b := range blocks {
		if ops[i] != "+" && ops[i] != "*" {
			return nil, fmt.Errorf("unknown operator %q", ops[i])
		}
		p := problem{op: ops[i][0]}
		for _, row := range rows {
			p.rows = append(p.rows, row[b[0]:b[1]])
		}
		out = append(out, p)
	}
	return out, nil
}

func pad(lines []string) []string {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + strings.Repeat(" ", width-len(l))
	}
	return out
}

func blankColumn(rows []string, col int) bool {
	for _, r := range rows {
		if r[col] != ' ' {
			return false
		}
	}
	return true
}

// rowNumbers reads each row of the block as one number.
func rowNumbers(p problem) ([]int, error) {
	var out []int
	for _, r := range p.rows {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		n, err := strconv.Atoi(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// columnNumbers reads each column top to bottom as one number.
func columnNumbers(p problem) ([]int, error) {
	var out []int
	for col := 0; col < len(p.rows[0]); col++ {
		var digits strings.Builder
		for _, r := range p.rows {
			if r[col] != ' ' {
				digits.WriteByte(r[col])
			}
		}
		if digits.Len() == 0 {
			continue
		}
		n, err := strconv.Atoi(digits.String())
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func grandTotal(ps []problem, numbers func(problem) ([]int, error)) (int, error) {
	total := 0
	for _, p := range ps {
		ns, err := numbers(p)
		if err != nil {
			return 0, err
		}
		acc := 0
		if p.op == '*' {
			acc = 1
		}
		for _, n := range ns {
			if p.op == '*' {
				acc *= n
			} else {
				acc += n
			}
		}
		total += acc
	}
	return total, nil
}
