package day03

import (
	"fmt"
	"strconv"
	"strings"

	"adventctl/internal/runner"
)

// Solver picks the largest joltage each battery bank can produce.
var Solver = runner.Funcs[[]string]{
	Parse: parse,
	One: func(banks []string) (runner.Answer, error) {
		return totalJoltage(banks, 2)
	},
	Two: func(banks []string) (runner.Answer, error) {
		return totalJoltage(banks, 12)
	},
	Want1: 357,
	Want2: 3121910778619,
}

func parse(lines []string) ([]string, error) {
	banks := make([]string, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Trim(line, "0123456789") != "" {
			return nil, fmt.Errorf("line %d: not a digit string", i+1)
		}
		banks = append(banks, line)
	}
	return banks, nil
}

func totalJoltage(banks []string, keep int) (int, error) {
	total := 0
	for _, bank := range banks {
		n, err := strconv.Atoi(largestKeeping(bank, keep))
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// largestKeeping drops digits, keeping order, until keep remain and the
// resulting number is as large as possible.
func largestKeeping(s string, keep int) string {
	drop := len(s) - keep
	if drop <= 0 {
		return s
	}
	stack := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for drop > 0 && len(stack) > 0 && stack[len(stack)-1] < s[i] {
			stack = stack[:len(stack)-1]
			drop--
		}
		stack = append(stack, s[i])
	}
	return string(stack[:keep])
}
