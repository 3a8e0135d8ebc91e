package day05

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"adventctl/internal/runner"
)

type span struct {
	lo, hi int
}

type inventory struct {
	fresh       []span
	ingredients []int
}

// Solver checks ingredient IDs against the merged fresh ranges.
var Solver = runner.Funcs[inventory]{
	Parse: parse,
	One: func(inv inventory) (runner.Answer, error) {
		count := 0
		for _, id := range inv.ingredients {
			if inv.isFresh(id) {
				count++
			}
		}
		return count, nil
	},
	Two: func(inv inventory) (runner.Answer, error) {
		total := 0
		for _, s := range inv.fresh {
			total += s.hi - s.lo + 1
		}
		return total, nil
	},
}

// parse reads "lo-hi" ranges, a blank line, then one ingredient ID per line.
func parse(lines []string) (inventory, error) {
	var (
		inv    inventory
		ranges []span
	)
	inRanges := true
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			inRanges = false
			continue
		}
		if inRanges {
			lo, hi, ok := strings.Cut(line, "-")
			if !ok {
				return inventory{}, fmt.Errorf("line %d: expected a range", i+1)
			}
			a, errA := strconv.Atoi(lo)
			b, errB := strconv.Atoi(hi)
			if errA != nil || errB != nil {
				return inventory{}, fmt.Errorf("line %d: bad range %q", i+1, line)
			}
			ranges = append(ranges, span{a, b})
			continue
		}
		id, err := strconv.Atoi(line)
		if err != nil {
			return inventory{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		inv.ingredients = append(inv.ingredients, id)
	}
	inv.fresh = merge(ranges)
	return inv, nil
}

// merge sorts spans and joins the ones that overlap or touch.
func merge(spans []span) []span {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].lo != spans[j].lo {
			return spans[i].lo < spans[j].lo
		}
		return spans[i].hi < spans[j].hi
	})
	var out []span
	for _, s := range spans {
		if n := len(out); n > 0 && out[n-1].hi >= s.lo-1 {
			out[n-1].hi = max(out[n-1].hi, s.hi)
			continue
		}
		out = append(out, s)
	}
	return out
}

func (inv inventory) isFresh(id int) bool {
	i := sort.Search(len(inv.fresh), func(i int) bool { return inv.fresh[i].hi >= id })
	return i < len(inv.fresh) && inv.fresh[i].lo <= id
}
