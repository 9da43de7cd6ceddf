package catmatch

import "sort"

// Swap is a candidate move between two adjacent cells.
type Swap struct {
	A, B    Position
	Matched int // Cells that would be cleared in the first pass
}

// FindSwaps tries every right and down neighbour exchange and returns those
// that create at least one match, best first. The grid is left untouched.
func FindSwaps(g *Grid, minLen int) []Swap {
	var swaps []Swap
	trySwaps(g, minLen, func(a, b Position, groups []MatchGroup) bool {
		swaps = append(swaps, Swap{A: a, B: b, Matched: len(unionPositions(g.size, groups))})
		return true
	})

	sort.SliceStable(swaps, func(i, j int) bool {
		return swaps[i].Matched > swaps[j].Matched
	})
	return swaps
}

// HasSwap reports whether any productive swap exists. It stops at the first.
func HasSwap(g *Grid, minLen int) bool {
	found := false
	trySwaps(g, minLen, func(Position, Position, []MatchGroup) bool {
		found = true
		return false
	})
	return found
}

// trySwaps exchanges every right and down neighbour pair on a clone, in scan
// order, and calls fn with the groups of each productive one until fn
// returns false.
func trySwaps(g *Grid, minLen int, fn func(a, b Position, groups []MatchGroup) bool) {
	trial := g.Clone()
	swap := func(a, b Position) {
		trial.cells[a.Row][a.Col], trial.cells[b.Row][b.Col] = trial.cells[b.Row][b.Col], trial.cells[a.Row][a.Col]
	}
	try := func(a, b Position) bool {
		swap(a, b)
		groups := FindMatches(trial, minLen)
		swap(a, b)
		return len(groups) == 0 || fn(a, b, groups)
	}

	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if c+1 < g.size && !try(Position{r, c}, Position{r, c + 1}) {
				return
			}
			if r+1 < g.size && !try(Position{r, c}, Position{r + 1, c}) {
				return
			}
		}
	}
}
