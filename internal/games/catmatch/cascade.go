package catmatch

import "github.com/vovakirdan/catmatch/internal/config"

// Rule defaults.
const (
	DefaultMatchMin         = 3
	DefaultPointsPerGroup   = 10
	DefaultMaxCascadePasses = 256

	// maxBoardAttempts bounds the at-start re-randomization loop.
	maxBoardAttempts = config.BoardAttempts
)

// Rules controls match detection and scoring.
type Rules struct {
	MatchMin           int  // Shortest run that counts as a match
	PointsPerGroup     int  // Score per matched group, not per cell
	MaxCascadePasses   int  // Passes after which a cascade is treated as corrupt
	RevertUnproductive bool // Swap back moves that clear nothing
}

// DefaultRules returns the classic rules.
func DefaultRules() Rules {
	return Rules{
		MatchMin:         DefaultMatchMin,
		PointsPerGroup:   DefaultPointsPerGroup,
		MaxCascadePasses: DefaultMaxCascadePasses,
	}
}

// ResolutionStep describes one clear/compact/refill pass of a cascade.
type ResolutionStep struct {
	Pass       int          // 1-based pass number within the cascade
	Groups     []MatchGroup // Groups detected at the start of the pass
	Cleared    []Position   // Unique cleared cells in row-major order
	ScoreDelta int          // len(Groups) * PointsPerGroup
}

// TotalScore sums the score deltas of steps.
func TotalScore(steps []ResolutionStep) int {
	total := 0
	for _, s := range steps {
		total += s.ScoreDelta
	}
	return total
}

// ResolveCascade clears matches, applies gravity and refills until the grid
// is stable, returning one step per pass. A stable grid yields no steps.
func ResolveCascade(g *Grid, rules Rules) []ResolutionStep {
	var steps []ResolutionStep

	for pass := 1; ; pass++ {
		groups := FindMatches(g, rules.MatchMin)
		if len(groups) == 0 {
			return steps
		}
		if pass > rules.MaxCascadePasses {
			panic(invariantf("cascade exceeded %d passes", rules.MaxCascadePasses))
		}

		cleared := unionPositions(g.size, groups)
		g.Clear(cleared)
		g.Compact()
		g.Refill()

		steps = append(steps, ResolutionStep{
			Pass:       pass,
			Groups:     groups,
			Cleared:    cleared,
			ScoreDelta: len(groups) * rules.PointsPerGroup,
		})
	}
}

// unionPositions deduplicates the cells of all groups, row-major.
func unionPositions(size int, groups []MatchGroup) []Position {
	mark := make([]bool, size*size)
	n := 0
	for _, grp := range groups {
		for _, p := range grp.Positions {
			idx := p.Row*size + p.Col
			if !mark[idx] {
				mark[idx] = true
				n++
			}
		}
	}

	out := make([]Position, 0, n)
	for idx, set := range mark {
		if set {
			out = append(out, Position{Row: idx / size, Col: idx % size})
		}
	}
	return out
}

// GenerateStableBoard randomizes the whole grid until no match is present.
// Boards with matches are discarded, not cascaded. Returns the attempt count.
func GenerateStableBoard(g *Grid, minLen int) int {
	for attempt := 1; attempt <= maxBoardAttempts; attempt++ {
		g.InitRandom()
		if !HasMatch(g, minLen) {
			return attempt
		}
	}
	panic(invariantf("no match-free %dx%d board with %d symbols after %d attempts",
		g.size, g.size, g.symbols, maxBoardAttempts))
}
