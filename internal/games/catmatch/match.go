package catmatch

// Orientation tells whether a group runs along a row or a column.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns a lowercase name.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MatchGroup is a contiguous run of at least MatchMin equal symbols in one line.
// Positions are in scan order (left to right, or top to bottom).
type MatchGroup struct {
	Symbol      Symbol
	Orientation Orientation
	Positions   []Position
}

// Len returns the run length.
func (m MatchGroup) Len() int {
	return len(m.Positions)
}

// FindMatches scans rows left to right and then columns top to bottom and
// returns every run of minLen or more equal, non-empty symbols.
// A cell on both a horizontal and a vertical run appears in both groups.
func FindMatches(g *Grid, minLen int) []MatchGroup {
	var groups []MatchGroup

	for r := 0; r < g.size; r++ {
		groups = scanLine(g, minLen, groups, func(i int) Position {
			return Position{Row: r, Col: i}
		}, Horizontal)
	}
	for c := 0; c < g.size; c++ {
		groups = scanLine(g, minLen, groups, func(i int) Position {
			return Position{Row: i, Col: c}
		}, Vertical)
	}

	return groups
}

// HasMatch reports whether FindMatches would return at least one group.
func HasMatch(g *Grid, minLen int) bool {
	return len(FindMatches(g, minLen)) > 0
}

// scanLine runs the run-length counter over one line; at(i) maps the
// i-th cell of the line to a grid position.
func scanLine(g *Grid, minLen int, groups []MatchGroup, at func(int) Position, o Orientation) []MatchGroup {
	start := 0
	for i := 1; i <= g.size; i++ {
		if i < g.size && g.At(at(i)) == g.At(at(start)) {
			continue
		}

		// Run [start, i) has ended.
		sym := g.At(at(start))
		if sym != Empty && i-start >= minLen {
			group := MatchGroup{
				Symbol:      sym,
				Orientation: o,
				Positions:   make([]Position, 0, i-start),
			}
			for j := start; j < i; j++ {
				group.Positions = append(group.Positions, at(j))
			}
			groups = append(groups, group)
		}
		start = i
	}
	return groups
}
