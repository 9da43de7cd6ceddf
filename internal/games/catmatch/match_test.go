package catmatch

import (
	"testing"
)

func TestFindMatchesLeadingRun(t *testing.T) {
	rows := patternRows(6)
	rows[0] = []Symbol{0, 0, 0, 1, 2, 3}
	g := GridFromRows(rows, 9, newTestRand(1))

	groups := FindMatches(g, 3)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d: %+v", len(groups), groups)
	}

	grp := groups[0]
	want := []Position{{0, 0}, {0, 1}, {0, 2}}
	if grp.Symbol != 0 || grp.Orientation != Horizontal || grp.Len() != 3 {
		t.Errorf("unexpected group %+v", grp)
	}
	for i, p := range want {
		if grp.Positions[i] != p {
			t.Errorf("Positions[%d] = %s, expected %s", i, grp.Positions[i], p)
		}
	}
}

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name   string
		set    map[Position]Symbol
		minLen int
		groups []MatchGroup
	}{
		{
			name:   "no matches",
			minLen: 3,
		},
		{
			name:   "run of four is one group",
			set:    map[Position]Symbol{{2, 1}: 0, {2, 2}: 0, {2, 3}: 0, {2, 4}: 0},
			minLen: 3,
			groups: []MatchGroup{
				{Symbol: 0, Orientation: Horizontal, Positions: []Position{{2, 1}, {2, 2}, {2, 3}, {2, 4}}},
			},
		},
		{
			name:   "vertical run at the bottom edge",
			set:    map[Position]Symbol{{3, 5}: 1, {4, 5}: 1, {5, 5}: 1},
			minLen: 3,
			groups: []MatchGroup{
				{Symbol: 1, Orientation: Vertical, Positions: []Position{{3, 5}, {4, 5}, {5, 5}}},
			},
		},
		{
			name:   "crossing runs share a cell",
			set:    map[Position]Symbol{{2, 0}: 0, {2, 1}: 0, {2, 2}: 0, {0, 2}: 0, {1, 2}: 0},
			minLen: 3,
			groups: []MatchGroup{
				{Symbol: 0, Orientation: Horizontal, Positions: []Position{{2, 0}, {2, 1}, {2, 2}}},
				{Symbol: 0, Orientation: Vertical, Positions: []Position{{0, 2}, {1, 2}, {2, 2}}},
			},
		},
		{
			name:   "pair below threshold",
			set:    map[Position]Symbol{{4, 0}: 2, {4, 1}: 2},
			minLen: 3,
		},
		{
			name:   "pair counts with match_min 2",
			set:    map[Position]Symbol{{4, 0}: 2, {4, 1}: 2},
			minLen: 2,
			groups: []MatchGroup{
				{Symbol: 2, Orientation: Horizontal, Positions: []Position{{4, 0}, {4, 1}}},
			},
		},
		{
			name:   "empty cells never match",
			set:    map[Position]Symbol{{1, 0}: Empty, {1, 1}: Empty, {1, 2}: Empty},
			minLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GridFromRows(patternRows(6), 9, newTestRand(1))
			for p, s := range tt.set {
				g.Set(p, s)
			}

			groups := FindMatches(g, tt.minLen)
			if len(groups) != len(tt.groups) {
				t.Fatalf("got %d groups, expected %d: %+v", len(groups), len(tt.groups), groups)
			}
			for i, want := range tt.groups {
				got := groups[i]
				if got.Symbol != want.Symbol || got.Orientation != want.Orientation || got.Len() != want.Len() {
					t.Errorf("group %d = %+v, expected %+v", i, got, want)
					continue
				}
				for k := range want.Positions {
					if got.Positions[k] != want.Positions[k] {
						t.Errorf("group %d position %d = %s, expected %s", i, k, got.Positions[k], want.Positions[k])
					}
				}
			}
			if HasMatch(g, tt.minLen) != (len(tt.groups) > 0) {
				t.Error("HasMatch disagrees with FindMatches")
			}
		})
	}
}

// Every reported group is a maximal contiguous run of one symbol.
func TestFindMatchesGroupsAreMaximalRuns(t *testing.T) {
	rng := newTestRand(99)
	for i := 0; i < 200; i++ {
		g := NewGrid(6, 3, rng)
		g.InitRandom()

		for _, grp := range FindMatches(g, 3) {
			if grp.Len() < 3 {
				t.Fatalf("group shorter than minimum: %+v", grp)
			}
			dr, dc := 0, 1
			if grp.Orientation == Vertical {
				dr, dc = 1, 0
			}
			for k, p := range grp.Positions {
				if g.At(p) != grp.Symbol {
					t.Fatalf("cell %s holds %d, group symbol %d", p, g.At(p), grp.Symbol)
				}
				if k > 0 {
					prev := grp.Positions[k-1]
					if p.Row-prev.Row != dr || p.Col-prev.Col != dc {
						t.Fatalf("group not contiguous: %+v", grp)
					}
				}
			}

			first, last := grp.Positions[0], grp.Positions[grp.Len()-1]
			before := Position{first.Row - dr, first.Col - dc}
			after := Position{last.Row + dr, last.Col + dc}
			if g.InBounds(before) && g.At(before) == grp.Symbol {
				t.Fatalf("group can be extended backwards: %+v\n%s", grp, g)
			}
			if g.InBounds(after) && g.At(after) == grp.Symbol {
				t.Fatalf("group can be extended forwards: %+v\n%s", grp, g)
			}
		}
	}
}

func TestPatternBoardIsStable(t *testing.T) {
	g := GridFromRows(patternRows(8), 9, newTestRand(1))
	if HasMatch(g, 3) {
		t.Fatalf("fixture board has a match:\n%s", g)
	}
	if HasSwap(g, 3) {
		t.Fatalf("fixture board has a productive swap:\n%s", g)
	}
}
