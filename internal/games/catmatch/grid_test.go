package catmatch

import (
	"errors"
	"math/rand"
	"testing"
)

// scriptedSource replays a fixed sequence of values, cycling when exhausted.
type scriptedSource struct {
	vals []int
	i    int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// patternRows returns a match-free board that also has no productive swap:
// symbols run 4..8 with (col + 2*row) mod 5, so no two neighbours in a line
// or two cells one apart are equal. Symbols 0..3 are free for fixtures.
func patternRows(size int) [][]Symbol {
	rows := make([][]Symbol, size)
	for r := range rows {
		rows[r] = make([]Symbol, size)
		for c := range rows[r] {
			rows[r][c] = Symbol(4 + (c+2*r)%5)
		}
	}
	return rows
}

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestNewGridStartsEmpty(t *testing.T) {
	g := NewGrid(4, 5, newTestRand(1))

	if g.Size() != 4 || g.Symbols() != 5 {
		t.Errorf("got %dx%d with %d symbols", g.Size(), g.Size(), g.Symbols())
	}
	if g.CountEmpty() != 16 {
		t.Errorf("CountEmpty = %d, expected 16", g.CountEmpty())
	}
}

func TestNewGridPanicsOnBadDimensions(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(*InvariantError); !ok {
			t.Errorf("expected *InvariantError panic, got %v", r)
		}
	}()
	NewGrid(0, 5, newTestRand(1))
}

func TestInitRandomIsDeterministic(t *testing.T) {
	a := NewGrid(6, 9, newTestRand(42))
	b := NewGrid(6, 9, newTestRand(42))
	a.InitRandom()
	b.InitRandom()

	if !a.Equal(b) {
		t.Errorf("same seed produced different boards:\n%s\n\n%s", a, b)
	}
	if a.CountEmpty() != 0 {
		t.Error("InitRandom should fill every cell")
	}
	for _, row := range a.Rows() {
		for _, s := range row {
			if s < 0 || s >= 9 {
				t.Errorf("symbol %d outside palette", s)
			}
		}
	}
}

func TestSwap(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Position
		wantErr error
	}{
		{"horizontal neighbours", Position{2, 2}, Position{2, 3}, nil},
		{"vertical neighbours", Position{0, 5}, Position{1, 5}, nil},
		{"two apart", Position{2, 2}, Position{2, 4}, ErrNotAdjacent},
		{"diagonal", Position{1, 1}, Position{2, 2}, ErrNotAdjacent},
		{"same cell", Position{3, 3}, Position{3, 3}, ErrNotAdjacent},
		{"first outside", Position{-1, 0}, Position{0, 0}, ErrOutOfBounds},
		{"second outside", Position{5, 5}, Position{5, 6}, ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GridFromRows(patternRows(6), 9, newTestRand(1))
			before := g.Clone()

			err := g.Swap(tt.a, tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Swap(%s, %s) error = %v, expected %v", tt.a, tt.b, err, tt.wantErr)
			}

			if tt.wantErr != nil {
				if !g.Equal(before) {
					t.Error("rejected swap must leave the grid unchanged")
				}
				return
			}
			if g.At(tt.a) != before.At(tt.b) || g.At(tt.b) != before.At(tt.a) {
				t.Error("symbols were not exchanged")
			}
		})
	}
}

func TestCompact(t *testing.T) {
	const e = Empty
	tests := []struct {
		name     string
		input    [][]Symbol
		expected [][]Symbol
	}{
		{
			name:     "gaps fall to the top",
			input:    [][]Symbol{{0, e, 1}, {e, 2, e}, {1, e, e}},
			expected: [][]Symbol{{e, e, e}, {0, e, e}, {1, 2, 1}},
		},
		{
			name:     "order is preserved",
			input:    [][]Symbol{{0, 3, 3}, {e, e, 3}, {1, 3, 3}},
			expected: [][]Symbol{{e, e, 3}, {0, 3, 3}, {1, 3, 3}},
		},
		{
			name:     "full grid unchanged",
			input:    [][]Symbol{{0, 1, 2}, {1, 2, 0}, {2, 0, 1}},
			expected: [][]Symbol{{0, 1, 2}, {1, 2, 0}, {2, 0, 1}},
		},
		{
			name:     "empty grid unchanged",
			input:    [][]Symbol{{e, e, e}, {e, e, e}, {e, e, e}},
			expected: [][]Symbol{{e, e, e}, {e, e, e}, {e, e, e}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GridFromRows(tt.input, 4, newTestRand(1))
			want := GridFromRows(tt.expected, 4, newTestRand(1))

			g.Compact()
			if !g.Equal(want) {
				t.Errorf("Compact: got\n%s\nwant\n%s", g, want)
			}

			g.Compact()
			if !g.Equal(want) {
				t.Error("Compact should be idempotent")
			}
		})
	}
}

func TestCompactKeepsColumnMultiset(t *testing.T) {
	rng := newTestRand(7)
	for i := 0; i < 50; i++ {
		g := NewGrid(6, 5, rng)
		g.InitRandom()
		for r := 0; r < 6; r++ {
			for c := 0; c < 6; c++ {
				if rng.Intn(3) == 0 {
					g.Set(Position{r, c}, Empty)
				}
			}
		}
		before := g.Rows()
		g.Compact()

		for c := 0; c < 6; c++ {
			var want, got []Symbol
			for r := 0; r < 6; r++ {
				if before[r][c] != Empty {
					want = append(want, before[r][c])
				}
			}
			seenFilled := false
			for r := 0; r < 6; r++ {
				s := g.At(Position{r, c})
				if s == Empty {
					if seenFilled {
						t.Fatalf("column %d has an empty cell below a tile:\n%s", c, g)
					}
					continue
				}
				seenFilled = true
				got = append(got, s)
			}
			if len(got) != len(want) {
				t.Fatalf("column %d: %v became %v", c, want, got)
			}
			for k := range want {
				if got[k] != want[k] {
					t.Fatalf("column %d: order %v became %v", c, want, got)
				}
			}
		}
	}
}

func TestRefillRowMajor(t *testing.T) {
	const e = Empty
	g := GridFromRows([][]Symbol{{e, e, e}, {0, e, e}, {1, 2, 1}}, 5, &scriptedSource{vals: []int{3, 4, 0, 1, 2}})

	g.Refill()

	want := GridFromRows([][]Symbol{{3, 4, 0}, {0, 1, 2}, {1, 2, 1}}, 5, newTestRand(1))
	if !g.Equal(want) {
		t.Errorf("Refill: got\n%s\nwant\n%s", g, want)
	}
	if g.CountEmpty() != 0 {
		t.Error("Refill should leave no empty cells")
	}
}

func TestClearAndString(t *testing.T) {
	g := GridFromRows([][]Symbol{{0, 1}, {2, 3}}, 4, newTestRand(1))
	g.Clear([]Position{{0, 1}, {1, 0}})

	if got := g.String(); got != "0 .\n. 3" {
		t.Errorf("String() = %q", got)
	}
}

func TestSetRejectsForeignSymbol(t *testing.T) {
	g := NewGrid(3, 3, newTestRand(1))
	defer func() {
		if recover() == nil {
			t.Error("Set with a symbol outside the palette should panic")
		}
	}()
	g.Set(Position{0, 0}, 3)
}
