package catmatch

import (
	"fmt"
	"strings"
)

// Symbol identifies the kind of tile held by a cell.
// Valid symbols are in [0, symbols); Empty marks a cleared cell.
type Symbol int

// Empty is the sentinel for a cell whose tile was cleared and not yet refilled.
const Empty Symbol = -1

// Position addresses a cell by row (top to bottom) and column (left to right).
type Position struct {
	Row int
	Col int
}

// String returns "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Adjacent reports whether a and b share an edge (Manhattan distance 1).
func Adjacent(a, b Position) bool {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// IntnSource is the part of *rand.Rand the grid needs.
// Tests substitute scripted sources to build exact boards.
type IntnSource interface {
	Intn(n int) int
}

// Grid is a fixed size x size board of symbols.
// All mutation goes through its methods; it is never resized.
type Grid struct {
	size    int
	symbols int
	cells   [][]Symbol
	rng     IntnSource
}

// NewGrid creates a grid filled with Empty cells.
// size and symbols must be positive; anything else is a programming error.
func NewGrid(size, symbols int, rng IntnSource) *Grid {
	if size < 1 || symbols < 1 {
		panic(invariantf("grid dimensions %dx%d with %d symbols", size, size, symbols))
	}
	if rng == nil {
		panic(invariantf("grid requires a random source"))
	}

	g := &Grid{
		size:    size,
		symbols: symbols,
		rng:     rng,
	}
	g.cells = make([][]Symbol, size)
	for r := range g.cells {
		g.cells[r] = make([]Symbol, size)
		for c := range g.cells[r] {
			g.cells[r][c] = Empty
		}
	}
	return g
}

// GridFromRows builds a grid from explicit rows. Every row must have len(rows)
// entries, each either Empty or in [0, symbols).
func GridFromRows(rows [][]Symbol, symbols int, rng IntnSource) *Grid {
	g := NewGrid(len(rows), symbols, rng)
	for r, row := range rows {
		if len(row) != g.size {
			panic(invariantf("row %d has %d cells, want %d", r, len(row), g.size))
		}
		for c, s := range row {
			g.Set(Position{r, c}, s)
		}
	}
	return g
}

// Size returns the board dimension.
func (g *Grid) Size() int {
	return g.size
}

// Symbols returns the palette size.
func (g *Grid) Symbols() int {
	return g.symbols
}

// InBounds reports whether p addresses a cell of this grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

// At returns the symbol at p. p must be in bounds.
func (g *Grid) At(p Position) Symbol {
	return g.cells[p.Row][p.Col]
}

// Set stores s at p, rejecting values outside the palette.
func (g *Grid) Set(p Position, s Symbol) {
	if !g.InBounds(p) {
		panic(invariantf("set %s outside %dx%d grid", p, g.size, g.size))
	}
	if s != Empty && (s < 0 || int(s) >= g.symbols) {
		panic(invariantf("symbol %d outside palette of %d", s, g.symbols))
	}
	g.cells[p.Row][p.Col] = s
}

// InitRandom fills every cell with an independent uniform symbol.
func (g *Grid) InitRandom() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = g.sample()
		}
	}
}

// sample draws one symbol from the palette.
func (g *Grid) sample() Symbol {
	return Symbol(g.rng.Intn(g.symbols))
}

// Swap exchanges the symbols at a and b.
// It does not check whether the swap produces a match.
func (g *Grid) Swap(a, b Position) error {
	if !g.InBounds(a) || !g.InBounds(b) {
		return fmt.Errorf("swap %s<->%s: %w", a, b, ErrOutOfBounds)
	}
	if !Adjacent(a, b) {
		return fmt.Errorf("swap %s<->%s: %w", a, b, ErrNotAdjacent)
	}
	g.cells[a.Row][a.Col], g.cells[b.Row][b.Col] = g.cells[b.Row][b.Col], g.cells[a.Row][a.Col]
	return nil
}

// Clear sets every listed cell to Empty.
func (g *Grid) Clear(positions []Position) {
	for _, p := range positions {
		g.Set(p, Empty)
	}
}

// Compact applies gravity: in each column non-empty cells fall to the bottom
// keeping their relative order, and Empty cells collect at the top.
func (g *Grid) Compact() {
	for c := 0; c < g.size; c++ {
		write := g.size - 1
		for r := g.size - 1; r >= 0; r-- {
			if g.cells[r][c] == Empty {
				continue
			}
			if write != r {
				g.cells[write][c] = g.cells[r][c]
				g.cells[r][c] = Empty
			}
			write--
		}
	}
}

// Refill replaces every Empty cell with a freshly sampled symbol.
// Cells are visited row by row so a given seed always refills the same way.
func (g *Grid) Refill() {
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] == Empty {
				g.cells[r][c] = g.sample()
			}
		}
	}
}

// CountEmpty returns the number of Empty cells.
func (g *Grid) CountEmpty() int {
	n := 0
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] == Empty {
				n++
			}
		}
	}
	return n
}

// Rows returns a deep copy of the cells.
func (g *Grid) Rows() [][]Symbol {
	rows := make([][]Symbol, g.size)
	for r := range g.cells {
		rows[r] = make([]Symbol, g.size)
		copy(rows[r], g.cells[r])
	}
	return rows
}

// Clone returns an independent copy sharing the random source.
func (g *Grid) Clone() *Grid {
	return &Grid{
		size:    g.size,
		symbols: g.symbols,
		cells:   g.Rows(),
		rng:     g.rng,
	}
}

// Equal reports whether both grids hold the same cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the grid one row per line, '.' for Empty.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := range g.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, s := range g.cells[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if s == Empty {
				sb.WriteByte('.')
			} else {
				fmt.Fprintf(&sb, "%d", s)
			}
		}
	}
	return sb.String()
}
