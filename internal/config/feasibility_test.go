package config

import "testing"

func TestDealFeasible(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		symbols int
		minLen  int
		want    bool
	}{
		{"defaults", 6, 9, 3, true},
		{"easy", 6, 6, 3, true},
		{"hard", 7, 9, 3, true},
		{"largest board all symbols", 16, 9, 3, true},
		{"small board three symbols", 5, 3, 3, true},
		{"pairs on the default board", 6, 9, 2, true},
		{"large board few symbols", 16, 4, 3, false},
		{"thirteen with five", 13, 5, 3, false},
		{"twelve with five", 12, 5, 3, false},
		{"pairs on a large board", 16, 9, 2, false},
		{"full-width runs only", 9, 9, 9, false},
		{"run longer than board", 2, 9, 3, false},
		{"single symbol", 6, 1, 3, false},
		{"match_min one", 6, 9, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DealFeasible(tt.size, tt.symbols, tt.minLen); got != tt.want {
				t.Errorf("DealFeasible(%d, %d, %d) = %v, expected %v", tt.size, tt.symbols, tt.minLen, got, tt.want)
			}
		})
	}
}

func TestDealFeasibleShrinksWithSymbols(t *testing.T) {
	// Fewer symbols never allow a larger board.
	prev := MaxBoardSize + 1
	for symbols := MaxSymbols; symbols >= 3; symbols-- {
		largest := 0
		for size := 3; size <= MaxBoardSize; size++ {
			if DealFeasible(size, symbols, 3) {
				largest = size
			}
		}
		if largest > prev {
			t.Errorf("%d symbols allow %dx%d, more than %d with one symbol more", symbols, largest, largest, prev)
		}
		prev = largest
	}
}
