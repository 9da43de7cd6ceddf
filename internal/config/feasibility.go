package config

import "math"

// BoardAttempts bounds both the match-free re-randomization loop and the
// number of deals tried for a board that still offers a move.
const BoardAttempts = 1 << 16

// dealMargin is how many expected deals must fit into BoardAttempts.
const dealMargin = 32

// DealFeasible estimates whether a random size x size board of symbols kinds
// can be dealt without a run of matchMin and with at least one productive
// swap, well within BoardAttempts.
//
// Runs are treated as independent. With q = symbols^(1-matchMin) and W line
// windows of length matchMin, a board is match-free with probability
// (1-q)^W and offers a swap with probability about 1-exp(-W*matchMin*q).
func DealFeasible(size, symbols, matchMin int) bool {
	if matchMin < 2 || size < matchMin || symbols < 2 {
		return false
	}
	q := math.Pow(float64(symbols), float64(1-matchMin))
	windows := float64(2 * size * (size - matchMin + 1))

	logStable := windows * math.Log1p(-q)
	pSwap := -math.Expm1(-windows * float64(matchMin) * q)

	return logStable+math.Log(pSwap) >= math.Log(dealMargin/float64(BoardAttempts))
}
