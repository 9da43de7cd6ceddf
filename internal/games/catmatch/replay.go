package catmatch

import (
	"fmt"
	"time"
)

// ReplayConfig is the subset of Options needed to rebuild a session.
type ReplayConfig struct {
	Size               int  `yaml:"size"`
	Symbols            int  `yaml:"symbols"`
	Countdown          int  `yaml:"countdown"`
	MatchMin           int  `yaml:"match_min"`
	PointsPerGroup     int  `yaml:"points_per_group"`
	MaxCascadePasses   int  `yaml:"max_cascade_passes"`
	RevertUnproductive bool `yaml:"revert_unproductive"`
}

// ReplayConfigFrom captures opts for storage.
func ReplayConfigFrom(opts Options) ReplayConfig {
	return ReplayConfig{
		Size:               opts.Size,
		Symbols:            opts.Symbols,
		Countdown:          opts.Countdown,
		MatchMin:           opts.Rules.MatchMin,
		PointsPerGroup:     opts.Rules.PointsPerGroup,
		MaxCascadePasses:   opts.Rules.MaxCascadePasses,
		RevertUnproductive: opts.Rules.RevertUnproductive,
	}
}

// Options converts the stored configuration back into session options.
func (c ReplayConfig) Options(seed int64) Options {
	return Options{
		Size:      c.Size,
		Symbols:   c.Symbols,
		Countdown: c.Countdown,
		Seed:      seed,
		Rules: Rules{
			MatchMin:           c.MatchMin,
			PointsPerGroup:     c.PointsPerGroup,
			MaxCascadePasses:   c.MaxCascadePasses,
			RevertUnproductive: c.RevertUnproductive,
		},
	}
}

// RecordedMove is an accepted swap and the elapsed second it happened in.
type RecordedMove struct {
	Second int
	A, B   Position
}

// ReplayRecord is everything needed to reproduce one session.
type ReplayRecord struct {
	ID         int64
	GameID     string
	Seed       int64
	Config     ReplayConfig
	Moves      []RecordedMove
	FinalScore int
	CreatedAt  time.Time
}

// ReplaySaver persists finished records.
type ReplaySaver interface {
	SaveReplay(rec ReplayRecord) (int64, error)
}

// ReplayResult is the outcome of re-running a record.
type ReplayResult struct {
	Score      int
	Moves      int
	Steps      [][]ResolutionStep // Steps per move, in move order
	Reshuffles int
	Final      *Grid
}

// Matches reports whether the replayed score equals the recorded one.
func (r ReplayResult) Matches(rec ReplayRecord) bool {
	return r.Score == rec.FinalScore && r.Moves == len(rec.Moves)
}

// Replay rebuilds the session from rec's seed and re-applies its moves,
// ticking the countdown up to each move's second first.
func Replay(rec ReplayRecord) (ReplayResult, error) {
	s, err := NewSession(rec.Config.Options(rec.Seed))
	if err != nil {
		return ReplayResult{}, err
	}

	var res ReplayResult
	elapsed := 0
	for i, mv := range rec.Moves {
		if mv.Second < elapsed {
			return res, fmt.Errorf("catmatch: replay move %d at second %d precedes second %d", i, mv.Second, elapsed)
		}
		for elapsed < mv.Second {
			if err := s.Tick(); err != nil {
				return res, fmt.Errorf("catmatch: replay move %d: %w", i, err)
			}
			elapsed++
		}

		steps, err := s.SubmitSwap(mv.A, mv.B)
		if err != nil {
			return res, fmt.Errorf("catmatch: replay move %d %s<->%s: %w", i, mv.A, mv.B, err)
		}
		res.Steps = append(res.Steps, steps)
	}

	st := s.State()
	res.Score = st.Score
	res.Moves = st.Moves
	res.Reshuffles = st.Reshuffles
	res.Final = s.Grid().Clone()
	return res, nil
}
