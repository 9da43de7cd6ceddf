// Package config provides YAML-based game configuration loading,
// validation and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// Limits enforced by Validate.
const (
	MaxBoardSize = 16 // Largest board the terminal layout supports
	MaxSymbols   = 9  // One glyph and color per symbol
)

// CatMatchConfig contains all configuration for the tile-matching game.
type CatMatchConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Rules   RulesConfig   `yaml:"rules"`
	Session SessionConfig `yaml:"session"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Size    int `yaml:"size"`    // Rows and columns
	Symbols int `yaml:"symbols"` // Number of distinct tile kinds
}

// RulesConfig defines matching and scoring.
type RulesConfig struct {
	MatchMin           int  `yaml:"match_min"`
	PointsPerGroup     int  `yaml:"points_per_group"`
	MaxCascadePasses   int  `yaml:"max_cascade_passes"`
	RevertUnproductive bool `yaml:"revert_unproductive"` // Swap back moves that match nothing
}

// SessionConfig defines timing.
type SessionConfig struct {
	CountdownSeconds int `yaml:"countdown_seconds"`
	HighlightFrames  int `yaml:"highlight_frames"` // How long cleared cells stay marked
}

// Validate reports every problem with the configuration at once.
func (c CatMatchConfig) Validate() error {
	var errs []error

	if c.Rules.MatchMin < 2 {
		errs = append(errs, fmt.Errorf("rules.match_min = %d, must be at least 2", c.Rules.MatchMin))
	}
	if c.Board.Size < c.Rules.MatchMin || c.Board.Size > MaxBoardSize {
		errs = append(errs, fmt.Errorf("board.size = %d, must be in [%d, %d]", c.Board.Size, c.Rules.MatchMin, MaxBoardSize))
	}
	if c.Board.Symbols < c.Rules.MatchMin || c.Board.Symbols > MaxSymbols {
		errs = append(errs, fmt.Errorf("board.symbols = %d, must be in [%d, %d]", c.Board.Symbols, c.Rules.MatchMin, MaxSymbols))
	}
	if len(errs) == 0 && !DealFeasible(c.Board.Size, c.Board.Symbols, c.Rules.MatchMin) {
		errs = append(errs, fmt.Errorf("board.size = %d with board.symbols = %d and rules.match_min = %d cannot be dealt without a match; use more symbols or a smaller board",
			c.Board.Size, c.Board.Symbols, c.Rules.MatchMin))
	}
	if c.Rules.PointsPerGroup < 0 {
		errs = append(errs, fmt.Errorf("rules.points_per_group = %d, must not be negative", c.Rules.PointsPerGroup))
	}
	if c.Rules.MaxCascadePasses < 1 {
		errs = append(errs, fmt.Errorf("rules.max_cascade_passes = %d, must be positive", c.Rules.MaxCascadePasses))
	}
	if c.Session.CountdownSeconds < 1 {
		errs = append(errs, fmt.Errorf("session.countdown_seconds = %d, must be positive", c.Session.CountdownSeconds))
	}
	if c.Session.HighlightFrames < 0 {
		errs = append(errs, fmt.Errorf("session.highlight_frames = %d, must not be negative", c.Session.HighlightFrames))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
