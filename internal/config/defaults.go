package config

import (
	_ "embed"
)

//go:embed defaults/catmatch.yaml
var defaultCatMatchYAML []byte

// DefaultCatMatchConfig returns the built-in configuration.
func DefaultCatMatchConfig() CatMatchConfig {
	return CatMatchConfig{
		Board: BoardConfig{
			Size:    6,
			Symbols: 9,
		},
		Rules: RulesConfig{
			MatchMin:         3,
			PointsPerGroup:   10,
			MaxCascadePasses: 256,
		},
		Session: SessionConfig{
			CountdownSeconds: 90,
			HighlightFrames:  20, // ~0.66s at 30fps
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCatMatchYAML
}
