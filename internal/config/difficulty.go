package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset maps a flag value to a preset. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// Describe returns a one-line summary for menus.
func (p DifficultyPreset) Describe() string {
	switch p {
	case DifficultyEasy:
		return "Easy (120s, 6 kinds)"
	case DifficultyNormal:
		return "Normal (90s, 9 kinds)"
	case DifficultyHard:
		return "Hard (60s, 9 kinds, 7x7)"
	default:
		return string(p)
	}
}

// ApplyCatMatchPreset modifies the config based on a difficulty preset.
// Fewer symbols make matches more frequent; a shorter countdown leaves
// less time to find them.
func ApplyCatMatchPreset(cfg *CatMatchConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.CountdownSeconds = 120
		cfg.Board.Symbols = 6
	case DifficultyNormal:
		cfg.Session.CountdownSeconds = 90
		cfg.Board.Symbols = 9
	case DifficultyHard:
		cfg.Session.CountdownSeconds = 60
		cfg.Board.Symbols = 9
		cfg.Board.Size = 7
	}
}
