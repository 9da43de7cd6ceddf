package core

import "time"

// DefaultTickRate is the frame rate used when none is configured.
const DefaultTickRate = 30

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second
	Seed     int64 // RNG seed, 0 lets the platform pick one from the clock
}

// DefaultConfig returns an 80x24 config at the default frame rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// Normalized returns c with a non-positive tick rate replaced by
// DefaultTickRate.
func (c RuntimeConfig) Normalized() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// FrameInterval is the wall-clock time between two frames.
func (c RuntimeConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Normalized().TickRate)
}

// GameState is the summary a game reports to the platform after each frame.
type GameState struct {
	Score     int  // Current score
	Remaining int  // Seconds left on the countdown, 0 for untimed games
	GameOver  bool // Whether the game has ended
	Paused    bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}
