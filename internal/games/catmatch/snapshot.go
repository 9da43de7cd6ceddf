package catmatch

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateTimeUp      GameStateType = "time_up"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Seed       int64 // Seed of the current session
	Score      int
	Remaining  int
	Moves      int
	Reshuffles int
	Board      [][]Symbol
	Cursor     Position
	Selected   *Position
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	st := g.session.State()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case !st.Active:
		state = StateTimeUp
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:       g.tick,
		Seed:       g.session.Options().Seed,
		Score:      st.Score,
		Remaining:  st.Remaining,
		Moves:      st.Moves,
		Reshuffles: st.Reshuffles,
		Board:      g.session.Grid().Rows(),
		Cursor:     g.cursor,
		Selected:   st.Selected,
		State:      state,
	}
}
