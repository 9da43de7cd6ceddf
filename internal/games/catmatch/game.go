package catmatch

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/catmatch/internal/config"
	"github.com/vovakirdan/catmatch/internal/core"
	"github.com/vovakirdan/catmatch/internal/registry"
)

// Registered game IDs.
const (
	GameID       = "catmatch"
	StrictGameID = "catmatch_strict"
)

// Game adapts a Session to the frame-driven platform: it owns the cursor,
// converts frames into countdown seconds and records accepted swaps.
type Game struct {
	strict bool
	cfg    config.CatMatchConfig

	seeds   *rand.Rand // Draws one seed per session so every session can be replayed
	session *Session
	tick    uint64

	// Frames per countdown second
	tickRate int
	frame    int
	elapsed  int // Countdown seconds consumed in the current session

	// Screen dimensions
	screenW int
	screenH int

	cursor        Position
	paused        bool
	tooSmall      bool
	hint          *Swap
	highlight     []Position
	highlightLeft int
	message       string

	listener  Listener
	record    *ReplayRecord
	completed []ReplayRecord
}

// New creates a game from the loaded configuration.
// The strict variant swaps back any move that matches nothing.
func New(cfg config.CatMatchConfig, strict bool) (*Game, error) {
	if strict {
		cfg.Rules.RevertUnproductive = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{strict: strict, cfg: cfg}, nil
}

// newFromOptions resolves the config file and difficulty preset.
func newFromOptions(opts registry.Options, strict bool) (*Game, error) {
	preset, err := config.ParsePreset(opts.Difficulty)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadCatMatch(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	config.ApplyCatMatchPreset(&cfg, preset)
	return New(cfg, strict)
}

func init() {
	registry.Register(GameID, "Cat Match", func(opts registry.Options) (registry.Game, error) {
		return newFromOptions(opts, false)
	})
	registry.Register(StrictGameID, "Cat Match (Strict)", func(opts registry.Options) (registry.Game, error) {
		return newFromOptions(opts, true)
	})
}

// SessionOptions converts a configuration into session options.
func SessionOptions(cfg config.CatMatchConfig) Options {
	return Options{
		Size:      cfg.Board.Size,
		Symbols:   cfg.Board.Symbols,
		Countdown: cfg.Session.CountdownSeconds,
		Rules: Rules{
			MatchMin:           cfg.Rules.MatchMin,
			PointsPerGroup:     cfg.Rules.PointsPerGroup,
			MaxCascadePasses:   cfg.Rules.MaxCascadePasses,
			RevertUnproductive: cfg.Rules.RevertUnproductive,
		},
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.strict {
		return StrictGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.strict {
		return "Cat Match (Strict)"
	}
	return "Cat Match"
}

// Config returns the configuration the game runs with.
func (g *Game) Config() config.CatMatchConfig {
	return g.cfg
}

// Reset starts a fresh session. A session in progress with accepted moves
// is kept in the completed list.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.finishRecord(false)

	cfg = cfg.Normalized()
	g.seeds = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.tickRate = cfg.TickRate
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	opts := SessionOptions(g.cfg)
	opts.Seed = g.seeds.Int63()
	opts.Listener = g.listener
	s, err := NewSession(opts)
	if err != nil {
		// New validated the config already.
		panic(invariantf("session options rejected: %v", err))
	}
	g.session = s
	g.startRound()
	g.checkScreenSize()
}

// Resize updates the screen dimensions without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// SetListener forwards session events to l. It survives Reset and restarts.
func (g *Game) SetListener(l Listener) {
	g.listener = l
	if g.session != nil {
		g.session.SetListener(l)
	}
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}

// CompletedReplays returns the records finished since the last call and
// forgets them.
func (g *Game) CompletedReplays() []ReplayRecord {
	out := g.completed
	g.completed = nil
	return out
}

// EndSession closes the current record when the player leaves mid-game.
// The record is kept only if it holds moves.
func (g *Game) EndSession() {
	g.finishRecord(false)
}

// startRound resets per-round adapter state and opens a new replay record.
func (g *Game) startRound() {
	g.frame = 0
	g.elapsed = 0
	g.cursor = Position{}
	g.paused = false
	g.hint = nil
	g.highlight = nil
	g.highlightLeft = 0
	g.message = ""

	opts := g.session.Options()
	g.record = &ReplayRecord{
		GameID: g.ID(),
		Seed:   opts.Seed,
		Config: ReplayConfigFrom(opts),
	}
}

// finishRecord closes the open record. Records without moves are dropped
// unless the countdown ran out.
func (g *Game) finishRecord(timeUp bool) {
	if g.record == nil {
		return
	}
	rec := g.record
	g.record = nil
	if len(rec.Moves) == 0 && !timeUp {
		return
	}
	rec.FinalScore = g.session.State().Score
	g.completed = append(g.completed, *rec)
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := layoutSize(g.cfg.Board.Size)
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if !g.session.Active() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)

	if g.highlightLeft > 0 {
		g.highlightLeft--
		if g.highlightLeft == 0 {
			g.highlight = nil
		}
	}

	g.frame++
	if g.frame >= g.tickRate {
		g.frame = 0
		g.elapsed++
		//nolint:errcheck // Active was checked above
		g.session.Tick()
		if !g.session.Active() {
			g.hint = nil
			g.finishRecord(true)
		}
	}

	return core.StepResult{State: g.State()}
}

// restart deals a new board from the next seed.
func (g *Game) restart() {
	g.finishRecord(false)
	g.session.RestartWithSeed(g.seeds.Int63())
	g.startRound()
}

func (g *Game) handleInput(in core.InputFrame) {
	n := g.session.Grid().Size()

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Wrap(g.cursor.Row-1, n)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Wrap(g.cursor.Row+1, n)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Wrap(g.cursor.Col-1, n)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Wrap(g.cursor.Col+1, n)
	}

	if in.Has(core.ActionHint) {
		g.message = ""
		if swaps := FindSwaps(g.session.Grid(), g.session.Rules().MatchMin); len(swaps) > 0 {
			g.hint = &swaps[0]
		}
	}

	if in.Has(core.ActionCancel) {
		if sel := g.session.State().Selected; sel != nil {
			//nolint:errcheck // Reselecting the selected cell only clears it
			g.session.Select(*sel)
		}
		g.message = ""
	}

	if in.Has(core.ActionSelect) {
		g.selectCursor()
	}
}

// selectCursor feeds the cursor cell to the session's selection machine.
func (g *Game) selectCursor() {
	prev := g.session.State().Selected
	outcome, steps, err := g.session.Select(g.cursor)

	switch {
	case errors.Is(err, ErrNoMatch):
		g.message = "No match"
		return
	case err != nil:
		return
	}

	g.message = ""
	if outcome != Swapped {
		return
	}

	g.hint = nil
	g.record.Moves = append(g.record.Moves, RecordedMove{
		Second: g.elapsed,
		A:      *prev,
		B:      g.cursor,
	})

	g.highlight = g.highlight[:0]
	for _, step := range steps {
		g.highlight = append(g.highlight, step.Cleared...)
	}
	if len(g.highlight) > 0 {
		g.highlightLeft = g.cfg.Session.HighlightFrames
	}
	if g.highlightLeft == 0 {
		g.highlight = nil
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	return core.GameState{
		Score:     st.Score,
		Remaining: st.Remaining,
		GameOver:  !st.Active,
		Paused:    g.paused,
	}
}
