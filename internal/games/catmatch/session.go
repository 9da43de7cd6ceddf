package catmatch

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/catmatch/internal/config"
)

// Session defaults.
const (
	DefaultBoardSize = 6
	DefaultSymbols   = 9
	DefaultCountdown = 90 // seconds
)

// Listener observes a session. Callbacks run synchronously inside the
// session call that caused them and must not call back into the session.
type Listener interface {
	OnResolutionStep(step ResolutionStep)
	OnSessionStateChanged(state SessionState)
}

// SessionState is the externally visible state of a session.
type SessionState struct {
	Remaining  int       // Countdown seconds left
	Score      int       // Cumulative score
	Active     bool      // False once the countdown reaches zero
	Selected   *Position // Currently selected cell, nil when none
	Moves      int       // Swaps applied since the last restart
	Reshuffles int       // Boards replaced because no productive swap remained
}

// Options configures a session.
type Options struct {
	Size      int
	Symbols   int
	Countdown int
	Rules     Rules
	Seed      int64      // Seeds math/rand when Source is nil
	Source    IntnSource // Optional random source override
	Listener  Listener   // Optional observer
}

// DefaultOptions returns a 6x6, nine-symbol, 90 second session.
func DefaultOptions() Options {
	return Options{
		Size:      DefaultBoardSize,
		Symbols:   DefaultSymbols,
		Countdown: DefaultCountdown,
		Rules:     DefaultRules(),
	}
}

// Validate checks that the options describe a playable session.
func (o Options) Validate() error {
	var errs []error
	if o.Rules.MatchMin < 2 {
		errs = append(errs, fmt.Errorf("match_min %d must be at least 2", o.Rules.MatchMin))
	}
	if o.Size < o.Rules.MatchMin {
		errs = append(errs, fmt.Errorf("board size %d is smaller than match_min %d", o.Size, o.Rules.MatchMin))
	}
	if o.Symbols < o.Rules.MatchMin {
		errs = append(errs, fmt.Errorf("symbols %d must be at least match_min %d", o.Symbols, o.Rules.MatchMin))
	}
	if len(errs) == 0 && !config.DealFeasible(o.Size, o.Symbols, o.Rules.MatchMin) {
		errs = append(errs, fmt.Errorf("%dx%d board with %d symbols cannot be dealt without a run of %d",
			o.Size, o.Size, o.Symbols, o.Rules.MatchMin))
	}
	if o.Countdown < 1 {
		errs = append(errs, fmt.Errorf("countdown %d must be positive", o.Countdown))
	}
	if o.Rules.PointsPerGroup < 0 {
		errs = append(errs, fmt.Errorf("points_per_group %d must not be negative", o.Rules.PointsPerGroup))
	}
	if o.Rules.MaxCascadePasses < 1 {
		errs = append(errs, fmt.Errorf("max_cascade_passes %d must be positive", o.Rules.MaxCascadePasses))
	}
	return errors.Join(errs...)
}

// SelectOutcome says what a Select call did.
type SelectOutcome int

const (
	Selected   SelectOutcome = iota // No prior selection; the cell is now selected
	Deselected                      // The selected cell was chosen again
	Reselected                      // A non-adjacent cell replaced the selection
	Swapped                         // An adjacent cell was chosen and swapped
)

// Session owns one board, its countdown and score.
// It is not safe for concurrent use; callers serialise ticks and input.
type Session struct {
	opts     Options
	grid     *Grid
	state    SessionState
	listener Listener
}

// NewSession validates opts and starts an active session on a fresh board.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("catmatch: invalid options: %w", err)
	}

	src := opts.Source
	if src == nil {
		src = rand.New(rand.NewSource(opts.Seed))
	}

	s := &Session{
		opts:     opts,
		grid:     NewGrid(opts.Size, opts.Symbols, src),
		listener: opts.Listener,
	}
	s.reset()
	return s, nil
}

// SetListener replaces the observer. nil disables notifications.
func (s *Session) SetListener(l Listener) {
	s.listener = l
}

// Grid exposes the board for rendering. Callers must treat it as read-only.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Rules returns the rules in force.
func (s *Session) Rules() Rules {
	return s.opts.Rules
}

// State returns a copy of the session state.
func (s *Session) State() SessionState {
	st := s.state
	if st.Selected != nil {
		p := *st.Selected
		st.Selected = &p
	}
	return st
}

// Active reports whether input is accepted.
func (s *Session) Active() bool {
	return s.state.Active
}

// Restart resets countdown, score and selection and deals a new match-free board.
func (s *Session) Restart() {
	s.reset()
	s.notifyState()
}

// RestartWithSeed reseeds the board's random source before restarting, so the
// new game can later be replayed from seed alone.
func (s *Session) RestartWithSeed(seed int64) {
	s.opts.Seed = seed
	s.opts.Source = nil
	s.grid.rng = rand.New(rand.NewSource(seed))
	s.Restart()
}

// Options returns the options the session runs with.
func (s *Session) Options() Options {
	return s.opts
}

func (s *Session) reset() {
	s.state = SessionState{
		Remaining: s.opts.Countdown,
		Active:    true,
	}
	s.deal()
}

// deal generates a match-free board that still offers at least one move.
func (s *Session) deal() {
	for attempt := 0; attempt < maxBoardAttempts; attempt++ {
		GenerateStableBoard(s.grid, s.opts.Rules.MatchMin)
		if HasSwap(s.grid, s.opts.Rules.MatchMin) {
			return
		}
	}
	panic(invariantf("no playable board after %d deals", maxBoardAttempts))
}

// Tick advances the countdown by one second. The tick that reaches zero
// deactivates the session.
func (s *Session) Tick() error {
	if !s.state.Active {
		return ErrInactiveSession
	}

	s.state.Remaining--
	if s.state.Remaining <= 0 {
		s.state.Remaining = 0
		s.state.Active = false
		s.state.Selected = nil
	}
	s.notifyState()
	return nil
}

// SubmitSwap exchanges two adjacent cells and resolves the resulting cascade,
// adding every pass's score to the session. On error nothing changes.
func (s *Session) SubmitSwap(a, b Position) ([]ResolutionStep, error) {
	if !s.state.Active {
		return nil, ErrInactiveSession
	}
	if err := s.grid.Swap(a, b); err != nil {
		return nil, err
	}

	rules := s.opts.Rules
	if rules.RevertUnproductive && !HasMatch(s.grid, rules.MatchMin) {
		// Cannot fail: the same swap just succeeded.
		_ = s.grid.Swap(a, b)
		return nil, fmt.Errorf("swap %s<->%s: %w", a, b, ErrNoMatch)
	}

	steps := ResolveCascade(s.grid, rules)
	s.state.Moves++
	s.state.Selected = nil
	for _, step := range steps {
		s.state.Score += step.ScoreDelta
		if s.listener != nil {
			s.listener.OnResolutionStep(step)
		}
	}

	if !HasSwap(s.grid, rules.MatchMin) {
		s.deal()
		s.state.Reshuffles++
	}

	s.notifyState()
	return steps, nil
}

// Select implements click-to-select: the first cell is remembered, choosing
// it again clears the selection, an adjacent cell triggers SubmitSwap and any
// other cell becomes the new selection.
func (s *Session) Select(p Position) (SelectOutcome, []ResolutionStep, error) {
	if !s.state.Active {
		return Selected, nil, ErrInactiveSession
	}
	if !s.grid.InBounds(p) {
		return Selected, nil, fmt.Errorf("select %s: %w", p, ErrOutOfBounds)
	}

	cur := s.state.Selected
	switch {
	case cur == nil:
		s.state.Selected = &p
		s.notifyState()
		return Selected, nil, nil

	case *cur == p:
		s.state.Selected = nil
		s.notifyState()
		return Deselected, nil, nil

	case Adjacent(*cur, p):
		steps, err := s.SubmitSwap(*cur, p)
		if err != nil {
			if errors.Is(err, ErrNoMatch) {
				s.state.Selected = nil
				s.notifyState()
			}
			return Swapped, nil, err
		}
		return Swapped, steps, nil

	default:
		s.state.Selected = &p
		s.notifyState()
		return Reselected, nil, nil
	}
}

func (s *Session) notifyState() {
	if s.listener != nil {
		s.listener.OnSessionStateChanged(s.State())
	}
}
