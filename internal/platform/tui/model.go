// Package tui provides the Bubble Tea integration for the puzzle platform.
// It handles the terminal UI loop, input mapping, the mode selector and
// the replay journal browser.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catmatch/internal/core"
	"github.com/vovakirdan/catmatch/internal/games/catmatch"
	"github.com/vovakirdan/catmatch/internal/registry"
)

// TickMsg is sent to trigger a game frame.
type TickMsg time.Time

// tickCmd schedules the next frame.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Optional capabilities a game may offer the platform.
type (
	resizer interface {
		Resize(w, h int)
	}
	replaySource interface {
		CompletedReplays() []catmatch.ReplayRecord
		EndSession()
	}
	observable interface {
		SetListener(l catmatch.Listener)
	}
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	saver      catmatch.ReplaySaver
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// saver may be nil, in which case finished sessions are not journaled.
func NewModel(game registry.Game, saver catmatch.ReplaySaver, cfg core.RuntimeConfig, logger *log.Logger) Model {
	cfg = cfg.Normalized()
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	if o, ok := game.(observable); ok {
		o.SetListener(newEventLogger(logger))
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		saver:      saver,
		logger:     logger,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)

	return tickCmd(m.config.FrameInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		if rs, ok := m.game.(replaySource); ok {
			rs.EndSession()
		}
		m.flushReplays()
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Games that can relayout keep their session; others restart.
	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)

	if result.State.GameOver && !m.gameState.GameOver {
		m.logger.Info("time up", "game", m.game.ID(), "score", result.State.Score)
	}
	m.gameState = result.State

	m.flushReplays()

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.FrameInterval())
}

// flushReplays journals every record the game finished since the last call.
func (m Model) flushReplays() {
	rs, ok := m.game.(replaySource)
	if !ok {
		return
	}
	for _, rec := range rs.CompletedReplays() {
		if m.saver == nil {
			m.logger.Debug("replay not journaled, no store", "game", rec.GameID, "score", rec.FinalScore)
			continue
		}
		id, err := m.saver.SaveReplay(rec)
		if err != nil {
			m.logger.Error("cannot save replay", "game", rec.GameID, "error", err)
			continue
		}
		m.logger.Info("replay saved", "id", id, "game", rec.GameID, "score", rec.FinalScore, "moves", len(rec.Moves))
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".catmatch", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, saver catmatch.ReplaySaver, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, saver, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// eventLogger writes session events to the debug log.
type eventLogger struct {
	logger *log.Logger
	last   catmatch.SessionState
}

func newEventLogger(logger *log.Logger) *eventLogger {
	return &eventLogger{logger: logger.WithPrefix("session")}
}

func (l *eventLogger) OnResolutionStep(step catmatch.ResolutionStep) {
	l.logger.Debug("cascade pass",
		"pass", step.Pass,
		"groups", len(step.Groups),
		"cleared", len(step.Cleared),
		"delta", step.ScoreDelta,
	)
}

// OnSessionStateChanged logs score, move and activity changes; plain
// countdown ticks are skipped.
func (l *eventLogger) OnSessionStateChanged(st catmatch.SessionState) {
	prev := l.last
	l.last = st
	if st.Score == prev.Score && st.Moves == prev.Moves && st.Active == prev.Active && st.Reshuffles == prev.Reshuffles {
		return
	}
	l.logger.Debug("state",
		"score", st.Score,
		"moves", st.Moves,
		"remaining", st.Remaining,
		"active", st.Active,
		"reshuffles", st.Reshuffles,
	)
}
