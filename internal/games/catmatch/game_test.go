package catmatch

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/catmatch/internal/config"
	"github.com/vovakirdan/catmatch/internal/core"
	"github.com/vovakirdan/catmatch/internal/registry"
)

func newTestGame(t *testing.T, strict bool, mutate func(*config.CatMatchConfig)) *Game {
	t.Helper()
	cfg := config.DefaultCatMatchConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := New(cfg, strict)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 42})
	return g
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// swapWithCursor selects a then b through the input layer.
func swapWithCursor(g *Game, a, b Position) {
	g.cursor = a
	g.Step(frameWith(core.ActionSelect))
	g.cursor = b
	g.Step(frameWith(core.ActionSelect))
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{GameID, StrictGameID} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}

	g, err := registry.Create(StrictGameID, registry.Options{Difficulty: "hard"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cm := g.(*Game)
	if !cm.Config().Rules.RevertUnproductive {
		t.Error("strict game should revert unproductive swaps")
	}
	if cm.Config().Board.Size != 7 || cm.Config().Session.CountdownSeconds != 60 {
		t.Errorf("hard preset not applied: %+v", cm.Config())
	}

	if _, err := registry.Create(GameID, registry.Options{Difficulty: "nightmare"}); err == nil {
		t.Error("unknown difficulty should fail")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultCatMatchConfig()
	cfg.Board.Symbols = 12
	if _, err := New(cfg, false); err == nil {
		t.Error("expected a validation error")
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := []core.InputFrame{
		frameWith(core.ActionRight),
		frameWith(core.ActionDown),
		frameWith(core.ActionHint),
		frameWith(core.ActionSelect),
		frameWith(core.ActionRight),
		frameWith(core.ActionSelect),
		frameWith(core.ActionRestart),
		frameWith(core.ActionUp),
	}

	run := func() Snapshot {
		g := newTestGame(t, false, nil)
		for i := 0; i < 300; i++ {
			g.Step(inputs[i%len(inputs)])
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", a, b)
	}
}

func TestCursorWraps(t *testing.T) {
	g := newTestGame(t, false, nil)
	size := g.Config().Board.Size

	g.Step(frameWith(core.ActionLeft))
	g.Step(frameWith(core.ActionUp))

	want := Position{Row: size - 1, Col: size - 1}
	if g.Snapshot().Cursor != want {
		t.Errorf("cursor = %s, expected %s", g.Snapshot().Cursor, want)
	}
}

func TestCountdownEndsGame(t *testing.T) {
	g := newTestGame(t, false, func(c *config.CatMatchConfig) { c.Session.CountdownSeconds = 2 })

	for i := 0; i < 59; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().GameOver || g.State().Remaining != 1 {
		t.Fatalf("after 59 frames: %+v", g.State())
	}

	g.Step(core.NewInputFrame())
	if !g.State().GameOver || g.Snapshot().State != StateTimeUp {
		t.Fatalf("game should be over, got %+v", g.State())
	}

	recs := g.CompletedReplays()
	if len(recs) != 1 || recs[0].FinalScore != 0 || recs[0].GameID != GameID {
		t.Errorf("expected one empty finished record, got %+v", recs)
	}
	if len(g.CompletedReplays()) != 0 {
		t.Error("CompletedReplays should drain")
	}

	// Input is ignored once time is up.
	before := g.Snapshot()
	g.Step(frameWith(core.ActionSelect))
	if g.Snapshot().Selected != nil || g.Snapshot().Moves != before.Moves {
		t.Error("selection accepted after time up")
	}
}

func TestPauseStopsCountdown(t *testing.T) {
	g := newTestGame(t, false, nil)

	g.Step(frameWith(core.ActionPause))
	for i := 0; i < 90; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().Remaining != 90 || !g.State().Paused {
		t.Errorf("paused game should not count down: %+v", g.State())
	}

	g.Step(frameWith(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestSwapIsRecordedAndReplayable(t *testing.T) {
	g := newTestGame(t, false, nil)

	// Let a couple of seconds pass first.
	for i := 0; i < 65; i++ {
		g.Step(core.NewInputFrame())
	}

	sw := FindSwaps(g.Session().Grid(), 3)[0]
	swapWithCursor(g, sw.A, sw.B)

	snap := g.Snapshot()
	if snap.Moves != 1 || snap.Score == 0 {
		t.Fatalf("swap not applied: %+v", snap)
	}
	if len(g.highlight) == 0 {
		t.Error("cleared cells should be highlighted")
	}

	g.Step(frameWith(core.ActionRestart))

	recs := g.CompletedReplays()
	if len(recs) != 1 {
		t.Fatalf("expected one record, got %d", len(recs))
	}
	rec := recs[0]
	if len(rec.Moves) != 1 || rec.Moves[0].Second != 2 || rec.FinalScore != snap.Score {
		t.Errorf("unexpected record %+v", rec)
	}

	res, err := Replay(rec)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !res.Matches(rec) {
		t.Errorf("replay score %d, recorded %d", res.Score, rec.FinalScore)
	}

	after := g.Snapshot()
	if after.Score != 0 || after.Moves != 0 || after.Seed == snap.Seed {
		t.Errorf("restart should deal a new game: %+v", after)
	}
}

func TestRestartWithoutMovesKeepsNoRecord(t *testing.T) {
	g := newTestGame(t, false, nil)
	g.Step(frameWith(core.ActionRestart))

	if recs := g.CompletedReplays(); len(recs) != 0 {
		t.Errorf("empty session should not be recorded, got %+v", recs)
	}
}

func TestStrictGameShowsNoMatch(t *testing.T) {
	g := newTestGame(t, true, nil)
	a, b := unproductiveSwap(t, g.Session().Grid(), 3)

	swapWithCursor(g, a, b)

	if g.Snapshot().Moves != 0 {
		t.Error("unproductive swap should be rejected")
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "No match") {
		t.Error("rejected swap should show a message")
	}
}

func TestHintMarksBestSwap(t *testing.T) {
	g := newTestGame(t, false, nil)
	g.Step(frameWith(core.ActionHint))

	want := FindSwaps(g.Session().Grid(), 3)[0]
	if g.hint == nil || *g.hint != want {
		t.Errorf("hint = %+v, expected %+v", g.hint, want)
	}
}

func TestCancelClearsSelection(t *testing.T) {
	g := newTestGame(t, false, nil)
	g.Step(frameWith(core.ActionSelect))
	if g.Snapshot().Selected == nil {
		t.Fatal("select should mark the cursor cell")
	}

	g.Step(frameWith(core.ActionCancel))
	if g.Snapshot().Selected != nil {
		t.Error("cancel should clear the selection")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, false, nil)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Cat Match", "Score: 0", "Time 1:30", "Moves: 0", "┌", "["} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	cfg := config.DefaultCatMatchConfig()
	g, err := New(cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 30, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s, expected %s", g.Snapshot().State, StatePausedSmall)
	}
	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too small message")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Error("resize should resume play")
	}
}

func TestListenerSurvivesRestart(t *testing.T) {
	g := newTestGame(t, false, nil)
	l := &recordingListener{}
	g.SetListener(l)

	g.Step(frameWith(core.ActionRestart))
	g.Step(frameWith(core.ActionSelect))

	if len(l.states) == 0 {
		t.Error("listener should receive events after restart")
	}
}
