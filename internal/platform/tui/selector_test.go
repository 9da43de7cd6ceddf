package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catmatch/internal/config"
	"github.com/vovakirdan/catmatch/internal/games/catmatch"
)

func selectorUpdate(m SelectorModel, msg tea.Msg) SelectorModel {
	next, _ := m.Update(msg)
	return next.(SelectorModel)
}

func TestSelectorPicksStrictHard(t *testing.T) {
	m := NewSelectorModel(80, 24)

	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil {
		t.Fatal("choosing a mode should open the difficulty list")
	}
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.GameID != catmatch.StrictGameID || sel.Difficulty != config.DifficultyHard {
		t.Errorf("got %+v", sel)
	}
}

func TestSelectorJournal(t *testing.T) {
	m := NewSelectorModel(80, 24)
	for range modeOptions {
		m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})

	if sel := m.Selected(); sel == nil || !sel.Journal {
		t.Errorf("expected journal selection, got %+v", sel)
	}
}

func TestSelectorBackFromDifficulty(t *testing.T) {
	m := NewSelectorModel(80, 24)
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.inDifficulty || m.IsQuitting() {
		t.Error("esc in the difficulty list should return to modes")
	}

	m = selectorUpdate(m, runeKey('q'))
	if !m.IsQuitting() || m.Selected() != nil {
		t.Error("q should quit without a selection")
	}
}
