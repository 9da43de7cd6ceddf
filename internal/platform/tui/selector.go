package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/catmatch/internal/config"
	"github.com/vovakirdan/catmatch/internal/games/catmatch"
)

// Selection holds the user's choice from the selector.
type Selection struct {
	GameID     string
	Difficulty config.DifficultyPreset
	Journal    bool // Open the replay journal instead of playing
}

type modeOption struct {
	label   string
	gameID  string
	journal bool
}

var modeOptions = []modeOption{
	{label: "Classic", gameID: catmatch.GameID},
	{label: "Strict (swaps that match nothing bounce back)", gameID: catmatch.StrictGameID},
	{label: "Replay journal", journal: true},
}

// SelectorModel lets users choose the rules variant and difficulty.
type SelectorModel struct {
	cursor       int
	diffCursor   int
	inDifficulty bool
	width        int
	height       int
	keys         MenuKeyMap
	help         help.Model
	selection    Selection
	choosing     bool
	quitting     bool
}

// NewSelectorModel creates a new selector model.
func NewSelectorModel(width, height int) SelectorModel {
	return SelectorModel{
		width:      width,
		height:     height,
		keys:       DefaultMenuKeyMap(),
		help:       help.New(),
		diffCursor: 1, // normal
		choosing:   true,
	}
}

// Init initializes the model.
func (m SelectorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inDifficulty {
			return m.handleDifficultyKey(msg)
		}
		return m.handleModeKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m SelectorModel) handleModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(modeOptions)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		opt := modeOptions[m.cursor]
		if opt.journal {
			m.choosing = false
			m.selection = Selection{Journal: true}
			return m, tea.Quit
		}
		m.inDifficulty = true
	}
	return m, nil
}

func (m SelectorModel) handleDifficultyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	presets := config.Presets()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.inDifficulty = false
	case key.Matches(msg, m.keys.Up):
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.diffCursor < len(presets)-1 {
			m.diffCursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.choosing = false
		m.selection = Selection{
			GameID:     modeOptions[m.cursor].gameID,
			Difficulty: presets[m.diffCursor],
		}
		return m, tea.Quit
	}
	return m, nil
}

// View renders the mode or difficulty list.
func (m SelectorModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("C A T   M A T C H", m.width)))
	b.WriteString("\n\n")

	var labels []string
	cursor := m.cursor
	if m.inDifficulty {
		b.WriteString(centerText("Select difficulty:", m.width))
		for _, p := range config.Presets() {
			labels = append(labels, p.Describe())
		}
		cursor = m.diffCursor
	} else {
		b.WriteString(centerText("Select mode:", m.width))
		for _, opt := range modeOptions {
			labels = append(labels, opt.label)
		}
	}
	b.WriteString("\n\n")

	for i, label := range labels {
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", prefix, label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText(m.help.View(m.keys), m.width)))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m SelectorModel) Selected() *Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m SelectorModel) IsQuitting() bool {
	return m.quitting
}

// RunSelector runs the selector and returns the choice, or nil when the user quit.
func RunSelector(width, height int) (*Selection, error) {
	model := NewSelectorModel(width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(SelectorModel)
	if !ok || m.IsQuitting() {
		return nil, nil
	}

	return m.Selected(), nil
}
