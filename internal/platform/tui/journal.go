package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/catmatch/internal/games/catmatch"
	"github.com/vovakirdan/catmatch/internal/registry"
	"github.com/vovakirdan/catmatch/internal/storage"
)

// Journal layout constants
const (
	maxJournalRows = 100
	tabAll         = "All"
)

// Journal is the part of the store the browser reads and edits.
type Journal interface {
	RecentReplays(gameID string, limit int) ([]storage.ReplaySummary, error)
	ReplayByID(id int64) (*catmatch.ReplayRecord, error)
	DeleteReplay(id int64) error
}

// JournalKeyMap defines the key bindings for the journal browser.
type JournalKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Verify  key.Binding
	Delete  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Verify, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Verify, k.Delete, k.Back, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing recorded sessions.
type JournalModel struct {
	tabs      []string // "All" followed by game IDs
	tabCursor int
	journal   Journal
	entries   []storage.ReplaySummary
	status    string
	table     table.Model
	help      help.Model
	keys      JournalKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewJournalModel creates a new journal browser.
func NewJournalModel(journal Journal, width, height int) JournalModel {
	tabs := []string{tabAll}
	for _, g := range registry.List() {
		tabs = append(tabs, g.ID)
	}

	m := JournalModel{
		tabs:    tabs,
		journal: journal,
		keys:    DefaultJournalKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Game", Width: 16},
		{Title: "Recorded", Width: 8},
		{Title: "Moves", Width: 6},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// filter returns the game ID of the current tab, empty for all games.
func (m JournalModel) filter() string {
	if m.tabs[m.tabCursor] == tabAll {
		return ""
	}
	return m.tabs[m.tabCursor]
}

// load reads entries for the current tab.
func (m *JournalModel) load() {
	m.entries = nil
	if m.journal != nil {
		entries, err := m.journal.RecentReplays(m.filter(), maxJournalRows)
		if err != nil {
			m.status = err.Error()
		} else {
			m.entries = entries
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			strconv.FormatInt(e.ID, 10),
			registry.Title(e.GameID),
			strconv.Itoa(e.FinalScore),
			strconv.Itoa(e.MoveCount),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selected returns the entry under the table cursor.
func (m JournalModel) selected() (storage.ReplaySummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return storage.ReplaySummary{}, false
	}
	return m.entries[i], true
}

// verify re-runs the selected record and reports whether it reproduces.
func (m *JournalModel) verify() {
	e, ok := m.selected()
	if !ok {
		return
	}
	rec, err := m.journal.ReplayByID(e.ID)
	switch {
	case err != nil:
		m.status = err.Error()
		return
	case rec == nil:
		m.status = fmt.Sprintf("Replay #%d is gone", e.ID)
		return
	}

	res, err := catmatch.Replay(*rec)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("Replay #%d failed: %v", e.ID, err)
	case res.Matches(*rec):
		m.status = fmt.Sprintf("Replay #%d verified: score %d in %d moves", e.ID, res.Score, res.Moves)
	default:
		m.status = fmt.Sprintf("Replay #%d MISMATCH: recorded %d, replayed %d", e.ID, rec.FinalScore, res.Score)
	}
}

// remove deletes the selected record.
func (m *JournalModel) remove() {
	e, ok := m.selected()
	if !ok {
		return
	}
	if err := m.journal.DeleteReplay(e.ID); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("Deleted replay #%d", e.ID)
	m.load()
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.status = ""
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tabCursor = (m.tabCursor - 1 + len(m.tabs)) % len(m.tabs)
			m.status = ""
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			m.verify()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.remove()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m JournalModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("REPLAY JOURNAL", m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.status))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m JournalModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, id := range m.tabs {
		name := id
		if id != tabAll {
			name = registry.Title(id)
		}
		if i == m.tabCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTableContent renders the table or empty message.
func (m JournalModel) renderTableContent() string {
	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nFinish a game to fill the journal!")
	}

	return m.table.View()
}

// Status returns the last verification or error message.
func (m JournalModel) Status() string {
	return m.status
}

// IsGoingBack returns true if user wants to go back to the selector.
func (m JournalModel) IsGoingBack() bool {
	return m.goingBack
}

// RunJournal runs the journal browser.
// Returns true if user wants to go back to the selector, false if quitting.
func RunJournal(journal Journal, width, height int) (goBack bool, err error) {
	model := NewJournalModel(journal, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(JournalModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
