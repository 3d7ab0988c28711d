package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/qmaze/internal/storage"
)

// History layout constants
const (
	maxHistory = 100 // Max sessions to load
)

// HistoryStore is the read side of session storage.
type HistoryStore interface {
	RecentSessions(ctx context.Context, limit int) ([]storage.SessionRecord, error)
	TopScores(ctx context.Context, difficulty string, limit int) ([]storage.SessionRecord, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Filter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Filter},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "recent/top"),
		),
		Filter: key.NewBinding(
			key.WithKeys("right", "l", "left", "h"),
			key.WithHelp("←/→", "difficulty"),
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

// HistoryModel lists stored sessions, either most recent or best first.
type HistoryModel struct {
	store     HistoryStore
	filters   []string // "" means every difficulty
	filter    int
	top       bool
	records   []storage.SessionRecord
	err       error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history screen. A nil store shows an empty list.
func NewHistoryModel(store HistoryStore, difficulties []string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:   store,
		filters: append([]string{""}, difficulties...),
		keys:    DefaultHistoryKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with the history columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 12},
		{Title: "Level", Width: 8},
		{Title: "Result", Width: 16},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 6},
		{Title: "Acc", Width: 5},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// load refreshes the records for the current mode and filter.
func (m *HistoryModel) load() {
	m.records, m.err = nil, nil
	if m.store != nil {
		ctx := context.Background()
		if m.top {
			m.records, m.err = m.store.TopScores(ctx, m.filters[m.filter], maxHistory)
		} else {
			m.records, m.err = m.store.RecentSessions(ctx, maxHistory)
			m.records = filterRecords(m.records, m.filters[m.filter])
		}
	}
	m.table.SetRows(historyRows(m.records))
	m.table.GotoTop()
}

func filterRecords(recs []storage.SessionRecord, difficulty string) []storage.SessionRecord {
	if difficulty == "" {
		return recs
	}
	out := recs[:0:0]
	for _, r := range recs {
		if r.Difficulty == difficulty {
			out = append(out, r)
		}
	}
	return out
}

// historyRows formats records for the table.
func historyRows(recs []storage.SessionRecord) []table.Row {
	rows := make([]table.Row, len(recs))
	for i, r := range recs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.PlayerName,
			r.Difficulty,
			fmt.Sprintf("%s (%s)", r.Result, r.Reason),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d:%02d", r.TimeTaken/60, r.TimeTaken%60),
			fmt.Sprintf("%.0f%%", r.Accuracy()*100),
			r.EndedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.top = !m.top
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			step := 1
			if s := msg.String(); s == "left" || s == "h" {
				step = len(m.filters) - 1
			}
			m.filter = (m.filter + step) % len(m.filters)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(historyRows(m.records))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	mode := "RECENT SESSIONS"
	if m.top {
		mode = "HIGH SCORES"
	}
	if f := m.filters[m.filter]; f != "" {
		mode += " - " + strings.ToUpper(f)
	}
	b.WriteString(titleStyle.Render(centerText(mode, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("History unavailable:\n" + m.err.Error())
	case len(m.records) == 0:
		return emptyStyle.Render("No sessions recorded yet.\nFinish a maze to appear here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen on its own.
func RunHistory(store HistoryStore, difficulties []string, width, height int) error {
	p := tea.NewProgram(historyProgram{NewHistoryModel(store, difficulties, width, height)}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// historyProgram adapts HistoryModel to tea.Model for standalone use.
type historyProgram struct{ HistoryModel }

func (p historyProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := p.HistoryModel.Update(msg)
	if m.IsQuitting() || m.IsGoingBack() {
		return historyProgram{m}, tea.Quit
	}
	return historyProgram{m}, cmd
}
