package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/qmaze/internal/config"
)

// menuChoice is what the menu asks the app to do next.
type menuChoice int

const (
	choiceNone menuChoice = iota
	choicePlay
	choiceHistory
	choiceQuit
)

// menuItem is one row of the main menu.
type menuItem struct {
	choice     menuChoice
	difficulty config.Difficulty
	title      string
	detail     string
	color      string
}

// MenuModel is the title screen: player name plus difficulty picker.
type MenuModel struct {
	items  []menuItem
	cursor int
	name   textinput.Model
	keys   KeyMap
	width  int
	height int
	chosen *menuItem
}

// NewMenuModel builds the menu from the loaded profiles with the cursor on
// the initial difficulty.
func NewMenuModel(profiles *config.Profiles, playerName string, initial config.Difficulty, width, height int) MenuModel {
	var items []menuItem
	for _, k := range profiles.Keys() {
		p, _ := profiles.Lookup(k)
		title := p.Name
		if title == "" {
			title = string(k)
		}
		items = append(items, menuItem{
			choice:     choicePlay,
			difficulty: k,
			title:      title,
			detail: fmt.Sprintf("%dx%d maze, %d lives, %s",
				p.MazeRows, p.MazeCols, p.Lives, clock(p.TotalTimeLimit())),
			color: p.Color,
		})
	}
	items = append(items,
		menuItem{choice: choiceHistory, title: "History"},
		menuItem{choice: choiceQuit, title: "Quit"},
	)

	ti := textinput.New()
	ti.Placeholder = "Runner"
	ti.Prompt = "Name: "
	ti.CharLimit = 24
	ti.Width = 24
	ti.SetValue(playerName)

	if _, ok := profiles.Lookup(initial); !ok {
		initial = config.DifficultyMedium
	}
	cursor := 0
	for i, it := range items {
		if it.choice == choicePlay && it.difficulty == initial {
			cursor = i
		}
	}

	return MenuModel{
		items:  items,
		cursor: cursor,
		name:   ti,
		keys:   DefaultKeyMap(),
		width:  width,
		height: height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.name.Focused() {
			return m.updateName(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) updateName(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab", "esc":
		m.name.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	switch {
	case msg.String() == "tab" || msg.String() == "n":
		return m, m.name.Focus()
	case key.Matches(msg, m.keys.Quit):
		m.chosen = &menuItem{choice: choiceQuit}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		it := m.items[m.cursor]
		m.chosen = &it
	}
	return m, nil
}

// take returns the pending choice and clears it.
func (m *MenuModel) take() (menuItem, bool) {
	if m.chosen == nil {
		return menuItem{}, false
	}
	it := *m.chosen
	m.chosen = nil
	return it, true
}

// PlayerName returns the entered name, or the placeholder when empty.
func (m MenuModel) PlayerName() string {
	if n := strings.TrimSpace(m.name.Value()); n != "" {
		return n
	}
	return m.name.Placeholder
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Render("Q U I Z   M A Z E")
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.name.View(), m.width))
	b.WriteString("\n\n")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	for i, it := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if it.color != "" {
			style = style.Foreground(lipgloss.Color(it.color))
		}
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true)
		}
		line := cursor + style.Render(fmt.Sprintf("%-8s", it.title))
		if it.detail != "" {
			line += "  " + dim.Render(it.detail)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Edit name  |  Q: Quit"
	b.WriteString(dim.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}
