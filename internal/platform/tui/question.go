package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/qmaze/internal/questions"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	pickStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// questionView renders an open question round as a panel of the given width.
func questionView(r *questions.Round, width int) string {
	q := r.Question()
	width = max(width, 30)
	inner := width - 8

	var b strings.Builder
	header := q.Category
	if header == "" {
		header = "question"
	}
	timer := fmt.Sprintf("%ds", r.RemainingSeconds())
	if r.RemainingSeconds() <= 3 && !r.Answered() {
		timer = badStyle.Render(timer)
	}
	gap := max(inner-lipgloss.Width(header)-lipgloss.Width(timer), 1)
	b.WriteString(dimStyle.Render(strings.ToUpper(header)) + strings.Repeat(" ", gap) + timer)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Bold(true).Render(q.Text))
	b.WriteString("\n\n")

	ans, answered := r.Answer()
	for i, opt := range q.Options {
		line := fmt.Sprintf(" %d. %s ", i+1, opt)
		switch {
		case answered && i == q.Correct:
			line = goodStyle.Render(line + "✓")
		case answered && i == ans.Selected:
			line = badStyle.Render(line + "✗")
		case !answered && i == r.Selected():
			line = pickStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case !answered:
		b.WriteString(dimStyle.Render("↑/↓ choose  enter confirm  1-4 answer"))
	case ans.TimedOut():
		b.WriteString(badStyle.Render("Time's up! You lose a life."))
	case ans.Correct:
		b.WriteString(goodStyle.Render("Correct!"))
	default:
		b.WriteString(badStyle.Render("Wrong! You lose a life."))
	}

	return panelStyle.Width(width).Render(b.String())
}
