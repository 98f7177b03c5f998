package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

var (
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headingStyle  = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Reverse(true).Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	eventRowStyle = lipgloss.NewStyle().Faint(true).Reverse(true)
	statusStyle   = lipgloss.NewStyle().Bold(true)
	keyStyle      = lipgloss.NewStyle().Reverse(true)
	overlayStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2)
	tabOnStyle    = lipgloss.NewStyle().Reverse(true).Bold(true)
	tabOffStyle   = lipgloss.NewStyle().Faint(true)
)

func (m Model) viewTopBar() string {
	habitsLbl, calLbl := "  HABITS  ", "  CALENDAR  "
	var left string
	if m.tab == tabHabits {
		left = tabOnStyle.Render(habitsLbl) + "  " + tabOffStyle.Render(calLbl)
	} else {
		left = tabOffStyle.Render(habitsLbl) + "  " + tabOnStyle.Render(calLbl)
	}
	clock := dimStyle.Render("  " + m.clock.Format("Mon  02 Jan  15:04") + "  ")

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(clock)
	if pad < 2 {
		pad = 2
	}
	return left + strings.Repeat(" ", pad) + clock
}

type keyHint struct {
	key   string
	label string
}

// viewFooter renders the status line above the key legend.
func (m Model) viewFooter(hints []keyHint) string {
	var b strings.Builder
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	for _, h := range hints {
		b.WriteString(keyStyle.Render("["+h.key+"]") + dimStyle.Render(" "+h.label+"  "))
	}
	return b.String()
}

func (m Model) viewPrompt(title, body string) string {
	return overlayStyle.Render(
		titleStyle.Render(title) + "\n\n" +
			body + "\n\n" +
			dimStyle.Render("ENTER  confirm      ESC  cancel"))
}
