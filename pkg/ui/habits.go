package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/export"
	"tableflip.dev/habit/pkg/tracker"
)

func (m Model) updateHabits(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeMain:
		return m.habitsMain(msg)
	case modeAddHabit:
		return m.habitsAdd(msg)
	case modeConfirmDelete:
		return m.habitsConfirmDelete(msg)
	case modeReminders:
		return m.remindersNav(msg)
	case modeAddReminder:
		return m.remindersAdd(msg)
	}
	return m, nil
}

func (m Model) habitsMain(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	habits := m.data.Habits
	switch msg.String() {
	case "q", "Q":
		return m, tea.Quit
	case "down":
		if len(habits) > 0 {
			m.habitCursor = (m.habitCursor + 1) % len(habits)
		}
	case "up":
		if len(habits) > 0 {
			m.habitCursor = (m.habitCursor - 1 + len(habits)) % len(habits)
		}
	case "space":
		if len(habits) == 0 {
			break
		}
		name := habits[m.habitCursor]
		done, err := m.svc.ToggleHabit(name, m.now())
		if err != nil {
			m.status = "ERR: " + err.Error()
			break
		}
		if done {
			m.status = "✓  Checked:  " + name
		} else {
			m.status = "✗  Unchecked:  " + name
		}
		m.refresh()
	case "a", "A":
		m.mode = modeAddHabit
		m.status = ""
		return m, m.beginInput("habit name", "")
	case "d", "D":
		if len(habits) > 0 {
			m.mode = modeConfirmDelete
		}
	case "r", "R":
		m.mode = modeReminders
		m.remindCursor = 0
	case "e", "E":
		path, err := export.ToFile(m.data, "", m.now())
		if err != nil {
			m.status = "Export failed: " + err.Error()
		} else {
			m.status = "Exported  →  " + path
		}
	}
	return m, nil
}

func (m Model) habitsAdd(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		pos, err := m.svc.AddHabit(name)
		switch {
		case err == nil:
			m.habitCursor = pos
			m.status = "Added:  " + name
			m.refresh()
		case errors.Is(err, app.ErrExists):
			m.status = fmt.Sprintf("'%s' already exists", name)
		case errors.Is(err, app.ErrEmptyName):
			// Empty input is a silent no-op.
		default:
			m.status = "ERR: " + err.Error()
		}
		m.mode = modeMain
		m.endInput()
	case "esc":
		m.mode = modeMain
		m.endInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) habitsConfirmDelete(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// Only an explicit yes deletes; everything else cancels.
	if s := msg.String(); s == "y" || s == "Y" {
		name, err := m.svc.DeleteHabit(m.habitCursor)
		if err != nil {
			m.status = "ERR: " + err.Error()
		} else {
			m.habitCursor = maxInt(0, m.habitCursor-1)
			m.status = "Deleted:  " + name
			m.refresh()
		}
	}
	m.mode = modeMain
	return m, nil
}

func (m Model) remindersNav(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	reminders := m.sched.Reminders
	switch msg.String() {
	case "esc", "q", "Q":
		m.mode = modeMain
	case "down":
		if len(reminders) > 0 {
			m.remindCursor = (m.remindCursor + 1) % len(reminders)
		}
	case "up":
		if len(reminders) > 0 {
			m.remindCursor = (m.remindCursor - 1 + len(reminders)) % len(reminders)
		}
	case "a", "A":
		m.mode = modeAddReminder
		return m, m.beginInput("HH:MM", "")
	case "d", "D":
		if len(reminders) == 0 {
			break
		}
		if _, err := m.svc.DeleteReminder(m.remindCursor); err != nil {
			m.status = "ERR: " + err.Error()
			break
		}
		m.remindCursor = maxInt(0, m.remindCursor-1)
		m.refresh()
	}
	return m, nil
}

func (m Model) remindersAdd(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		clock := strings.TrimSpace(m.input.Value())
		err := m.svc.AddReminder(clock)
		switch {
		case err == nil:
			m.status = "Reminder set:  " + clock
			m.refresh()
		case errors.Is(err, app.ErrBadClock):
			// Keep the prompt open so the time can be corrected.
			m.status = "Invalid — use HH:MM (24h)"
			return m, nil
		case errors.Is(err, app.ErrExists):
			m.status = clock + " already exists"
		default:
			m.status = "ERR: " + err.Error()
		}
		m.mode = modeReminders
		m.endInput()
	case "esc":
		m.mode = modeReminders
		m.endInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) viewHabits() string {
	var b strings.Builder

	welcome := "Welcome  —  " + m.clock.Format("Monday  02 January 2006")
	b.WriteString(headingStyle.Render(welcome) + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", len(welcome))) + "\n\n")

	if len(m.data.Habits) == 0 {
		b.WriteString(dimStyle.Render("No habits yet.") + "\n\n")
		b.WriteString(dimStyle.Render("Press  A  to add your first habit.") + "\n")
	} else {
		today := tracker.DayKey(m.clock)
		for i, habit := range m.data.Habits {
			done := tracker.CheckedOn(m.data.Log, habit, today)
			check := "□"
			if done {
				check = "■"
			}
			line := fmt.Sprintf("  %s   %s%s", check, habit, streakLabel(tracker.Streak(m.data.Log, habit, m.clock)))
			switch {
			case i == m.habitCursor:
				b.WriteString(selectedStyle.Render(line) + "\n\n")
			case done:
				b.WriteString(dimStyle.Render(line) + "\n\n")
			default:
				b.WriteString(line + "\n\n")
			}
		}
	}

	b.WriteString(m.viewFooter([]keyHint{
		{"SPACE", "check/uncheck"},
		{"A", "add habit"},
		{"D", "delete"},
		{"R", "reminders"},
		{"E", "export CSV"},
		{"TAB", "calendar"},
		{"Q", "quit"},
	}))

	switch m.mode {
	case modeAddHabit:
		b.WriteString("\n" + m.viewPrompt("  ADD HABIT  ", "Name:  "+m.input.View()))
	case modeConfirmDelete:
		if len(m.data.Habits) > 0 {
			b.WriteString("\n" + m.viewPrompt("  DELETE HABIT  ",
				fmt.Sprintf("Delete  '%s'?   Y  /  N", m.data.Habits[m.habitCursor])))
		}
	case modeReminders:
		b.WriteString("\n" + m.viewReminders())
	case modeAddReminder:
		b.WriteString("\n" + m.viewPrompt("  ADD REMINDER  ", "Time (HH:MM, 24h):  "+m.input.View()))
	}
	return b.String()
}

func streakLabel(streak int) string {
	switch {
	case streak >= 7:
		return fmt.Sprintf("   🔥 %d days", streak)
	case streak > 1:
		return fmt.Sprintf("   %d days", streak)
	case streak == 1:
		return "   1 day"
	}
	return ""
}

func (m Model) viewReminders() string {
	var lines []string
	lines = append(lines, titleStyle.Render("  REMINDERS  "))
	lines = append(lines, "")
	if len(m.sched.Reminders) == 0 {
		lines = append(lines, dimStyle.Render("no reminders set"))
	} else {
		for i, t := range m.sched.Reminders {
			marker := "    "
			if i == m.remindCursor {
				marker = "▶   "
			}
			lines = append(lines, marker+t)
		}
	}
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("[A] add    [D] delete    [ESC] close"))
	return overlayStyle.Render(strings.Join(lines, "\n"))
}
