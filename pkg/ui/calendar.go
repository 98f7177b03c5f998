package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/habit/pkg/tracker"
)

func (m Model) updateCalendar(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeBrowse:
		return m.calendarBrowse(msg)
	case modeEventTitle:
		return m.eventTitle(msg)
	case modeEventTime:
		return m.eventTime(msg)
	case modeEventNotes:
		return m.eventNotes(msg)
	case modeJournalEdit:
		return m.journalEdit(msg)
	}
	return m, nil
}

func (m Model) calendarBrowse(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q":
		return m, tea.Quit
	case "right":
		m.cursor = m.cursor.Right()
		m.evCursor = 0
	case "left":
		m.cursor = m.cursor.Left()
		m.evCursor = 0
	case "down":
		m.cursor = m.cursor.Down()
		m.evCursor = 0
	case "up":
		m.cursor = m.cursor.Up()
		m.evCursor = 0
	case "]":
		m.cursor = m.cursor.NextMonth()
		m.evCursor = 0
	case "[":
		m.cursor = m.cursor.PrevMonth()
		m.evCursor = 0
	case "n", "N":
		m.evTitle, m.evTime, m.evNotes = "", "", ""
		m.mode = modeEventTitle
		return m, m.beginInput("event title", "")
	case "x", "X":
		m.deleteEvent()
	case "J":
		if evs := m.dayEvents(); len(evs) > 0 {
			m.evCursor = (m.evCursor + 1) % len(evs)
		}
	case "K":
		if evs := m.dayEvents(); len(evs) > 0 {
			m.evCursor = (m.evCursor - 1 + len(evs)) % len(evs)
		}
	case "e", "E":
		m.panel = panelEvents
	case "j":
		m.panel = panelJournal
	case "w", "W":
		day, ok := m.cursor.Date()
		if !ok {
			day = m.now()
		}
		m.editor.SetValue(m.journal[tracker.DayKey(day)].Text)
		m.mode = modeJournalEdit
		m.panel = panelJournal
		return m, m.editor.Focus()
	}
	return m, nil
}

func (m *Model) deleteEvent() {
	day, ok := m.cursor.Date()
	if !ok {
		return
	}
	if len(m.events[tracker.DayKey(day)]) == 0 {
		m.status = "No events to delete"
		return
	}
	title, err := m.svc.DeleteEvent(day, m.evCursor)
	if err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	m.evCursor = maxInt(0, m.evCursor-1)
	m.status = "Deleted:  " + title
	m.refresh()
}

func (m Model) eventTitle(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.evTitle = strings.TrimSpace(m.input.Value())
		m.mode = modeEventTime
		return m, m.beginInput("HH:MM or leave blank", "")
	case "esc":
		m.mode = modeBrowse
		m.endInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) eventTime(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		t := strings.TrimSpace(m.input.Value())
		if t != "" {
			if err := tracker.ParseClock(t); err != nil {
				// Mid-flow validation clears the field rather than
				// aborting the whole flow.
				m.status = "Invalid time, skipped"
				t = ""
			}
		}
		m.evTime = t
		m.mode = modeEventNotes
		return m, m.beginInput("notes (optional)", "")
	case "esc":
		m.mode = modeBrowse
		m.endInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) eventNotes(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.evNotes = strings.TrimSpace(m.input.Value())
		// Commit only now, and only with a title; an empty title discards
		// the whole flow silently.
		if m.evTitle != "" {
			if day, ok := m.cursor.Date(); ok {
				ev := tracker.Event{Title: m.evTitle, Time: m.evTime, Notes: m.evNotes}
				if err := m.svc.AddEvent(day, ev); err != nil {
					m.status = "ERR: " + err.Error()
				} else {
					m.status = "Event added:  " + m.evTitle
					m.panel = panelEvents
					m.refresh()
				}
			}
		}
		m.mode = modeBrowse
		m.endInput()
	case "esc":
		m.mode = modeBrowse
		m.endInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) journalEdit(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Escape saves; a whitespace-only entry clears the day.
		day, ok := m.cursor.Date()
		if !ok {
			day = m.now()
		}
		kept, err := m.svc.SaveJournal(day, m.editor.Value(), m.now())
		switch {
		case err != nil:
			m.status = "ERR: " + err.Error()
		case kept:
			m.status = "Journal saved  ✓"
		default:
			m.status = "Journal cleared"
		}
		m.mode = modeBrowse
		m.panel = panelJournal
		m.editor.Reset()
		m.editor.Blur()
		m.refresh()
	case "ctrl+x":
		m.mode = modeBrowse
		m.editor.Reset()
		m.editor.Blur()
		m.status = "Journal discarded"
	default:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// heatGlyph buckets a day's completion ratio for the month grid.
func heatGlyph(ratio float64) string {
	switch {
	case ratio == 0:
		return "○"
	case ratio < 0.5:
		return "◑"
	case ratio < 1.0:
		return "◕"
	}
	return "●"
}

func dayMarker(hasEvent, hasJournal bool) string {
	switch {
	case hasEvent && hasJournal:
		return "♦"
	case hasEvent:
		return "!"
	case hasJournal:
		return "·"
	}
	return " "
}

func (m Model) viewCalendar() string {
	grid := m.viewMonthGrid()
	panel := m.viewDayPanel()
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", panel)

	var b strings.Builder
	b.WriteString(body + "\n")
	b.WriteString(m.viewFooter(m.calendarHints()))

	switch m.mode {
	case modeEventTitle:
		b.WriteString("\n" + m.viewPrompt("  NEW EVENT  —  Title  ", "Title:  "+m.input.View()))
	case modeEventTime:
		b.WriteString("\n" + m.viewPrompt("  NEW EVENT  —  Time  ", "HH:MM or leave blank:  "+m.input.View()))
	case modeEventNotes:
		b.WriteString("\n" + m.viewPrompt("  NEW EVENT  —  Notes  ", "Notes (optional):  "+m.input.View()))
	case modeJournalEdit:
		b.WriteString("\n" + m.viewJournalEditor())
	}
	return b.String()
}

func (m Model) calendarHints() []keyHint {
	hints := []keyHint{
		{"←→↑↓", "navigate"},
		{"[", "prev month"},
		{"]", "next month"},
		{"N", "new event"},
		{"X", "del event"},
		{"J/K", "select event"},
	}
	if m.panel == panelJournal {
		hints = append(hints, keyHint{"E", "events panel"})
	} else {
		hints = append(hints, keyHint{"j", "journal panel"})
	}
	return append(hints,
		keyHint{"W", "write journal"},
		keyHint{"TAB", "habits"},
		keyHint{"Q", "quit"},
	)
}

func (m Model) viewMonthGrid() string {
	var b strings.Builder
	month := m.cursor.Month

	label := fmt.Sprintf("%s   %d", strings.ToUpper(month.Month.String()), month.Year)
	b.WriteString(dimStyle.Render("◀  [  ") + headingStyle.Render(label) + dimStyle.Render("  ]  ▶") + "\n\n")

	for _, name := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %-5s", name)))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", 7*7)) + "\n")

	today := tracker.DayKey(m.clock)
	for _, week := range month.Grid() {
		for _, day := range week {
			if day == 0 {
				b.WriteString(strings.Repeat(" ", 7))
				continue
			}
			ds := fmt.Sprintf("%04d-%02d-%02d", month.Year, month.Month, day)
			ratio := tracker.CompletionRatio(m.data.Log, m.data.Habits, ds)
			hasEv := len(m.events[ds]) > 0
			hasJ := strings.TrimSpace(m.journal[ds].Text) != ""

			heat := " "
			if len(m.data.Habits) > 0 {
				heat = heatGlyph(ratio)
			}
			cell := fmt.Sprintf("%2d %s%s", day, heat, dayMarker(hasEv, hasJ))

			switch {
			case day == m.cursor.Day:
				b.WriteString(selectedStyle.Render(" " + cell + " "))
			case ds == today:
				b.WriteString(headingStyle.Render("[" + cell + "]"))
			case ratio == 0 && !hasEv && !hasJ:
				b.WriteString(dimStyle.Render(" " + cell + " "))
			default:
				b.WriteString(" " + cell + " ")
			}
		}
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render("○ 0%   ◑ <50%   ◕ <100%   ● done   ! event   · journal   ♦ both"))
	return b.String()
}

func (m Model) viewDayPanel() string {
	day, ok := m.cursor.Date()
	if !ok {
		return ""
	}
	ds := tracker.DayKey(day)

	var b strings.Builder
	heading := day.Format("Monday  02 January 2006")
	b.WriteString(headingStyle.Render(heading) + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", len(heading))) + "\n")

	evLbl, jnlLbl := " EVENTS ", " JOURNAL "
	if m.panel == panelEvents {
		b.WriteString(titleStyle.Render(evLbl) + " " + dimStyle.Render(jnlLbl) + "\n\n")
	} else {
		b.WriteString(dimStyle.Render(evLbl) + " " + titleStyle.Render(jnlLbl) + "\n\n")
	}

	if n := len(m.data.Habits); n > 0 {
		var done []string
		for _, h := range m.data.Habits {
			if tracker.CheckedOn(m.data.Log, h, ds) {
				done = append(done, h)
			}
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d habits", len(done), n)) + "\n")
		if len(done) > 0 {
			b.WriteString(dimStyle.Render("✓ "+strings.Join(done, "  ✓ ")) + "\n")
		}
		b.WriteString("\n")
	}

	if m.panel == panelEvents {
		b.WriteString(m.viewEventsPanel(ds))
	} else {
		b.WriteString(m.viewJournalPanel(ds))
	}
	return b.String()
}

func (m Model) viewEventsPanel(ds string) string {
	events := m.events[ds]
	if len(events) == 0 {
		return dimStyle.Render("No events scheduled.") + "\n\n" +
			dimStyle.Render("Press  N  to add one.")
	}
	var b strings.Builder
	for i, ev := range events {
		line := "  " + ev.Title
		if ev.Time != "" {
			line = "  " + ev.Time + "  " + ev.Title
		}
		if i == m.evCursor {
			b.WriteString(selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString(eventRowStyle.Render(line) + "\n")
		}
		if ev.Notes != "" {
			b.WriteString(dimStyle.Render("      "+ev.Notes) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewJournalPanel(ds string) string {
	entry := m.journal[ds]
	text := strings.TrimSpace(entry.Text)
	if text == "" {
		return dimStyle.Render("No journal entry.") + "\n\n" +
			dimStyle.Render("Press  W  to write.")
	}
	var b strings.Builder
	if entry.Modified != "" {
		b.WriteString(dimStyle.Render("edited "+entry.Modified) + "\n\n")
	}
	width := maxInt(minInt(m.width/3, 60), 24)
	b.WriteString(wordwrap.String(text, width))
	return b.String()
}

func (m Model) viewJournalEditor() string {
	day, ok := m.cursor.Date()
	if !ok {
		day = m.now()
	}
	title := "  JOURNAL  —  " + day.Format("Monday  02 January 2006") + "  "
	footer := "Type freely    ENTER = new line    ESC = save & close    CTRL+X = discard"
	return overlayStyle.Render(
		titleStyle.Render(title) + "\n\n" +
			m.editor.View() + "\n\n" +
			dimStyle.Render(footer))
}
