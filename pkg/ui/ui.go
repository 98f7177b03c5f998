// Package ui is the interactive terminal front end: two tabs (habits,
// calendar) with modal sub-states driven by key events. All writes go
// through app.Service; the reminder daemon runs elsewhere and only reads.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/calendar"
	"tableflip.dev/habit/pkg/store"
	"tableflip.dev/habit/pkg/tracker"
)

type tab int

const (
	tabHabits tab = iota
	tabCalendar
)

type mode int

const (
	// habits tab
	modeMain mode = iota
	modeAddHabit
	modeConfirmDelete
	modeReminders
	modeAddReminder
	// calendar tab
	modeBrowse
	modeEventTitle
	modeEventTime
	modeEventNotes
	modeJournalEdit
)

type panel int

const (
	panelEvents panel = iota
	panelJournal
)

// clockInterval bounds how stale the top-bar clock can get while idle.
const clockInterval = 10 * time.Second

// Model holds the full interaction state. Loaded documents are snapshots,
// refreshed after every mutation and on store watch events.
type Model struct {
	svc   *app.Service
	watch <-chan store.Event

	tab  tab
	mode mode

	data    *tracker.HabitData
	sched   *tracker.Schedule
	events  tracker.Events
	journal tracker.Journal

	habitCursor  int
	remindCursor int
	evCursor     int
	cursor       calendar.Cursor
	panel        panel

	input  textinput.Model
	editor textarea.Model

	// scratch fields for the multi-step event flow; committed only at the
	// notes step, and only with a non-empty title.
	evTitle string
	evTime  string
	evNotes string

	status string
	clock  time.Time

	width  int
	height int

	now func() time.Time
}

// New builds the model over the Service. watch may be nil; when set, store
// change events trigger a reload so out-of-band writes show up.
func New(svc *app.Service, watch <-chan store.Event) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	ed := textarea.New()
	ed.Placeholder = "Type freely"

	m := Model{
		svc:    svc,
		watch:  watch,
		tab:    tabHabits,
		mode:   modeMain,
		input:  ti,
		editor: ed,
		now:    time.Now,
	}
	m.clock = m.now()
	m.cursor = calendar.CursorOn(m.clock)
	m.refresh()
	return m
}

type tickMsg time.Time
type storeChangedMsg struct{ ev store.Event }

func tick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForStore() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch := m.watch
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{ev}
	}
}

// Init starts the clock and the store watch subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitForStore())
}

// refresh reloads all four documents. Read failures surface on the status
// line; the previous snapshot stays in place.
func (m *Model) refresh() {
	if d, err := m.svc.HabitData(); err == nil {
		m.data = d
	} else {
		m.status = "ERR: " + err.Error()
	}
	if s, err := m.svc.Schedule(); err == nil {
		m.sched = s
	} else {
		m.status = "ERR: " + err.Error()
	}
	if e, err := m.svc.Events(); err == nil {
		m.events = e
	} else {
		m.status = "ERR: " + err.Error()
	}
	if j, err := m.svc.Journal(); err == nil {
		m.journal = j
	} else {
		m.status = "ERR: " + err.Error()
	}
	if m.data == nil {
		m.data = tracker.NewHabitData()
	}
	if m.sched == nil {
		m.sched = tracker.NewSchedule()
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	if n := len(m.data.Habits); m.habitCursor >= n {
		m.habitCursor = maxInt(0, n-1)
	}
	if n := len(m.sched.Reminders); m.remindCursor >= n {
		m.remindCursor = maxInt(0, n-1)
	}
	if n := len(m.dayEvents()); m.evCursor >= n {
		m.evCursor = maxInt(0, n-1)
	}
}

// dayEvents returns the selected day's event sequence, nil when the cursor
// has no selection.
func (m *Model) dayEvents() []tracker.Event {
	day, ok := m.cursor.Date()
	if !ok {
		return nil
	}
	return m.events[tracker.DayKey(day)]
}

// Update is the transition table: (tab, mode) x key -> next state + effect.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(minInt(m.width-12, 80))
		m.editor.SetHeight(maxInt(minInt(m.height-12, 20), 5))
		return m, nil

	case tickMsg:
		m.clock = time.Time(msg)
		return m, tick()

	case storeChangedMsg:
		m.refresh()
		return m, m.waitForStore()

	case tea.KeyPressMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		// Cross-tab switching only from the idle modes.
		if key == "tab" && (m.mode == modeMain || m.mode == modeBrowse) {
			if m.tab == tabHabits {
				m.tab = tabCalendar
				m.mode = modeBrowse
			} else {
				m.tab = tabHabits
				m.mode = modeMain
			}
			m.status = ""
			return m, nil
		}
		if m.tab == tabHabits {
			return m.updateHabits(msg)
		}
		return m.updateCalendar(msg)
	}
	return m, nil
}

// beginInput opens the shared single-line prompt.
func (m *Model) beginInput(placeholder, value string) tea.Cmd {
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return tea.Batch(cmd, textinput.Blink)
}

func (m *Model) endInput() {
	m.input.Reset()
	m.input.Blur()
}

// View renders the active tab plus the status/key footer.
func (m Model) View() string {
	body := m.viewTopBar() + "\n\n"
	if m.tab == tabHabits {
		body += m.viewHabits()
	} else {
		body += m.viewCalendar()
	}
	return body
}

// Run launches the program in the alternate screen.
func Run(svc *app.Service, watch <-chan store.Event) error {
	p := tea.NewProgram(New(svc, watch), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
