// Package tracker defines the persisted record shapes for habits, reminders,
// calendar events, and journal entries, along with the pure functions that
// operate on them.
package tracker

import (
	"sort"
	"strings"
	"time"
)

const (
	// LayoutDay is the ISO day key used across all documents.
	LayoutDay = "2006-01-02"

	// LayoutClock is the wall-clock format for reminders and event times.
	LayoutClock = "15:04"

	// LayoutModified is the human-readable journal modification stamp.
	LayoutModified = "02 Jan 2006  15:04"
)

// Log maps an ISO day key to the per-habit done flags for that day. A day may
// reference habit names that are no longer tracked; deleting a habit keeps
// its history.
type Log map[string]map[string]bool

// HabitData is the habit document: tracked habit names in display order plus
// the full check-off log.
type HabitData struct {
	Habits []string `json:"habits"`
	Log    Log      `json:"log"`
}

// NewHabitData returns an empty habit document.
func NewHabitData() *HabitData {
	return &HabitData{Habits: []string{}, Log: Log{}}
}

// Has reports whether name is a tracked habit.
func (d *HabitData) Has(name string) bool {
	for _, h := range d.Habits {
		if h == name {
			return true
		}
	}
	return false
}

// Schedule is the reminder document: HH:MM values, unique, kept ascending.
type Schedule struct {
	Reminders []string `json:"reminders"`
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{Reminders: []string{}}
}

// Has reports whether clock is already scheduled.
func (s *Schedule) Has(clock string) bool {
	for _, r := range s.Reminders {
		if r == clock {
			return true
		}
	}
	return false
}

// Event is a single dated calendar item. Time is "" for timeless events.
type Event struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

// Events maps an ISO day key to that day's events, sorted by time ascending
// with timeless events last.
type Events map[string][]Event

// JournalEntry holds the trimmed free text for one day. An entry with empty
// text cannot exist; saving empty text removes the day.
type JournalEntry struct {
	Text     string `json:"text"`
	Modified string `json:"modified"`
}

// Journal maps an ISO day key to at most one entry.
type Journal map[string]JournalEntry

// DayKey formats t as an ISO day key.
func DayKey(t time.Time) string {
	return t.Format(LayoutDay)
}

// ParseClock validates a strict 24-hour HH:MM value.
func ParseClock(s string) error {
	_, err := time.Parse(LayoutClock, s)
	return err
}

// SortDayEvents orders a day's events by time ascending, timeless last.
// The sort is stable so same-minute events keep insertion order.
func SortDayEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return eventSortKey(events[i]) < eventSortKey(events[j])
	})
}

func eventSortKey(e Event) string {
	if strings.TrimSpace(e.Time) == "" {
		return "99:99"
	}
	return e.Time
}
