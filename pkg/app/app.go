// Package app provides the high-level operations over the persisted tracker
// state. It is the single writer: the UI and CLI mutate only through a
// Service, and every operation reloads the affected document, mutates it,
// and saves the whole document back.
package app

import (
	"errors"
	"strings"
	"time"

	"tableflip.dev/habit/pkg/store"
	"tableflip.dev/habit/pkg/tracker"
)

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrExists        = errors.New("app: already exists")
	ErrBadClock      = errors.New("app: invalid time, use HH:MM (24h)")
	ErrEmptyName     = errors.New("app: habit name required")
	ErrEmptyTitle    = errors.New("app: event title required")
	ErrOutOfRange    = errors.New("app: index out of range")
)

// Service wraps persistence so the TUI and CLI share mutation logic.
type Service struct {
	Persistence store.Persistence
}

// HabitData loads the habit document.
func (s *Service) HabitData() (*tracker.HabitData, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.LoadHabits()
}

// Schedule loads the reminder schedule.
func (s *Service) Schedule() (*tracker.Schedule, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.LoadSchedule()
}

// Events loads the full event document.
func (s *Service) Events() (tracker.Events, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.LoadEvents()
}

// Journal loads the full journal document.
func (s *Service) Journal() (tracker.Journal, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.LoadJournal()
}

// AddHabit appends a new habit and returns its position. The name is
// trimmed; a duplicate yields ErrExists without mutation.
func (s *Service) AddHabit(name string) (int, error) {
	if s.Persistence == nil {
		return 0, ErrNoPersistence
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}
	d, err := s.Persistence.LoadHabits()
	if err != nil {
		return 0, err
	}
	if d.Has(name) {
		return 0, ErrExists
	}
	d.Habits = append(d.Habits, name)
	if err := s.Persistence.SaveHabits(d); err != nil {
		return 0, err
	}
	return len(d.Habits) - 1, nil
}

// DeleteHabit removes the habit at index from the tracked list. The log is
// deliberately left alone so history survives deletion.
func (s *Service) DeleteHabit(index int) (string, error) {
	if s.Persistence == nil {
		return "", ErrNoPersistence
	}
	d, err := s.Persistence.LoadHabits()
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(d.Habits) {
		return "", ErrOutOfRange
	}
	name := d.Habits[index]
	d.Habits = append(d.Habits[:index], d.Habits[index+1:]...)
	if err := s.Persistence.SaveHabits(d); err != nil {
		return "", err
	}
	return name, nil
}

// ToggleHabit flips the habit's done flag for the given day and reports the
// new state.
func (s *Service) ToggleHabit(name string, day time.Time) (bool, error) {
	if s.Persistence == nil {
		return false, ErrNoPersistence
	}
	d, err := s.Persistence.LoadHabits()
	if err != nil {
		return false, err
	}
	key := tracker.DayKey(day)
	if d.Log == nil {
		d.Log = tracker.Log{}
	}
	if d.Log[key] == nil {
		d.Log[key] = map[string]bool{}
	}
	d.Log[key][name] = !d.Log[key][name]
	if err := s.Persistence.SaveHabits(d); err != nil {
		return false, err
	}
	return d.Log[key][name], nil
}

// AddReminder validates and inserts a reminder time, keeping the schedule
// sorted ascending. Bad input yields ErrBadClock, duplicates ErrExists.
func (s *Service) AddReminder(clock string) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	clock = strings.TrimSpace(clock)
	if err := tracker.ParseClock(clock); err != nil {
		return ErrBadClock
	}
	sched, err := s.Persistence.LoadSchedule()
	if err != nil {
		return err
	}
	if sched.Has(clock) {
		return ErrExists
	}
	sched.Reminders = append(sched.Reminders, clock)
	// Zero-padded HH:MM sorts correctly as strings.
	for i := len(sched.Reminders) - 1; i > 0; i-- {
		if sched.Reminders[i] < sched.Reminders[i-1] {
			sched.Reminders[i], sched.Reminders[i-1] = sched.Reminders[i-1], sched.Reminders[i]
		}
	}
	return s.Persistence.SaveSchedule(sched)
}

// DeleteReminder removes the reminder at index.
func (s *Service) DeleteReminder(index int) (string, error) {
	if s.Persistence == nil {
		return "", ErrNoPersistence
	}
	sched, err := s.Persistence.LoadSchedule()
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(sched.Reminders) {
		return "", ErrOutOfRange
	}
	clock := sched.Reminders[index]
	sched.Reminders = append(sched.Reminders[:index], sched.Reminders[index+1:]...)
	if err := s.Persistence.SaveSchedule(sched); err != nil {
		return "", err
	}
	return clock, nil
}

// AddEvent appends an event to the given day and re-sorts the day's
// sequence (time ascending, timeless last). The title must be non-empty.
func (s *Service) AddEvent(day time.Time, ev tracker.Event) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	ev.Title = strings.TrimSpace(ev.Title)
	if ev.Title == "" {
		return ErrEmptyTitle
	}
	events, err := s.Persistence.LoadEvents()
	if err != nil {
		return err
	}
	key := tracker.DayKey(day)
	events[key] = append(events[key], ev)
	tracker.SortDayEvents(events[key])
	return s.Persistence.SaveEvents(events)
}

// DeleteEvent removes the event at index for the given day. Removing the
// last event for a day drops the day key entirely.
func (s *Service) DeleteEvent(day time.Time, index int) (string, error) {
	if s.Persistence == nil {
		return "", ErrNoPersistence
	}
	events, err := s.Persistence.LoadEvents()
	if err != nil {
		return "", err
	}
	key := tracker.DayKey(day)
	list := events[key]
	if index < 0 || index >= len(list) {
		return "", ErrOutOfRange
	}
	title := list[index].Title
	list = append(list[:index], list[index+1:]...)
	if len(list) == 0 {
		delete(events, key)
	} else {
		events[key] = list
	}
	if err := s.Persistence.SaveEvents(events); err != nil {
		return "", err
	}
	return title, nil
}

// SaveJournal upserts the day's journal entry with a fresh modification
// stamp, or deletes it when the trimmed text is empty. Returns true when an
// entry exists after the call.
func (s *Service) SaveJournal(day time.Time, text string, now time.Time) (bool, error) {
	if s.Persistence == nil {
		return false, ErrNoPersistence
	}
	journal, err := s.Persistence.LoadJournal()
	if err != nil {
		return false, err
	}
	key := tracker.DayKey(day)
	text = strings.TrimSpace(text)
	if text == "" {
		delete(journal, key)
		if err := s.Persistence.SaveJournal(journal); err != nil {
			return false, err
		}
		return false, nil
	}
	journal[key] = tracker.JournalEntry{
		Text:     text,
		Modified: now.Format(tracker.LayoutModified),
	}
	if err := s.Persistence.SaveJournal(journal); err != nil {
		return false, err
	}
	return true, nil
}
