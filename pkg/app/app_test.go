package app

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/habit/pkg/store"
	"tableflip.dev/habit/pkg/tracker"
)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

func testService(t *testing.T) *Service {
	t.Helper()
	p, err := store.Load(dirConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return &Service{Persistence: p}
}

var noon = time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

func TestAddHabit(t *testing.T) {
	svc := testService(t)
	idx, err := svc.AddHabit("  Meditate  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if idx != 0 {
		t.Fatalf("expected position 0, got %d", idx)
	}
	if _, err := svc.AddHabit("Read"); err != nil {
		t.Fatalf("add second: %v", err)
	}
	d, err := svc.HabitData()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(d.Habits, []string{"Meditate", "Read"}) {
		t.Fatalf("unexpected habit list: %v", d.Habits)
	}
}

func TestAddHabitDuplicate(t *testing.T) {
	svc := testService(t)
	if _, err := svc.AddHabit("Meditate"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddHabit("Meditate"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	d, _ := svc.HabitData()
	if len(d.Habits) != 1 {
		t.Fatalf("duplicate add mutated the list: %v", d.Habits)
	}
}

func TestDeleteHabitPreservesLog(t *testing.T) {
	svc := testService(t)
	if _, err := svc.AddHabit("Meditate"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.ToggleHabit("Meditate", noon); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	name, err := svc.DeleteHabit(0)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if name != "Meditate" {
		t.Fatalf("expected deleted name Meditate, got %q", name)
	}
	d, _ := svc.HabitData()
	if len(d.Habits) != 0 {
		t.Fatalf("habit list not empty: %v", d.Habits)
	}
	if !d.Log["2024-03-05"]["Meditate"] {
		t.Fatalf("orphaned log history was lost: %v", d.Log)
	}
}

func TestToggleHabitFlips(t *testing.T) {
	svc := testService(t)
	if _, err := svc.AddHabit("Read"); err != nil {
		t.Fatalf("add: %v", err)
	}
	on, err := svc.ToggleHabit("Read", noon)
	if err != nil || !on {
		t.Fatalf("expected first toggle on, got %v %v", on, err)
	}
	off, err := svc.ToggleHabit("Read", noon)
	if err != nil || off {
		t.Fatalf("expected second toggle off, got %v %v", off, err)
	}
}

func TestAddReminderSortsAscending(t *testing.T) {
	svc := testService(t)
	if err := svc.AddReminder("09:00"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddReminder("07:30"); err != nil {
		t.Fatalf("add: %v", err)
	}
	sched, _ := svc.Schedule()
	if !reflect.DeepEqual(sched.Reminders, []string{"07:30", "09:00"}) {
		t.Fatalf("expected sorted schedule, got %v", sched.Reminders)
	}
}

func TestAddReminderDuplicateAndInvalid(t *testing.T) {
	svc := testService(t)
	if err := svc.AddReminder("09:00"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddReminder("09:00"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if err := svc.AddReminder("25:00"); !errors.Is(err, ErrBadClock) {
		t.Fatalf("expected ErrBadClock, got %v", err)
	}
	sched, _ := svc.Schedule()
	if !reflect.DeepEqual(sched.Reminders, []string{"09:00"}) {
		t.Fatalf("rejected adds mutated schedule: %v", sched.Reminders)
	}
}

func TestAddEventKeepsDayOrdered(t *testing.T) {
	svc := testService(t)
	if err := svc.AddEvent(noon, tracker.Event{Title: "Doctor", Time: "14:00", Notes: "bring forms"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddEvent(noon, tracker.Event{Title: "Standup", Time: "09:00"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	events, _ := svc.Events()
	day := events["2024-03-05"]
	if len(day) != 2 || day[0].Title != "Standup" || day[1].Title != "Doctor" {
		t.Fatalf("unexpected order: %v", day)
	}
}

func TestAddEventEmptyTitle(t *testing.T) {
	svc := testService(t)
	if err := svc.AddEvent(noon, tracker.Event{Title: "   "}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestDeleteEventDropsEmptyDay(t *testing.T) {
	svc := testService(t)
	if err := svc.AddEvent(noon, tracker.Event{Title: "Standup", Time: "09:00"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	title, err := svc.DeleteEvent(noon, 0)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if title != "Standup" {
		t.Fatalf("expected Standup, got %q", title)
	}
	events, _ := svc.Events()
	if _, ok := events["2024-03-05"]; ok {
		t.Fatalf("expected day key removed, got %v", events)
	}
}

func TestSaveJournalWhitespaceDeletes(t *testing.T) {
	svc := testService(t)
	kept, err := svc.SaveJournal(noon, "slow day", noon)
	if err != nil || !kept {
		t.Fatalf("expected entry saved, got %v %v", kept, err)
	}
	journal, _ := svc.Journal()
	if journal["2024-03-05"].Text != "slow day" {
		t.Fatalf("unexpected journal: %v", journal)
	}
	kept, err = svc.SaveJournal(noon, "  ", noon)
	if err != nil || kept {
		t.Fatalf("expected entry deleted, got %v %v", kept, err)
	}
	journal, _ = svc.Journal()
	if _, ok := journal["2024-03-05"]; ok {
		t.Fatalf("expected entry removed, got %v", journal)
	}
}

func TestSaveJournalStampsModified(t *testing.T) {
	svc := testService(t)
	when := time.Date(2024, time.March, 5, 21, 12, 0, 0, time.UTC)
	if _, err := svc.SaveJournal(noon, "note", when); err != nil {
		t.Fatalf("save: %v", err)
	}
	journal, _ := svc.Journal()
	if got := journal["2024-03-05"].Modified; got != "05 Mar 2024  21:12" {
		t.Fatalf("unexpected modified stamp %q", got)
	}
}

func TestNilPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.AddHabit("x"); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}
