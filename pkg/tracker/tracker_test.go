package tracker

import (
	"testing"
	"time"
)

func day(t time.Time) string { return DayKey(t) }

func TestStreakZeroWhenTodayUnchecked(t *testing.T) {
	today := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	log := Log{
		day(today.AddDate(0, 0, -1)): {"Meditate": true},
		day(today.AddDate(0, 0, -2)): {"Meditate": true},
	}
	if got := Streak(log, "Meditate", today); got != 0 {
		t.Fatalf("expected streak 0 when today unchecked, got %d", got)
	}
}

func TestStreakCountsConsecutiveRunEndingToday(t *testing.T) {
	today := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	log := Log{
		day(today):                   {"Meditate": true},
		day(today.AddDate(0, 0, -1)): {"Meditate": true},
		day(today.AddDate(0, 0, -2)): {"Meditate": true},
		// gap at -3
		day(today.AddDate(0, 0, -4)): {"Meditate": true},
	}
	if got := Streak(log, "Meditate", today); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestStreakIgnoresOtherHabits(t *testing.T) {
	today := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	log := Log{
		day(today): {"Read": true, "Meditate": false},
	}
	if got := Streak(log, "Meditate", today); got != 0 {
		t.Fatalf("expected streak 0 for explicit false, got %d", got)
	}
	if got := Streak(log, "Read", today); got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}
}

func TestCompletionRatioEmptyHabitList(t *testing.T) {
	log := Log{"2024-03-05": {"Ghost": true}}
	if got := CompletionRatio(log, nil, "2024-03-05"); got != 0.0 {
		t.Fatalf("expected 0.0 for empty habit list, got %f", got)
	}
}

func TestCompletionRatio(t *testing.T) {
	log := Log{"2024-03-05": {"Read": true, "Run": false}}
	habits := []string{"Read", "Run", "Meditate"}
	got := CompletionRatio(log, habits, "2024-03-05")
	want := 1.0 / 3.0
	if got != want {
		t.Fatalf("expected %f, got %f", want, got)
	}
	if got := CompletionRatio(log, habits, "2024-03-06"); got != 0.0 {
		t.Fatalf("expected 0.0 for unlogged day, got %f", got)
	}
}

func TestParseClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		if err := ParseClock(v); err != nil {
			t.Fatalf("expected %q to parse, got %v", v, err)
		}
	}
	invalid := []string{"", "24:00", "12:60", "9am", "12", "12:3x", "noonish"}
	for _, v := range invalid {
		if err := ParseClock(v); err == nil {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}

func TestSortDayEventsTimelessLast(t *testing.T) {
	events := []Event{
		{Title: "Doctor", Time: "14:00"},
		{Title: "Someday", Time: ""},
		{Title: "Standup", Time: "09:00"},
	}
	SortDayEvents(events)
	want := []string{"Standup", "Doctor", "Someday"}
	for i, title := range want {
		if events[i].Title != title {
			t.Fatalf("position %d: want %s, got %s", i, title, events[i].Title)
		}
	}
}

func TestSortDayEventsStableWithinMinute(t *testing.T) {
	events := []Event{
		{Title: "First", Time: "09:00"},
		{Title: "Second", Time: "09:00"},
	}
	SortDayEvents(events)
	if events[0].Title != "First" || events[1].Title != "Second" {
		t.Fatalf("expected insertion order kept for equal times, got %v", events)
	}
}

func TestHabitDataHas(t *testing.T) {
	d := NewHabitData()
	d.Habits = append(d.Habits, "Read")
	if !d.Has("Read") {
		t.Fatalf("expected Has to find Read")
	}
	if d.Has("read") {
		t.Fatalf("habit names are case sensitive")
	}
}
