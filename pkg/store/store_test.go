package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"tableflip.dev/habit/pkg/tracker"
)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

func testStore(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(dirConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return p
}

func TestMissingFilesYieldEmptyDefaults(t *testing.T) {
	p := testStore(t)

	d, err := p.LoadHabits()
	if err != nil {
		t.Fatalf("load habits: %v", err)
	}
	if len(d.Habits) != 0 || len(d.Log) != 0 {
		t.Fatalf("expected empty habit data, got %+v", d)
	}

	s, err := p.LoadSchedule()
	if err != nil {
		t.Fatalf("load schedule: %v", err)
	}
	if len(s.Reminders) != 0 {
		t.Fatalf("expected empty schedule, got %+v", s)
	}

	e, err := p.LoadEvents()
	if err != nil {
		t.Fatalf("load events: %v", err)
	}
	if len(e) != 0 {
		t.Fatalf("expected empty events, got %+v", e)
	}

	j, err := p.LoadJournal()
	if err != nil {
		t.Fatalf("load journal: %v", err)
	}
	if len(j) != 0 {
		t.Fatalf("expected empty journal, got %+v", j)
	}
}

func TestHabitsRoundTrip(t *testing.T) {
	p := testStore(t)
	in := &tracker.HabitData{
		Habits: []string{"Meditate", "Read"},
		Log: tracker.Log{
			"2024-03-05": {"Meditate": true, "Read": false},
		},
	}
	if err := p.SaveHabits(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := p.LoadHabits()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestScheduleRoundTrip(t *testing.T) {
	p := testStore(t)
	in := &tracker.Schedule{Reminders: []string{"07:30", "09:00"}}
	if err := p.SaveSchedule(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := p.LoadSchedule()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v vs %+v", in, out)
	}
}

func TestEventsRoundTrip(t *testing.T) {
	p := testStore(t)
	in := tracker.Events{
		"2024-03-05": {
			{Title: "Standup", Time: "09:00", Notes: ""},
			{Title: "Doctor", Time: "14:00", Notes: "bring forms"},
		},
	}
	if err := p.SaveEvents(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := p.LoadEvents()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v vs %+v", in, out)
	}
}

func TestJournalRoundTrip(t *testing.T) {
	p := testStore(t)
	in := tracker.Journal{
		"2024-03-05": {Text: "slow day", Modified: "05 Mar 2024  21:12"},
	}
	if err := p.SaveJournal(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := p.LoadJournal()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v vs %+v", in, out)
	}
}

func TestMalformedDocumentIsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "habits.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	p, err := Load(dirConfig(dir))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if _, err := p.LoadHabits(); err == nil {
		t.Fatalf("expected parse error for malformed document")
	} else if !strings.Contains(err.Error(), "store: parse habits") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestSaveCreatesDirectoryLazily(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "habit")
	p, err := Load(dirConfig(dir))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if err := p.SaveSchedule(&tracker.Schedule{Reminders: []string{"10:00"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "schedule.json")); err != nil {
		t.Fatalf("expected schedule.json to exist: %v", err)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	p, err := Load(dirConfig(dir))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if err := p.SaveEvents(tracker.Events{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "events.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err: %v", err)
	}
}

func TestDocumentForPath(t *testing.T) {
	cases := map[string]Document{
		"/data/habits.json":     DocHabits,
		"/data/schedule.json":   DocSchedule,
		"/data/events.json":     DocEvents,
		"/data/journal.json":    DocJournal,
		"/data/events.json.tmp": "",
		"/data/other.json":      "",
	}
	for path, want := range cases {
		if got := documentForPath(path); got != want {
			t.Fatalf("%s: want %q, got %q", path, want, got)
		}
	}
}
