package export

import (
	"strings"
	"testing"

	"tableflip.dev/habit/pkg/tracker"
)

func TestWriteCSV(t *testing.T) {
	data := &tracker.HabitData{
		Habits: []string{"Meditate", "Read"},
		Log: tracker.Log{
			"2024-03-06": {"Read": true},
			"2024-03-05": {"Meditate": true, "Read": true},
		},
	}

	var b strings.Builder
	if err := WriteCSV(&b, data); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "date,Meditate,Read\n" +
		"2024-03-05,1,1\n" +
		"2024-03-06,0,1\n"
	if b.String() != want {
		t.Fatalf("csv mismatch:\nwant:\n%s\ngot:\n%s", want, b.String())
	}
}

func TestWriteCSVEmptyLog(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, tracker.NewHabitData()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if b.String() != "date\n" {
		t.Fatalf("expected header only, got %q", b.String())
	}
}

func TestWriteCSVOrphanedHistoryColumnsFollowHabitList(t *testing.T) {
	// A deleted habit's history stays in the log but is not exported once
	// the habit leaves the list; columns come from the list alone.
	data := &tracker.HabitData{
		Habits: []string{"Read"},
		Log: tracker.Log{
			"2024-03-05": {"Read": true, "Meditate": true},
		},
	}
	var b strings.Builder
	if err := WriteCSV(&b, data); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "date,Read\n2024-03-05,1\n"
	if b.String() != want {
		t.Fatalf("csv mismatch: %q", b.String())
	}
}
