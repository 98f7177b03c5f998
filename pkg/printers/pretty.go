// Package printers renders tracker state for the one-shot CLI commands.
package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/habit/pkg/tracker"
)

type PrettyPrint struct{}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Habits prints the tracked habits with today's check state and streaks.
func (pp *PrettyPrint) Habits(data *tracker.HabitData, now time.Time) {
	if len(data.Habits) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	today := tracker.DayKey(now)
	tbl := uitable.New()
	tbl.Separator = "   "

	for _, h := range data.Habits {
		check := "□"
		if tracker.CheckedOn(data.Log, h, today) {
			check = "■"
		}
		tbl.AddRow(check, h, streakCell(tracker.Streak(data.Log, h, now)))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Reminders prints the schedule, one time per row.
func (pp *PrettyPrint) Reminders(sched *tracker.Schedule) {
	if len(sched.Reminders) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}
	t := color.New()
	for _, r := range sched.Reminders {
		_, _ = t.Printf("  %s\n", r)
	}
	_, _ = t.Println("")
}

func streakCell(streak int) string {
	c := color.New(color.Faint)
	switch {
	case streak >= 7:
		return color.New(color.FgHiYellow).Sprintf("🔥 %d days", streak)
	case streak > 1:
		return c.Sprintf("%d days", streak)
	case streak == 1:
		return c.Sprint("1 day")
	}
	return ""
}
