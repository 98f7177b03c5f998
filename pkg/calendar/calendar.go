// Package calendar provides the month grid and day cursor used by the
// calendar view. Weeks start on Monday; empty grid slots are 0.
package calendar

import "time"

// Month identifies a proleptic calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// First returns the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following month, rolling the year at December.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Prev returns the preceding month, rolling the year at January.
func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Grid returns the month laid out as week rows of seven day numbers, Monday
// first. Slots before the first day and after the last hold 0.
func (m Month) Grid() [][]int {
	offset := mondayIndex(m.First().Weekday())
	days := m.Days()
	total := offset + days
	rows := (total + 6) / 7

	grid := make([][]int, 0, rows)
	for row := 0; row < rows; row++ {
		week := make([]int, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day >= 1 && day <= days {
				week[col] = day
			}
		}
		grid = append(grid, week)
	}
	return grid
}

// mondayIndex maps time.Weekday (Sunday=0) onto a Monday-first column.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// Cursor is a day-of-month selection within a month. Day is 1-based.
type Cursor struct {
	Month Month
	Day   int
}

// CursorOn returns a cursor selecting the day containing t.
func CursorOn(t time.Time) Cursor {
	return Cursor{Month: MonthOf(t), Day: t.Day()}
}

// Date resolves the cursor to a concrete date. The second return is false
// when the day exceeds the month's length (no selection).
func (c Cursor) Date() (time.Time, bool) {
	if c.Day < 1 || c.Day > c.Month.Days() {
		return time.Time{}, false
	}
	return time.Date(c.Month.Year, c.Month.Month, c.Day, 0, 0, 0, 0, time.UTC), true
}

// Right moves one day forward, wrapping to the first day of the next month.
func (c Cursor) Right() Cursor {
	if c.Day < c.Month.Days() {
		return Cursor{Month: c.Month, Day: c.Day + 1}
	}
	return Cursor{Month: c.Month.Next(), Day: 1}
}

// Left moves one day back, wrapping to the last day of the previous month.
func (c Cursor) Left() Cursor {
	if c.Day > 1 {
		return Cursor{Month: c.Month, Day: c.Day - 1}
	}
	prev := c.Month.Prev()
	return Cursor{Month: prev, Day: prev.Days()}
}

// Down moves one week forward, clamped to the last day of the month.
func (c Cursor) Down() Cursor {
	day := c.Day + 7
	if days := c.Month.Days(); day > days {
		day = days
	}
	return Cursor{Month: c.Month, Day: day}
}

// Up moves one week back, clamped to the first day of the month.
func (c Cursor) Up() Cursor {
	day := c.Day - 7
	if day < 1 {
		day = 1
	}
	return Cursor{Month: c.Month, Day: day}
}

// NextMonth advances the displayed month, resetting the day selection.
func (c Cursor) NextMonth() Cursor {
	return Cursor{Month: c.Month.Next(), Day: 1}
}

// PrevMonth retreats the displayed month, resetting the day selection.
func (c Cursor) PrevMonth() Cursor {
	return Cursor{Month: c.Month.Prev(), Day: 1}
}
