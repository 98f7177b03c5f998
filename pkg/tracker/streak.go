package tracker

import "time"

// CheckedOn reports whether the habit was marked done on the given day.
func CheckedOn(log Log, name, day string) bool {
	return log[day][name]
}

// Streak counts the consecutive done-days for the habit ending on today.
// A habit not marked done today yields 0 regardless of earlier history; this
// matches the literal check-in rule rather than any grace-day policy.
func Streak(log Log, name string, today time.Time) int {
	streak := 0
	d := today
	for CheckedOn(log, name, DayKey(d)) {
		streak++
		d = d.AddDate(0, 0, -1)
	}
	return streak
}

// CompletionRatio is the fraction of tracked habits done on the given day.
// An empty habit list yields 0.0.
func CompletionRatio(log Log, habits []string, day string) float64 {
	if len(habits) == 0 {
		return 0.0
	}
	done := 0
	for _, h := range habits {
		if log[day][h] {
			done++
		}
	}
	return float64(done) / float64(len(habits))
}
