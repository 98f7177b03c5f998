// Package daemon polls the persisted schedule and events against the wall
// clock and dispatches reminder notifications. It only ever reads the
// store; the interactive loop is the sole writer. State is reloaded fresh
// on every tick so UI changes are observed within one poll interval.
package daemon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/habit/pkg/notify"
	"tableflip.dev/habit/pkg/store"
	"tableflip.dev/habit/pkg/tracker"
)

// DefaultInterval is the poll granularity. Reminder times carry minute
// resolution, so anything finer than the minute just bounds latency.
const DefaultInterval = 10 * time.Second

// Daemon is the reminder poll loop. The zero value is not usable; construct
// with New.
type Daemon struct {
	store    store.Persistence
	notifier notify.Notifier
	interval time.Duration

	// now is the clock source, injectable for tests.
	now func() time.Time

	// fired dedupes notifications per (day, identity) for the process
	// lifetime. Keys from previous days are evicted at day rollover.
	fired    map[string]struct{}
	firedDay string
}

// Option adjusts a Daemon at construction.
type Option func(*Daemon)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(dm *Daemon) { dm.interval = d }
}

// WithClock overrides the wall-clock source.
func WithClock(now func() time.Time) Option {
	return func(dm *Daemon) { dm.now = now }
}

// New builds a daemon over the given store and notifier.
func New(p store.Persistence, n notify.Notifier, opts ...Option) *Daemon {
	d := &Daemon{
		store:    p,
		notifier: n,
		interval: DefaultInterval,
		now:      time.Now,
		fired:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run polls until ctx is cancelled. Store read failures skip the tick;
// nothing escapes the loop.
func (d *Daemon) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.poll(d.now())
		}
	}
}

// CheckIn sends the launch notification: pending habits for today, or an
// all-done message. Nothing is sent when no habits are tracked.
func (d *Daemon) CheckIn() {
	data, err := d.store.LoadHabits()
	if err != nil || len(data.Habits) == 0 {
		return
	}
	today := tracker.DayKey(d.now())
	pending := unchecked(data, today)
	if len(pending) > 0 {
		d.notifier.Notify("HABIT — daily check-in",
			fmt.Sprintf("%d pending: %s", len(pending), strings.Join(pending, ", ")))
	} else {
		d.notifier.Notify("HABIT — all done", "All habits checked ✓")
	}
}

// poll runs one tick at the given instant.
func (d *Daemon) poll(now time.Time) {
	today := tracker.DayKey(now)
	clock := now.Format(tracker.LayoutClock)
	d.rollover(today)

	sched, err := d.store.LoadSchedule()
	if err == nil {
		for _, t := range sched.Reminders {
			key := today + "-" + t
			if t != clock {
				continue
			}
			if _, done := d.fired[key]; done {
				continue
			}
			d.notifyReminder(t, today)
			d.fired[key] = struct{}{}
		}
	}

	events, err := d.store.LoadEvents()
	if err == nil {
		for _, ev := range events[today] {
			key := "ev-" + today + "-" + ev.Time + "-" + ev.Title
			if ev.Time != clock {
				continue
			}
			if _, done := d.fired[key]; done {
				continue
			}
			d.notifier.Notify("Event: "+ev.Title, ev.Notes)
			d.fired[key] = struct{}{}
		}
	}
}

func (d *Daemon) notifyReminder(clock, today string) {
	title := fmt.Sprintf("HABIT reminder (%s)", clock)
	data, err := d.store.LoadHabits()
	if err != nil {
		// Schedule matched but habit data is unreadable right now; still
		// remind, just without the pending list.
		d.notifier.Notify(title, "Daily check-in")
		return
	}
	pending := unchecked(data, today)
	if len(pending) > 0 {
		d.notifier.Notify(title, "Pending: "+strings.Join(pending, ", "))
	} else {
		d.notifier.Notify(title, "All done ✓")
	}
}

// rollover drops firing records from previous days. Keys embed the day, so
// this is purely a memory bound, never a correctness concern.
func (d *Daemon) rollover(today string) {
	if d.firedDay == today {
		return
	}
	if d.firedDay != "" {
		for key := range d.fired {
			if !strings.Contains(key, today) {
				delete(d.fired, key)
			}
		}
	}
	d.firedDay = today
}

func unchecked(data *tracker.HabitData, day string) []string {
	var pending []string
	for _, h := range data.Habits {
		if !tracker.CheckedOn(data.Log, h, day) {
			pending = append(pending, h)
		}
	}
	return pending
}
