// Package store persists the four tracker documents as independent JSON
// files in one data directory. Every save replaces the whole document
// atomically; there are no partial updates and no file locking. Running two
// processes against the same directory is unsupported.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tableflip.dev/habit/pkg/tracker"
)

// Document names one of the persisted collections.
type Document string

const (
	DocHabits   Document = "habits"
	DocSchedule Document = "schedule"
	DocEvents   Document = "events"
	DocJournal  Document = "journal"
)

func (d Document) file() string { return string(d) + ".json" }

// Persistence is the typed load/save contract for the four documents.
// Loading a missing file yields the empty default; loading a malformed file
// is an error for the caller to surface.
type Persistence interface {
	LoadHabits() (*tracker.HabitData, error)
	SaveHabits(*tracker.HabitData) error
	LoadSchedule() (*tracker.Schedule, error)
	SaveSchedule(*tracker.Schedule) error
	LoadEvents() (tracker.Events, error)
	SaveEvents(tracker.Events) error
	LoadJournal() (tracker.Journal, error)
	SaveJournal(tracker.Journal) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence rooted at the configured data directory.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{basePath: basePath}, nil
}

type persistence struct {
	basePath string
}

func (p *persistence) LoadHabits() (*tracker.HabitData, error) {
	d := tracker.NewHabitData()
	if err := p.load(DocHabits, d); err != nil {
		return nil, err
	}
	if d.Habits == nil {
		d.Habits = []string{}
	}
	if d.Log == nil {
		d.Log = tracker.Log{}
	}
	return d, nil
}

func (p *persistence) SaveHabits(d *tracker.HabitData) error {
	return p.save(DocHabits, d)
}

func (p *persistence) LoadSchedule() (*tracker.Schedule, error) {
	s := tracker.NewSchedule()
	if err := p.load(DocSchedule, s); err != nil {
		return nil, err
	}
	if s.Reminders == nil {
		s.Reminders = []string{}
	}
	return s, nil
}

func (p *persistence) SaveSchedule(s *tracker.Schedule) error {
	return p.save(DocSchedule, s)
}

func (p *persistence) LoadEvents() (tracker.Events, error) {
	e := tracker.Events{}
	if err := p.load(DocEvents, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *persistence) SaveEvents(e tracker.Events) error {
	return p.save(DocEvents, e)
}

func (p *persistence) LoadJournal() (tracker.Journal, error) {
	j := tracker.Journal{}
	if err := p.load(DocJournal, &j); err != nil {
		return nil, err
	}
	return j, nil
}

func (p *persistence) SaveJournal(j tracker.Journal) error {
	return p.save(DocJournal, j)
}

// load unmarshals the document into target, leaving target untouched when
// the backing file does not exist yet.
func (p *persistence) load(doc Document, target any) error {
	data, err := os.ReadFile(p.path(doc))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("store: read %s: %w", doc, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("store: parse %s: %w", doc, err)
	}
	return nil
}

// save writes the whole document, creating the data directory lazily and
// replacing the previous file with a rename so the document is never
// observed half-written.
func (p *persistence) save(doc Document, v any) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", doc, err)
	}
	path := p.path(doc)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", doc, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("store: replace %s: %w", doc, err)
	}
	return nil
}

func (p *persistence) path(doc Document) string {
	return filepath.Join(p.basePath, doc.file())
}

// documentForPath maps a file path inside the data directory back to its
// document, or "" for unrelated files (temp files included).
func documentForPath(path string) Document {
	switch filepath.Base(path) {
	case DocHabits.file():
		return DocHabits
	case DocSchedule.file():
		return DocSchedule
	case DocEvents.file():
		return DocEvents
	case DocJournal.file():
		return DocJournal
	}
	return ""
}
