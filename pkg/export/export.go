// Package export writes the habit log as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"tableflip.dev/habit/pkg/tracker"
)

// WriteCSV writes one header row (date plus each habit in list order) and
// one row per logged date ascending, with "1"/"0" cells.
func WriteCSV(w io.Writer, data *tracker.HabitData) error {
	cw := csv.NewWriter(w)

	header := append([]string{"date"}, data.Habits...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	days := make([]string, 0, len(data.Log))
	for day := range data.Log {
		days = append(days, day)
	}
	sort.Strings(days)

	row := make([]string, 0, len(header))
	for _, day := range days {
		row = row[:0]
		row = append(row, day)
		for _, h := range data.Habits {
			cell := "0"
			if data.Log[day][h] {
				cell = "1"
			}
			row = append(row, cell)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %s: %w", day, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

// ToFile writes the CSV to path, or to DefaultPath(now) when path is empty,
// and returns the path written.
func ToFile(data *tracker.HabitData, path string, now time.Time) (string, error) {
	if path == "" {
		var err error
		path, err = DefaultPath(now)
		if err != nil {
			return "", err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, data); err != nil {
		return "", err
	}
	return path, nil
}

// DefaultPath is ~/habits_export_<day>.csv.
func DefaultPath(now time.Time) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("export: resolve home: %w", err)
	}
	name := fmt.Sprintf("habits_export_%s.csv", tracker.DayKey(now))
	return filepath.Join(home, name), nil
}
