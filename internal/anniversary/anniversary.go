// Package anniversary manages the list of dates shown by the countdown
// widget and turns them into display rows.
package anniversary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spiffcs/widgets/internal/calendar"
	"github.com/spiffcs/widgets/internal/log"
	"github.com/spiffcs/widgets/internal/store"
)

// Entry is one titled date in the data file.
type Entry struct {
	Title string `json:"title" yaml:"title"`
	Date  string `json:"date" yaml:"date"`
}

// Row is an entry with its computed distance from now.
type Row struct {
	Title     string             `json:"title" yaml:"title"`
	Date      string             `json:"date" yaml:"date"`
	Duration  calendar.Duration  `json:"duration" yaml:"duration"`
	Text      string             `json:"text" yaml:"text"`
	Direction calendar.Direction `json:"direction" yaml:"direction"`
}

// DefaultEntries is written to the data file on first run.
func DefaultEntries() []Entry {
	return []Entry{
		{Title: "纪念日", Date: "2024-02-22"},
		{Title: "纪念日2", Date: "2025-08-22"},
		{Title: "MyDay", Date: "2050-08-22"},
	}
}

// DataFileName returns the data document name for a widget.
func DataFileName(widget string) string {
	return widget + ".json"
}

// Load reads the entries for widget. A missing data file is created with the
// default entries. A corrupt file is logged and the defaults are returned so
// the widget still renders.
func Load(st store.Store, widget string) ([]Entry, error) {
	name := DataFileName(widget)

	raw, err := st.ReadString(name)
	if errors.Is(err, store.ErrNotFound) {
		entries := DefaultEntries()
		if err := Save(st, widget, entries); err != nil {
			return nil, err
		}
		log.Info("created default data file", "path", st.Path(name))
		return entries, nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := Parse([]byte(raw))
	if err != nil {
		log.Error("invalid data file, using defaults", "path", st.Path(name), "error", err)
		return DefaultEntries(), nil
	}
	return entries, nil
}

// Save writes entries as indented JSON.
func Save(st store.Store, widget string, entries []Entry) error {
	data, err := Marshal(entries)
	if err != nil {
		return err
	}
	return st.WriteString(DataFileName(widget), data)
}

// SaveRaw validates raw JSON and writes it verbatim.
func SaveRaw(st store.Store, widget, raw string) error {
	if err := Validate([]byte(raw)); err != nil {
		return err
	}
	return st.WriteString(DataFileName(widget), raw)
}

// Marshal renders entries the way the edit flow presents them.
func Marshal(entries []Entry) (string, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode entries: %w", err)
	}
	return string(data), nil
}

// Validate reports whether raw is a well formed entry list.
func Validate(raw []byte) error {
	_, err := Parse(raw)
	return err
}

// Parse decodes and validates a JSON entry list.
func Parse(raw []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("entry %d: title is required", i+1)
		}
		if _, err := calendar.ParseDate(e.Date); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, e.Title, err)
		}
	}
	return entries, nil
}

// Rows computes the display rows for entries relative to now. Dates are
// interpreted as midnight in now's location.
func Rows(now time.Time, entries []Entry, units calendar.Units) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		d, err := calendar.ParseDate(e.Date)
		if err != nil {
			log.Warn("skipping entry with invalid date", "title", e.Title, "date", e.Date)
			continue
		}
		target := d.In(now.Location())
		dur := calendar.Compute(now, target)
		rows = append(rows, Row{
			Title:     e.Title,
			Date:      d.String(),
			Duration:  dur,
			Text:      calendar.Format(dur, units),
			Direction: calendar.DirectionOf(now, target),
		})
	}
	return rows
}
