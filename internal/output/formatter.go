// Package output renders anniversary rows for the days command.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spiffcs/widgets/internal/anniversary"
	"github.com/spiffcs/widgets/internal/calendar"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat accepts a format name, empty meaning table.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatTable, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q (use table, json, yaml, markdown)", s)
}

// Formatter defines the interface for output formatters
type Formatter interface {
	Format(rows []anniversary.Row, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// Record is the flat form of a row used by the structured formats.
type Record struct {
	Title     string             `json:"title" yaml:"title"`
	Date      string             `json:"date" yaml:"date"`
	Years     int                `json:"years" yaml:"years"`
	Months    int                `json:"months" yaml:"months"`
	Days      int                `json:"days" yaml:"days"`
	Text      string             `json:"text" yaml:"text"`
	Direction calendar.Direction `json:"direction" yaml:"direction"`
}

// Records flattens rows.
func Records(rows []anniversary.Row) []Record {
	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, Record{
			Title:     r.Title,
			Date:      r.Date,
			Years:     r.Duration.Years,
			Months:    r.Duration.Months,
			Days:      r.Duration.Days,
			Text:      r.Text,
			Direction: r.Direction,
		})
	}
	return records
}
