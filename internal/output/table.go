package output

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/spiffcs/widgets/internal/anniversary"
	"github.com/spiffcs/widgets/internal/calendar"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

// Column widths
const (
	colTitle     = 24
	colDate      = 10
	colElapsed   = 12
	colDirection = 6
)

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal columns,
// counting CJK characters as two and ignoring ANSI escape sequences.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// truncateToWidth cuts s to at most maxWidth display columns.
func truncateToWidth(s string, maxWidth int) string {
	plain := stripAnsi(s)
	if runewidth.StringWidth(plain) <= maxWidth {
		return s
	}
	return runewidth.Truncate(plain, maxWidth, "...")
}

// padRight pads a string with spaces to reach the target visible width
func padRight(s string, targetWidth int) string {
	w := displayWidth(s)
	if w >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-w)
}

// directionColor returns the color for a row's direction.
func directionColor(d calendar.Direction) *color.Color {
	switch d {
	case calendar.DirectionToday:
		return color.New(color.FgYellow, color.Bold)
	case calendar.DirectionFuture:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgGreen)
	}
}

func directionLabel(d calendar.Direction) string {
	switch d {
	case calendar.DirectionToday:
		return "today"
	case calendar.DirectionFuture:
		return "until"
	default:
		return "since"
	}
}

// Format outputs rows as a table
func (f *TableFormatter) Format(rows []anniversary.Row, w io.Writer) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No anniversaries found.")
		return err
	}

	header := color.New(color.Bold)
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		header.Sprint(padRight("Title", colTitle)),
		header.Sprint(padRight("Date", colDate)),
		header.Sprint(padRight("Elapsed", colElapsed)),
		header.Sprint("When"))
	fmt.Fprintln(w, strings.Repeat("-", colTitle+colDate+colElapsed+colDirection+6))

	for _, r := range rows {
		c := directionColor(r.Direction)
		title := padRight(truncateToWidth(r.Title, colTitle), colTitle)
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			title,
			padRight(r.Date, colDate),
			c.Sprint(padRight(r.Text, colElapsed)),
			c.Sprint(directionLabel(r.Direction)))
	}
	return nil
}
