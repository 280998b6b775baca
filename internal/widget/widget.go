package widget

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Row is a title on the left and a value pushed to the right.
type Row struct {
	Title string
	Value string
}

// Widget is the content of a widget, independent of how it is shown.
type Widget struct {
	Rows   []Row
	Text   string
	Footer string
	// Error renders Text in the error color.
	Error bool
}

// Surface presents a widget at a size.
type Surface interface {
	Present(w io.Writer, size Size, wd Widget) error
}

// Ensure TerminalSurface implements Surface.
var _ Surface = (*TerminalSurface)(nil)

var (
	widgetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#d0d0d0", Dark: "#3a3a3c"})

	rowStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#3a3a3c"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#e0e0e0"})

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#e0e0e0"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff3b30"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))
)

// TerminalSurface draws widgets as boxes in the terminal.
type TerminalSurface struct{}

// Present writes the rendered widget to w.
func (TerminalSurface) Present(w io.Writer, size Size, wd Widget) error {
	_, err := io.WriteString(w, Render(size, wd)+"\n")
	return err
}

// Render returns the widget as a string sized for s.
func Render(s Size, wd Widget) string {
	st := StyleFor(s)
	if s == SizeAccessoryInline {
		return renderInline(st, wd)
	}

	inner := st.Width - 2*(st.Padding/2) - 2
	if inner < 4 {
		inner = 4
	}

	var lines []string
	for i, r := range wd.Rows {
		if i > 0 && st.RowSpacing >= 8 {
			lines = append(lines, "")
		}
		lines = append(lines, rowStyle.Render(FitRow(r.Title, r.Value, inner)))
	}

	if wd.Text != "" {
		style := textStyle
		if wd.Error {
			style = errorStyle
		}
		lines = append(lines, style.Width(inner).Render(wd.Text))
	}

	if wd.Footer != "" {
		lines = append(lines, "", footerStyle.Width(inner).Align(lipgloss.Center).Render(wd.Footer))
	}

	return widgetStyle.
		Padding(0, st.Padding/2).
		Render(strings.Join(lines, "\n"))
}

func renderInline(st Style, wd Widget) string {
	text := wd.Text
	if text == "" && len(wd.Rows) > 0 {
		text = wd.Rows[0].Title + " " + wd.Rows[0].Value
	}
	return runewidth.Truncate(text, st.Width, "…")
}

// FitRow lays title and value out in exactly width columns, with the value
// right aligned. The title is truncated first when both do not fit. Widths
// are measured in terminal columns so CJK titles line up.
func FitRow(title, value string, width int) string {
	vw := runewidth.StringWidth(value)
	if vw >= width {
		return runewidth.Truncate(value, width, "…")
	}

	room := width - vw - 1
	if room <= 0 {
		title = ""
	} else {
		title = runewidth.Truncate(title, room, "…")
	}
	gap := width - runewidth.StringWidth(title) - vw
	return title + strings.Repeat(" ", gap) + value
}
