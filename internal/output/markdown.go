package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spiffcs/widgets/internal/anniversary"
)

// MarkdownFormatter formats output as a Markdown table
type MarkdownFormatter struct{}

// Format outputs rows as Markdown
func (f *MarkdownFormatter) Format(rows []anniversary.Row, w io.Writer) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No anniversaries found.")
		return err
	}

	var b strings.Builder
	b.WriteString("| Title | Date | Elapsed | |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", escapeMarkdown(r.Title), r.Date, r.Text, r.Direction)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
