package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spiffcs/widgets/internal/anniversary"
	"github.com/spiffcs/widgets/internal/log"
	"github.com/spiffcs/widgets/internal/output"
	"github.com/spiffcs/widgets/internal/widget"
)

type daysOptions struct {
	format  string
	size    string
	at      string
	preview bool
}

// NewCmdDays creates the days command.
func NewCmdDays(opts *Options) *cobra.Command {
	dopts := &daysOptions{}

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Show how long since or until each anniversary",
		Long: `Shows the anniversary list with the elapsed years, months and days
for each entry. The list is stored as <widget>.json in the documents
directory and created with sample entries on first run.

Use --preview to draw the widget at a size instead of printing a table.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDays(cmd, opts, dopts)
		},
	}

	cmd.Flags().StringVarP(&dopts.format, "output", "o", "", "Output format (table, json, yaml, markdown)")
	cmd.Flags().StringVar(&dopts.size, "size", "", "Widget size for --preview (small, medium, large, ...)")
	cmd.Flags().StringVar(&dopts.at, "at", "", "Compute as of this date (YYYY-MM-DD) instead of today")
	cmd.Flags().BoolVarP(&dopts.preview, "preview", "p", false, "Draw the widget instead of a table")

	cmd.AddCommand(NewCmdDaysEdit(opts))

	return cmd
}

// NewCmdDaysEdit creates the days edit subcommand.
func NewCmdDaysEdit(opts *Options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the anniversary list",
		Long: `Edit the anniversary list as JSON.

With --file the list is replaced by the file contents ("-" reads stdin).
Otherwise an editor opens in the terminal and stays open until the JSON is
valid or the edit is cancelled.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			if file != "" {
				return importDays(e, cmd.InOrStdin(), file)
			}
			if !shouldUseTUI(opts) {
				return fmt.Errorf("no terminal available, use --file to replace the list")
			}
			return editDays(e)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Replace the list with this JSON file (- for stdin)")

	return cmd
}

func runDays(cmd *cobra.Command, opts *Options, dopts *daysOptions) error {
	e, err := newEnv(cmd, opts)
	if err != nil {
		return err
	}
	now, err := parseAt(dopts.at)
	if err != nil {
		return err
	}

	name := e.cfg.GetDaysWidget()
	entries, err := anniversary.Load(e.store, name)
	if err != nil {
		return err
	}
	rows := anniversary.Rows(now, entries, e.cfg.GetUnits())
	log.Info("computed anniversaries", "widget", name, "rows", len(rows))

	if dopts.preview {
		size, err := e.sizeOrDefault(dopts.size)
		if err != nil {
			return err
		}
		return e.surface.Present(e.out, size, daysWidget(rows))
	}

	format := dopts.format
	if format == "" {
		format = e.cfg.DefaultFormat
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	return output.NewFormatter(f).Format(rows, e.out)
}

// daysWidget lays rows out as title and elapsed text.
func daysWidget(rows []anniversary.Row) widget.Widget {
	wd := widget.Widget{}
	for _, r := range rows {
		wd.Rows = append(wd.Rows, widget.Row{Title: r.Title, Value: r.Text})
	}
	return wd
}

// presentDays previews the anniversary widget at size.
func presentDays(e *env, size widget.Size) error {
	entries, err := anniversary.Load(e.store, e.cfg.GetDaysWidget())
	if err != nil {
		return err
	}
	rows := anniversary.Rows(timeNow(), entries, e.cfg.GetUnits())
	return e.surface.Present(e.out, size, daysWidget(rows))
}

func importDays(e *env, stdin io.Reader, file string) error {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	name := e.cfg.GetDaysWidget()
	if err := anniversary.SaveRaw(e.store, name, string(data)); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Saved %s\n", e.store.Path(anniversary.DataFileName(name)))
	return nil
}

// editDays opens the editor on the current list. Invalid JSON keeps the
// editor open with the error shown.
func editDays(e *env) error {
	name := e.cfg.GetDaysWidget()
	entries, err := anniversary.Load(e.store, name)
	if err != nil {
		return err
	}
	current, err := anniversary.Marshal(entries)
	if err != nil {
		return err
	}

	validate := func(s string) error { return anniversary.Validate([]byte(s)) }
	edited, saved, err := prompt.Edit("Edit "+anniversary.DataFileName(name), current, validate)
	if err != nil {
		return err
	}
	if !saved {
		fmt.Fprintln(e.out, "Edit cancelled.")
		return nil
	}
	if err := anniversary.SaveRaw(e.store, name, edited); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Saved %s\n", e.store.Path(anniversary.DataFileName(name)))
	return nil
}
