package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/spiffcs/widgets/config"
	"github.com/spiffcs/widgets/internal/calendar"
	"github.com/spiffcs/widgets/internal/fetch"
	"github.com/spiffcs/widgets/internal/notes"
	"github.com/spiffcs/widgets/internal/store"
	"github.com/spiffcs/widgets/internal/tui"
	"github.com/spiffcs/widgets/internal/widget"
)

// env bundles the loaded config and the ports a command works with.
type env struct {
	cfg     *config.Config
	store   *store.FileStore
	fetcher fetch.Fetcher
	surface widget.Surface
	out     io.Writer
}

// newEnv loads config and opens the documents store.
func newEnv(cmd *cobra.Command, opts *Options) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dir := opts.DocumentsDir
	if dir == "" {
		dir = cfg.DocumentsDir
	}
	st, err := store.NewFileStore(dir)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		store:   st,
		fetcher: fetch.NewHTTPFetcher(cfg.GetFetchTimeout()),
		surface: widget.TerminalSurface{},
		out:     cmd.OutOrStdout(),
	}, nil
}

// notesClient opens the secrets file and returns a configured client.
func (e *env) notesClient() (*notes.Client, error) {
	secrets, err := store.NewFileSecrets()
	if err != nil {
		return nil, err
	}
	return notes.NewClient(e.fetcher, secrets,
		notes.WithBaseURL(e.cfg.GetNotesBaseURL()),
		notes.WithRowID(e.cfg.GetNotesRowID()),
	), nil
}

// sizeOrDefault parses name, falling back to the configured size when empty.
func (e *env) sizeOrDefault(name string) (widget.Size, error) {
	if name == "" {
		return e.cfg.GetSize(), nil
	}
	return widget.ParseSize(name)
}

// parseAt returns the instant a command computes against. Empty means now;
// otherwise a YYYY-MM-DD date at local midnight.
func parseAt(at string) (time.Time, error) {
	if at == "" {
		return timeNow(), nil
	}
	d, err := calendar.ParseDate(at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at: %w", err)
	}
	return d.In(time.Local), nil
}

// prompter runs the interactive screens.
type prompter interface {
	Menu(title string, items []string) (int, error)
	Edit(title, initial string, validate func(string) error) (string, bool, error)
	Form(title string, fields []tui.Field) ([]string, bool, error)
}

type teaPrompter struct{}

func (teaPrompter) Menu(title string, items []string) (int, error) {
	return tui.RunMenu(title, items)
}

func (teaPrompter) Edit(title, initial string, validate func(string) error) (string, bool, error) {
	return tui.RunEditor(title, initial, validate)
}

func (teaPrompter) Form(title string, fields []tui.Field) ([]string, bool, error) {
	return tui.RunKeyForm(title, fields)
}

// Replaced in tests.
var (
	prompt  prompter = teaPrompter{}
	timeNow          = time.Now
)
