package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spiffcs/widgets/internal/constants"
	"github.com/spiffcs/widgets/internal/tui"
	"github.com/spiffcs/widgets/internal/update"
)

// NewCmdUpdate creates the update command.
func NewCmdUpdate(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "update [script...]",
		Short: "Download the latest widget scripts",
		Long: `Downloads the published widget scripts and replaces the copies in the
documents directory. Without arguments every configured script is updated.
A download is only saved when it is a widget script.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			scripts, err := update.Lookup(e.cfg.GetScripts(), args)
			if err != nil {
				return err
			}
			return runUpdate(cmd.Context(), opts, e, scripts)
		},
	}
}

// NewCmdBootstrap creates the bootstrap command.
func NewCmdBootstrap(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap <script>",
		Short: "Install a widget script by name",
		Long: `Installs a single script. Names not listed in the config are fetched
from the published script location.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			s := update.Script{Name: args[0], URL: constants.ScriptBaseURL + update.FileName(args[0])}
			if known, err := update.Lookup(e.cfg.GetScripts(), args); err == nil {
				s = known[0]
			}
			if err := update.Download(cmd.Context(), e.fetcher, e.store, s); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Saved %s\n", e.store.Path(update.FileName(s.Name)))
			return nil
		},
	}
}

// runUpdate downloads scripts, showing progress in the TUI when enabled.
func runUpdate(ctx context.Context, opts *Options, e *env, scripts []update.Script) error {
	var (
		events  chan tui.Event
		tuiDone chan error
	)
	if shouldUseTUI(opts) {
		tasks := make([]tui.Task, len(scripts))
		for i, s := range scripts {
			tasks[i] = tui.NewTask(tui.TaskID(i), s.Name)
		}
		// two events per script never fill the buffer
		events = make(chan tui.Event, 2*len(scripts)+1)
		tuiDone = make(chan error, 1)
		go func() {
			tuiDone <- tui.RunProgress(events, tasks)
		}()
	}

	results, err := update.DownloadAll(ctx, e.fetcher, e.store, scripts, e.cfg.GetUpdateWorkers(),
		update.WithStarted(func(i int, _ update.Script) {
			tui.SendTaskEvent(events, tui.TaskID(i), tui.StatusRunning)
		}),
		update.WithFinished(func(i int, r update.Result) {
			if r.OK() {
				tui.SendTaskEvent(events, tui.TaskID(i), tui.StatusComplete, tui.WithMessage(update.FileName(r.Script.Name)))
				return
			}
			tui.SendTaskEvent(events, tui.TaskID(i), tui.StatusError, tui.WithError(r.Err))
		}),
	)
	closeTUI(events, tuiDone)

	if events == nil {
		printResults(e, results)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed to update", failed, len(results))
	}
	return nil
}

func printResults(e *env, results []update.Result) {
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(e.out, "%s %s %s\n", color.GreenString("✓"), r.Script.Name, e.store.Path(update.FileName(r.Script.Name)))
			continue
		}
		fmt.Fprintf(e.out, "%s %s %s\n", color.RedString("✗"), r.Script.Name, color.RedString(r.Err.Error()))
	}
}

// closeTUI closes the event channel and waits for the TUI to finish.
func closeTUI(events chan tui.Event, tuiDone chan error) {
	if events == nil {
		return
	}
	close(events)
	if tuiDone != nil {
		<-tuiDone
	}
}
