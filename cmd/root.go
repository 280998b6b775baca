package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/spiffcs/widgets/config"
	"github.com/spiffcs/widgets/internal/log"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	var (
		prof     *profiler
		closeLog func() error
	)

	rootCmd := &cobra.Command{
		Use:   "widgets",
		Short: "Personal widgets for the terminal",
		Long: `Anniversary countdowns, a remote note, a lock screen date badge and a
wallpaper overlay, previewed in the terminal at widget sizes.

Run without a subcommand to open the interactive menu for the anniversary
widget.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			closeLog, err = setupLogging(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			prof, err = startProfiler(opts)
			return err
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			var errs []error
			if prof != nil {
				errs = append(errs, prof.Stop())
			}
			if closeLog != nil {
				errs = append(errs, closeLog())
			}
			return errors.Join(errs...)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, opts, config.ScriptDays)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	flags.StringVar(&opts.LogFile, "log-file", "", "Also append log records to this file")
	flags.StringVar(&opts.DocumentsDir, "dir", "", "Documents directory for widget data and scripts")
	flags.Var(newTUIFlag(opts), "tui", "Enable/disable interactive screens (default: auto-detect)")
	flags.Lookup("tui").NoOptDefVal = "true"

	// Profiling flags
	flags.StringVar(&opts.CPUProfile, "cpuprofile", "", "Write CPU profile to file")
	flags.StringVar(&opts.MemProfile, "memprofile", "", "Write memory profile to file")
	flags.StringVar(&opts.Trace, "trace", "", "Write execution trace to file")

	// Register subcommands
	rootCmd.AddCommand(NewCmdDays(opts))
	rootCmd.AddCommand(NewCmdNotes(opts))
	rootCmd.AddCommand(NewCmdBadge(opts))
	rootCmd.AddCommand(NewCmdOverlay(opts))
	rootCmd.AddCommand(NewCmdUpdate(opts))
	rootCmd.AddCommand(NewCmdBootstrap(opts))
	rootCmd.AddCommand(NewCmdMenu(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}

// setupLogging initializes the global logger, optionally mirrored to a file.
func setupLogging(opts *Options, w io.Writer) (func() error, error) {
	if opts.LogFile == "" {
		log.Initialize(opts.Verbosity, w)
		return func() error { return nil }, nil
	}
	return log.InitializeFile(opts.Verbosity, w, opts.LogFile)
}
