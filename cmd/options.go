package cmd

// Options holds the shared command-line options for the widgets CLI.
type Options struct {
	Verbosity    int
	LogFile      string // Mirror log records to this file
	DocumentsDir string // Overrides documents_dir from config
	TUI          *bool  // nil = auto-detect, true = force TUI, false = disable TUI

	// Profiling options
	CPUProfile string // Write CPU profile to file
	MemProfile string // Write memory profile to file
	Trace      string // Write execution trace to file
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithLogFile mirrors logs to path.
func WithLogFile(path string) Option {
	return func(o *Options) {
		o.LogFile = path
	}
}

// WithDocumentsDir sets the documents directory.
func WithDocumentsDir(dir string) Option {
	return func(o *Options) {
		o.DocumentsDir = dir
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}
