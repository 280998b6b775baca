// Package log wraps slog with the CLI's -v/-vv/-vvv verbosity levels.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Verbosity levels
const (
	LevelQuiet = iota // Default: only errors and warnings
	LevelInfo         // -v: fetches, store writes, widget sizes
	LevelDebug        // -vv: request URLs, status codes, timing
	LevelTrace        // -vvv: response bodies, layout details
)

const slogLevelTrace = slog.Level(-8)

var (
	mu        sync.Mutex
	verbosity int
	logger    *slog.Logger
	sink      io.Closer
)

// Initialize sets up the global logger with the specified verbosity level.
func Initialize(level int, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	verbosity = level
	logger = newLogger(level, w)
}

// InitializeFile logs to w and additionally appends every record to the file
// at path. The returned function closes the file.
func InitializeFile(level int, w io.Writer, path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	verbosity = level
	logger = newLogger(level, io.MultiWriter(w, f))
	sink = f
	return closeSink, nil
}

func closeSink() error {
	mu.Lock()
	defer mu.Unlock()
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	logger = newLogger(verbosity, os.Stderr)
	return err
}

func newLogger(level int, w io.Writer) *slog.Logger {
	var slogLevel slog.Level
	switch {
	case level >= LevelTrace:
		slogLevel = slogLevelTrace
	case level >= LevelDebug:
		slogLevel = slog.LevelDebug
	case level >= LevelInfo:
		slogLevel = slog.LevelInfo
	default:
		slogLevel = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel}))
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Info logs at info level (-v)
func Info(msg string, args ...any) {
	if IsInfo() {
		current().Info(msg, args...)
	}
}

// Debug logs at debug level (-vv)
func Debug(msg string, args ...any) {
	if IsDebug() {
		current().Debug(msg, args...)
	}
}

// Trace logs at trace level (-vvv)
func Trace(msg string, args ...any) {
	if IsTrace() {
		current().Log(context.Background(), slogLevelTrace, msg, args...)
	}
}

// Warn logs at warn level (always visible)
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs at error level (always visible)
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// IsInfo returns true if info-level logging is enabled
func IsInfo() bool {
	return Verbosity() >= LevelInfo
}

// IsDebug returns true if debug-level logging is enabled
func IsDebug() bool {
	return Verbosity() >= LevelDebug
}

// IsTrace returns true if trace-level logging is enabled
func IsTrace() bool {
	return Verbosity() >= LevelTrace
}

// Verbosity returns the current verbosity level
func Verbosity() int {
	mu.Lock()
	defer mu.Unlock()
	return verbosity
}

func init() {
	verbosity = LevelQuiet
	logger = newLogger(LevelQuiet, os.Stderr)
}
