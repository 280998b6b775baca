// Package update downloads widget scripts from their published location and
// replaces the local copies.
package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/spiffcs/widgets/internal/constants"
	"github.com/spiffcs/widgets/internal/fetch"
	"github.com/spiffcs/widgets/internal/log"
	"github.com/spiffcs/widgets/internal/store"
)

// ErrInvalidSource is returned when a download lacks the script marker.
var ErrInvalidSource = errors.New("downloaded source is not a widget script")

// Script names a widget script and where its source is published.
type Script struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Result reports the outcome of one download.
type Result struct {
	Script Script
	Err    error
}

// OK reports whether the download succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// FileName returns the document name a script is stored under.
func FileName(name string) string {
	return name + constants.ScriptExtension
}

// Download fetches the script source and writes it to st. Nothing is written
// unless the source carries the script marker.
func Download(ctx context.Context, f fetch.Fetcher, st store.Store, s Script) error {
	log.Info("downloading script", "name", s.Name, "url", s.URL)

	source, err := f.FetchString(ctx, s.URL)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", s.Name, err)
	}
	if !strings.Contains(source, constants.ScriptMarker) {
		return fmt.Errorf("%s: %w", s.Name, ErrInvalidSource)
	}
	if err := st.WriteString(FileName(s.Name), source); err != nil {
		return err
	}

	log.Info("script updated", "name", s.Name, "path", st.Path(FileName(s.Name)))
	return nil
}

// Option configures DownloadAll.
type Option func(*downloadConfig)

type downloadConfig struct {
	started  func(i int, s Script)
	finished func(i int, r Result)
}

// WithStarted sets a callback invoked when script i starts downloading.
// It is called from worker goroutines.
func WithStarted(fn func(i int, s Script)) Option {
	return func(c *downloadConfig) {
		c.started = fn
	}
}

// WithFinished sets a callback invoked with each result as it completes.
// It is called from worker goroutines.
func WithFinished(fn func(i int, r Result)) Option {
	return func(c *downloadConfig) {
		c.finished = fn
	}
}

// DownloadAll downloads scripts concurrently with at most workers in flight.
// Per-script failures are reported in the results; the returned error is
// only set when ctx is cancelled.
func DownloadAll(ctx context.Context, f fetch.Fetcher, st store.Store, scripts []Script, workers int, opts ...Option) ([]Result, error) {
	if workers <= 0 {
		workers = constants.DefaultUpdateWorkers
	}
	cfg := downloadConfig{
		started:  func(int, Script) {},
		finished: func(int, Result) {},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	results := make([]Result, len(scripts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range scripts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Script: s, Err: err}
				cfg.finished(i, results[i])
				return err
			}
			cfg.started(i, s)
			results[i] = Result{Script: s, Err: Download(ctx, f, st, s)}
			cfg.finished(i, results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Lookup finds scripts by name. Unknown names are returned as an error.
func Lookup(known []Script, names []string) ([]Script, error) {
	if len(names) == 0 {
		return known, nil
	}
	byName := make(map[string]Script, len(known))
	for _, s := range known {
		byName[s.Name] = s
	}
	var selected []Script
	var unknown []string
	for _, n := range names {
		s, ok := byName[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		selected = append(selected, s)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown script(s): %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}
