// Package fetch is the remote source used by widgets: plain text downloads
// and single JSON request/response calls.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spiffcs/widgets/internal/constants"
	"github.com/spiffcs/widgets/internal/log"
)

// Fetcher defines the remote operations the widgets depend on.
// This interface enables faking the network in unit tests.
type Fetcher interface {
	FetchString(ctx context.Context, url string) (string, error)
	PostJSON(ctx context.Context, url string, headers map[string]string, body, out any) error
}

// Ensure HTTPFetcher implements Fetcher.
var _ Fetcher = (*HTTPFetcher)(nil)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher whose requests are bounded by timeout.
// A zero timeout selects the default.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = constants.DefaultFetchTimeout
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// FetchString downloads url and returns the body as text.
func (f *HTTPFetcher) FetchString(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	data, err := f.do(req)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PostJSON sends body as JSON and decodes the response into out.
// The response is decoded even for non-2xx statuses when it is JSON, since
// some APIs report errors in the body; the StatusError is still returned.
func (f *HTTPFetcher) PostJSON(ctx context.Context, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	data, err := f.do(req)
	if out != nil && len(data) > 0 {
		if decodeErr := json.Unmarshal(data, out); decodeErr != nil && err == nil {
			return fmt.Errorf("failed to decode response: %w", decodeErr)
		}
	}
	return err
}

func (f *HTTPFetcher) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("remote request", "method", req.Method, "url", req.URL.Redacted(), "status", resp.StatusCode, "elapsed", time.Since(start))
	log.Trace("remote response", "body", string(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return data, &StatusError{StatusCode: resp.StatusCode, URL: req.URL.Redacted()}
	}
	return data, nil
}
