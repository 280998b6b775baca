// Package notes reads the note shown by the notes widget from a Budibase
// table.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spiffcs/widgets/internal/constants"
	"github.com/spiffcs/widgets/internal/fetch"
	"github.com/spiffcs/widgets/internal/log"
	"github.com/spiffcs/widgets/internal/store"
)

// Secret keys holding the Budibase credentials.
const (
	KeyAPIKey  = "x-budibase-api-key"
	KeyAppID   = "x-budibase-app-id"
	KeyTableID = "x-budibase-table-id"
)

// Keys lists the secret keys in prompt order.
var Keys = []string{KeyAPIKey, KeyAppID, KeyTableID}

// MsgNotConfigured is shown when any credential is missing.
const MsgNotConfigured = "Keychain not configured."

// Result is what the widget displays. Text holds the note on success and the
// failure message otherwise.
type Result struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

type searchRequest struct {
	Query searchQuery `json:"query"`
}

type searchQuery struct {
	Equal map[string]string `json:"equal"`
}

type searchResponse struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Data    []struct {
		Content string `json:"content"`
	} `json:"data"`
}

// Client fetches the note row.
type Client struct {
	fetcher fetch.Fetcher
	secrets store.Secrets
	baseURL string
	rowID   string
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithBaseURL overrides the Budibase host.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithRowID selects the row holding the note.
func WithRowID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.rowID = id
		}
	}
}

// NewClient creates a notes client.
func NewClient(f fetch.Fetcher, secrets store.Secrets, opts ...Option) *Client {
	c := &Client{
		fetcher: f,
		secrets: secrets,
		baseURL: constants.NotesBaseURL,
		rowID:   constants.NotesRowID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether every credential is present.
func (c *Client) Configured() bool {
	for _, k := range Keys {
		if !c.secrets.Contains(k) {
			return false
		}
	}
	return true
}

// Fetch returns the note. Failures are folded into the Result so the widget
// can always render something.
func (c *Client) Fetch(ctx context.Context) Result {
	if !c.Configured() {
		return Result{Text: MsgNotConfigured}
	}

	url := fmt.Sprintf("%s/api/public/v1/tables/%s/rows/search", c.baseURL, c.secrets.Get(KeyTableID))
	headers := map[string]string{
		KeyAppID:  c.secrets.Get(KeyAppID),
		KeyAPIKey: c.secrets.Get(KeyAPIKey),
	}
	body := searchRequest{Query: searchQuery{Equal: map[string]string{"id": c.rowID}}}

	var resp searchResponse
	err := c.fetcher.PostJSON(ctx, url, headers, body, &resp)
	if resp.Status != 0 && resp.Status != 200 {
		log.Debug("notes search rejected", "status", resp.Status, "message", resp.Message)
		return Result{Text: resp.Message}
	}
	if err != nil {
		log.Warn("notes fetch failed", "error", err)
		return Result{Text: errorText(err)}
	}
	if len(resp.Data) == 0 {
		return Result{Text: fmt.Sprintf("row %s not found", c.rowID)}
	}
	return Result{Success: true, Text: resp.Data[0].Content}
}

// SetCredentials stores the three credentials in Keys order.
func (c *Client) SetCredentials(apiKey, appID, tableID string) error {
	values := map[string]string{KeyAPIKey: apiKey, KeyAppID: appID, KeyTableID: tableID}
	for _, k := range Keys {
		if err := c.secrets.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

func errorText(err error) string {
	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("HTTP 错误 %d", statusErr.StatusCode)
	}
	if err == nil {
		return "未知错误"
	}
	return err.Error()
}
