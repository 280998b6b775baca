package notes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/spiffcs/widgets/internal/fetch"
	"github.com/spiffcs/widgets/internal/store"
)

func newTestSecrets(t *testing.T, configured bool) *store.FileSecrets {
	t.Helper()
	s, err := store.NewFileSecretsFromPath(filepath.Join(t.TempDir(), "secrets.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if configured {
		c := NewClient(nil, s)
		if err := c.SetCredentials("key-1", "app-1", "table-1"); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestFetchNotConfigured(t *testing.T) {
	c := NewClient(fetch.NewHTTPFetcher(time.Second), newTestSecrets(t, false))
	got := c.Fetch(context.Background())
	if got.Success || got.Text != MsgNotConfigured {
		t.Errorf("Fetch() = %+v, want not configured", got)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public/v1/tables/table-1/rows/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get(KeyAPIKey) != "key-1" || r.Header.Get(KeyAppID) != "app-1" {
			t.Errorf("missing credential headers: %v", r.Header)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Query.Equal["id"] != "1" {
			t.Errorf("expected row id 1, got %q", req.Query.Equal["id"])
		}
		_, _ = w.Write([]byte(`{"data":[{"content":"buy milk"}]}`))
	}))
	defer srv.Close()

	c := NewClient(fetch.NewHTTPFetcher(time.Second), newTestSecrets(t, true), WithBaseURL(srv.URL+"/"))
	got := c.Fetch(context.Background())
	if !got.Success || got.Text != "buy milk" {
		t.Errorf("Fetch() = %+v", got)
	}
}

func TestFetchAPIRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := NewClient(fetch.NewHTTPFetcher(time.Second), newTestSecrets(t, true), WithBaseURL(srv.URL))
	got := c.Fetch(context.Background())
	if got.Success || got.Text != "Invalid API key" {
		t.Errorf("Fetch() = %+v", got)
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(fetch.NewHTTPFetcher(time.Second), newTestSecrets(t, true), WithBaseURL(srv.URL))
	got := c.Fetch(context.Background())
	if got.Success || got.Text != "HTTP 错误 502" {
		t.Errorf("Fetch() = %+v", got)
	}
}

func TestFetchEmptyRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(fetch.NewHTTPFetcher(time.Second), newTestSecrets(t, true), WithBaseURL(srv.URL), WithRowID("7"))
	got := c.Fetch(context.Background())
	if got.Success {
		t.Errorf("expected failure for empty rows, got %+v", got)
	}
}

func TestConfigured(t *testing.T) {
	s := newTestSecrets(t, false)
	c := NewClient(nil, s)
	if c.Configured() {
		t.Error("expected unconfigured client")
	}
	if err := s.Set(KeyAPIKey, "k"); err != nil {
		t.Fatal(err)
	}
	if c.Configured() {
		t.Error("expected unconfigured client with one key")
	}
	if err := c.SetCredentials("k", "a", "t"); err != nil {
		t.Fatal(err)
	}
	if !c.Configured() {
		t.Error("expected configured client")
	}
}
