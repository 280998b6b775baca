package anniversary

import (
	"testing"
	"time"

	"github.com/spiffcs/widgets/internal/calendar"
	"github.com/spiffcs/widgets/internal/store"
)

func newTestStore(t *testing.T) *store.FileStore {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestLoadCreatesDefaults(t *testing.T) {
	st := newTestStore(t)

	entries, err := Load(st, "my-days")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != len(DefaultEntries()) {
		t.Fatalf("expected %d default entries, got %d", len(DefaultEntries()), len(entries))
	}
	if !st.Exists("my-days.json") {
		t.Error("expected data file to be created")
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	st := newTestStore(t)
	if err := st.WriteString("my-days.json", "{not json"); err != nil {
		t.Fatal(err)
	}

	entries, err := Load(st, "my-days")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != len(DefaultEntries()) {
		t.Errorf("expected defaults for corrupt file, got %v", entries)
	}
}

func TestSaveRawAndLoad(t *testing.T) {
	st := newTestStore(t)
	raw := `[{"title":"Wedding","date":"2020-05-20"}]`

	if err := SaveRaw(st, "my-days", raw); err != nil {
		t.Fatalf("SaveRaw() error: %v", err)
	}
	entries, err := Load(st, "my-days")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Wedding" {
		t.Errorf("Load() = %+v", entries)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `[{"title":"a","date":"2024-02-22"}]`, false},
		{"empty list", `[]`, false},
		{"malformed", `[{"title":`, true},
		{"not a list", `{"title":"a"}`, true},
		{"bad date", `[{"title":"a","date":"2024-02-30"}]`, true},
		{"missing title", `[{"title":" ","date":"2024-02-22"}]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRawRejectsInvalid(t *testing.T) {
	st := newTestStore(t)
	if err := SaveRaw(st, "my-days", "nope"); err == nil {
		t.Fatal("expected error")
	}
	if st.Exists("my-days.json") {
		t.Error("expected nothing written for invalid JSON")
	}
}

func TestRows(t *testing.T) {
	now := time.Date(2025, 8, 22, 10, 30, 0, 0, time.UTC)
	rows := Rows(now, DefaultEntries(), calendar.UnitsZH)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []struct {
		text      string
		direction calendar.Direction
	}{
		{"1年6月", calendar.DirectionPast},
		{"0天", calendar.DirectionToday},
		{"25年", calendar.DirectionFuture},
	}
	for i, w := range want {
		if rows[i].Text != w.text {
			t.Errorf("row %d text = %q, want %q", i, rows[i].Text, w.text)
		}
		if rows[i].Direction != w.direction {
			t.Errorf("row %d direction = %q, want %q", i, rows[i].Direction, w.direction)
		}
	}
}

func TestRowsSkipsInvalidDates(t *testing.T) {
	now := time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC)
	rows := Rows(now, []Entry{{Title: "bad", Date: "soon"}, {Title: "ok", Date: "2025-08-20"}}, calendar.UnitsEN)
	if len(rows) != 1 || rows[0].Text != "2d" {
		t.Errorf("Rows() = %+v", rows)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]byte(`[{"title":"a","date":"2024-02-29"}]`)); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
	if err := Validate([]byte(`[{"title":"a","date":"2023-02-29"}]`)); err == nil {
		t.Error("expected error for Feb 29 in a common year")
	}
}
