package badge

import (
	"testing"
	"time"
)

func TestText(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC), "10月14号 周三"},
		{time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC), "8月24号 周日"},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "2月29号 周四"},
	}
	for _, tt := range tests {
		if got := Text(tt.date); got != tt.want {
			t.Errorf("Text(%s) = %q, want %q", tt.date.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestTextEN(t *testing.T) {
	got := TextEN(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	if got != "Oct 14 Wed" {
		t.Errorf("TextEN() = %q", got)
	}
}
