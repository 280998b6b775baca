// Package badge renders the lock screen date badge.
package badge

import (
	"fmt"
	"time"
)

// weekdays is indexed by time.Weekday (Sunday first).
var weekdays = [7]string{"日", "一", "二", "三", "四", "五", "六"}

// Text returns the badge text for t, e.g. "10月14号 周三".
func Text(t time.Time) string {
	return fmt.Sprintf("%d月%d号 周%s", int(t.Month()), t.Day(), weekdays[t.Weekday()])
}

// TextEN returns the English badge text for t, e.g. "Oct 14 Wed".
func TextEN(t time.Time) string {
	return t.Format("Jan 2 Mon")
}
