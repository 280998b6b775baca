package calendar

import (
	"strconv"
	"strings"
	"time"
)

// Duration is the magnitude of the calendar distance between two instants.
// Years is non-negative, Months is in [0, 11] and Days is non-negative and
// bounded by the length of the month it was borrowed from.
type Duration struct {
	Years  int `json:"years" yaml:"years"`
	Months int `json:"months" yaml:"months"`
	Days   int `json:"days" yaml:"days"`
}

// IsZero reports whether d is {0, 0, 0}.
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// Compute returns the calendar distance between now and target. The result is
// a magnitude: Compute(a, b) == Compute(b, a). Both instants are decomposed
// into civil dates in now's location, so the time-of-day only matters for
// deciding which instant is later.
//
// A negative day difference borrows the length of the month immediately
// preceding the later instant's month. If the earlier day-of-month is longer
// than that month (Jan 30 against Mar 1), the borrow continues into the month
// before it so that Days never goes negative.
func Compute(now, target time.Time) Duration {
	loc := now.Location()
	later, earlier := now, target.In(loc)
	if earlier.After(later) {
		later, earlier = earlier, later
	}

	l, e := DateOf(later), DateOf(earlier)

	years := l.Year - e.Year
	months := int(l.Month) - int(e.Month)
	days := l.Day - e.Day

	if months < 0 {
		years--
		months += 12
	}

	by, bm := l.Year, l.Month
	for days < 0 {
		months--
		by, bm = previousMonth(by, bm)
		days += DaysInMonth(by, bm)
		if months < 0 {
			months = 11
			years--
		}
	}

	return Duration{Years: years, Months: months, Days: days}
}

// Direction describes where a target lies relative to now.
type Direction string

const (
	DirectionPast   Direction = "past"
	DirectionToday  Direction = "today"
	DirectionFuture Direction = "future"
)

// DirectionOf compares the civil dates of now and target in now's location.
func DirectionOf(now, target time.Time) Direction {
	n := DateOf(now)
	t := DateOf(target.In(now.Location()))
	switch {
	case n == t:
		return DirectionToday
	case target.After(now):
		return DirectionFuture
	default:
		return DirectionPast
	}
}

// Units holds the labels appended to each formatted segment.
type Units struct {
	Year  string `yaml:"year" json:"year"`
	Month string `yaml:"month" json:"month"`
	Day   string `yaml:"day" json:"day"`
}

var (
	// UnitsZH renders durations as "1年6月3天".
	UnitsZH = Units{Year: "年", Month: "月", Day: "天"}
	// UnitsEN renders durations as "1y6m3d".
	UnitsEN = Units{Year: "y", Month: "m", Day: "d"}
)

// UnitsFor returns the preset for a locale name. Unknown names fall back to zh.
func UnitsFor(locale string) Units {
	switch strings.ToLower(locale) {
	case "en", "en-us", "en_us", "english":
		return UnitsEN
	default:
		return UnitsZH
	}
}

// Format renders d in descending order. Zero years or months are omitted and
// the day segment is always present when nothing else was written, so a zero
// duration renders as "0" followed by the day label.
func Format(d Duration, u Units) string {
	var b strings.Builder
	if d.Years > 0 {
		b.WriteString(strconv.Itoa(d.Years))
		b.WriteString(u.Year)
	}
	if d.Months > 0 {
		b.WriteString(strconv.Itoa(d.Months))
		b.WriteString(u.Month)
	}
	if d.Days > 0 || b.Len() == 0 {
		b.WriteString(strconv.Itoa(d.Days))
		b.WriteString(u.Day)
	}
	return b.String()
}

// String formats d with the zh units.
func (d Duration) String() string {
	return Format(d, UnitsZH)
}
