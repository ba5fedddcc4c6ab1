package spaced_repetition

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the fixed-width ISO calendar date used for due dates.
// Fixed width makes lexicographic comparison equal to chronological order.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date at local midnight
func ParseDate(iso string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, iso, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD in t's own location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current local calendar date as reported by now
func Today(now func() time.Time) string {
	return FormatDate(now().In(time.Local))
}

// AddDays moves an ISO date by floor(days) calendar days.
// Calendar arithmetic keeps DST transitions from shifting the date.
func AddDays(iso string, days float64) (string, error) {
	t, err := ParseDate(iso)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, int(math.Floor(days)))), nil
}
