package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date layout used in files and query strings.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// WithinDays reports whether day lies in [start, end] by calendar day. A nil end is open-ended.
func WithinDays(day, start time.Time, end *time.Time) bool {
	d := DateOnly(day)
	if d.Before(DateOnly(start)) {
		return false
	}
	if end != nil && d.After(DateOnly(*end)) {
		return false
	}
	return true
}

// DaysOverlap reports whether two inclusive calendar-day windows intersect. Nil ends are open-ended.
func DaysOverlap(startA time.Time, endA *time.Time, startB time.Time, endB *time.Time) bool {
	// A ends before B starts
	if endA != nil && DateOnly(*endA).Before(DateOnly(startB)) {
		return false
	}
	// B ends before A starts
	if endB != nil && DateOnly(*endB).Before(DateOnly(startA)) {
		return false
	}
	return true
}
