package util

import (
	"strings"
	"time"
)

// monthLayouts are tried in order when coercing a raw Month cell.
var monthLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"01/2006",
	"01/02/2006",
	"Jan 2006",
	"January 2006",
	"02-Jan-2006",
	time.RFC3339,
}

// ParseMonth tries common month/date layouts. Returns (t, true) if any
// worked; t is floored to the first day of the month in UTC since the
// day-of-month carries no meaning for monthly series.
func ParseMonth(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthFloor(t), true
		}
	}
	return time.Time{}, false
}

// MonthFloor truncates t to the first day of its month in UTC.
func MonthFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first day of the month following t.
func NextMonth(t time.Time) time.Time {
	return MonthFloor(t).AddDate(0, 1, 0)
}
