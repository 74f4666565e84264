package dateutil

import (
	"fmt"
	"time"
)

// StartOfWeek returns midnight of the Monday of t's ISO week.
func StartOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func LastWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -7)
}

func LastMonth(t time.Time) time.Time {
	return t.AddDate(0, -1, 0)
}

// ParseClock parses an "HH:MM" clock string into minutes since midnight.
func ParseClock(s string) (int, error) {
	clock, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock string %q: %w", s, err)
	}

	return clock.Hour()*60 + clock.Minute(), nil
}

// InClockWindow reports whether t falls inside the [start, end) window of
// the day. A window whose end is before its start wraps past midnight,
// e.g. 22:00-07:00.
func InClockWindow(t time.Time, start, end string) (bool, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return false, err
	}

	endMin, err := ParseClock(end)
	if err != nil {
		return false, err
	}

	cur := t.Hour()*60 + t.Minute()
	if startMin <= endMin {
		return cur >= startMin && cur < endMin, nil
	}

	return cur >= startMin || cur < endMin, nil
}
