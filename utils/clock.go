package utils

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// ClockToMinutes converts an "HH:MM" wall-clock string to minutes since midnight.
func ClockToMinutes(clock string) (int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ClockHour returns the hour component of an "HH:MM" string. Minutes are
// ignored on purpose: hourly pricing counts whole-hour differences only.
func ClockHour(clock string) (int, error) {
	minutes, err := ClockToMinutes(clock)
	if err != nil {
		return 0, err
	}
	return minutes / 60, nil
}

// FormatClock renders minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Clock returns t's wall-clock time as "HH:MM". Fixed-width strings compare
// correctly with < and >, which the reservation queries rely on.
func Clock(t time.Time) string {
	return t.Format(clockLayout)
}

// DateOnly strips the time-of-day so calendar dates compare and store
// consistently regardless of the wall clock they were built from.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
