package clock

import (
	"time"
)

// Location is the organizational timezone. The company operates on a fixed
// UTC-6 offset with no daylight saving adjustment.
var Location = time.FixedZone("UTC-6", -6*60*60)

// Today returns the organizational date for the given instant.
func Today(now time.Time) time.Time {
	local := now.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location)
}

// StartOfDay returns the first instant of the given date.
func StartOfDay(date time.Time) time.Time {
	local := date.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location)
}

// EndOfDay returns the last instant of the given date. Ledger range queries
// use inclusive bounds, so this is 23:59:59 rather than midnight of the next
// day.
func EndOfDay(date time.Time) time.Time {
	local := date.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 0, Location)
}

// At returns the instant at hh:mm:ss on the given date.
func At(date time.Time, hour, minute, second int) time.Time {
	local := date.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, minute, second, 0, Location)
}

// ParseDate parses a "YYYY-MM-DD" date in the organizational timezone.
func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, Location)
}

// ParseClock parses a "HH:MM" or "HH:MM:SS" wall clock time.
func ParseClock(clockStr string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clockStr)
	if err != nil {
		return time.Parse("15:04", clockStr)
	}
	return t, nil
}

// SameDay reports whether two instants fall on the same organizational date.
func SameDay(a, b time.Time) bool {
	return Today(a).Equal(Today(b))
}
