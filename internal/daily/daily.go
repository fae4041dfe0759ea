// internal/daily/daily.go
//
// Calendar arithmetic for the daily puzzle, all in the reference timezone.
// "Today" is defined by the wall-clock date in that zone regardless of the
// caller's local zone, and the puzzle rolls over at its midnight.

package daily

import (
	"time"
)

// DateKey returns YYYY-MM-DD for t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// midnightUTC projects t's calendar date in loc onto a UTC midnight.
// Discarding time-of-day on both ends makes day subtraction immune to DST
// offsets in the reference zone.
func midnightUTC(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the count of calendar days in loc from launch to now.
// launch is a calendar date (interpreted in UTC); the result is negative if
// now's date in loc precedes it.
func DaysBetween(launch, now time.Time, loc *time.Location) int {
	from := midnightUTC(launch, time.UTC)
	to := midnightUTC(now, loc)
	return int(to.Sub(from) / (24 * time.Hour))
}

// UntilMidnight returns the time until the next midnight in loc, computed
// from the wall-clock time-of-day (86400s minus seconds elapsed today).
// At exactly midnight it returns a full day.
func UntilMidnight(now time.Time, loc *time.Location) time.Duration {
	h, m, s := now.In(loc).Clock()
	elapsed := h*3600 + m*60 + s
	return time.Duration(86400-elapsed) * time.Second
}
