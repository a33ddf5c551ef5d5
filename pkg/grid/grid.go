package grid

import "time"

// Observation is a single (date, value) input point. The series may be
// sparse and unordered; duplicate dates keep the last value seen.
type Observation struct {
	Date  time.Time
	Value float64
}

// Row is one calendar day of the dense grid. Weekday is 0=Monday..6=Sunday,
// WeekNum is the grid column (0..53) after the year-boundary remaps.
type Row struct {
	Date    time.Time
	Value   float64
	Weekday int
	WeekNum int
	Event   bool
}

// Normalize strips the time-of-day component, pinning the date to midnight UTC.
func Normalize(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the weekday index with Monday as 0, matching the grid's
// row ordering (time.Weekday starts on Sunday).
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
