package domain

import "time"

// DateLayout is the storage and display layout for calendar days.
const DateLayout = "2006-01-02"

// Day truncates t to midnight of its calendar day in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayIn returns midnight of t's calendar day, expressed in loc.
// The calendar date is kept; only the boundary's location changes.
func DayIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween returns the number of calendar days from a to b. Only the
// dates count, so a DST transition between them does not shorten the span.
func DaysBetween(a, b time.Time) int {
	return int(DayIn(b, time.UTC).Sub(DayIn(a, time.UTC)) / (24 * time.Hour))
}

// ParseDay parses a YYYY-MM-DD string as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}
