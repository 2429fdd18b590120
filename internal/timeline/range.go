// Package timeline maps calendar-day intervals onto proportional
// horizontal coordinates.
package timeline

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

const day = 24 * time.Hour

// Range is the inclusive window of calendar days being rendered.
// A Range is a value; replacing it invalidates every derived style.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange normalizes both bounds to midnight and checks Start <= End.
func NewRange(start, end time.Time) (Range, error) {
	r := Range{Start: domain.Day(start), End: domain.Day(end)}
	if r.End.Before(r.Start) {
		return Range{}, fmt.Errorf("timeline range end %s is before start %s",
			r.End.Format(domain.DateLayout), r.Start.Format(domain.DateLayout))
	}
	return r, nil
}

// EnumerateDays returns every calendar day from start to end inclusive.
// Returns an empty slice when start is after end.
func EnumerateDays(start, end time.Time) []time.Time {
	start, end = domain.Day(start), domain.Day(end)
	if start.After(end) {
		return []time.Time{}
	}
	days := make([]time.Time, 0, calendarDays(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaysBetween returns the whole number of calendar days from a to b.
// Sub-day precision is discarded: only the dates are compared, so a
// 23-hour DST day still counts as one.
func DaysBetween(a, b time.Time) int {
	return calendarDays(a, b)
}

// Days returns the day cells of the range.
func (r Range) Days() []time.Time {
	return EnumerateDays(r.Start, r.End)
}

// Len returns the number of day cells in the range.
func (r Range) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return calendarDays(r.Start, r.End) + 1
}

// Span returns the width of the range including the final day, the
// denominator for every percentage offset.
func (r Range) Span() time.Duration {
	return r.End.Sub(r.Start) + day
}

// DayAt returns the day of cell i. ok is false outside the range.
func (r Range) DayAt(i int) (time.Time, bool) {
	if i < 0 || i >= r.Len() {
		return time.Time{}, false
	}
	return r.Start.AddDate(0, 0, i), true
}

// Index returns the cell index of d. ok is false outside the range.
func (r Range) Index(d time.Time) (int, bool) {
	i := calendarDays(r.Start, domain.Day(d))
	if i < 0 || i >= r.Len() {
		return 0, false
	}
	return i, true
}

// Shift returns the range moved by n days.
func (r Range) Shift(n int) Range {
	return Range{Start: r.Start.AddDate(0, 0, n), End: r.End.AddDate(0, 0, n)}
}

// calendarDays counts date steps between two midnights, tolerating
// 23h/25h days around DST transitions.
func calendarDays(a, b time.Time) int {
	return domain.DaysBetween(a, b)
}
