package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when an allocation ends before it starts.
var ErrInvalidRange = errors.New("allocation end date is before its start date")

// Allocation assigns a resource to a project, in a role, for an inclusive
// range of calendar days. Allocations are values: copying one never aliases
// another, so a snapshot taken at drag start stays untouched.
type Allocation struct {
	ID         string // empty until persisted
	ProjectID  string
	ResourceID string
	Role       string
	Start      time.Time
	End        time.Time

	// Color of the owning project, joined on load.
	Color Color
}

// Validate checks the Start <= End invariant and required references.
func (a Allocation) Validate() error {
	if a.ProjectID == "" {
		return fmt.Errorf("allocation project is required")
	}
	if a.ResourceID == "" {
		return fmt.Errorf("allocation resource is required")
	}
	if a.End.Before(a.Start) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			a.Start.Format(DateLayout), a.End.Format(DateLayout))
	}
	return nil
}

// Days returns the inclusive number of calendar days the allocation covers.
func (a Allocation) Days() int {
	return DaysBetween(a.Start, a.End) + 1
}

// Covers reports whether day falls within the allocation.
func (a Allocation) Covers(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(a.Start)) && !d.After(Day(a.End))
}

// WithDates returns a copy of a with new bounds.
func (a Allocation) WithDates(start, end time.Time) Allocation {
	a.Start = start
	a.End = end
	return a
}

// DisplayID returns the ID truncated to 8 characters.
func (a Allocation) DisplayID() string {
	if a.ID == "" {
		return "new"
	}
	return shortID(a.ID)
}
