// Package drag interprets pointer sequences over the timeline as move and
// resize operations on a single allocation.
package drag

import (
	"errors"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// ErrNotArmed is returned by EnterCell and End when no session is live.
var ErrNotArmed = errors.New("no drag in progress")

// Direction says which part of a bar was grabbed.
type Direction int

const (
	DirectionNone  Direction = iota // whole-bar move
	DirectionLeft                   // start handle
	DirectionRight                  // end handle
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Target is the visual a session patches while it runs. Implementations
// must treat a patch addressed to a visual that no longer exists as a no-op.
type Target interface {
	Patch(style timeline.Style)
}

// Session is the state of one in-progress drag.
type Session struct {
	ProjectIndex    int
	AllocationIndex int
	Direction       Direction
	Anchor          time.Time
	Working         domain.Allocation

	anchored bool
	snapshot domain.Allocation
	target   Target
}

// Snapshot returns the allocation as it was when the drag started.
func (s Session) Snapshot() domain.Allocation { return s.snapshot }

// Anchored reports whether the first cell has been entered.
func (s Session) Anchored() bool { return s.anchored }

// Controller holds at most one drag session. Start, EnterCell, End and
// Discard are its only mutators.
type Controller struct {
	rng     timeline.Range
	session *Session
}

// NewController creates an idle controller over r.
func NewController(r timeline.Range) *Controller {
	return &Controller{rng: r}
}

// SetRange replaces the window used for provisional styles.
func (c *Controller) SetRange(r timeline.Range) { c.rng = r }

// Active reports whether a session is live.
func (c *Controller) Active() bool { return c.session != nil }

// Session returns a copy of the live session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Start arms a session for the allocation at (projectIndex, allocationIndex).
// A session left over from a missed pointer-up is discarded first.
func (c *Controller) Start(projectIndex, allocationIndex int, a domain.Allocation, dir Direction, target Target) {
	c.Discard()
	c.session = &Session{
		ProjectIndex:    projectIndex,
		AllocationIndex: allocationIndex,
		Direction:       dir,
		Working:         a,
		snapshot:        a,
		target:          target,
	}
	c.patch(a)
}

// EnterCell applies the pointer's position as a day offset from the anchor.
// The first call sets the anchor. Resizes clamp against the snapshot so
// Working.Start <= Working.End holds throughout the session.
func (c *Controller) EnterCell(dayDate time.Time) (domain.Allocation, error) {
	s := c.session
	if s == nil {
		return domain.Allocation{}, ErrNotArmed
	}
	dayDate = domain.Day(dayDate)
	if !s.anchored {
		s.Anchor = dayDate
		s.anchored = true
	}
	delta := timeline.DaysBetween(s.Anchor, dayDate)

	next := s.snapshot
	newStart := s.snapshot.Start.AddDate(0, 0, delta)
	newEnd := s.snapshot.End.AddDate(0, 0, delta)

	switch s.Direction {
	case DirectionLeft:
		next.Start = s.Working.Start
		if !newStart.After(s.snapshot.End) {
			next.Start = newStart
		}
	case DirectionRight:
		next.End = s.Working.End
		if !newEnd.Before(s.snapshot.Start) {
			next.End = newEnd
		}
	default:
		next.Start = newStart
		next.End = newEnd
	}

	s.Working = next
	c.patch(next)
	return next, nil
}

// End finishes the session and returns it for commit. The controller is
// idle afterwards.
func (c *Controller) End() (Session, error) {
	if c.session == nil {
		return Session{}, ErrNotArmed
	}
	s := *c.session
	c.session = nil
	return s, nil
}

// Discard drops the live session without committing it.
func (c *Controller) Discard() {
	c.session = nil
}

func (c *Controller) patch(a domain.Allocation) {
	if c.session.target == nil {
		return
	}
	// Color errors are reported when the board recomputes; the patch
	// still carries the fallback style.
	style, _ := timeline.ComputeStyle(a, c.rng, true)
	c.session.target.Patch(style)
}
