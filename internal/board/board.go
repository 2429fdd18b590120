// Package board holds the interactive state of one resource timeline:
// the local copy of its allocations, the visual bars derived from them,
// the drag slot, the context menu and the creation dialog.
//
// A Board is driven from a single event loop and does no I/O itself.
// Mutations that need persisting return a Call for the host to run
// asynchronously; the host hands the resulting Outcome back to Settle.
package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/creation"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/drag"
	"github.com/alexanderramin/gantt/internal/gateway"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// ErrNoSuchBar is returned when a row/index pair does not address a bar.
var ErrNoSuchBar = errors.New("no allocation at that position")

// Persister is the persistence surface a board needs.
type Persister interface {
	Save(ctx context.Context, req gateway.SaveRequest) gateway.Outcome
	Delete(ctx context.Context, allocationID string) gateway.Outcome
	FetchProjects(ctx context.Context) ([]gateway.ProjectSummary, error)
}

// Call is a deferred persistence call. The host runs it off the event
// loop and passes the outcome to Settle.
type Call func(ctx context.Context) gateway.Outcome

// Options configures a Board.
type Options struct {
	Range          timeline.Range
	ScopeProjectID string

	// StrictColors makes Recompute fail on colors outside the palette
	// instead of drawing them in timeline.FallbackHex.
	StrictColors bool

	Signals gateway.Signals
}

// Row is one project lane.
type Row struct {
	Project domain.Project
	Bars    []*Bar
}

// Board is the timeline state for one resource.
type Board struct {
	persist Persister
	signals gateway.Signals
	strict  bool

	resource *domain.Resource
	rng      timeline.Range
	scope    string
	rows     []Row

	drag  *drag.Controller
	menu  timeline.MenuState
	draft *creation.Draft

	colorErr error
}

// New creates an empty board. Call SetResource before use.
func New(p Persister, opts Options) *Board {
	return &Board{
		persist: p,
		signals: opts.Signals,
		strict:  opts.StrictColors,
		rng:     opts.Range,
		scope:   opts.ScopeProjectID,
		drag:    drag.NewController(opts.Range),
	}
}

// SetSignals replaces the receiver of settled outcomes.
func (b *Board) SetSignals(s gateway.Signals) { b.signals = s }

// SetResource replaces the board's data with a fresh copy of r. Bars from
// the previous resource are detached, and a drag that was in progress is
// dropped since its indices no longer address the same allocation.
func (b *Board) SetResource(r *domain.Resource) error {
	for _, row := range b.rows {
		for _, bar := range row.Bars {
			bar.detach()
		}
	}
	b.drag.Discard()
	b.resource = r
	b.rows = nil
	for _, pid := range r.ProjectIDs() {
		project, ok := r.Project(pid)
		if !ok {
			project = domain.Project{ID: pid, Name: pid}
		}
		allocs := r.AllocationsByProject[pid]
		row := Row{Project: project, Bars: make([]*Bar, len(allocs))}
		for i, a := range allocs {
			row.Bars[i] = &Bar{allocation: a}
		}
		b.rows = append(b.rows, row)
	}
	if b.menu.Visible {
		if _, _, ok := b.Find(b.menu.AllocationID); !ok {
			b.menu.Close()
		}
	}
	return b.Recompute()
}

// SetRange replaces the visible window.
func (b *Board) SetRange(r timeline.Range) error {
	b.rng = r
	b.drag.SetRange(r)
	return b.Recompute()
}

// Shift moves the window by n days.
func (b *Board) Shift(n int) error {
	return b.SetRange(b.rng.Shift(n))
}

// Recompute derives every bar's style from its allocation, the range and
// the drag state. Call it after any change to those inputs.
func (b *Board) Recompute() error {
	session, dragging := b.drag.Session()
	var errs []error
	for ri, row := range b.rows {
		for ai, bar := range row.Bars {
			a := bar.allocation
			if dragging && session.ProjectIndex == ri && session.AllocationIndex == ai {
				a = session.Working
			}
			style, err := timeline.ComputeStyle(a, b.rng, dragging)
			if err != nil {
				errs = append(errs, fmt.Errorf("allocation %s: %w", a.DisplayID(), err))
			}
			bar.style = style
		}
	}
	b.colorErr = errors.Join(errs...)
	if b.strict {
		return b.colorErr
	}
	return nil
}

// ColorErr returns the palette errors found by the last Recompute.
func (b *Board) ColorErr() error { return b.colorErr }

// Resource returns the resource the board was built from.
func (b *Board) Resource() *domain.Resource { return b.resource }

// Range returns the visible window.
func (b *Board) Range() timeline.Range { return b.rng }

// Scope returns the project the board is scoped to, if any.
func (b *Board) Scope() string { return b.scope }

// Rows returns the project lanes in display order.
func (b *Board) Rows() []Row { return b.rows }

// Bar returns the bar at (row, index).
func (b *Board) Bar(row, index int) (*Bar, error) {
	if row < 0 || row >= len(b.rows) || index < 0 || index >= len(b.rows[row].Bars) {
		return nil, fmt.Errorf("%w: row %d, index %d", ErrNoSuchBar, row, index)
	}
	return b.rows[row].Bars[index], nil
}

// Find locates an allocation by ID.
func (b *Board) Find(allocationID string) (row, index int, ok bool) {
	if allocationID == "" {
		return 0, 0, false
	}
	for ri, r := range b.rows {
		for ai, bar := range r.Bars {
			if bar.allocation.ID == allocationID {
				return ri, ai, true
			}
		}
	}
	return 0, 0, false
}

// Allocations returns the board's local allocations for a row. The slice
// is a copy.
func (b *Board) Allocations(row int) []domain.Allocation {
	if row < 0 || row >= len(b.rows) {
		return nil
	}
	out := make([]domain.Allocation, len(b.rows[row].Bars))
	for i, bar := range b.rows[row].Bars {
		out[i] = bar.allocation
	}
	return out
}

// Settle applies the signal policy to a finished call: refresh on
// success, a notice on failure. The optimistic local state is kept in
// both cases.
func (b *Board) Settle(o gateway.Outcome) {
	gateway.Settle(o, b.signals)
}

// Fail surfaces an error that did not come from a save or delete.
func (b *Board) Fail(err error) {
	if b.signals == nil || err == nil {
		return
	}
	b.signals.Notify(gateway.Notice{Level: gateway.NoticeError, Message: err.Error()})
}

func (b *Board) saveCall(req gateway.SaveRequest) Call {
	p := b.persist
	return func(ctx context.Context) gateway.Outcome {
		return p.Save(ctx, req)
	}
}

func requestFor(a domain.Allocation) gateway.SaveRequest {
	return gateway.SaveRequest{
		AllocationID: a.ID,
		ProjectID:    a.ProjectID,
		ResourceID:   a.ResourceID,
		Role:         a.Role,
		Start:        a.Start,
		End:          a.End,
	}
}

// day normalizes a clicked or entered cell to the board's calendar.
func (b *Board) day(t time.Time) time.Time {
	return domain.DayIn(t, b.rng.Start.Location())
}
