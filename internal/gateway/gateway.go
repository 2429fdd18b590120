// Package gateway is the persistence boundary of the timeline: save and
// delete calls with ok/error outcomes, and the signals they settle into.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/service"
)

// Op names a gateway operation.
type Op string

const (
	OpSave   Op = "save"
	OpDelete Op = "delete"
	OpFetch  Op = "fetch_projects"
)

// SaveRequest carries an allocation to persist. An empty AllocationID
// creates a new allocation.
type SaveRequest struct {
	AllocationID string
	ProjectID    string
	ResourceID   string
	Role         string
	Start        time.Time
	End          time.Time
}

// ProjectSummary is a project as offered by the creation dialog.
type ProjectSummary struct {
	ID    string
	Name  string
	Color domain.Color
}

// Outcome is the result of a save or delete.
type Outcome struct {
	Op           Op
	AllocationID string
	Err          error
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// RemoteError wraps any failure of a persistence call.
type RemoteError struct {
	Op  Op
	Err error
}

func (e *RemoteError) Error() string {
	switch e.Op {
	case OpSave:
		return fmt.Sprintf("saving allocation: %v", e.Err)
	case OpDelete:
		return fmt.Sprintf("deleting allocation: %v", e.Err)
	default:
		return fmt.Sprintf("loading projects: %v", e.Err)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Gateway forwards timeline mutations to the allocation and project services.
type Gateway struct {
	allocations service.AllocationService
	projects    service.ProjectService
	loc         *time.Location
	observer    service.UseCaseObserver
}

// New creates a Gateway. Dates are normalized to calendar-day boundaries
// in loc before they are sent.
func New(allocations service.AllocationService, projects service.ProjectService, loc *time.Location, observers ...service.UseCaseObserver) *Gateway {
	if loc == nil {
		loc = time.Local
	}
	return &Gateway{
		allocations: allocations,
		projects:    projects,
		loc:         loc,
		observer:    service.UseCaseObserverOrNoop(observers),
	}
}

// Save persists req. It never retries.
func (g *Gateway) Save(ctx context.Context, req SaveRequest) Outcome {
	started := time.Now()
	a := &domain.Allocation{
		ID:         req.AllocationID,
		ProjectID:  req.ProjectID,
		ResourceID: req.ResourceID,
		Role:       req.Role,
		Start:      domain.DayIn(req.Start, g.loc),
		End:        domain.DayIn(req.End, g.loc),
	}
	err := g.allocations.Save(ctx, a)
	g.observe(ctx, OpSave, started, err, map[string]any{
		"allocation_id": a.ID,
		"start":         a.Start.Format(domain.DateLayout),
		"end":           a.End.Format(domain.DateLayout),
	})
	if err != nil {
		return Outcome{Op: OpSave, AllocationID: req.AllocationID, Err: &RemoteError{Op: OpSave, Err: err}}
	}
	return Outcome{Op: OpSave, AllocationID: a.ID}
}

// Delete removes an allocation. It never retries.
func (g *Gateway) Delete(ctx context.Context, allocationID string) Outcome {
	started := time.Now()
	err := g.allocations.Delete(ctx, allocationID)
	g.observe(ctx, OpDelete, started, err, map[string]any{"allocation_id": allocationID})
	if err != nil {
		return Outcome{Op: OpDelete, AllocationID: allocationID, Err: &RemoteError{Op: OpDelete, Err: err}}
	}
	return Outcome{Op: OpDelete, AllocationID: allocationID}
}

// FetchProjects lists the projects an allocation can be created against.
func (g *Gateway) FetchProjects(ctx context.Context) ([]ProjectSummary, error) {
	started := time.Now()
	projects, err := g.projects.List(ctx)
	g.observe(ctx, OpFetch, started, err, nil)
	if err != nil {
		return nil, &RemoteError{Op: OpFetch, Err: err}
	}
	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectSummary{ID: p.ID, Name: p.Name, Color: p.Color})
	}
	return out, nil
}

func (g *Gateway) observe(ctx context.Context, op Op, started time.Time, err error, fields map[string]any) {
	g.observer.ObserveUseCase(ctx, service.UseCaseEvent{
		Name:      "gateway." + string(op),
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}
