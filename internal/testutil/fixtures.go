package testutil

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/google/uuid"
)

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithColor(c domain.Color) ProjectOption {
	return func(p *domain.Project) {
		p.Color = c
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     domain.ColorBlue,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resource options
type ResourceOption func(*domain.Resource)

func WithDefaultRole(role string) ResourceOption {
	return func(r *domain.Resource) {
		r.DefaultRole = role
	}
}

func NewTestResource(name string, opts ...ResourceOption) *domain.Resource {
	now := time.Now().UTC()
	r := &domain.Resource{
		ID:          uuid.New().String(),
		Name:        name,
		DefaultRole: "Engineer",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Allocation options
type AllocationOption func(*domain.Allocation)

func WithRole(role string) AllocationOption {
	return func(a *domain.Allocation) {
		a.Role = role
	}
}

func WithDates(start, end time.Time) AllocationOption {
	return func(a *domain.Allocation) {
		a.Start = start
		a.End = end
	}
}

func WithAllocationColor(c domain.Color) AllocationOption {
	return func(a *domain.Allocation) {
		a.Color = c
	}
}

func WithAllocationID(id string) AllocationOption {
	return func(a *domain.Allocation) {
		a.ID = id
	}
}

// NewTestAllocation builds a one-week allocation starting 2024-01-03.
func NewTestAllocation(projectID, resourceID string, opts ...AllocationOption) *domain.Allocation {
	a := &domain.Allocation{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		ResourceID: resourceID,
		Role:       "Engineer",
		Start:      Day(2024, time.January, 3),
		End:        Day(2024, time.January, 9),
		Color:      domain.ColorBlue,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ResourceWith assembles a loaded resource from projects and their
// allocations, in the given project order, as ResourceService.Load would.
func ResourceWith(r *domain.Resource, projects []*domain.Project, allocs ...domain.Allocation) *domain.Resource {
	out := *r
	out.AllocationsByProject = make(map[string][]domain.Allocation)
	out.Projects = nil
	for _, p := range projects {
		out.Projects = append(out.Projects, domain.Project{ID: p.ID, Name: p.Name, Color: p.Color})
	}
	for _, a := range allocs {
		a.ResourceID = r.ID
		out.AllocationsByProject[a.ProjectID] = append(out.AllocationsByProject[a.ProjectID], a)
	}
	return &out
}
