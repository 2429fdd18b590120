package domain

import (
	"sort"
	"time"
)

// Resource is a person or asset whose allocations the timeline shows.
type Resource struct {
	ID          string
	Name        string
	DefaultRole string

	PrimaryAllocation *Allocation

	// AllocationsByProject groups allocations by project ID.
	AllocationsByProject map[string][]Allocation

	// Projects holds row metadata (name, color) in display order.
	// Allocations on these entries are not populated.
	Projects []Project

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectIDs returns the project IDs in row order: the order of Projects
// first, then any remaining keys of AllocationsByProject sorted by ID.
func (r *Resource) ProjectIDs() []string {
	seen := make(map[string]bool, len(r.Projects))
	ids := make([]string, 0, len(r.AllocationsByProject))
	for _, p := range r.Projects {
		if _, ok := r.AllocationsByProject[p.ID]; ok && !seen[p.ID] {
			ids = append(ids, p.ID)
			seen[p.ID] = true
		}
	}
	var rest []string
	for id := range r.AllocationsByProject {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}

// Project returns row metadata for a project ID.
func (r *Resource) Project(id string) (Project, bool) {
	for _, p := range r.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// DisplayID returns the ID truncated to 8 characters.
func (r *Resource) DisplayID() string {
	return shortID(r.ID)
}

// PrimaryRole returns the role of the primary allocation, falling back to
// the resource's default role.
func (r *Resource) PrimaryRole() string {
	var primary string
	if r.PrimaryAllocation != nil {
		primary = r.PrimaryAllocation.Role
	}
	return CoalesceStr(primary, r.DefaultRole)
}

// SelectPrimaryAllocation picks the allocation covering today, or else the
// one with the latest start. Returns nil for an empty slice.
func SelectPrimaryAllocation(allocs []Allocation, today time.Time) *Allocation {
	var best *Allocation
	for i := range allocs {
		a := allocs[i]
		if a.Covers(today) {
			return &a
		}
		if best == nil || a.Start.After(best.Start) {
			best = &a
		}
	}
	return best
}
