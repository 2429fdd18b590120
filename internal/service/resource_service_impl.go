package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/google/uuid"
)

type resourceService struct {
	resources   repository.ResourceRepo
	allocations repository.AllocationRepo
	projects    repository.ProjectRepo
	observer    UseCaseObserver
}

func NewResourceService(resources repository.ResourceRepo, allocations repository.AllocationRepo, projects repository.ProjectRepo, observers ...UseCaseObserver) ResourceService {
	return &resourceService{
		resources:   resources,
		allocations: allocations,
		projects:    projects,
		observer:    UseCaseObserverOrNoop(observers),
	}
}

func (s *resourceService) Create(ctx context.Context, r *domain.Resource) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("resource name is required")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.resources.Create(ctx, r)
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *resourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	return s.resources.List(ctx)
}

func (s *resourceService) Load(ctx context.Context, id string, today time.Time) (*domain.Resource, error) {
	var res *domain.Resource
	err := observe(ctx, s.observer, "resource.load", map[string]any{"resource_id": id}, func() error {
		var err error
		res, err = s.load(ctx, id, today)
		return err
	})
	return res, err
}

func (s *resourceService) load(ctx context.Context, id string, today time.Time) (*domain.Resource, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	allocs, err := s.allocations.ListByResource(ctx, id, repository.AllocationFilter{})
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	loc := today.Location()
	res.AllocationsByProject = make(map[string][]domain.Allocation)
	for _, a := range allocs {
		a.Start = domain.DayIn(a.Start, loc)
		a.End = domain.DayIn(a.End, loc)
		res.AllocationsByProject[a.ProjectID] = append(res.AllocationsByProject[a.ProjectID], a)
	}

	// Projects arrive ordered by name; keep those that have rows.
	res.Projects = nil
	var flat []domain.Allocation
	for _, p := range projects {
		rows, ok := res.AllocationsByProject[p.ID]
		if !ok {
			continue
		}
		res.Projects = append(res.Projects, domain.Project{ID: p.ID, Name: p.Name, Color: p.Color})
		flat = append(flat, rows...)
	}
	res.PrimaryAllocation = domain.SelectPrimaryAllocation(flat, domain.Day(today))
	return res, nil
}
