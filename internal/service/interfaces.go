package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ResourceService interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	// Load returns the resource with its allocations grouped by project,
	// days expressed in today's location and the primary allocation chosen
	// relative to today.
	Load(ctx context.Context, id string, today time.Time) (*domain.Resource, error)
}

type AllocationService interface {
	// Save creates the allocation when its ID is empty and updates it otherwise.
	Save(ctx context.Context, a *domain.Allocation) error
	GetByID(ctx context.Context, id string) (*domain.Allocation, error)
	ListByResource(ctx context.Context, resourceID string, f repository.AllocationFilter) ([]domain.Allocation, error)
	Delete(ctx context.Context, id string) error
}
