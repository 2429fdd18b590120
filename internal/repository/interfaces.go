package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByName(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	GetByName(ctx context.Context, name string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error
}

// AllocationFilter narrows ListByResource to allocations overlapping a window.
// Zero times leave that side open.
type AllocationFilter struct {
	From time.Time
	To   time.Time
}

type AllocationRepo interface {
	Create(ctx context.Context, a *domain.Allocation) error
	GetByID(ctx context.Context, id string) (*domain.Allocation, error)
	ListByResource(ctx context.Context, resourceID string, f AllocationFilter) ([]domain.Allocation, error)
	Update(ctx context.Context, a *domain.Allocation) error
	Delete(ctx context.Context, id string) error
}
