package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/google/uuid"
)

type allocationService struct {
	allocations repository.AllocationRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewAllocationService(allocations repository.AllocationRepo, uow db.UnitOfWork, observers ...UseCaseObserver) AllocationService {
	return &allocationService{
		allocations: allocations,
		uow:         uow,
		observer:    UseCaseObserverOrNoop(observers),
	}
}

func (s *allocationService) Save(ctx context.Context, a *domain.Allocation) error {
	a.Role = strings.TrimSpace(a.Role)
	if a.ID == "" {
		return observe(ctx, s.observer, "allocation.create", nil, func() error {
			if err := a.Validate(); err != nil {
				return err
			}
			a.ID = uuid.New().String()
			if err := s.allocations.Create(ctx, a); err != nil {
				a.ID = ""
				return err
			}
			return nil
		})
	}

	return observe(ctx, s.observer, "allocation.update", map[string]any{"allocation_id": a.ID}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txAllocations := repository.NewSQLiteAllocationRepo(tx)

			stored, err := txAllocations.GetByID(ctx, a.ID)
			if err != nil {
				return err
			}
			stored.Start = a.Start
			stored.End = a.End
			stored.ProjectID = domain.CoalesceStr(a.ProjectID, stored.ProjectID)
			stored.ResourceID = domain.CoalesceStr(a.ResourceID, stored.ResourceID)
			stored.Role = domain.CoalesceStr(a.Role, stored.Role)
			if err := stored.Validate(); err != nil {
				return err
			}
			if err := txAllocations.Update(ctx, stored); err != nil {
				return err
			}
			*a = *stored
			return nil
		})
	})
}

func (s *allocationService) GetByID(ctx context.Context, id string) (*domain.Allocation, error) {
	return s.allocations.GetByID(ctx, id)
}

func (s *allocationService) ListByResource(ctx context.Context, resourceID string, f repository.AllocationFilter) ([]domain.Allocation, error) {
	return s.allocations.ListByResource(ctx, resourceID, f)
}

func (s *allocationService) Delete(ctx context.Context, id string) error {
	return observe(ctx, s.observer, "allocation.delete", map[string]any{"allocation_id": id}, func() error {
		return s.allocations.Delete(ctx, id)
	})
}
