package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// SQLiteAllocationRepo implements AllocationRepo using a SQLite database.
// Reads join the owning project so each allocation carries its color.
type SQLiteAllocationRepo struct {
	db db.DBTX
}

// NewSQLiteAllocationRepo creates a new SQLiteAllocationRepo.
func NewSQLiteAllocationRepo(db db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: db}
}

const allocationSelect = `SELECT a.id, a.project_id, a.resource_id, a.role, a.start_date, a.end_date, p.color
	FROM allocations a
	JOIN projects p ON p.id = a.project_id`

func (r *SQLiteAllocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	now := nowUTC()
	query := `INSERT INTO allocations (id, project_id, resource_id, role, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ProjectID,
		a.ResourceID,
		a.Role,
		formatDay(a.Start),
		formatDay(a.End),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) GetByID(ctx context.Context, id string) (*domain.Allocation, error) {
	row := r.db.QueryRowContext(ctx, allocationSelect+` WHERE a.id = ?`, id)
	a, err := scanAllocation(row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteAllocationRepo) ListByResource(ctx context.Context, resourceID string, f AllocationFilter) ([]domain.Allocation, error) {
	query := allocationSelect + ` WHERE a.resource_id = ?`
	args := []any{resourceID}
	if !f.From.IsZero() {
		query += ` AND a.end_date >= ?`
		args = append(args, formatDay(f.From))
	}
	if !f.To.IsZero() {
		query += ` AND a.start_date <= ?`
		args = append(args, formatDay(f.To))
	}
	query += ` ORDER BY p.name COLLATE NOCASE, a.start_date, a.created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()

	var out []domain.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	return out, nil
}

func (r *SQLiteAllocationRepo) Update(ctx context.Context, a *domain.Allocation) error {
	query := `UPDATE allocations SET project_id = ?, resource_id = ?, role = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.ProjectID,
		a.ResourceID,
		a.Role,
		formatDay(a.Start),
		formatDay(a.End),
		nowUTC(),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating allocation: %w", err)
	}
	return requireAffected(res, "allocation")
}

func (r *SQLiteAllocationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM allocations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting allocation: %w", err)
	}
	return requireAffected(res, "allocation")
}

func scanAllocation(row scanner) (domain.Allocation, error) {
	var a domain.Allocation
	var start, end, color string
	if err := row.Scan(&a.ID, &a.ProjectID, &a.ResourceID, &a.Role, &start, &end, &color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, fmt.Errorf("allocation %w", ErrNotFound)
		}
		return a, fmt.Errorf("scanning allocation: %w", err)
	}
	a.Color = domain.Color(color)

	var err error
	if a.Start, err = parseDay(start); err != nil {
		return a, fmt.Errorf("parsing start_date: %w", err)
	}
	if a.End, err = parseDay(end); err != nil {
		return a, fmt.Errorf("parsing end_date: %w", err)
	}
	return a, nil
}

