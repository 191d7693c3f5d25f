package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
)

// PgxDepartmentRepository persists department reference data.
type PgxDepartmentRepository struct {
	BaseRepository
}

// newPgxDepartmentRepository creates a new repository for department data.
func newPgxDepartmentRepository(pool *pgxpool.Pool) portsrepo.DepartmentRepository {
	return &PgxDepartmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DepartmentRepository = (*PgxDepartmentRepository)(nil)

const departmentColumns = `department_id, name, created_at, created_by, last_updated_at, last_updated_by`

func scanDepartment(row pgx.Row) (*domain.Department, error) {
	var d domain.Department
	err := row.Scan(
		&d.DepartmentID,
		&d.Name,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveDepartment inserts a department and returns the stored record.
func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) (*domain.Department, error) {
	query := `
		INSERT INTO departments (name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING department_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		department.Name,
		department.CreatedAt,
		department.CreatedBy,
		department.LastUpdatedAt,
		department.LastUpdatedBy,
	).Scan(&department.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert department %q: %w", department.Name, err)
	}
	return &department, nil
}

// FindDepartmentByID loads one department.
func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID int64) (*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE department_id = $1;`
	department, err := scanDepartment(r.Pool.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: department %d", apperrors.ErrNotFound, departmentID)
		}
		return nil, fmt.Errorf("failed to query department %d: %w", departmentID, err)
	}
	return department, nil
}

// FindDepartmentsByIDs loads departments keyed by id; missing ids are absent.
func (r *PgxDepartmentRepository) FindDepartmentsByIDs(ctx context.Context, departmentIDs []int64) (map[int64]domain.Department, error) {
	departments := make(map[int64]domain.Department, len(departmentIDs))
	if len(departmentIDs) == 0 {
		return departments, nil
	}
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE department_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, departmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments[department.DepartmentID] = *department
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return departments, nil
}

// ListDepartments pages through departments ordered by id.
func (r *PgxDepartmentRepository) ListDepartments(ctx context.Context, limit, offset int) ([]domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY department_id ASC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, *department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	if departments == nil {
		departments = []domain.Department{}
	}
	return departments, nil
}
