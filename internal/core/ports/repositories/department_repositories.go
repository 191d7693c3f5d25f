package repositories

import (
	"context"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
)

// DepartmentRepository defines persistence operations for department
// reference data.
type DepartmentRepository interface {
	SaveDepartment(ctx context.Context, department domain.Department) (*domain.Department, error)

	// FindDepartmentByID returns apperrors.ErrNotFound when no department exists.
	FindDepartmentByID(ctx context.Context, departmentID int64) (*domain.Department, error)

	// FindDepartmentsByIDs returns the departments keyed by id; missing ids
	// are simply absent from the map.
	FindDepartmentsByIDs(ctx context.Context, departmentIDs []int64) (map[int64]domain.Department, error)

	ListDepartments(ctx context.Context, limit, offset int) ([]domain.Department, error)
}
