package services

import (
	"context"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
	"github.com/himaltex/production_tracking_app/internal/dto"
)

// DepartmentSvc manages department reference data consumed by the
// workflow and wage engines.
type DepartmentSvc interface {
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error)
	GetDepartmentByID(ctx context.Context, departmentID int64) (*domain.Department, error)
	ListDepartments(ctx context.Context, limit, offset int) ([]domain.Department, error)
}

// WorkerSvc manages worker reference data (wage type and rate included).
type WorkerSvc interface {
	CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, creatorUserID string) (*domain.Worker, error)
	GetWorkerByID(ctx context.Context, workerID int64) (*domain.Worker, error)
	ListWorkers(ctx context.Context, limit, offset int) ([]domain.Worker, error)
}
