package services

import (
	"context"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
	"github.com/himaltex/production_tracking_app/internal/dto"
)

// WageSvc derives wage reports from the work-log store and worker
// reference data. Every operation is read-only over stored state; calling
// one twice against an unchanged log set yields identical results.
type WageSvc interface {
	// CalculateWorkerWages aggregates one worker's billable logs inside the
	// window. Returns apperrors.ErrNotFound for an unknown worker.
	CalculateWorkerWages(ctx context.Context, workerID int64, window dto.DateWindow) (*domain.WageReport, error)

	// CalculateAllWorkersWages computes one report per worker with at least
	// one billable log in the window, optionally scoped to one department.
	// Workers without matching logs are omitted, not zero-valued.
	CalculateAllWorkersWages(ctx context.Context, window dto.DateWindow, departmentID *int64) ([]domain.WageReport, error)

	// GetBillableWorkLogs returns the billable logs matching the filters,
	// without aggregation.
	GetBillableWorkLogs(ctx context.Context, workerID *int64, window dto.DateWindow) ([]domain.WorkLog, error)

	// GetDepartmentWageSummary aggregates all workers' wages in one
	// department over the window.
	GetDepartmentWageSummary(ctx context.Context, departmentID int64, window dto.DateWindow) (*domain.DepartmentWageSummary, error)

	// GetSubBatchWageSummary totals the labour cost-to-date of one
	// sub-batch across its full work-log history.
	GetSubBatchWageSummary(ctx context.Context, subBatchID int64) (*domain.SubBatchWageSummary, error)
}
