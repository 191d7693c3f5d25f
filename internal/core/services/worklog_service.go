package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
	"github.com/himaltex/production_tracking_app/internal/dto"
	"github.com/himaltex/production_tracking_app/internal/utils/nepcal"
)

// workLogService appends to and queries the append-only work-log store.
type workLogService struct {
	BaseService
	workLogRepo    portsrepo.WorkLogRepository
	workerRepo     portsrepo.WorkerRepository
	departmentRepo portsrepo.DepartmentRepository
}

// NewWorkLogService creates a new WorkLogService.
func NewWorkLogService(workLogRepo portsrepo.WorkLogRepository, workerRepo portsrepo.WorkerRepository, departmentRepo portsrepo.DepartmentRepository) portssvc.WorkLogSvc {
	return &workLogService{
		workLogRepo:    workLogRepo,
		workerRepo:     workerRepo,
		departmentRepo: departmentRepo,
	}
}

var _ portssvc.WorkLogSvc = (*workLogService)(nil)

// CreateWorkLog normalizes the work date to the canonical timeline,
// verifies the worker and department references and appends the log.
func (s *workLogService) CreateWorkLog(ctx context.Context, req dto.CreateWorkLogRequest, creatorUserID string) (*domain.WorkLog, error) {
	if req.WorkerID <= 0 {
		return nil, fmt.Errorf("%w: worker_id must be a positive integer", apperrors.ErrValidation)
	}
	if req.SubBatchID <= 0 {
		return nil, fmt.Errorf("%w: sub_batch_id must be a positive integer", apperrors.ErrValidation)
	}
	if req.DepartmentID <= 0 {
		return nil, fmt.Errorf("%w: department_id must be a positive integer", apperrors.ErrValidation)
	}
	if req.Quantity.IsNegative() || req.Hours.IsNegative() {
		return nil, fmt.Errorf("%w: quantity and hours must not be negative", apperrors.ErrValidation)
	}
	if req.Quantity.Equal(decimal.Zero) && req.Hours.Equal(decimal.Zero) {
		return nil, fmt.Errorf("%w: at least one of quantity and hours must be positive", apperrors.ErrValidation)
	}

	workDate, err := nepcal.ToCanonical(req.WorkDate)
	if err != nil {
		return nil, fmt.Errorf("%w: work_date: %v", apperrors.ErrValidation, err)
	}
	if !nepcal.IsValidCanonical(workDate) {
		return nil, fmt.Errorf("%w: work_date: %q normalizes to a sentinel date", apperrors.ErrValidation, req.WorkDate)
	}

	if _, err := s.workerRepo.FindWorkerByID(ctx, req.WorkerID); err != nil {
		return nil, fmt.Errorf("worker %d: %w", req.WorkerID, err)
	}
	if _, err := s.departmentRepo.FindDepartmentByID(ctx, req.DepartmentID); err != nil {
		return nil, fmt.Errorf("department %d: %w", req.DepartmentID, err)
	}

	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}

	now := time.Now().UTC()
	log := domain.WorkLog{
		WorkerID:     req.WorkerID,
		SubBatchID:   req.SubBatchID,
		DepartmentID: req.DepartmentID,
		WorkDate:     workDate,
		Quantity:     req.Quantity,
		Hours:        req.Hours,
		Billable:     billable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.workLogRepo.SaveWorkLog(ctx, log)
	if err != nil {
		s.LogError(ctx, err, "Failed to save work log",
			slog.Int64("worker_id", req.WorkerID),
			slog.Int64("sub_batch_id", req.SubBatchID))
		return nil, err
	}

	s.LogInfo(ctx, "Work log recorded",
		slog.Int64("work_log_id", saved.WorkLogID),
		slog.Int64("worker_id", saved.WorkerID),
		slog.String("work_date", saved.WorkDate.Format("2006-01-02")),
		slog.Bool("billable", saved.Billable))
	return saved, nil
}

// ListWorkLogs returns logs matching the filters. Date bounds are accepted
// in either calendar system and applied inclusively.
func (s *workLogService) ListWorkLogs(ctx context.Context, req dto.ListWorkLogsRequest) ([]domain.WorkLog, error) {
	for name, id := range map[string]*int64{
		"worker_id":     req.WorkerID,
		"sub_batch_id":  req.SubBatchID,
		"department_id": req.DepartmentID,
	} {
		if id != nil && *id <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", apperrors.ErrValidation, name)
		}
	}

	from, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	logs, err := s.workLogRepo.ListWorkLogs(ctx, domain.WorkLogFilter{
		WorkerID:     req.WorkerID,
		SubBatchID:   req.SubBatchID,
		DepartmentID: req.DepartmentID,
		From:         from,
		To:           to,
		BillableOnly: req.BillableOnly,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list work logs")
		return nil, fmt.Errorf("failed to list work logs: %w", err)
	}
	return logs, nil
}
