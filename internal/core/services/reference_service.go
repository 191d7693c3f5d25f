package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
	"github.com/himaltex/production_tracking_app/internal/dto"
)

// departmentService manages department reference data.
type departmentService struct {
	BaseService
	departmentRepo portsrepo.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(departmentRepo portsrepo.DepartmentRepository) portssvc.DepartmentSvc {
	return &departmentService{departmentRepo: departmentRepo}
}

var _ portssvc.DepartmentSvc = (*departmentService)(nil)

func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: department name is required", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	department := domain.Department{
		Name: req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	saved, err := s.departmentRepo.SaveDepartment(ctx, department)
	if err != nil {
		s.LogError(ctx, err, "Failed to save department", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Department created", slog.Int64("department_id", saved.DepartmentID))
	return saved, nil
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID int64) (*domain.Department, error) {
	if departmentID <= 0 {
		return nil, fmt.Errorf("%w: department id must be a positive integer", apperrors.ErrValidation)
	}
	return s.departmentRepo.FindDepartmentByID(ctx, departmentID)
}

func (s *departmentService) ListDepartments(ctx context.Context, limit, offset int) ([]domain.Department, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.departmentRepo.ListDepartments(ctx, limit, offset)
}

// workerService manages worker reference data, including wage rules.
type workerService struct {
	BaseService
	workerRepo portsrepo.WorkerRepository
}

// NewWorkerService creates a new WorkerService.
func NewWorkerService(workerRepo portsrepo.WorkerRepository) portssvc.WorkerSvc {
	return &workerService{workerRepo: workerRepo}
}

var _ portssvc.WorkerSvc = (*workerService)(nil)

func (s *workerService) CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, creatorUserID string) (*domain.Worker, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: worker name is required", apperrors.ErrValidation)
	}
	wageType := domain.WageType(req.WageType)
	if !wageType.Valid() {
		return nil, fmt.Errorf("%w: wage_type must be one of PIECE_RATE, DAILY, HOURLY", apperrors.ErrValidation)
	}
	if req.WageRate.IsNegative() {
		return nil, fmt.Errorf("%w: wage_rate must not be negative", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	worker := domain.Worker{
		Name:     req.Name,
		WageType: wageType,
		WageRate: req.WageRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	saved, err := s.workerRepo.SaveWorker(ctx, worker)
	if err != nil {
		s.LogError(ctx, err, "Failed to save worker", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Worker created", slog.Int64("worker_id", saved.WorkerID), slog.String("wage_type", string(saved.WageType)))
	return saved, nil
}

func (s *workerService) GetWorkerByID(ctx context.Context, workerID int64) (*domain.Worker, error) {
	if workerID <= 0 {
		return nil, fmt.Errorf("%w: worker id must be a positive integer", apperrors.ErrValidation)
	}
	return s.workerRepo.FindWorkerByID(ctx, workerID)
}

func (s *workerService) ListWorkers(ctx context.Context, limit, offset int) ([]domain.Worker, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.workerRepo.ListWorkers(ctx, limit, offset)
}
