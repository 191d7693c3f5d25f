package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
	"github.com/himaltex/production_tracking_app/internal/dto"
)

// --- Mock WorkflowService ---

type MockWorkflowService struct {
	mock.Mock
}

var _ portssvc.WorkflowSvc = (*MockWorkflowService)(nil)

func (m *MockWorkflowService) CreateWorkflow(ctx context.Context, req dto.CreateWorkflowRequest, creatorUserID string) (*domain.Workflow, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workflow), args.Error(1)
}

func (m *MockWorkflowService) GetWorkflowStatus(ctx context.Context, subBatchID int64) (*domain.WorkflowStatus, error) {
	args := m.Called(ctx, subBatchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkflowStatus), args.Error(1)
}

func (m *MockWorkflowService) RejectSubBatch(ctx context.Context, req dto.RejectSubBatchRequest, userID string) (*domain.RejectedBatch, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RejectedBatch), args.Error(1)
}

func (m *MockWorkflowService) AdvanceWorkflow(ctx context.Context, subBatchID int64, userID string) (*domain.Workflow, error) {
	args := m.Called(ctx, subBatchID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workflow), args.Error(1)
}

// --- Mock WageService ---

type MockWageService struct {
	mock.Mock
}

var _ portssvc.WageSvc = (*MockWageService)(nil)

func (m *MockWageService) CalculateWorkerWages(ctx context.Context, workerID int64, window dto.DateWindow) (*domain.WageReport, error) {
	args := m.Called(ctx, workerID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WageReport), args.Error(1)
}

func (m *MockWageService) CalculateAllWorkersWages(ctx context.Context, window dto.DateWindow, departmentID *int64) ([]domain.WageReport, error) {
	args := m.Called(ctx, window, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WageReport), args.Error(1)
}

func (m *MockWageService) GetBillableWorkLogs(ctx context.Context, workerID *int64, window dto.DateWindow) ([]domain.WorkLog, error) {
	args := m.Called(ctx, workerID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkLog), args.Error(1)
}

func (m *MockWageService) GetDepartmentWageSummary(ctx context.Context, departmentID int64, window dto.DateWindow) (*domain.DepartmentWageSummary, error) {
	args := m.Called(ctx, departmentID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepartmentWageSummary), args.Error(1)
}

func (m *MockWageService) GetSubBatchWageSummary(ctx context.Context, subBatchID int64) (*domain.SubBatchWageSummary, error) {
	args := m.Called(ctx, subBatchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubBatchWageSummary), args.Error(1)
}

// --- Mock WorkLogService ---

type MockWorkLogService struct {
	mock.Mock
}

var _ portssvc.WorkLogSvc = (*MockWorkLogService)(nil)

func (m *MockWorkLogService) CreateWorkLog(ctx context.Context, req dto.CreateWorkLogRequest, creatorUserID string) (*domain.WorkLog, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}

func (m *MockWorkLogService) ListWorkLogs(ctx context.Context, req dto.ListWorkLogsRequest) ([]domain.WorkLog, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkLog), args.Error(1)
}
