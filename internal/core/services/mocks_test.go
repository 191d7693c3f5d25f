package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
)

// --- Mock WorkflowRepository ---

type MockWorkflowRepository struct {
	mock.Mock
}

var _ portsrepo.WorkflowRepository = (*MockWorkflowRepository)(nil)

func (m *MockWorkflowRepository) SaveWorkflow(ctx context.Context, workflow domain.Workflow) (*domain.Workflow, error) {
	args := m.Called(ctx, workflow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) FindWorkflowBySubBatchID(ctx context.Context, subBatchID int64) (*domain.Workflow, error) {
	args := m.Called(ctx, subBatchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) FindAssignmentsBySubBatchID(ctx context.Context, subBatchID int64) ([]domain.DepartmentAssignment, error) {
	args := m.Called(ctx, subBatchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentAssignment), args.Error(1)
}

func (m *MockWorkflowRepository) RejectToDepartment(ctx context.Context, rejection domain.RejectedBatch, assignment domain.DepartmentAssignment) (*domain.RejectedBatch, error) {
	args := m.Called(ctx, rejection, assignment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RejectedBatch), args.Error(1)
}

func (m *MockWorkflowRepository) AdvanceToStep(ctx context.Context, workflowID, subBatchID int64, nextIndex int, next *domain.DepartmentAssignment, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, workflowID, subBatchID, nextIndex, next, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock WorkLogRepository ---

type MockWorkLogRepository struct {
	mock.Mock
}

var _ portsrepo.WorkLogRepository = (*MockWorkLogRepository)(nil)

func (m *MockWorkLogRepository) SaveWorkLog(ctx context.Context, log domain.WorkLog) (*domain.WorkLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}

func (m *MockWorkLogRepository) ListWorkLogs(ctx context.Context, filter domain.WorkLogFilter) ([]domain.WorkLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkLog), args.Error(1)
}

// --- Mock WorkerRepository ---

type MockWorkerRepository struct {
	mock.Mock
}

var _ portsrepo.WorkerRepository = (*MockWorkerRepository)(nil)

func (m *MockWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) (*domain.Worker, error) {
	args := m.Called(ctx, worker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) FindWorkerByID(ctx context.Context, workerID int64) (*domain.Worker, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) FindWorkersByIDs(ctx context.Context, workerIDs []int64) (map[int64]domain.Worker, error) {
	args := m.Called(ctx, workerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListWorkers(ctx context.Context, limit, offset int) ([]domain.Worker, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Worker), args.Error(1)
}

// --- Mock DepartmentRepository ---

type MockDepartmentRepository struct {
	mock.Mock
}

var _ portsrepo.DepartmentRepository = (*MockDepartmentRepository)(nil)

func (m *MockDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) (*domain.Department, error) {
	args := m.Called(ctx, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID int64) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindDepartmentsByIDs(ctx context.Context, departmentIDs []int64) (map[int64]domain.Department, error) {
	args := m.Called(ctx, departmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) ListDepartments(ctx context.Context, limit, offset int) ([]domain.Department, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}
