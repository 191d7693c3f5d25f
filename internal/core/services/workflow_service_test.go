package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
	"github.com/himaltex/production_tracking_app/internal/core/services"
	"github.com/himaltex/production_tracking_app/internal/dto"
)

// --- Test Suite Setup ---

type WorkflowServiceTestSuite struct {
	suite.Suite
	mockWorkflowRepo   *MockWorkflowRepository
	mockDepartmentRepo *MockDepartmentRepository
	service            portssvc.WorkflowSvc
}

func (suite *WorkflowServiceTestSuite) SetupTest() {
	suite.mockWorkflowRepo = new(MockWorkflowRepository)
	suite.mockDepartmentRepo = new(MockDepartmentRepository)
	suite.service = services.NewWorkflowService(suite.mockWorkflowRepo, suite.mockDepartmentRepo)
}

// threeStepWorkflow builds a cutting -> stitching -> finishing plan for
// sub-batch 42 with the step pointer at stitching.
func threeStepWorkflow() *domain.Workflow {
	return &domain.Workflow{
		WorkflowID:       7,
		SubBatchID:       42,
		CurrentStepIndex: 1,
		Steps: []domain.WorkflowStep{
			{StepIndex: 0, DepartmentID: 1, DepartmentName: "Cutting"},
			{StepIndex: 1, DepartmentID: 2, DepartmentName: "Stitching"},
			{StepIndex: 2, DepartmentID: 3, DepartmentName: "Finishing"},
		},
	}
}

// --- CreateWorkflow ---

func (suite *WorkflowServiceTestSuite) TestCreateWorkflow_Success() {
	ctx := context.Background()
	req := dto.CreateWorkflowRequest{
		SubBatchID: 42,
		Steps: []dto.CreateWorkflowStepRequest{
			{StepIndex: 1, DepartmentID: 2},
			{StepIndex: 0, DepartmentID: 1}, // out of order on purpose
		},
	}

	suite.mockDepartmentRepo.On("FindDepartmentsByIDs", ctx, []int64{1, 2}).Return(map[int64]domain.Department{
		1: {DepartmentID: 1, Name: "Cutting"},
		2: {DepartmentID: 2, Name: "Stitching"},
	}, nil).Once()
	suite.mockWorkflowRepo.On("SaveWorkflow", ctx, mock.AnythingOfType("domain.Workflow")).Run(func(args mock.Arguments) {
		wf := args.Get(1).(domain.Workflow)
		suite.Equal(domain.StepNotStarted, wf.CurrentStepIndex)
		suite.Equal([]domain.WorkflowStep{
			{StepIndex: 0, DepartmentID: 1, DepartmentName: "Cutting"},
			{StepIndex: 1, DepartmentID: 2, DepartmentName: "Stitching"},
		}, wf.Steps)
	}).Return(&domain.Workflow{WorkflowID: 7, SubBatchID: 42, CurrentStepIndex: domain.StepNotStarted}, nil).Once()

	created, err := suite.service.CreateWorkflow(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(42), created.SubBatchID)
	suite.mockWorkflowRepo.AssertExpectations(suite.T())
	suite.mockDepartmentRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestCreateWorkflow_NonContiguousSteps() {
	ctx := context.Background()
	req := dto.CreateWorkflowRequest{
		SubBatchID: 42,
		Steps: []dto.CreateWorkflowStepRequest{
			{StepIndex: 0, DepartmentID: 1},
			{StepIndex: 2, DepartmentID: 2}, // gap at index 1
		},
	}

	created, err := suite.service.CreateWorkflow(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "SaveWorkflow", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestCreateWorkflow_RepeatedDepartment() {
	ctx := context.Background()
	req := dto.CreateWorkflowRequest{
		SubBatchID: 42,
		Steps: []dto.CreateWorkflowStepRequest{
			{StepIndex: 0, DepartmentID: 1},
			{StepIndex: 1, DepartmentID: 2},
			{StepIndex: 2, DepartmentID: 1}, // Cutting scheduled twice
		},
	}

	created, err := suite.service.CreateWorkflow(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "department 1 appears in steps 0 and 2")
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "SaveWorkflow", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestCreateWorkflow_UnknownDepartment() {
	ctx := context.Background()
	req := dto.CreateWorkflowRequest{
		SubBatchID: 42,
		Steps:      []dto.CreateWorkflowStepRequest{{StepIndex: 0, DepartmentID: 99}},
	}

	suite.mockDepartmentRepo.On("FindDepartmentsByIDs", ctx, []int64{99}).Return(map[int64]domain.Department{}, nil).Once()

	created, err := suite.service.CreateWorkflow(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "department 99")
}

func (suite *WorkflowServiceTestSuite) TestCreateWorkflow_DuplicateSubBatch() {
	ctx := context.Background()
	req := dto.CreateWorkflowRequest{
		SubBatchID: 42,
		Steps:      []dto.CreateWorkflowStepRequest{{StepIndex: 0, DepartmentID: 1}},
	}

	suite.mockDepartmentRepo.On("FindDepartmentsByIDs", ctx, []int64{1}).Return(map[int64]domain.Department{
		1: {DepartmentID: 1, Name: "Cutting"},
	}, nil).Once()
	suite.mockWorkflowRepo.On("SaveWorkflow", ctx, mock.AnythingOfType("domain.Workflow")).Return(nil, apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateWorkflow(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- GetWorkflowStatus ---

func (suite *WorkflowServiceTestSuite) TestGetWorkflowStatus_MidFlow() {
	ctx := context.Background()
	workflow := threeStepWorkflow()

	assignments := []domain.DepartmentAssignment{
		{AssignmentID: 1, SubBatchID: 42, DepartmentID: 1, Stage: domain.StageCompleted, IsCurrent: false},
		{AssignmentID: 2, SubBatchID: 42, DepartmentID: 2, Stage: domain.StageInProgress, IsCurrent: true},
	}

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(workflow, nil).Once()
	suite.mockWorkflowRepo.On("FindAssignmentsBySubBatchID", ctx, int64(42)).Return(assignments, nil).Once()

	status, err := suite.service.GetWorkflowStatus(ctx, 42)

	suite.Require().NoError(err)
	suite.Require().NotNil(status)
	suite.Equal(int64(42), status.SubBatchID)
	suite.Equal(1, status.CurrentStepIndex)
	suite.Equal("Cutting (1) -> Stitching (2) -> Finishing (3)", status.DepartmentFlow)
	suite.Equal("Sub-batch 42 is currently in Stitching (2)", status.Message)

	suite.Require().Len(status.Steps, 3)
	suite.Equal(domain.StageCompleted, status.Steps[0].Stage)
	suite.False(status.Steps[0].IsCurrent)
	suite.Equal(domain.StageInProgress, status.Steps[1].Stage)
	suite.True(status.Steps[1].IsCurrent)
	// Finishing has no assignment yet; the report shows NOT_ARRIVED.
	suite.Equal(domain.StageNotArrived, status.Steps[2].Stage)
	suite.False(status.Steps[2].IsCurrent)
}

func (suite *WorkflowServiceTestSuite) TestGetWorkflowStatus_NoCurrentAssignment() {
	ctx := context.Background()
	workflow := threeStepWorkflow()
	workflow.CurrentStepIndex = domain.StepNotStarted

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(workflow, nil).Once()
	suite.mockWorkflowRepo.On("FindAssignmentsBySubBatchID", ctx, int64(42)).Return([]domain.DepartmentAssignment{}, nil).Once()

	status, err := suite.service.GetWorkflowStatus(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal(domain.StepNotStarted, status.CurrentStepIndex)
	suite.Equal("Sub-batch 42 has no current department assigned", status.Message)
	for _, step := range status.Steps {
		suite.Equal(domain.StageNotArrived, step.Stage)
	}
}

func (suite *WorkflowServiceTestSuite) TestGetWorkflowStatus_OffPlanCurrent() {
	ctx := context.Background()
	workflow := threeStepWorkflow()

	// Rejection sent the sub-batch to a department outside the plan.
	assignments := []domain.DepartmentAssignment{
		{AssignmentID: 1, SubBatchID: 42, DepartmentID: 1, Stage: domain.StageCompleted, IsCurrent: false},
		{AssignmentID: 2, SubBatchID: 42, DepartmentID: 9, Stage: domain.StageNewArrival, IsCurrent: true},
	}

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(workflow, nil).Once()
	suite.mockWorkflowRepo.On("FindAssignmentsBySubBatchID", ctx, int64(42)).Return(assignments, nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, int64(9)).Return(&domain.Department{DepartmentID: 9, Name: "Rework"}, nil).Once()

	status, err := suite.service.GetWorkflowStatus(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal("Sub-batch 42 is currently in Rework (9)", status.Message)
	// The plan keeps only planned steps; the off-plan stop is not a step row.
	suite.Len(status.Steps, 3)
}

func (suite *WorkflowServiceTestSuite) TestGetWorkflowStatus_TwoCurrents() {
	ctx := context.Background()
	workflow := threeStepWorkflow()

	assignments := []domain.DepartmentAssignment{
		{AssignmentID: 1, SubBatchID: 42, DepartmentID: 1, Stage: domain.StageInProgress, IsCurrent: true},
		{AssignmentID: 2, SubBatchID: 42, DepartmentID: 2, Stage: domain.StageNewArrival, IsCurrent: true},
	}

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(workflow, nil).Once()
	suite.mockWorkflowRepo.On("FindAssignmentsBySubBatchID", ctx, int64(42)).Return(assignments, nil).Once()

	status, err := suite.service.GetWorkflowStatus(ctx, 42)

	suite.Require().Error(err)
	suite.Nil(status)
	suite.ErrorIs(err, apperrors.ErrInvariant)
	suite.Contains(err.Error(), "departments 1 and 2")
}

func (suite *WorkflowServiceTestSuite) TestGetWorkflowStatus_NotFound() {
	ctx := context.Background()

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(999)).Return(nil, apperrors.ErrNotFound).Once()

	status, err := suite.service.GetWorkflowStatus(ctx, 999)

	suite.Require().Error(err)
	suite.Nil(status)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WorkflowServiceTestSuite) TestGetWorkflowStatus_InvalidID() {
	status, err := suite.service.GetWorkflowStatus(context.Background(), 0)

	suite.Require().Error(err)
	suite.Nil(status)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "FindWorkflowBySubBatchID", mock.Anything, mock.Anything)
}

// --- RejectSubBatch ---

func (suite *WorkflowServiceTestSuite) TestRejectSubBatch_Success() {
	ctx := context.Background()
	req := dto.RejectSubBatchRequest{
		SubBatchID:         42,
		Quantity:           decimal.NewFromInt(10),
		Reason:             "stitching defects",
		SentToDepartmentID: 2,
	}

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(threeStepWorkflow(), nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, int64(2)).Return(&domain.Department{DepartmentID: 2, Name: "Stitching"}, nil).Once()
	suite.mockWorkflowRepo.On("RejectToDepartment", ctx,
		mock.AnythingOfType("domain.RejectedBatch"),
		mock.AnythingOfType("domain.DepartmentAssignment"),
	).Run(func(args mock.Arguments) {
		rejection := args.Get(1).(domain.RejectedBatch)
		assignment := args.Get(2).(domain.DepartmentAssignment)
		suite.Equal(int64(42), rejection.SubBatchID)
		suite.Equal("stitching defects", rejection.Reason)
		suite.Equal(int64(2), assignment.DepartmentID)
		suite.Equal(domain.StageNewArrival, assignment.Stage)
		suite.True(assignment.IsCurrent)
	}).Return(&domain.RejectedBatch{
		RejectionID:        5,
		SubBatchID:         42,
		Quantity:           req.Quantity,
		Reason:             req.Reason,
		SentToDepartmentID: 2,
	}, nil).Once()

	rejection, err := suite.service.RejectSubBatch(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(rejection)
	suite.Equal(int64(5), rejection.RejectionID)
	suite.mockWorkflowRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestRejectSubBatch_BackToVisitedDepartment() {
	// Rework: the sub-batch sits in Stitching and is sent back to Cutting,
	// which already holds an assignment row from the first pass. The
	// destination assignment must still re-arm as current NEW_ARRIVAL.
	ctx := context.Background()
	req := dto.RejectSubBatchRequest{
		SubBatchID:         42,
		Quantity:           decimal.NewFromInt(4),
		Reason:             "cut pieces out of tolerance",
		SentToDepartmentID: 1,
	}

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(threeStepWorkflow(), nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, int64(1)).Return(&domain.Department{DepartmentID: 1, Name: "Cutting"}, nil).Once()
	suite.mockWorkflowRepo.On("RejectToDepartment", ctx,
		mock.AnythingOfType("domain.RejectedBatch"),
		mock.AnythingOfType("domain.DepartmentAssignment"),
	).Run(func(args mock.Arguments) {
		assignment := args.Get(2).(domain.DepartmentAssignment)
		suite.Equal(int64(1), assignment.DepartmentID)
		suite.Equal(domain.StageNewArrival, assignment.Stage)
		suite.True(assignment.IsCurrent)
		suite.Equal("cut pieces out of tolerance", assignment.Remarks)
	}).Return(&domain.RejectedBatch{RejectionID: 6, SubBatchID: 42, Quantity: req.Quantity, SentToDepartmentID: 1}, nil).Once()

	rejection, err := suite.service.RejectSubBatch(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(int64(6), rejection.RejectionID)
	suite.mockWorkflowRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestRejectSubBatch_NonPositiveQuantity() {
	req := dto.RejectSubBatchRequest{
		SubBatchID:         42,
		Quantity:           decimal.Zero,
		Reason:             "defects",
		SentToDepartmentID: 2,
	}

	rejection, err := suite.service.RejectSubBatch(context.Background(), req, "user-1")

	suite.Require().Error(err)
	suite.Nil(rejection)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "RejectToDepartment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestRejectSubBatch_UnknownDestination() {
	ctx := context.Background()
	req := dto.RejectSubBatchRequest{
		SubBatchID:         42,
		Quantity:           decimal.NewFromInt(3),
		Reason:             "defects",
		SentToDepartmentID: 99,
	}

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(threeStepWorkflow(), nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	rejection, err := suite.service.RejectSubBatch(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(rejection)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "destination department 99")
}

func (suite *WorkflowServiceTestSuite) TestRejectSubBatch_RepoError() {
	ctx := context.Background()
	req := dto.RejectSubBatchRequest{
		SubBatchID:         42,
		Quantity:           decimal.NewFromInt(3),
		Reason:             "defects",
		SentToDepartmentID: 2,
	}
	expectedErr := assert.AnError

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(threeStepWorkflow(), nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, int64(2)).Return(&domain.Department{DepartmentID: 2, Name: "Stitching"}, nil).Once()
	suite.mockWorkflowRepo.On("RejectToDepartment", ctx, mock.Anything, mock.Anything).Return(nil, expectedErr).Once()

	rejection, err := suite.service.RejectSubBatch(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(rejection)
	suite.ErrorIs(err, expectedErr)
}

// --- AdvanceWorkflow ---

func (suite *WorkflowServiceTestSuite) TestAdvanceWorkflow_MidFlow() {
	ctx := context.Background()
	workflow := threeStepWorkflow() // pointer at index 1

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(workflow, nil).Once()
	suite.mockWorkflowRepo.On("AdvanceToStep", ctx, int64(7), int64(42), 2,
		mock.AnythingOfType("*domain.DepartmentAssignment"), "user-1", mock.AnythingOfType("time.Time"),
	).Run(func(args mock.Arguments) {
		next := args.Get(4).(*domain.DepartmentAssignment)
		suite.Require().NotNil(next)
		suite.Equal(int64(3), next.DepartmentID) // Finishing
		suite.Equal(domain.StageInProgress, next.Stage)
		suite.True(next.IsCurrent)
	}).Return(nil).Once()

	advanced, err := suite.service.AdvanceWorkflow(ctx, 42, "user-1")

	suite.Require().NoError(err)
	suite.Equal(2, advanced.CurrentStepIndex)
	suite.False(advanced.Completed())
}

func (suite *WorkflowServiceTestSuite) TestAdvanceWorkflow_PastLastStep() {
	ctx := context.Background()
	workflow := threeStepWorkflow()
	workflow.CurrentStepIndex = 2 // last planned step

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(workflow, nil).Once()
	suite.mockWorkflowRepo.On("AdvanceToStep", ctx, int64(7), int64(42), 3,
		(*domain.DepartmentAssignment)(nil), "user-1", mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	advanced, err := suite.service.AdvanceWorkflow(ctx, 42, "user-1")

	suite.Require().NoError(err)
	suite.Equal(3, advanced.CurrentStepIndex)
	suite.True(advanced.Completed())
}

func (suite *WorkflowServiceTestSuite) TestAdvanceWorkflow_AlreadyCompleted() {
	ctx := context.Background()
	workflow := threeStepWorkflow()
	workflow.CurrentStepIndex = 3

	suite.mockWorkflowRepo.On("FindWorkflowBySubBatchID", ctx, int64(42)).Return(workflow, nil).Once()

	advanced, err := suite.service.AdvanceWorkflow(ctx, 42, "user-1")

	suite.Require().Error(err)
	suite.Nil(advanced)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "AdvanceToStep",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
