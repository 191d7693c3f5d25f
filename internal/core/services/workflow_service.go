package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
	"github.com/himaltex/production_tracking_app/internal/dto"
)

// workflowService tracks sub-batch progression through planned department
// sequences and handles the rejection side-path.
type workflowService struct {
	BaseService
	workflowRepo   portsrepo.WorkflowRepository
	departmentRepo portsrepo.DepartmentRepository
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(workflowRepo portsrepo.WorkflowRepository, departmentRepo portsrepo.DepartmentRepository) portssvc.WorkflowSvc {
	return &workflowService{
		workflowRepo:   workflowRepo,
		departmentRepo: departmentRepo,
	}
}

var _ portssvc.WorkflowSvc = (*workflowService)(nil)

// CreateWorkflow records the planned ordered department sequence for a
// sub-batch. Step indices must be contiguous from 0, every department
// must exist, and no department may appear twice.
func (s *workflowService) CreateWorkflow(ctx context.Context, req dto.CreateWorkflowRequest, creatorUserID string) (*domain.Workflow, error) {
	if req.SubBatchID <= 0 {
		return nil, fmt.Errorf("%w: sub_batch_id must be a positive integer", apperrors.ErrValidation)
	}
	if len(req.Steps) == 0 {
		return nil, fmt.Errorf("%w: workflow needs at least one step", apperrors.ErrValidation)
	}

	steps := make([]dto.CreateWorkflowStepRequest, len(req.Steps))
	copy(steps, req.Steps)
	sort.Slice(steps, func(i, j int) bool { return steps[i].StepIndex < steps[j].StepIndex })
	stepByDepartment := make(map[int64]int, len(steps))
	for i, step := range steps {
		if step.StepIndex != i {
			return nil, fmt.Errorf("%w: step indices must be contiguous starting at 0, got %d at position %d", apperrors.ErrValidation, step.StepIndex, i)
		}
		// A sub-batch holds one assignment row per department, so a plan
		// cannot schedule the same department twice.
		if prev, ok := stepByDepartment[step.DepartmentID]; ok {
			return nil, fmt.Errorf("%w: department %d appears in steps %d and %d", apperrors.ErrValidation, step.DepartmentID, prev, step.StepIndex)
		}
		stepByDepartment[step.DepartmentID] = step.StepIndex
	}

	departmentIDs := make([]int64, len(steps))
	for i, step := range steps {
		departmentIDs[i] = step.DepartmentID
	}
	departments, err := s.departmentRepo.FindDepartmentsByIDs(ctx, departmentIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load departments for workflow creation", slog.Int64("sub_batch_id", req.SubBatchID))
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}

	now := time.Now().UTC()
	workflow := domain.Workflow{
		SubBatchID:       req.SubBatchID,
		CurrentStepIndex: domain.StepNotStarted,
		Steps:            make([]domain.WorkflowStep, len(steps)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for i, step := range steps {
		dept, ok := departments[step.DepartmentID]
		if !ok {
			return nil, fmt.Errorf("%w: department %d in step %d does not exist", apperrors.ErrValidation, step.DepartmentID, step.StepIndex)
		}
		workflow.Steps[i] = domain.WorkflowStep{
			StepIndex:      step.StepIndex,
			DepartmentID:   step.DepartmentID,
			DepartmentName: dept.Name,
		}
	}

	saved, err := s.workflowRepo.SaveWorkflow(ctx, workflow)
	if err != nil {
		s.LogError(ctx, err, "Failed to save workflow", slog.Int64("sub_batch_id", req.SubBatchID))
		return nil, err
	}

	s.LogInfo(ctx, "Workflow created",
		slog.Int64("sub_batch_id", saved.SubBatchID),
		slog.Int("step_count", len(saved.Steps)))
	return saved, nil
}

// GetWorkflowStatus projects a workflow and the sub-batch's live department
// assignments into a status report. The step list keeps step-index order;
// finding more than one current assignment raises an invariant error
// instead of silently picking one.
func (s *workflowService) GetWorkflowStatus(ctx context.Context, subBatchID int64) (*domain.WorkflowStatus, error) {
	if subBatchID <= 0 {
		return nil, fmt.Errorf("%w: sub-batch id must be a positive integer", apperrors.ErrValidation)
	}

	workflow, err := s.workflowRepo.FindWorkflowBySubBatchID(ctx, subBatchID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.workflowRepo.FindAssignmentsBySubBatchID(ctx, subBatchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load department assignments", slog.Int64("sub_batch_id", subBatchID))
		return nil, fmt.Errorf("failed to load department assignments: %w", err)
	}

	var current *domain.DepartmentAssignment
	byDepartment := make(map[int64]domain.DepartmentAssignment, len(assignments))
	for _, a := range assignments {
		byDepartment[a.DepartmentID] = a
		if a.IsCurrent {
			if current != nil {
				return nil, fmt.Errorf("%w: sub-batch %d has current assignments in departments %d and %d", apperrors.ErrInvariant, subBatchID, current.DepartmentID, a.DepartmentID)
			}
			c := a
			current = &c
		}
	}

	status := &domain.WorkflowStatus{
		SubBatchID:       subBatchID,
		CurrentStepIndex: workflow.CurrentStepIndex,
		DepartmentFlow:   workflow.FlowString(),
		Steps:            make([]domain.StepStatus, len(workflow.Steps)),
	}

	for i, step := range workflow.Steps {
		stepStatus := domain.StepStatus{
			StepIndex:      step.StepIndex,
			DepartmentID:   step.DepartmentID,
			DepartmentName: step.DepartmentName,
			Stage:          domain.StageNotArrived,
		}
		if a, ok := byDepartment[step.DepartmentID]; ok {
			stepStatus.Stage = a.Stage
			stepStatus.IsCurrent = a.IsCurrent
			stepStatus.Remarks = a.Remarks
		}
		if stepStatus.IsCurrent {
			status.CurrentStepIndex = step.StepIndex
		}
		status.Steps[i] = stepStatus
	}

	if current == nil {
		status.Message = fmt.Sprintf("Sub-batch %d has no current department assigned", subBatchID)
	} else {
		name := s.departmentLabel(ctx, workflow, current.DepartmentID)
		status.Message = fmt.Sprintf("Sub-batch %d is currently in %s", subBatchID, name)
	}

	return status, nil
}

// departmentLabel resolves a department's display label, preferring the
// names already loaded with the workflow steps. Off-plan departments
// (reached via rejection) need an extra lookup.
func (s *workflowService) departmentLabel(ctx context.Context, workflow *domain.Workflow, departmentID int64) string {
	for _, step := range workflow.Steps {
		if step.DepartmentID == departmentID {
			return fmt.Sprintf("%s (%d)", step.DepartmentName, step.DepartmentID)
		}
	}
	dept, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		s.LogWarn(ctx, "Could not resolve department name", slog.Int64("department_id", departmentID), slog.String("error", err.Error()))
		return fmt.Sprintf("department %d", departmentID)
	}
	return fmt.Sprintf("%s (%d)", dept.Name, dept.DepartmentID)
}

// RejectSubBatch records a rejection side-path. The rejection record, the
// destination NEW_ARRIVAL assignment and the clearing of the previous
// current assignment are persisted as one transaction, so repeated
// rejections cannot leave two assignments simultaneously current.
func (s *workflowService) RejectSubBatch(ctx context.Context, req dto.RejectSubBatchRequest, userID string) (*domain.RejectedBatch, error) {
	if req.SubBatchID <= 0 {
		return nil, fmt.Errorf("%w: sub_batch_id must be a positive integer", apperrors.ErrValidation)
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", apperrors.ErrValidation)
	}
	if req.SentToDepartmentID <= 0 {
		return nil, fmt.Errorf("%w: sent_to_department_id must be a positive integer", apperrors.ErrValidation)
	}

	// The sub-batch must already be in production planning.
	if _, err := s.workflowRepo.FindWorkflowBySubBatchID(ctx, req.SubBatchID); err != nil {
		return nil, err
	}

	if _, err := s.departmentRepo.FindDepartmentByID(ctx, req.SentToDepartmentID); err != nil {
		return nil, fmt.Errorf("destination department %d: %w", req.SentToDepartmentID, err)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	rejection := domain.RejectedBatch{
		SubBatchID:         req.SubBatchID,
		Quantity:           req.Quantity,
		Reason:             req.Reason,
		SentToDepartmentID: req.SentToDepartmentID,
		AuditFields:        audit,
	}
	assignment := domain.DepartmentAssignment{
		SubBatchID:   req.SubBatchID,
		DepartmentID: req.SentToDepartmentID,
		Stage:        domain.StageNewArrival,
		IsCurrent:    true,
		Remarks:      req.Reason,
		AuditFields:  audit,
	}

	saved, err := s.workflowRepo.RejectToDepartment(ctx, rejection, assignment)
	if err != nil {
		s.LogError(ctx, err, "Failed to reject sub-batch",
			slog.Int64("sub_batch_id", req.SubBatchID),
			slog.Int64("sent_to_department_id", req.SentToDepartmentID))
		return nil, err
	}

	s.LogInfo(ctx, "Sub-batch rejected",
		slog.Int64("sub_batch_id", saved.SubBatchID),
		slog.String("quantity", saved.Quantity.String()),
		slog.Int64("sent_to_department_id", saved.SentToDepartmentID))
	return saved, nil
}

// AdvanceWorkflow moves a sub-batch to its next planned step, completing
// the workflow when it steps past the final department.
func (s *workflowService) AdvanceWorkflow(ctx context.Context, subBatchID int64, userID string) (*domain.Workflow, error) {
	if subBatchID <= 0 {
		return nil, fmt.Errorf("%w: sub-batch id must be a positive integer", apperrors.ErrValidation)
	}

	workflow, err := s.workflowRepo.FindWorkflowBySubBatchID(ctx, subBatchID)
	if err != nil {
		return nil, err
	}
	if workflow.Completed() {
		return nil, fmt.Errorf("%w: workflow for sub-batch %d already completed", apperrors.ErrValidation, subBatchID)
	}

	nextIndex := workflow.CurrentStepIndex + 1
	now := time.Now().UTC()

	var next *domain.DepartmentAssignment
	if nextIndex < len(workflow.Steps) {
		next = &domain.DepartmentAssignment{
			SubBatchID:   subBatchID,
			DepartmentID: workflow.Steps[nextIndex].DepartmentID,
			Stage:        domain.StageInProgress,
			IsCurrent:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.workflowRepo.AdvanceToStep(ctx, workflow.WorkflowID, subBatchID, nextIndex, next, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to advance workflow", slog.Int64("sub_batch_id", subBatchID), slog.Int("next_index", nextIndex))
		return nil, err
	}

	workflow.CurrentStepIndex = nextIndex
	workflow.LastUpdatedAt = now
	workflow.LastUpdatedBy = userID

	s.LogInfo(ctx, "Workflow advanced",
		slog.Int64("sub_batch_id", subBatchID),
		slog.Int("current_step_index", nextIndex),
		slog.Bool("completed", workflow.Completed()))
	return workflow, nil
}
