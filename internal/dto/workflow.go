package dto

import (
	"github.com/himaltex/production_tracking_app/internal/core/domain"
)

// CreateWorkflowStepRequest is one planned stop in a new workflow.
type CreateWorkflowStepRequest struct {
	StepIndex    int   `json:"step_index" binding:"min=0"`
	DepartmentID int64 `json:"department_id" binding:"required,gt=0"`
}

// CreateWorkflowRequest creates the planned department sequence for a
// sub-batch entering production planning.
type CreateWorkflowRequest struct {
	SubBatchID int64                       `json:"sub_batch_id" binding:"required,gt=0"`
	Steps      []CreateWorkflowStepRequest `json:"steps" binding:"required,min=1,dive"`
}

// WorkflowStepResponse mirrors domain.WorkflowStep for API responses.
type WorkflowStepResponse struct {
	StepIndex      int    `json:"stepIndex"`
	DepartmentID   int64  `json:"departmentID"`
	DepartmentName string `json:"departmentName"`
}

// WorkflowResponse is the API shape of a stored workflow.
type WorkflowResponse struct {
	WorkflowID       int64                  `json:"workflowID"`
	SubBatchID       int64                  `json:"subBatchID"`
	CurrentStepIndex int                    `json:"currentStepIndex"`
	Completed        bool                   `json:"completed"`
	Steps            []WorkflowStepResponse `json:"steps"`
}

// ToWorkflowResponse converts a domain workflow to its API shape.
func ToWorkflowResponse(w *domain.Workflow) WorkflowResponse {
	steps := make([]WorkflowStepResponse, len(w.Steps))
	for i, s := range w.Steps {
		steps[i] = WorkflowStepResponse{
			StepIndex:      s.StepIndex,
			DepartmentID:   s.DepartmentID,
			DepartmentName: s.DepartmentName,
		}
	}
	return WorkflowResponse{
		WorkflowID:       w.WorkflowID,
		SubBatchID:       w.SubBatchID,
		CurrentStepIndex: w.CurrentStepIndex,
		Completed:        w.Completed(),
		Steps:            steps,
	}
}

// StepStatusResponse is one row of a workflow status report.
type StepStatusResponse struct {
	StepIndex      int    `json:"stepIndex"`
	DepartmentID   int64  `json:"departmentID"`
	DepartmentName string `json:"departmentName"`
	Stage          string `json:"stage"`
	IsCurrent      bool   `json:"isCurrent"`
	Remarks        string `json:"remarks,omitempty"`
}

// WorkflowStatusResponse is the API shape of a workflow status report.
type WorkflowStatusResponse struct {
	SubBatchID       int64                `json:"subBatchID"`
	CurrentStepIndex int                  `json:"currentStepIndex"`
	Message          string               `json:"message"`
	DepartmentFlow   string               `json:"departmentFlow"`
	Steps            []StepStatusResponse `json:"steps"`
}

// ToWorkflowStatusResponse converts a domain status report to its API shape.
func ToWorkflowStatusResponse(s *domain.WorkflowStatus) WorkflowStatusResponse {
	steps := make([]StepStatusResponse, len(s.Steps))
	for i, step := range s.Steps {
		steps[i] = StepStatusResponse{
			StepIndex:      step.StepIndex,
			DepartmentID:   step.DepartmentID,
			DepartmentName: step.DepartmentName,
			Stage:          string(step.Stage),
			IsCurrent:      step.IsCurrent,
			Remarks:        step.Remarks,
		}
	}
	return WorkflowStatusResponse{
		SubBatchID:       s.SubBatchID,
		CurrentStepIndex: s.CurrentStepIndex,
		Message:          s.Message,
		DepartmentFlow:   s.DepartmentFlow,
		Steps:            steps,
	}
}
