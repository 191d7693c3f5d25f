package services

import (
	"context"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
	"github.com/himaltex/production_tracking_app/internal/dto"
)

// WorkflowSvc tracks a sub-batch's progression through its planned
// department sequence, including the rejection side-path.
type WorkflowSvc interface {
	// CreateWorkflow records the planned department sequence for a
	// sub-batch entering production planning.
	CreateWorkflow(ctx context.Context, req dto.CreateWorkflowRequest, creatorUserID string) (*domain.Workflow, error)

	// GetWorkflowStatus projects the workflow and live department
	// assignments into a status report. Read-only.
	GetWorkflowStatus(ctx context.Context, subBatchID int64) (*domain.WorkflowStatus, error)

	// RejectSubBatch sends quantity out of plan to another department,
	// atomically recording the rejection, the destination NEW_ARRIVAL
	// assignment and the clearing of the previous current assignment.
	RejectSubBatch(ctx context.Context, req dto.RejectSubBatchRequest, userID string) (*domain.RejectedBatch, error)

	// AdvanceWorkflow moves the sub-batch to its next planned step.
	AdvanceWorkflow(ctx context.Context, subBatchID int64, userID string) (*domain.Workflow, error)
}
