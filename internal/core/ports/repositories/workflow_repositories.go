package repositories

import (
	"context"
	"time"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
)

// WorkflowRepository defines persistence operations for workflows, their
// steps, department assignments and rejection records.
type WorkflowRepository interface {
	// SaveWorkflow inserts a workflow and its steps atomically and returns
	// the stored workflow. Returns apperrors.ErrDuplicate if the sub-batch
	// already has a workflow.
	SaveWorkflow(ctx context.Context, workflow domain.Workflow) (*domain.Workflow, error)

	// FindWorkflowBySubBatchID loads a workflow with its steps sorted by
	// step index ascending. Returns apperrors.ErrNotFound if none exists.
	FindWorkflowBySubBatchID(ctx context.Context, subBatchID int64) (*domain.Workflow, error)

	// FindAssignmentsBySubBatchID lists every department assignment ever
	// created for the sub-batch.
	FindAssignmentsBySubBatchID(ctx context.Context, subBatchID int64) ([]domain.DepartmentAssignment, error)

	// RejectToDepartment persists a rejection record and the destination
	// department's NEW_ARRIVAL assignment, and clears the sub-batch's
	// previous current assignment, all in one database transaction. No
	// reader may observe one of the writes without the others.
	RejectToDepartment(ctx context.Context, rejection domain.RejectedBatch, assignment domain.DepartmentAssignment) (*domain.RejectedBatch, error)

	// AdvanceToStep atomically completes the sub-batch's current
	// assignment, makes next the current assignment (nil when the workflow
	// has run past its last step) and moves the workflow's step pointer to
	// nextIndex.
	AdvanceToStep(ctx context.Context, workflowID, subBatchID int64, nextIndex int, next *domain.DepartmentAssignment, updatedBy string, updatedAt time.Time) error
}
