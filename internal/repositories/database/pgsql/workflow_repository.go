package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
)

// PgxWorkflowRepository persists workflows, steps, department assignments
// and rejection records.
type PgxWorkflowRepository struct {
	BaseRepository
}

// newPgxWorkflowRepository creates a new repository for workflow data.
func newPgxWorkflowRepository(pool *pgxpool.Pool) portsrepo.WorkflowRepository {
	return &PgxWorkflowRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkflowRepository = (*PgxWorkflowRepository)(nil)

// SaveWorkflow inserts the workflow row and its steps in one transaction.
func (r *PgxWorkflowRepository) SaveWorkflow(ctx context.Context, workflow domain.Workflow) (*domain.Workflow, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	workflowQuery := `
		INSERT INTO workflows (sub_batch_id, current_step_index, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING workflow_id;
	`
	err = tx.QueryRow(ctx, workflowQuery,
		workflow.SubBatchID,
		workflow.CurrentStepIndex,
		workflow.CreatedAt,
		workflow.CreatedBy,
		workflow.LastUpdatedAt,
		workflow.LastUpdatedBy,
	).Scan(&workflow.WorkflowID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, fmt.Errorf("%w: sub-batch %d already has a workflow", apperrors.ErrDuplicate, workflow.SubBatchID)
		}
		return nil, fmt.Errorf("failed to insert workflow for sub-batch %d: %w", workflow.SubBatchID, err)
	}

	stepQuery := `
		INSERT INTO workflow_steps (workflow_id, step_index, department_id)
		VALUES ($1, $2, $3);
	`
	batch := &pgx.Batch{}
	for _, step := range workflow.Steps {
		batch.Queue(stepQuery, workflow.WorkflowID, step.StepIndex, step.DepartmentID)
	}
	results := tx.SendBatch(ctx, batch)
	for range workflow.Steps {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, fmt.Errorf("failed to insert workflow step: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close step batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &workflow, nil
}

// FindWorkflowBySubBatchID loads a workflow and its steps, joined with
// department names, sorted by step index ascending. The ordering is
// load-bearing: current_step_index indexes into the returned slice.
func (r *PgxWorkflowRepository) FindWorkflowBySubBatchID(ctx context.Context, subBatchID int64) (*domain.Workflow, error) {
	workflowQuery := `
		SELECT workflow_id, sub_batch_id, current_step_index, created_at, created_by, last_updated_at, last_updated_by
		FROM workflows
		WHERE sub_batch_id = $1;
	`
	var workflow domain.Workflow
	err := r.Pool.QueryRow(ctx, workflowQuery, subBatchID).Scan(
		&workflow.WorkflowID,
		&workflow.SubBatchID,
		&workflow.CurrentStepIndex,
		&workflow.CreatedAt,
		&workflow.CreatedBy,
		&workflow.LastUpdatedAt,
		&workflow.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: workflow for sub-batch %d", apperrors.ErrNotFound, subBatchID)
		}
		return nil, fmt.Errorf("failed to query workflow for sub-batch %d: %w", subBatchID, err)
	}

	stepsQuery := `
		SELECT s.step_index, s.department_id, d.name
		FROM workflow_steps s
		JOIN departments d ON d.department_id = s.department_id
		WHERE s.workflow_id = $1
		ORDER BY s.step_index ASC;
	`
	rows, err := r.Pool.Query(ctx, stepsQuery, workflow.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var step domain.WorkflowStep
		if err := rows.Scan(&step.StepIndex, &step.DepartmentID, &step.DepartmentName); err != nil {
			return nil, fmt.Errorf("failed to scan workflow step: %w", err)
		}
		workflow.Steps = append(workflow.Steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workflow steps: %w", err)
	}
	return &workflow, nil
}

// FindAssignmentsBySubBatchID lists every assignment ever created for the
// sub-batch, oldest first.
func (r *PgxWorkflowRepository) FindAssignmentsBySubBatchID(ctx context.Context, subBatchID int64) ([]domain.DepartmentAssignment, error) {
	query := `
		SELECT assignment_id, sub_batch_id, department_id, stage, is_current, COALESCE(remarks, ''),
		       created_at, created_by, last_updated_at, last_updated_by
		FROM department_assignments
		WHERE sub_batch_id = $1
		ORDER BY assignment_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, subBatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments for sub-batch %d: %w", subBatchID, err)
	}
	defer rows.Close()

	var assignments []domain.DepartmentAssignment
	for rows.Next() {
		var a domain.DepartmentAssignment
		if err := rows.Scan(
			&a.AssignmentID,
			&a.SubBatchID,
			&a.DepartmentID,
			&a.Stage,
			&a.IsCurrent,
			&a.Remarks,
			&a.CreatedAt,
			&a.CreatedBy,
			&a.LastUpdatedAt,
			&a.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	if assignments == nil {
		assignments = []domain.DepartmentAssignment{}
	}
	return assignments, nil
}

// RejectToDepartment runs the rejection side-path as one transaction:
// clear the previous current assignment, insert the rejection record,
// insert the destination NEW_ARRIVAL assignment. Readers never observe a
// partial rejection.
func (r *PgxWorkflowRepository) RejectToDepartment(ctx context.Context, rejection domain.RejectedBatch, assignment domain.DepartmentAssignment) (*domain.RejectedBatch, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	clearQuery := `
		UPDATE department_assignments
		SET is_current = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE sub_batch_id = $1 AND is_current = TRUE;
	`
	if _, err := tx.Exec(ctx, clearQuery, rejection.SubBatchID, rejection.LastUpdatedAt, rejection.LastUpdatedBy); err != nil {
		return nil, fmt.Errorf("failed to clear current assignment for sub-batch %d: %w", rejection.SubBatchID, err)
	}

	rejectionQuery := `
		INSERT INTO rejected_batches (sub_batch_id, quantity, reason, sent_to_department_id,
		                              created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING rejection_id;
	`
	err = tx.QueryRow(ctx, rejectionQuery,
		rejection.SubBatchID,
		rejection.Quantity,
		rejection.Reason,
		rejection.SentToDepartmentID,
		rejection.CreatedAt,
		rejection.CreatedBy,
		rejection.LastUpdatedAt,
		rejection.LastUpdatedBy,
	).Scan(&rejection.RejectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rejection record for sub-batch %d: %w", rejection.SubBatchID, err)
	}

	// The destination may already hold an assignment row from an earlier
	// visit; re-arm it instead of inserting a second row.
	assignmentQuery := `
		INSERT INTO department_assignments (sub_batch_id, department_id, stage, is_current, remarks,
		                                    created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (sub_batch_id, department_id) DO UPDATE
		SET stage = EXCLUDED.stage, is_current = EXCLUDED.is_current, remarks = EXCLUDED.remarks,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by
		RETURNING assignment_id;
	`
	err = tx.QueryRow(ctx, assignmentQuery,
		assignment.SubBatchID,
		assignment.DepartmentID,
		assignment.Stage,
		assignment.IsCurrent,
		assignment.Remarks,
		assignment.CreatedAt,
		assignment.CreatedBy,
		assignment.LastUpdatedAt,
		assignment.LastUpdatedBy,
	).Scan(&assignment.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert destination assignment for sub-batch %d: %w", assignment.SubBatchID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &rejection, nil
}

// AdvanceToStep moves a sub-batch to its next planned step in one
// transaction: the outgoing assignment is completed and made non-current,
// the next department's assignment (if any) becomes current, and the
// workflow's step pointer advances.
func (r *PgxWorkflowRepository) AdvanceToStep(ctx context.Context, workflowID, subBatchID int64, nextIndex int, next *domain.DepartmentAssignment, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	completeQuery := `
		UPDATE department_assignments
		SET is_current = FALSE, stage = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sub_batch_id = $1 AND is_current = TRUE;
	`
	if _, err := tx.Exec(ctx, completeQuery, subBatchID, domain.StageCompleted, updatedAt, updatedBy); err != nil {
		return fmt.Errorf("failed to complete current assignment for sub-batch %d: %w", subBatchID, err)
	}

	if next != nil {
		// A department revisited after rejection already has an assignment
		// row; make it current again instead of inserting a second row.
		upsertQuery := `
			INSERT INTO department_assignments (sub_batch_id, department_id, stage, is_current, remarks,
			                                    created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (sub_batch_id, department_id) DO UPDATE
			SET stage = EXCLUDED.stage, is_current = EXCLUDED.is_current,
			    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
		`
		if _, err := tx.Exec(ctx, upsertQuery,
			next.SubBatchID,
			next.DepartmentID,
			next.Stage,
			next.IsCurrent,
			next.Remarks,
			next.CreatedAt,
			next.CreatedBy,
			next.LastUpdatedAt,
			next.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to upsert next assignment for sub-batch %d: %w", subBatchID, err)
		}
	}

	pointerQuery := `
		UPDATE workflows
		SET current_step_index = $2, last_updated_at = $3, last_updated_by = $4
		WHERE workflow_id = $1;
	`
	tag, err := tx.Exec(ctx, pointerQuery, workflowID, nextIndex, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to advance workflow %d: %w", workflowID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: workflow %d", apperrors.ErrNotFound, workflowID)
	}

	return r.Commit(ctx, tx)
}
