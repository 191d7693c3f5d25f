package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
)

// PgxWorkLogRepository persists the append-only work-log store.
type PgxWorkLogRepository struct {
	BaseRepository
}

// newPgxWorkLogRepository creates a new repository for work-log data.
func newPgxWorkLogRepository(pool *pgxpool.Pool) portsrepo.WorkLogRepository {
	return &PgxWorkLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkLogRepository = (*PgxWorkLogRepository)(nil)

// SaveWorkLog appends a work log.
func (r *PgxWorkLogRepository) SaveWorkLog(ctx context.Context, log domain.WorkLog) (*domain.WorkLog, error) {
	query := `
		INSERT INTO work_logs (worker_id, sub_batch_id, department_id, work_date, quantity, hours, billable,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING work_log_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		log.WorkerID,
		log.SubBatchID,
		log.DepartmentID,
		log.WorkDate,
		log.Quantity,
		log.Hours,
		log.Billable,
		log.CreatedAt,
		log.CreatedBy,
		log.LastUpdatedAt,
		log.LastUpdatedBy,
	).Scan(&log.WorkLogID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert work log for worker %d: %w", log.WorkerID, err)
	}
	return &log, nil
}

// ListWorkLogs returns logs matching the filter, ordered by work date then
// id. The date window is inclusive on both ends.
func (r *PgxWorkLogRepository) ListWorkLogs(ctx context.Context, filter domain.WorkLogFilter) ([]domain.WorkLog, error) {
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.WorkerID != nil {
		addCondition("worker_id = $%d", *filter.WorkerID)
	}
	if filter.SubBatchID != nil {
		addCondition("sub_batch_id = $%d", *filter.SubBatchID)
	}
	if filter.DepartmentID != nil {
		addCondition("department_id = $%d", *filter.DepartmentID)
	}
	if filter.From != nil {
		addCondition("work_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCondition("work_date <= $%d", *filter.To)
	}
	if filter.BillableOnly {
		conditions = append(conditions, "billable = TRUE")
	}

	query := `
		SELECT work_log_id, worker_id, sub_batch_id, department_id, work_date, quantity, hours, billable,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM work_logs
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY work_date ASC, work_log_id ASC"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query work logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.WorkLog
	for rows.Next() {
		var l domain.WorkLog
		if err := rows.Scan(
			&l.WorkLogID,
			&l.WorkerID,
			&l.SubBatchID,
			&l.DepartmentID,
			&l.WorkDate,
			&l.Quantity,
			&l.Hours,
			&l.Billable,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work logs: %w", err)
	}
	if logs == nil {
		logs = []domain.WorkLog{}
	}
	return logs, nil
}
