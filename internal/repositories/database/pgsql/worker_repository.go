package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
)

// PgxWorkerRepository persists worker reference data.
type PgxWorkerRepository struct {
	BaseRepository
}

// newPgxWorkerRepository creates a new repository for worker data.
func newPgxWorkerRepository(pool *pgxpool.Pool) portsrepo.WorkerRepository {
	return &PgxWorkerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkerRepository = (*PgxWorkerRepository)(nil)

const workerColumns = `worker_id, name, wage_type, wage_rate, created_at, created_by, last_updated_at, last_updated_by`

func scanWorker(row pgx.Row) (*domain.Worker, error) {
	var w domain.Worker
	err := row.Scan(
		&w.WorkerID,
		&w.Name,
		&w.WageType,
		&w.WageRate,
		&w.CreatedAt,
		&w.CreatedBy,
		&w.LastUpdatedAt,
		&w.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// SaveWorker inserts a worker and returns the stored record.
func (r *PgxWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) (*domain.Worker, error) {
	query := `
		INSERT INTO workers (name, wage_type, wage_rate, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING worker_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		worker.Name,
		worker.WageType,
		worker.WageRate,
		worker.CreatedAt,
		worker.CreatedBy,
		worker.LastUpdatedAt,
		worker.LastUpdatedBy,
	).Scan(&worker.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert worker %q: %w", worker.Name, err)
	}
	return &worker, nil
}

// FindWorkerByID loads one worker.
func (r *PgxWorkerRepository) FindWorkerByID(ctx context.Context, workerID int64) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = $1;`
	worker, err := scanWorker(r.Pool.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: worker %d", apperrors.ErrNotFound, workerID)
		}
		return nil, fmt.Errorf("failed to query worker %d: %w", workerID, err)
	}
	return worker, nil
}

// FindWorkersByIDs loads workers keyed by id; missing ids are absent.
func (r *PgxWorkerRepository) FindWorkersByIDs(ctx context.Context, workerIDs []int64) (map[int64]domain.Worker, error) {
	workers := make(map[int64]domain.Worker, len(workerIDs))
	if len(workerIDs) == 0 {
		return workers, nil
	}
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, workerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers[worker.WorkerID] = *worker
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}
	return workers, nil
}

// ListWorkers pages through workers ordered by id.
func (r *PgxWorkerRepository) ListWorkers(ctx context.Context, limit, offset int) ([]domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY worker_id ASC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []domain.Worker
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, *worker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}
	if workers == nil {
		workers = []domain.Worker{}
	}
	return workers, nil
}
