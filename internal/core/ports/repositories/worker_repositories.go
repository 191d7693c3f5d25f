package repositories

import (
	"context"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
)

// WorkerRepository defines persistence operations for worker reference data.
type WorkerRepository interface {
	SaveWorker(ctx context.Context, worker domain.Worker) (*domain.Worker, error)

	// FindWorkerByID returns apperrors.ErrNotFound when no worker exists.
	FindWorkerByID(ctx context.Context, workerID int64) (*domain.Worker, error)

	// FindWorkersByIDs returns the workers keyed by id; missing ids are
	// simply absent from the map.
	FindWorkersByIDs(ctx context.Context, workerIDs []int64) (map[int64]domain.Worker, error)

	ListWorkers(ctx context.Context, limit, offset int) ([]domain.Worker, error)
}
