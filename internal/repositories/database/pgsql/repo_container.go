package pgsql

import (
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WorkflowRepo:   newPgxWorkflowRepository(dbPool),
		WorkLogRepo:    newPgxWorkLogRepository(dbPool),
		WorkerRepo:     newPgxWorkerRepository(dbPool),
		DepartmentRepo: newPgxDepartmentRepository(dbPool),
	}
}
