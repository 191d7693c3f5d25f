package repositories

import (
	"context"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
)

// WorkLogRepository defines persistence operations for the append-only
// work-log store.
type WorkLogRepository interface {
	// SaveWorkLog appends a work log and returns the stored record.
	SaveWorkLog(ctx context.Context, log domain.WorkLog) (*domain.WorkLog, error)

	// ListWorkLogs returns logs matching the filter, ordered by work date
	// then id. An empty result is not an error.
	ListWorkLogs(ctx context.Context, filter domain.WorkLogFilter) ([]domain.WorkLog, error)
}
