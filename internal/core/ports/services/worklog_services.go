package services

import (
	"context"

	"github.com/himaltex/production_tracking_app/internal/core/domain"
	"github.com/himaltex/production_tracking_app/internal/dto"
)

// WorkLogSvc appends and queries the work-log store.
type WorkLogSvc interface {
	// CreateWorkLog normalizes the work date and appends the log.
	CreateWorkLog(ctx context.Context, req dto.CreateWorkLogRequest, creatorUserID string) (*domain.WorkLog, error)

	// ListWorkLogs returns logs matching the filters, dates accepted in
	// either calendar system.
	ListWorkLogs(ctx context.Context, req dto.ListWorkLogsRequest) ([]domain.WorkLog, error)
}
