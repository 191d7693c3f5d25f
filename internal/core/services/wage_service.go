package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
	"github.com/himaltex/production_tracking_app/internal/dto"
)

// wageService derives wage reports from work logs and worker reference
// data. All operations are pure reads over stored state.
type wageService struct {
	BaseService
	workLogRepo    portsrepo.WorkLogRepository
	workerRepo     portsrepo.WorkerRepository
	departmentRepo portsrepo.DepartmentRepository
}

// NewWageService creates a new WageService.
func NewWageService(workLogRepo portsrepo.WorkLogRepository, workerRepo portsrepo.WorkerRepository, departmentRepo portsrepo.DepartmentRepository) portssvc.WageSvc {
	return &wageService{
		workLogRepo:    workLogRepo,
		workerRepo:     workerRepo,
		departmentRepo: departmentRepo,
	}
}

var _ portssvc.WageSvc = (*wageService)(nil)

// computeWageReport folds a worker's billable logs into a report. The
// wage-type dispatch is a closed switch: the member set is fixed domain
// knowledge and a new wage type is a schema change, not configuration.
func computeWageReport(worker domain.Worker, logs []domain.WorkLog) (domain.WageReport, error) {
	report := domain.WageReport{
		WorkerID:      worker.WorkerID,
		WorkerName:    worker.Name,
		WageType:      worker.WageType,
		WageRate:      worker.WageRate,
		TotalQuantity: decimal.Zero,
		TotalHours:    decimal.Zero,
		TotalWage:     decimal.Zero,
	}

	distinctDates := make(map[string]struct{})
	for _, log := range logs {
		report.TotalQuantity = report.TotalQuantity.Add(log.Quantity)
		report.TotalHours = report.TotalHours.Add(log.Hours)
		distinctDates[log.WorkDate.Format("2006-01-02")] = struct{}{}
		report.LogCount++
	}
	report.DaysWorked = len(distinctDates)

	switch worker.WageType {
	case domain.PieceRate:
		report.TotalWage = worker.WageRate.Mul(report.TotalQuantity)
	case domain.Daily:
		report.TotalWage = worker.WageRate.Mul(decimal.NewFromInt(int64(report.DaysWorked)))
	case domain.Hourly:
		report.TotalWage = worker.WageRate.Mul(report.TotalHours)
	default:
		return domain.WageReport{}, fmt.Errorf("unknown wage type %q for worker %d", worker.WageType, worker.WorkerID)
	}
	return report, nil
}

// CalculateWorkerWages aggregates one worker's billable logs over an
// inclusive date window.
func (s *wageService) CalculateWorkerWages(ctx context.Context, workerID int64, window dto.DateWindow) (*domain.WageReport, error) {
	if workerID <= 0 {
		return nil, fmt.Errorf("%w: worker id must be a positive integer", apperrors.ErrValidation)
	}
	from, to, err := parseDateWindow(window)
	if err != nil {
		return nil, err
	}

	worker, err := s.workerRepo.FindWorkerByID(ctx, workerID)
	if err != nil {
		return nil, err
	}

	logs, err := s.workLogRepo.ListWorkLogs(ctx, domain.WorkLogFilter{
		WorkerID:     &workerID,
		From:         from,
		To:           to,
		BillableOnly: true,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load work logs", slog.Int64("worker_id", workerID))
		return nil, fmt.Errorf("failed to load work logs: %w", err)
	}

	report, err := computeWageReport(*worker, logs)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Worker wage report computed",
		slog.Int64("worker_id", workerID),
		slog.Int("log_count", report.LogCount),
		slog.String("total_wage", report.TotalWage.String()))
	return &report, nil
}

// CalculateAllWorkersWages computes a report per worker with billable logs
// in the window. Workers with zero matching logs never appear in the
// output; report size stays proportional to actual activity.
func (s *wageService) CalculateAllWorkersWages(ctx context.Context, window dto.DateWindow, departmentID *int64) ([]domain.WageReport, error) {
	if departmentID != nil && *departmentID <= 0 {
		return nil, fmt.Errorf("%w: department_id must be a positive integer", apperrors.ErrValidation)
	}
	from, to, err := parseDateWindow(window)
	if err != nil {
		return nil, err
	}

	logs, err := s.workLogRepo.ListWorkLogs(ctx, domain.WorkLogFilter{
		DepartmentID: departmentID,
		From:         from,
		To:           to,
		BillableOnly: true,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load work logs for all-workers wage report")
		return nil, fmt.Errorf("failed to load work logs: %w", err)
	}

	return s.reportsByWorker(ctx, logs)
}

// GetBillableWorkLogs returns billable logs matching the filters, no
// aggregation applied.
func (s *wageService) GetBillableWorkLogs(ctx context.Context, workerID *int64, window dto.DateWindow) ([]domain.WorkLog, error) {
	if workerID != nil && *workerID <= 0 {
		return nil, fmt.Errorf("%w: worker_id must be a positive integer", apperrors.ErrValidation)
	}
	from, to, err := parseDateWindow(window)
	if err != nil {
		return nil, err
	}

	logs, err := s.workLogRepo.ListWorkLogs(ctx, domain.WorkLogFilter{
		WorkerID:     workerID,
		From:         from,
		To:           to,
		BillableOnly: true,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load billable work logs")
		return nil, fmt.Errorf("failed to load work logs: %w", err)
	}
	return logs, nil
}

// GetDepartmentWageSummary aggregates wages across all workers who logged
// billable work in one department during the window.
func (s *wageService) GetDepartmentWageSummary(ctx context.Context, departmentID int64, window dto.DateWindow) (*domain.DepartmentWageSummary, error) {
	if departmentID <= 0 {
		return nil, fmt.Errorf("%w: department id must be a positive integer", apperrors.ErrValidation)
	}
	from, to, err := parseDateWindow(window)
	if err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	logs, err := s.workLogRepo.ListWorkLogs(ctx, domain.WorkLogFilter{
		DepartmentID: &departmentID,
		From:         from,
		To:           to,
		BillableOnly: true,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load work logs for department summary", slog.Int64("department_id", departmentID))
		return nil, fmt.Errorf("failed to load work logs: %w", err)
	}

	reports, err := s.reportsByWorker(ctx, logs)
	if err != nil {
		return nil, err
	}

	summary := &domain.DepartmentWageSummary{
		DepartmentID:   department.DepartmentID,
		DepartmentName: department.Name,
		Workers:        reports,
		TotalWage:      sumReports(reports),
	}

	s.LogInfo(ctx, "Department wage summary computed",
		slog.Int64("department_id", departmentID),
		slog.Int("worker_count", len(reports)),
		slog.String("total_wage", summary.TotalWage.String()))
	return summary, nil
}

// GetSubBatchWageSummary totals the labour cost attributed to a sub-batch
// across its entire history. Wages are cost-to-date for the production
// unit, so no date window applies.
func (s *wageService) GetSubBatchWageSummary(ctx context.Context, subBatchID int64) (*domain.SubBatchWageSummary, error) {
	if subBatchID <= 0 {
		return nil, fmt.Errorf("%w: sub-batch id must be a positive integer", apperrors.ErrValidation)
	}

	logs, err := s.workLogRepo.ListWorkLogs(ctx, domain.WorkLogFilter{
		SubBatchID:   &subBatchID,
		BillableOnly: true,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load work logs for sub-batch summary", slog.Int64("sub_batch_id", subBatchID))
		return nil, fmt.Errorf("failed to load work logs: %w", err)
	}

	reports, err := s.reportsByWorker(ctx, logs)
	if err != nil {
		return nil, err
	}

	summary := &domain.SubBatchWageSummary{
		SubBatchID: subBatchID,
		Workers:    reports,
		TotalWage:  sumReports(reports),
	}

	s.LogInfo(ctx, "Sub-batch wage summary computed",
		slog.Int64("sub_batch_id", subBatchID),
		slog.Int("worker_count", len(reports)),
		slog.String("total_wage", summary.TotalWage.String()))
	return summary, nil
}

// reportsByWorker groups logs per worker, joins worker reference data and
// computes one report per distinct worker, sorted by worker id.
func (s *wageService) reportsByWorker(ctx context.Context, logs []domain.WorkLog) ([]domain.WageReport, error) {
	grouped := make(map[int64][]domain.WorkLog)
	workerIDs := make([]int64, 0)
	for _, log := range logs {
		if _, seen := grouped[log.WorkerID]; !seen {
			workerIDs = append(workerIDs, log.WorkerID)
		}
		grouped[log.WorkerID] = append(grouped[log.WorkerID], log)
	}
	if len(workerIDs) == 0 {
		return []domain.WageReport{}, nil
	}

	workers, err := s.workerRepo.FindWorkersByIDs(ctx, workerIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load workers for wage reports")
		return nil, fmt.Errorf("failed to load workers: %w", err)
	}

	sort.Slice(workerIDs, func(i, j int) bool { return workerIDs[i] < workerIDs[j] })

	reports := make([]domain.WageReport, 0, len(workerIDs))
	for _, id := range workerIDs {
		worker, ok := workers[id]
		if !ok {
			// A log referencing a missing worker is a data problem worth
			// surfacing loudly rather than a report silently short a row.
			return nil, fmt.Errorf("%w: work logs reference worker %d which does not exist", apperrors.ErrInvariant, id)
		}
		report, err := computeWageReport(worker, grouped[id])
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func sumReports(reports []domain.WageReport) decimal.Decimal {
	total := decimal.Zero
	for _, r := range reports {
		total = total.Add(r.TotalWage)
	}
	return total
}
