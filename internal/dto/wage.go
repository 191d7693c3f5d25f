package dto

import (
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateWindow bounds a wage query. Either end may be empty (open); values
// may be Bikram Sambat or Gregorian YYYY-MM-DD strings and the window is
// inclusive on both ends after normalization.
type DateWindow struct {
	StartDate string
	EndDate   string
}

// WageReportResponse is the API shape of a computed wage report.
type WageReportResponse struct {
	WorkerID      int64           `json:"workerID"`
	WorkerName    string          `json:"workerName"`
	WageType      string          `json:"wageType"`
	WageRate      decimal.Decimal `json:"wageRate"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalHours    decimal.Decimal `json:"totalHours"`
	DaysWorked    int             `json:"daysWorked"`
	LogCount      int             `json:"logCount"`
	TotalWage     decimal.Decimal `json:"totalWage"`
}

// DepartmentWageSummaryResponse is the API shape of a department summary.
type DepartmentWageSummaryResponse struct {
	DepartmentID   int64                `json:"departmentID"`
	DepartmentName string               `json:"departmentName"`
	Workers        []WageReportResponse `json:"workers"`
	TotalWage      decimal.Decimal      `json:"totalWage"`
}

// SubBatchWageSummaryResponse is the API shape of a sub-batch cost summary.
type SubBatchWageSummaryResponse struct {
	SubBatchID int64                `json:"subBatchID"`
	Workers    []WageReportResponse `json:"workers"`
	TotalWage  decimal.Decimal      `json:"totalWage"`
}

// ToWageReportResponse converts a domain wage report to its API shape.
func ToWageReportResponse(r domain.WageReport) WageReportResponse {
	return WageReportResponse{
		WorkerID:      r.WorkerID,
		WorkerName:    r.WorkerName,
		WageType:      string(r.WageType),
		WageRate:      r.WageRate,
		TotalQuantity: r.TotalQuantity,
		TotalHours:    r.TotalHours,
		DaysWorked:    r.DaysWorked,
		LogCount:      r.LogCount,
		TotalWage:     r.TotalWage,
	}
}

// ToWageReportResponses converts a slice of domain wage reports.
func ToWageReportResponses(reports []domain.WageReport) []WageReportResponse {
	out := make([]WageReportResponse, len(reports))
	for i, r := range reports {
		out[i] = ToWageReportResponse(r)
	}
	return out
}

// ToDepartmentWageSummaryResponse converts a domain department summary.
func ToDepartmentWageSummaryResponse(s *domain.DepartmentWageSummary) DepartmentWageSummaryResponse {
	return DepartmentWageSummaryResponse{
		DepartmentID:   s.DepartmentID,
		DepartmentName: s.DepartmentName,
		Workers:        ToWageReportResponses(s.Workers),
		TotalWage:      s.TotalWage,
	}
}

// ToSubBatchWageSummaryResponse converts a domain sub-batch summary.
func ToSubBatchWageSummaryResponse(s *domain.SubBatchWageSummary) SubBatchWageSummaryResponse {
	return SubBatchWageSummaryResponse{
		SubBatchID: s.SubBatchID,
		Workers:    ToWageReportResponses(s.Workers),
		TotalWage:  s.TotalWage,
	}
}
