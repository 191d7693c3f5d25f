package dto

import (
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWorkLogRequest appends one unit of work. WorkDate may be a Bikram
// Sambat or Gregorian YYYY-MM-DD string; it is normalized before storage.
type CreateWorkLogRequest struct {
	WorkerID     int64           `json:"worker_id" binding:"required,gt=0"`
	SubBatchID   int64           `json:"sub_batch_id" binding:"required,gt=0"`
	DepartmentID int64           `json:"department_id" binding:"required,gt=0"`
	WorkDate     string          `json:"work_date" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Hours        decimal.Decimal `json:"hours"`
	Billable     *bool           `json:"billable"` // defaults to true when omitted
}

// ListWorkLogsRequest filters work-log queries. Dates may be in either
// calendar system; ids are optional.
type ListWorkLogsRequest struct {
	WorkerID     *int64
	SubBatchID   *int64
	DepartmentID *int64
	StartDate    string
	EndDate      string
	BillableOnly bool
}

// WorkLogResponse is the API shape of a stored work log. WorkDate is the
// canonical Gregorian date; WorkDateBS is its Bikram Sambat rendering when
// the conversion table covers it.
type WorkLogResponse struct {
	WorkLogID    int64           `json:"workLogID"`
	WorkerID     int64           `json:"workerID"`
	SubBatchID   int64           `json:"subBatchID"`
	DepartmentID int64           `json:"departmentID"`
	WorkDate     string          `json:"workDate"`
	WorkDateBS   string          `json:"workDateBS,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Hours        decimal.Decimal `json:"hours"`
	Billable     bool            `json:"billable"`
}

// ToWorkLogResponse converts a domain work log to its API shape.
func ToWorkLogResponse(l domain.WorkLog, workDateBS string) WorkLogResponse {
	return WorkLogResponse{
		WorkLogID:    l.WorkLogID,
		WorkerID:     l.WorkerID,
		SubBatchID:   l.SubBatchID,
		DepartmentID: l.DepartmentID,
		WorkDate:     l.WorkDate.Format("2006-01-02"),
		WorkDateBS:   workDateBS,
		Quantity:     l.Quantity,
		Hours:        l.Hours,
		Billable:     l.Billable,
	}
}
