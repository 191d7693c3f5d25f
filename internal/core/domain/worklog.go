package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkLog is one worker's unit of work on a sub-batch within a department.
// WorkDate is always on the canonical (Gregorian) timeline; BS dates are
// normalized before they reach the domain. Logs are append-only.
type WorkLog struct {
	WorkLogID    int64           `json:"workLogID"`
	WorkerID     int64           `json:"workerID"`
	SubBatchID   int64           `json:"subBatchID"`
	DepartmentID int64           `json:"departmentID"`
	WorkDate     time.Time       `json:"workDate"`
	Quantity     decimal.Decimal `json:"quantity"`
	Hours        decimal.Decimal `json:"hours"`
	Billable     bool            `json:"billable"`
	AuditFields
}

// WorkLogFilter narrows work-log queries. Nil members are unconstrained;
// From/To bound the canonical work date inclusively on both ends.
type WorkLogFilter struct {
	WorkerID     *int64
	SubBatchID   *int64
	DepartmentID *int64
	From         *time.Time
	To           *time.Time
	BillableOnly bool
}
