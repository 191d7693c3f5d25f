package domain

import "github.com/shopspring/decimal"

// WageReport is a computed view over one worker's billable work logs in a
// date window, combined with the worker's wage type and rate. Reports are
// derived on demand and never stored.
type WageReport struct {
	WorkerID      int64           `json:"workerID"`
	WorkerName    string          `json:"workerName"`
	WageType      WageType        `json:"wageType"`
	WageRate      decimal.Decimal `json:"wageRate"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalHours    decimal.Decimal `json:"totalHours"`
	DaysWorked    int             `json:"daysWorked"` // distinct work dates
	LogCount      int             `json:"logCount"`
	TotalWage     decimal.Decimal `json:"totalWage"`
}

// DepartmentWageSummary aggregates wages across every worker who logged
// billable work in one department during a window.
type DepartmentWageSummary struct {
	DepartmentID   int64           `json:"departmentID"`
	DepartmentName string          `json:"departmentName"`
	Workers        []WageReport    `json:"workers"`
	TotalWage      decimal.Decimal `json:"totalWage"`
}

// SubBatchWageSummary is the full labour cost attributed to one sub-batch
// across its entire work-log history. Wages here are cost-to-date for the
// production unit, so there is no date window.
type SubBatchWageSummary struct {
	SubBatchID int64           `json:"subBatchID"`
	Workers    []WageReport    `json:"workers"`
	TotalWage  decimal.Decimal `json:"totalWage"`
}
