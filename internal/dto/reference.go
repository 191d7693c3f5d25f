package dto

import (
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDepartmentRequest registers a production department.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// DepartmentResponse is the API shape of a department.
type DepartmentResponse struct {
	DepartmentID int64  `json:"departmentID"`
	Name         string `json:"name"`
}

// ToDepartmentResponse converts a domain department to its API shape.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{DepartmentID: d.DepartmentID, Name: d.Name}
}

// CreateWorkerRequest registers a worker with their wage rule.
type CreateWorkerRequest struct {
	Name     string          `json:"name" binding:"required"`
	WageType string          `json:"wage_type" binding:"required,oneof=PIECE_RATE DAILY HOURLY"`
	WageRate decimal.Decimal `json:"wage_rate" binding:"required"`
}

// WorkerResponse is the API shape of a worker.
type WorkerResponse struct {
	WorkerID int64           `json:"workerID"`
	Name     string          `json:"name"`
	WageType string          `json:"wageType"`
	WageRate decimal.Decimal `json:"wageRate"`
}

// ToWorkerResponse converts a domain worker to its API shape.
func ToWorkerResponse(w *domain.Worker) WorkerResponse {
	return WorkerResponse{
		WorkerID: w.WorkerID,
		Name:     w.Name,
		WageType: string(w.WageType),
		WageRate: w.WageRate,
	}
}
