package dto

import (
	"github.com/himaltex/production_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RejectSubBatchRequest sends part of a sub-batch out of its planned
// sequence to another department for rework.
type RejectSubBatchRequest struct {
	SubBatchID         int64           `json:"sub_batch_id" binding:"required,gt=0"`
	Quantity           decimal.Decimal `json:"quantity" binding:"required"`
	Reason             string          `json:"reason" binding:"required"`
	SentToDepartmentID int64           `json:"sent_to_department_id" binding:"required,gt=0"`
}

// RejectedBatchResponse is the API shape of a stored rejection record.
type RejectedBatchResponse struct {
	RejectionID        int64           `json:"rejectionID"`
	SubBatchID         int64           `json:"subBatchID"`
	Quantity           decimal.Decimal `json:"quantity"`
	Reason             string          `json:"reason"`
	SentToDepartmentID int64           `json:"sentToDepartmentID"`
}

// ToRejectedBatchResponse converts a domain rejection record to its API shape.
func ToRejectedBatchResponse(r *domain.RejectedBatch) RejectedBatchResponse {
	return RejectedBatchResponse{
		RejectionID:        r.RejectionID,
		SubBatchID:         r.SubBatchID,
		Quantity:           r.Quantity,
		Reason:             r.Reason,
		SentToDepartmentID: r.SentToDepartmentID,
	}
}
