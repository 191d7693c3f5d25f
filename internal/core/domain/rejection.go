package domain

import "github.com/shopspring/decimal"

// RejectedBatch is the append-only history record of a rejection side-path:
// some quantity of a sub-batch sent out of its planned sequence to another
// department for rework. Persisting it and the destination department's
// NEW_ARRIVAL assignment is a single atomic unit.
type RejectedBatch struct {
	RejectionID        int64           `json:"rejectionID"`
	SubBatchID         int64           `json:"subBatchID"`
	Quantity           decimal.Decimal `json:"quantity"`
	Reason             string          `json:"reason"`
	SentToDepartmentID int64           `json:"sentToDepartmentID"`
	AuditFields
}
