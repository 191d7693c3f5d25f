package domain

import "github.com/shopspring/decimal"

// WageType selects how a worker's pay is derived from their work logs.
// The set is fixed domain knowledge; adding a member is a schema change.
type WageType string

const (
	PieceRate WageType = "PIECE_RATE" // rate x summed quantity
	Daily     WageType = "DAILY"      // rate x count of distinct work dates
	Hourly    WageType = "HOURLY"     // rate x summed hours
)

// Valid reports whether the wage type is one of the known members.
func (w WageType) Valid() bool {
	switch w {
	case PieceRate, Daily, Hourly:
		return true
	}
	return false
}

// Worker is a factory worker whose logged work is billed according to
// their wage type and rate.
type Worker struct {
	WorkerID int64           `json:"workerID"`
	Name     string          `json:"name"`
	WageType WageType        `json:"wageType"`
	WageRate decimal.Decimal `json:"wageRate"`
	AuditFields
}
