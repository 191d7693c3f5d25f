package domain

// Stage is a sub-batch's progress within one department.
type Stage string

const (
	StageNewArrival Stage = "NEW_ARRIVAL"
	StageInProgress Stage = "IN_PROGRESS"
	StageCompleted  Stage = "COMPLETED"

	// StageNotArrived only appears in status reports, for planned steps
	// the sub-batch has not reached; it is never stored.
	StageNotArrived Stage = "NOT_ARRIVED"
)

// DepartmentAssignment records a sub-batch's presence (past or current) in
// one department. One record exists per department ever visited, including
// off-plan departments reached through rejection. At most one assignment
// per sub-batch carries IsCurrent = true; that record, not the workflow's
// step pointer, is the authoritative "where is it now".
type DepartmentAssignment struct {
	AssignmentID int64  `json:"assignmentID"`
	SubBatchID   int64  `json:"subBatchID"`
	DepartmentID int64  `json:"departmentID"`
	Stage        Stage  `json:"stage"`
	IsCurrent    bool   `json:"isCurrent"`
	Remarks      string `json:"remarks,omitempty"`
	AuditFields
}
