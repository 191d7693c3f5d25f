package domain

// Department is a production station a sub-batch passes through
// (cutting, stitching, finishing, ...). Reference data for the workflow
// and wage engines.
type Department struct {
	DepartmentID int64  `json:"departmentID"`
	Name         string `json:"name"`
	AuditFields
}
