package domain

import (
	"fmt"
	"strings"
)

// StepNotStarted is the CurrentStepIndex sentinel for a workflow whose
// sub-batch has not yet entered its first department. A workflow whose
// index equals its step count has run to completion.
const StepNotStarted = -1

// WorkflowStep is one planned stop in a sub-batch's department sequence.
// StepIndex values are contiguous and unique per workflow, starting at 0.
type WorkflowStep struct {
	StepIndex      int    `json:"stepIndex"`
	DepartmentID   int64  `json:"departmentID"`
	DepartmentName string `json:"departmentName"`
}

// Workflow is the planned ordered department sequence for one sub-batch.
// Exactly one workflow exists per sub-batch, created when the sub-batch
// enters production planning and mutated as it advances.
type Workflow struct {
	WorkflowID       int64          `json:"workflowID"`
	SubBatchID       int64          `json:"subBatchID"`
	CurrentStepIndex int            `json:"currentStepIndex"`
	Steps            []WorkflowStep `json:"steps"` // sorted by StepIndex ascending
	AuditFields
}

// Completed reports whether the sub-batch has passed through every
// planned step.
func (w Workflow) Completed() bool {
	return w.CurrentStepIndex >= len(w.Steps)
}

// FlowString renders the planned department sequence as a single
// human-readable line, e.g. "Cutting (1) -> Stitching (2)". Side-path
// departments visited via rejection are not part of the plan and do not
// appear here.
func (w Workflow) FlowString() string {
	labels := make([]string, len(w.Steps))
	for i, step := range w.Steps {
		labels[i] = fmt.Sprintf("%s (%d)", step.DepartmentName, step.DepartmentID)
	}
	return strings.Join(labels, " -> ")
}

// StepStatus merges one planned step with the sub-batch's assignment state
// in that step's department, if it has arrived there yet.
type StepStatus struct {
	StepIndex      int    `json:"stepIndex"`
	DepartmentID   int64  `json:"departmentID"`
	DepartmentName string `json:"departmentName"`
	Stage          Stage  `json:"stage"`
	IsCurrent      bool   `json:"isCurrent"`
	Remarks        string `json:"remarks,omitempty"`
}

// WorkflowStatus is the projection of a workflow plus live department
// assignments into a single report. Read-only; computing it never mutates
// any record.
type WorkflowStatus struct {
	SubBatchID       int64        `json:"subBatchID"`
	CurrentStepIndex int          `json:"currentStepIndex"`
	Message          string       `json:"message"`
	DepartmentFlow   string       `json:"departmentFlow"`
	Steps            []StepStatus `json:"steps"`
}
