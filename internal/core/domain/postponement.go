package domain

import "time"

// Postponement records one "extend due date" decision against a PMS task.
// Records are append-only; Sequence is strictly increasing per task and never
// reused.
type Postponement struct {
	PostponementID  string    `json:"postponementID"` // Primary Key (UUID)
	TaskID          string    `json:"taskID"`
	PreviousDueDate string    `json:"previousDueDate"` // YYYY-MM-DD
	NewDueDate      string    `json:"newDueDate"`      // YYYY-MM-DD
	Reason          string    `json:"reason"`
	Actor           string    `json:"actor"` // EmployeeID
	Sequence        int       `json:"sequence"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Acknowledgement records an "accept the overdue state without extending"
// decision. Append-only; never alters the task's due date.
type Acknowledgement struct {
	AckID       string    `json:"ackID"` // Primary Key (UUID)
	TaskID      string    `json:"taskID"`
	Actor       string    `json:"actor"` // EmployeeID
	ProjectCode string    `json:"projectCode"`
	CreatedAt   time.Time `json:"createdAt"`
}
