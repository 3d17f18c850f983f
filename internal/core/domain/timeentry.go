package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the approval state of a time entry.
type EntryStatus string

const (
	StatusPending         EntryStatus = "pending"
	StatusManagerApproved EntryStatus = "manager_approved"
	StatusApproved        EntryStatus = "approved"
	StatusRejected        EntryStatus = "rejected"
)

// Terminal reports whether no further approval transitions are possible.
func (s EntryStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// TimeEntry represents one locally recorded unit of work for an employee on a
// calendar day. The WorkDate is a YYYY-MM-DD key in the server's configured
// timezone, not a timestamp; two entries on the same WorkDate belong to the
// same approval/notification group.
type TimeEntry struct {
	EntryID         string          `json:"entryID"` // Primary Key (UUID)
	EmployeeID      string          `json:"employeeID"`
	WorkDate        string          `json:"workDate"` // YYYY-MM-DD calendar day key
	ProjectName     string          `json:"projectName"`
	TaskDescription string          `json:"taskDescription"`
	ExternalTaskID  string          `json:"externalTaskID,omitempty"` // PMS task id, if the entry mirrors one
	StartTime       string          `json:"startTime,omitempty"`      // HH:MM, part of the duplicate check
	PercentComplete decimal.Decimal `json:"percentComplete"`          // 0-100
	Status          EntryStatus     `json:"status"`
	Submitted       bool            `json:"submitted"`

	ManagerApprovedBy string     `json:"managerApprovedBy,omitempty"`
	ManagerApprovedAt *time.Time `json:"managerApprovedAt,omitempty"`
	ApprovedBy        string     `json:"approvedBy,omitempty"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	RejectedBy        string     `json:"rejectedBy,omitempty"`
	RejectedAt        *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason   string     `json:"rejectionReason,omitempty"`

	AuditFields
}
