package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// CreateTimeEntryRequest defines the payload for recording a unit of work.
type CreateTimeEntryRequest struct {
	WorkDate        string          `json:"workDate" binding:"required,datetime=2006-01-02"`
	ProjectName     string          `json:"projectName" binding:"required"`
	TaskDescription string          `json:"taskDescription" binding:"required"`
	ExternalTaskID  string          `json:"externalTaskID"`
	StartTime       string          `json:"startTime"`
	PercentComplete decimal.Decimal `json:"percentComplete"`
}

// UpdateTimeEntryRequest defines the owner-editable fields of a pending entry.
type UpdateTimeEntryRequest struct {
	ProjectName     *string          `json:"projectName"`
	TaskDescription *string          `json:"taskDescription"`
	StartTime       *string          `json:"startTime"`
	PercentComplete *decimal.Decimal `json:"percentComplete"`
}

// TimeEntryResponse is the wire shape of a time entry.
type TimeEntryResponse struct {
	EntryID         string          `json:"entryID"`
	EmployeeID      string          `json:"employeeID"`
	WorkDate        string          `json:"workDate"`
	ProjectName     string          `json:"projectName"`
	TaskDescription string          `json:"taskDescription"`
	ExternalTaskID  string          `json:"externalTaskID,omitempty"`
	StartTime       string          `json:"startTime,omitempty"`
	PercentComplete decimal.Decimal `json:"percentComplete"`
	Status          string          `json:"status"`
	Submitted       bool            `json:"submitted"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToTimeEntryResponse converts a domain.TimeEntry to its wire shape.
func ToTimeEntryResponse(e *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		EntryID:         e.EntryID,
		EmployeeID:      e.EmployeeID,
		WorkDate:        e.WorkDate,
		ProjectName:     e.ProjectName,
		TaskDescription: e.TaskDescription,
		ExternalTaskID:  e.ExternalTaskID,
		StartTime:       e.StartTime,
		PercentComplete: e.PercentComplete,
		Status:          string(e.Status),
		Submitted:       e.Submitted,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
	}
}

// ToTimeEntryResponses converts a slice of domain entries.
func ToTimeEntryResponses(entries []domain.TimeEntry) []TimeEntryResponse {
	responses := make([]TimeEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToTimeEntryResponse(&entries[i])
	}
	return responses
}
