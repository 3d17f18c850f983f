package dto

import "github.com/tempushq/timesheet_backend/internal/core/domain"

// PostponeTaskRequest defines the payload for extending a task's due date.
type PostponeTaskRequest struct {
	PreviousDueDate string `json:"previousDueDate"`
	NewDueDate      string `json:"newDueDate"`
	Reason          string `json:"reason"`
}

// AcknowledgeTaskRequest defines the payload for accepting an overdue task
// without extending its due date.
type AcknowledgeTaskRequest struct {
	ProjectCode string `json:"projectCode"`
}

// PendingTaskResponse is the wire shape of a reconciler result.
type PendingTaskResponse struct {
	TaskID             string `json:"taskID"`
	TaskName           string `json:"taskName"`
	ProjectCode        string `json:"projectCode"`
	ProjectName        string `json:"projectName"`
	DueDate            string `json:"dueDate,omitempty"` // YYYY-MM-DD
	AssignedToEmployee bool   `json:"assignedToEmployee"`
	BlockingEnabled    bool   `json:"blockingEnabled"`
}

// ToPendingTaskResponse converts a reconciler result, rendering the due date
// as a calendar-day key in the given location.
func ToPendingTaskResponse(p domain.PendingTask, dayKey func(d domain.PendingTask) string) PendingTaskResponse {
	return PendingTaskResponse{
		TaskID:             p.Task.ID,
		TaskName:           p.Task.Name,
		ProjectCode:        p.ProjectCode,
		ProjectName:        p.ProjectName,
		DueDate:            dayKey(p),
		AssignedToEmployee: p.AssignedToEmployee,
		BlockingEnabled:    p.BlockingEnabled,
	}
}

// SubtaskResponse is the wire shape of a PMS subtask.
type SubtaskResponse struct {
	SubtaskID string `json:"subtaskID"`
	TaskID    string `json:"taskID"`
	Name      string `json:"name"`
	DueDate   string `json:"dueDate,omitempty"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
}

// ToSubtaskResponses converts subtasks, rendering due dates as calendar-day
// keys via the given function.
func ToSubtaskResponses(subtasks []domain.Subtask, dayKey func(s domain.Subtask) string) []SubtaskResponse {
	responses := make([]SubtaskResponse, len(subtasks))
	for i, s := range subtasks {
		responses[i] = SubtaskResponse{
			SubtaskID: s.ID,
			TaskID:    s.TaskID,
			Name:      s.Name,
			DueDate:   dayKey(s),
			Completed: s.Completed,
		}
	}
	return responses
}

// PostponementResponse is the wire shape of one ledger record.
type PostponementResponse struct {
	PostponementID  string `json:"postponementID"`
	TaskID          string `json:"taskID"`
	PreviousDueDate string `json:"previousDueDate"`
	NewDueDate      string `json:"newDueDate"`
	Reason          string `json:"reason"`
	Actor           string `json:"actor"`
	Sequence        int    `json:"sequence"`
}

// ToPostponementResponses converts ledger records to their wire shape.
func ToPostponementResponses(ps []domain.Postponement) []PostponementResponse {
	responses := make([]PostponementResponse, len(ps))
	for i, p := range ps {
		responses[i] = PostponementResponse{
			PostponementID:  p.PostponementID,
			TaskID:          p.TaskID,
			PreviousDueDate: p.PreviousDueDate,
			NewDueDate:      p.NewDueDate,
			Reason:          p.Reason,
			Actor:           p.Actor,
			Sequence:        p.Sequence,
		}
	}
	return responses
}
