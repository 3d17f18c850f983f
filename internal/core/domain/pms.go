package domain

import "time"

// ExternalProject is a project owned by the external Project Management
// System. Departments is the canonical list produced by the gateway's decode
// layer; the raw document may carry departments as a single string, an array,
// or a comma-separated string under any of several field names.
type ExternalProject struct {
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Departments []string   `json:"departments"`
}

// ExternalTask is a task owned by the PMS. Only DueDate and the status string
// are ever written back, each through its own narrow gateway operation.
type ExternalTask struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"projectID"`
	Name      string     `json:"name"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Assignee  string     `json:"assignee,omitempty"`
	Members   []string   `json:"members,omitempty"`
	Completed bool       `json:"completed"`
	Status    string     `json:"status,omitempty"`
}

// Subtask is a PMS subtask. The task linkage appears under several possible
// foreign-key names in the raw document; TaskID is the canonical form.
type Subtask struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"taskID"`
	Name      string     `json:"name"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Completed bool       `json:"completed"`
}

// PendingTask is a reconciler result: an external task due on the queried day
// with display-only context attached. AssignedToEmployee and BlockingEnabled
// are informational and never filter the result set.
type PendingTask struct {
	Task               ExternalTask `json:"task"`
	ProjectCode        string       `json:"projectCode"`
	ProjectName        string       `json:"projectName"`
	AssignedToEmployee bool         `json:"assignedToEmployee"`
	BlockingEnabled    bool         `json:"blockingEnabled"`
}
