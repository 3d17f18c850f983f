package services

import (
	"context"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	"github.com/tempushq/timesheet_backend/internal/dto"
)

// TimeEntrySvcFacade covers local time entry recording and retrieval.
type TimeEntrySvcFacade interface {
	// CreateEntry records a unit of work for the employee. A best-effort
	// duplicate pre-check rejects an identical entry for the same day.
	CreateEntry(ctx context.Context, employeeID string, req dto.CreateTimeEntryRequest) (*domain.TimeEntry, error)

	// UpdateEntry modifies an entry; owner-only, pending and unsubmitted only.
	UpdateEntry(ctx context.Context, employeeID, entryID string, req dto.UpdateTimeEntryRequest) (*domain.TimeEntry, error)

	GetEntry(ctx context.Context, entryID string) (*domain.TimeEntry, error)

	ListEntriesForDay(ctx context.Context, employeeID, workDate string) ([]domain.TimeEntry, error)
}

// ApprovalSvcFacade advances entries through the approval state machine.
type ApprovalSvcFacade interface {
	ManagerApprove(ctx context.Context, entryID, managerID string) (*domain.TimeEntry, error)

	// AdminApprove sets status to approved directly; an admin may skip the
	// manager stage.
	AdminApprove(ctx context.Context, entryID, adminID string) (*domain.TimeEntry, error)

	// Reject requires a non-empty reason. Rejecting an already-rejected entry
	// overwrites the reason instead of erroring.
	Reject(ctx context.Context, entryID, approverID, reason string) (*domain.TimeEntry, error)
}

// ReconcilerSvcFacade computes externally-tracked tasks due on a day and not
// yet represented locally.
type ReconcilerSvcFacade interface {
	ComputePending(ctx context.Context, employeeID, workDate string) ([]domain.PendingTask, error)

	// TaskSubtasks returns the PMS subtasks of a task for drill-down display.
	// Like all PMS reads it degrades to empty on outage.
	TaskSubtasks(ctx context.Context, taskID string) []domain.Subtask
}

// PostponementSvcFacade is the ledger of postponement and acknowledgement
// decisions.
type PostponementSvcFacade interface {
	Postpone(ctx context.Context, taskID, actor string, req dto.PostponeTaskRequest) (*domain.Postponement, error)
	Acknowledge(ctx context.Context, taskID, actor string, req dto.AcknowledgeTaskRequest) (*domain.Acknowledgement, error)
	History(ctx context.Context, taskID string) ([]domain.Postponement, error)
}

// SubmissionSvcFacade decides whether a day's entries may be submitted and
// performs the submission.
type SubmissionSvcFacade interface {
	CanSubmit(ctx context.Context, employeeID, workDate string) (bool, error)
	Submit(ctx context.Context, employeeID, workDate string) (*dto.SubmitResult, error)
}

// SettingsSvcFacade exposes the process-wide blocking flag.
type SettingsSvcFacade interface {
	GetBlockingSetting(ctx context.Context) (domain.BlockingSetting, error)
	UpdateBlockingSetting(ctx context.Context, s domain.BlockingSetting) error
}

// ServiceContainer holds instances of all application services. Handlers
// receive this container and pick the facades they need.
type ServiceContainer struct {
	TimeEntry    TimeEntrySvcFacade
	Approval     ApprovalSvcFacade
	Reconciler   ReconcilerSvcFacade
	Postponement PostponementSvcFacade
	Submission   SubmissionSvcFacade
	Settings     SettingsSvcFacade
}
