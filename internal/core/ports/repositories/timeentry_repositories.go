package repositories

import (
	"context"
	"time"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// TimeEntryReader defines read operations for time entry data.
type TimeEntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error)

	// ListEntriesForDay retrieves all entries for an employee on a calendar day,
	// drafts included.
	ListEntriesForDay(ctx context.Context, employeeID, workDate string) ([]domain.TimeEntry, error)

	// CountDuplicates counts entries matching the best-effort uniqueness key
	// (employee, date, project, task, start time). Read-then-write; callers know
	// this has a race window.
	CountDuplicates(ctx context.Context, employeeID, workDate, projectName, taskDescription, startTime string) (int, error)
}

// TimeEntryWriter defines write operations for time entry data.
type TimeEntryWriter interface {
	// SaveEntry inserts a new time entry.
	SaveEntry(ctx context.Context, entry domain.TimeEntry) error

	// UpdateEntry updates the owner-editable fields of a pending entry.
	UpdateEntry(ctx context.Context, entry domain.TimeEntry) error

	// UpdateEntryStatus applies an approval transition: status plus the stage's
	// approver/timestamp/reason metadata.
	UpdateEntryStatus(ctx context.Context, entry domain.TimeEntry) error

	// MarkEntriesSubmitted flags all unsubmitted entries for the employee+day
	// as submitted. Returns the number of entries affected.
	MarkEntriesSubmitted(ctx context.Context, employeeID, workDate string, submittedAt time.Time) (int, error)
}

// TimeEntryRepository combines all time entry repository interfaces.
type TimeEntryRepository interface {
	TimeEntryReader
	TimeEntryWriter
}
