package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// PMSGateway is the bridge to the external Project Management System.
//
// Reads never return an error: a PMS outage or schema mismatch must not block
// local timesheet operations, so every read failure degrades to an empty slice
// and a log line. Writes are narrow single-field updates; their errors are
// returned so callers can log them, but no local mutation is ever rolled back
// because a PMS write failed.
type PMSGateway interface {
	// ListProjects returns the projects visible to the given role/department.
	// Admin sees everything; other roles see projects whose department set
	// matches theirs, and projects with no department information are excluded.
	ListProjects(ctx context.Context, role domain.EmployeeRole, employeeCode, department string) []domain.ExternalProject

	ListTasks(ctx context.Context, projectID string) []domain.ExternalTask

	ListSubtasks(ctx context.Context, taskID string) []domain.Subtask

	SetTaskDueDate(ctx context.Context, taskID string, due time.Time) error

	SetTaskStatus(ctx context.Context, taskID, status string) error

	SetProjectProgress(ctx context.Context, projectCode string, percent decimal.Decimal) error
}
