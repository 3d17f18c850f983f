package repositories

import (
	"context"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// Notifier delivers one grouped notification to an assembled recipient list.
// Body templating is the adapter's concern; the core only supplies the status
// label and the batch of affected entries. A Notifier failure is logged by the
// caller and never fails the triggering request.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, recipients []string, statusLabel string, entries []domain.TimeEntry) error

	// NotifyPostponement informs the admin/HR group plus the acting employee
	// about a due-date extension.
	NotifyPostponement(ctx context.Context, recipients []string, p domain.Postponement) error
}

// Broadcaster pushes a state-change event to currently connected observers.
// Delivery is fire-and-forget, at-most-once; disconnected observers get no
// replay.
type Broadcaster interface {
	Broadcast(event any)
}
