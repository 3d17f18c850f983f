package repositories

import (
	"context"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// PostponementReader defines read operations for the postponement ledger.
type PostponementReader interface {
	// CountPostponements returns how many postponements exist for a task. The
	// next sequence number is this count plus one.
	CountPostponements(ctx context.Context, taskID string) (int, error)

	// ListPostponements retrieves all postponements for a task ordered by
	// sequence ascending.
	ListPostponements(ctx context.Context, taskID string) ([]domain.Postponement, error)
}

// PostponementWriter defines append operations for the ledger. The ledger is
// append-only: records are never mutated or deleted, replays append again.
type PostponementWriter interface {
	AppendPostponement(ctx context.Context, p domain.Postponement) error
	AppendAcknowledgement(ctx context.Context, a domain.Acknowledgement) error
}

// PostponementRepository combines the ledger interfaces.
type PostponementRepository interface {
	PostponementReader
	PostponementWriter
}
