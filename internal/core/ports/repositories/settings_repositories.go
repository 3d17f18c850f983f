package repositories

import (
	"context"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// SettingsRepository persists the BlockingSetting as one flat document.
// Reads of a missing document return the zero value; writes replace the whole
// document, last writer wins.
type SettingsRepository interface {
	GetBlockingSetting(ctx context.Context) (domain.BlockingSetting, error)
	PutBlockingSetting(ctx context.Context, s domain.BlockingSetting) error
}
