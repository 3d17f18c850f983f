package notify

import (
	"context"
	"log/slog"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
)

// LogNotifier stands in when no SMTP host is configured: notifications are
// logged and dropped.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ portsrepo.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) NotifyStatusChange(_ context.Context, recipients []string, statusLabel string, entries []domain.TimeEntry) error {
	n.logger.Info("Notification dropped (no SMTP configured)",
		slog.String("status", statusLabel),
		slog.Int("recipients", len(recipients)),
		slog.Int("entries", len(entries)),
	)
	return nil
}

func (n *LogNotifier) NotifyPostponement(_ context.Context, recipients []string, p domain.Postponement) error {
	n.logger.Info("Postponement notification dropped (no SMTP configured)",
		slog.String("task_id", p.TaskID),
		slog.Int("recipients", len(recipients)),
	)
	return nil
}
