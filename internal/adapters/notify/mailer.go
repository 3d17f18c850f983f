// Package notify delivers grouped notifications over SMTP. Body content is
// intentionally plain; templated HTML bodies belong to the mail collaborator,
// only the grouped-send contract lives here.
package notify

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates an SMTP notifier.
func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

var _ portsrepo.Notifier = (*Mailer)(nil)

// NotifyStatusChange sends one message for the whole batch of entries that
// reached the same status on the same day.
func (m *Mailer) NotifyStatusChange(_ context.Context, recipients []string, statusLabel string, entries []domain.TimeEntry) error {
	if len(recipients) == 0 || len(entries) == 0 {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Timesheet entries for %s on %s are now %s.\n\n", entries[0].EmployeeID, entries[0].WorkDate, statusLabel)
	for _, entry := range entries {
		fmt.Fprintf(&body, "- %s / %s (%s%%)\n", entry.ProjectName, entry.TaskDescription, entry.PercentComplete.String())
		if entry.RejectionReason != "" {
			fmt.Fprintf(&body, "  reason: %s\n", entry.RejectionReason)
		}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", fmt.Sprintf("Timesheet %s: %s", statusLabel, entries[0].WorkDate))
	msg.SetBody("text/plain", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send status notification: %w", err)
	}
	return nil
}

// NotifyPostponement informs the recipients about one due-date extension.
func (m *Mailer) NotifyPostponement(_ context.Context, recipients []string, p domain.Postponement) error {
	if len(recipients) == 0 {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Task %s was postponed by %s.\n\n", p.TaskID, p.Actor)
	fmt.Fprintf(&body, "Previous due date: %s\nNew due date: %s\nReason: %s\n", p.PreviousDueDate, p.NewDueDate, p.Reason)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", fmt.Sprintf("Task postponed: %s", p.TaskID))
	msg.SetBody("text/plain", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send postponement notification: %w", err)
	}
	return nil
}
