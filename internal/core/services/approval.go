package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tempushq/timesheet_backend/internal/apperrors"
	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/middleware"
)

// approvalService advances time entries through the approval state machine:
// pending -> manager_approved -> approved, or -> rejected. Status transitions
// are monotonic; terminal states never revert.
type approvalService struct {
	entryRepo    portsrepo.TimeEntryRepository
	employeeRepo portsrepo.EmployeeRepository
	notifier     portsrepo.Notifier
	broadcaster  portsrepo.Broadcaster
}

// NewApprovalService creates a new approval state machine service.
// broadcaster may be nil when no realtime hub is attached.
func NewApprovalService(
	entryRepo portsrepo.TimeEntryRepository,
	employeeRepo portsrepo.EmployeeRepository,
	notifier portsrepo.Notifier,
	broadcaster portsrepo.Broadcaster,
) portssvc.ApprovalSvcFacade {
	return &approvalService{
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		broadcaster:  broadcaster,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// ManagerApprove moves a pending entry to manager_approved and stamps the
// manager-stage metadata only.
func (s *approvalService) ManagerApprove(ctx context.Context, entryID, managerID string) (*domain.TimeEntry, error) {
	entry, err := s.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: entry %s is %s, manager approval requires pending", apperrors.ErrNotAllowed, entryID, entry.Status)
	}

	now := time.Now().UTC()
	entry.Status = domain.StatusManagerApproved
	entry.ManagerApprovedBy = managerID
	entry.ManagerApprovedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = managerID

	return s.commitTransition(ctx, entry, managerID)
}

// AdminApprove sets status to approved directly, callable regardless of the
// current non-terminal stage: an admin may skip the manager stage.
func (s *approvalService) AdminApprove(ctx context.Context, entryID, adminID string) (*domain.TimeEntry, error) {
	entry, err := s.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status.Terminal() {
		return nil, fmt.Errorf("%w: entry %s is already %s", apperrors.ErrNotAllowed, entryID, entry.Status)
	}

	now := time.Now().UTC()
	entry.Status = domain.StatusApproved
	entry.ApprovedBy = adminID
	entry.ApprovedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = adminID

	return s.commitTransition(ctx, entry, adminID)
}

// Reject moves an entry to rejected with a mandatory reason. Rejecting an
// already-rejected entry overwrites the reason rather than erroring.
func (s *approvalService) Reject(ctx context.Context, entryID, approverID, reason string) (*domain.TimeEntry, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: missing required field(s): reason", apperrors.ErrValidation)
	}

	entry, err := s.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status == domain.StatusApproved {
		return nil, fmt.Errorf("%w: entry %s is already approved", apperrors.ErrNotAllowed, entryID)
	}

	now := time.Now().UTC()
	entry.Status = domain.StatusRejected
	entry.RejectedBy = approverID
	entry.RejectedAt = &now
	entry.RejectionReason = reason
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = approverID

	return s.commitTransition(ctx, entry, approverID)
}

func (s *approvalService) loadEntry(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %s: %w", entryID, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	return entry, nil
}

// commitTransition persists the transition, then runs the grouped-notification
// aggregation and the fire-and-forget broadcast. Notification and broadcast
// failures never surface to the caller.
func (s *approvalService) commitTransition(ctx context.Context, entry *domain.TimeEntry, actorID string) (*domain.TimeEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.entryRepo.UpdateEntryStatus(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to persist status transition: %w", err)
	}

	logger.Info("Entry status transition",
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(entry.Status)),
		slog.String("actor", actorID),
	)

	s.maybeNotifyDay(ctx, entry.EmployeeID, entry.WorkDate, entry.Status)

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(map[string]any{
			"type":       "entry_status_changed",
			"entryID":    entry.EntryID,
			"employeeID": entry.EmployeeID,
			"workDate":   entry.WorkDate,
			"status":     string(entry.Status),
		})
	}

	return entry, nil
}

// maybeNotifyDay re-reads all entries for the employee+day and fires exactly
// one grouped notification when every entry has reached the status just set.
// This aggregation is the defense against notification storms on days with
// many tasks.
func (s *approvalService) maybeNotifyDay(ctx context.Context, employeeID, workDate string, status domain.EntryStatus) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.entryRepo.ListEntriesForDay(ctx, employeeID, workDate)
	if err != nil {
		logger.Error("Failed to re-read day entries for grouped notification", slog.String("error", err.Error()))
		return
	}
	if len(entries) == 0 {
		return
	}
	for _, e := range entries {
		if e.Status != status {
			return
		}
	}

	recipients := s.collectRecipients(ctx, employeeID)
	if len(recipients) == 0 {
		return
	}

	if err := s.notifier.NotifyStatusChange(ctx, recipients, string(status), entries); err != nil {
		logger.Error("Grouped status notification failed",
			slog.String("employee_id", employeeID),
			slog.String("work_date", workDate),
			slog.String("status", string(status)),
			slog.String("error", err.Error()),
		)
	}
}

func (s *approvalService) collectRecipients(ctx context.Context, employeeID string) []string {
	logger := middleware.GetLoggerFromCtx(ctx)

	recipients := []string{}
	seen := map[string]bool{}

	if owner, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID); err != nil {
		logger.Error("Failed to load entry owner for notification", slog.String("error", err.Error()))
	} else if owner != nil && owner.Email != "" {
		recipients = append(recipients, owner.Email)
		seen[owner.Email] = true
	}

	group, err := s.employeeRepo.FindEmployeesByRole(ctx, domain.RoleAdmin, domain.RoleHR)
	if err != nil {
		logger.Error("Failed to load admin/HR notification group", slog.String("error", err.Error()))
	}
	for _, employee := range group {
		if employee.Email != "" && !seen[employee.Email] {
			recipients = append(recipients, employee.Email)
			seen[employee.Email] = true
		}
	}

	return recipients
}
