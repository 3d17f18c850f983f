package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tempushq/timesheet_backend/internal/apperrors"
	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/dto"
	"github.com/tempushq/timesheet_backend/internal/middleware"
)

// postponementService keeps the append-only ledger of due-date extensions and
// acknowledgements, writing extensions back to the PMS best-effort.
type postponementService struct {
	ledgerRepo   portsrepo.PostponementRepository
	employeeRepo portsrepo.EmployeeRepository
	pms          portsrepo.PMSGateway
	notifier     portsrepo.Notifier
	location     *time.Location
}

// NewPostponementService creates a new postponement ledger service.
func NewPostponementService(
	ledgerRepo portsrepo.PostponementRepository,
	employeeRepo portsrepo.EmployeeRepository,
	pms portsrepo.PMSGateway,
	notifier portsrepo.Notifier,
	location *time.Location,
) portssvc.PostponementSvcFacade {
	if location == nil {
		location = time.Local
	}
	return &postponementService{
		ledgerRepo:   ledgerRepo,
		employeeRepo: employeeRepo,
		pms:          pms,
		notifier:     notifier,
		location:     location,
	}
}

var _ portssvc.PostponementSvcFacade = (*postponementService)(nil)

// Postpone appends an "extend due date" record, writes the new due date back
// to the PMS, and notifies the admin/HR group plus the acting employee. The
// PMS write-back and the notification are best-effort: their failures are
// logged and never roll back the ledger append.
func (s *postponementService) Postpone(ctx context.Context, taskID, actor string, req dto.PostponeTaskRequest) (*domain.Postponement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	missing := []string{}
	if strings.TrimSpace(req.Reason) == "" {
		missing = append(missing, "reason")
	}
	if strings.TrimSpace(req.NewDueDate) == "" {
		missing = append(missing, "newDueDate")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required field(s): %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}

	newDue, err := time.ParseInLocation(dayKeyLayout, req.NewDueDate, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: newDueDate must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	priorCount, err := s.ledgerRepo.CountPostponements(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to count prior postponements for task %s: %w", taskID, err)
	}

	record := domain.Postponement{
		PostponementID:  uuid.NewString(),
		TaskID:          taskID,
		PreviousDueDate: req.PreviousDueDate,
		NewDueDate:      req.NewDueDate,
		Reason:          req.Reason,
		Actor:           actor,
		Sequence:        priorCount + 1,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.ledgerRepo.AppendPostponement(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append postponement: %w", err)
	}

	// Best-effort write-back; the ledger append is already committed.
	if err := s.pms.SetTaskDueDate(ctx, taskID, newDue); err != nil {
		logger.Error("PMS due date write-back failed",
			slog.String("task_id", taskID),
			slog.String("new_due_date", req.NewDueDate),
			slog.String("error", err.Error()),
		)
	}

	s.notifyPostponement(ctx, record)

	logger.Info("Task postponed",
		slog.String("task_id", taskID),
		slog.Int("sequence", record.Sequence),
		slog.String("actor", actor),
	)
	return &record, nil
}

// Acknowledge appends an acknowledgement record. The task's due date stays
// untouched: the task remains overdue for scheduling but counts as resolved
// for the employee's submission cycle.
func (s *postponementService) Acknowledge(ctx context.Context, taskID, actor string, req dto.AcknowledgeTaskRequest) (*domain.Acknowledgement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(actor) == "" {
		return nil, fmt.Errorf("%w: missing required field(s): actor", apperrors.ErrValidation)
	}

	record := domain.Acknowledgement{
		AckID:       uuid.NewString(),
		TaskID:      taskID,
		Actor:       actor,
		ProjectCode: req.ProjectCode,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.ledgerRepo.AppendAcknowledgement(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append acknowledgement: %w", err)
	}

	logger.Info("Task acknowledged", slog.String("task_id", taskID), slog.String("actor", actor))
	return &record, nil
}

// History returns all postponements for a task ordered by sequence.
func (s *postponementService) History(ctx context.Context, taskID string) ([]domain.Postponement, error) {
	records, err := s.ledgerRepo.ListPostponements(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list postponements for task %s: %w", taskID, err)
	}
	return records, nil
}

// notifyPostponement assembles the admin/HR recipient group plus the acting
// employee and sends one notification. Every failure here is logged only.
func (s *postponementService) notifyPostponement(ctx context.Context, record domain.Postponement) {
	logger := middleware.GetLoggerFromCtx(ctx)

	recipients := []string{}
	seen := map[string]bool{}

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

	if actor, err := s.employeeRepo.FindEmployeeByID(ctx, record.Actor); err != nil {
		logger.Error("Failed to load acting employee for notification", slog.String("error", err.Error()))
	} else if actor != nil && actor.Email != "" && !seen[actor.Email] {
		recipients = append(recipients, actor.Email)
	}

	if len(recipients) == 0 {
		return
	}

	if err := s.notifier.NotifyPostponement(ctx, recipients, record); err != nil {
		logger.Error("Postponement notification failed",
			slog.String("task_id", record.TaskID),
			slog.String("error", err.Error()),
		)
	}
}
