package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/dto"
	"github.com/tempushq/timesheet_backend/internal/middleware"
)

// submissionService gates the submission of a day's entries. Outstanding
// deadline tasks produce warnings, never a rejection: the soft-block behavior
// is the contract, not an oversight.
type submissionService struct {
	entryRepo   portsrepo.TimeEntryRepository
	reconciler  portssvc.ReconcilerSvcFacade
	broadcaster portsrepo.Broadcaster
	location    *time.Location
}

// NewSubmissionService creates a new submission gate.
func NewSubmissionService(
	entryRepo portsrepo.TimeEntryRepository,
	reconciler portssvc.ReconcilerSvcFacade,
	broadcaster portsrepo.Broadcaster,
	location *time.Location,
) portssvc.SubmissionSvcFacade {
	if location == nil {
		location = time.Local
	}
	return &submissionService{
		entryRepo:   entryRepo,
		reconciler:  reconciler,
		broadcaster: broadcaster,
		location:    location,
	}
}

var _ portssvc.SubmissionSvcFacade = (*submissionService)(nil)

// CanSubmit is true iff the employee has at least one unsubmitted draft entry
// for the date.
func (s *submissionService) CanSubmit(ctx context.Context, employeeID, workDate string) (bool, error) {
	entries, err := s.entryRepo.ListEntriesForDay(ctx, employeeID, workDate)
	if err != nil {
		return false, fmt.Errorf("failed to list entries: %w", err)
	}
	for _, entry := range entries {
		if !entry.Submitted {
			return true, nil
		}
	}
	return false, nil
}

// Submit marks the day's draft entries submitted and attaches warnings for
// any deadline tasks still outstanding. Submission proceeds unconditionally.
func (s *submissionService) Submit(ctx context.Context, employeeID, workDate string) (*dto.SubmitResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	updated, err := s.entryRepo.MarkEntriesSubmitted(ctx, employeeID, workDate, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to mark entries submitted: %w", err)
	}

	result := &dto.SubmitResult{
		Submitted:      true,
		EntriesUpdated: updated,
	}

	pending, err := s.reconciler.ComputePending(ctx, employeeID, workDate)
	if err != nil {
		// Warnings are advisory; a reconciliation failure must not undo or
		// fail an already-committed submission.
		logger.Warn("Deadline reconciliation failed during submission", slog.String("error", err.Error()))
		pending = nil
	}
	for _, p := range pending {
		result.Warnings = append(result.Warnings, dto.ToPendingTaskResponse(p, s.dueDayKey))
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(map[string]any{
			"type":       "timesheet_submitted",
			"employeeID": employeeID,
			"workDate":   workDate,
		})
	}

	logger.Info("Timesheet submitted",
		slog.String("employee_id", employeeID),
		slog.String("work_date", workDate),
		slog.Int("entries", updated),
		slog.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

func (s *submissionService) dueDayKey(p domain.PendingTask) string {
	if p.Task.DueDate == nil {
		return ""
	}
	return LocalDayKey(*p.Task.DueDate, s.location)
}
