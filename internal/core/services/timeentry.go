package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tempushq/timesheet_backend/internal/apperrors"
	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/dto"
	"github.com/tempushq/timesheet_backend/internal/middleware"
)

// timeEntryService records and maintains local time entries. PMS progress
// write-back happens strictly after the local write commits and is
// best-effort; there is no distributed transaction between the two stores.
type timeEntryService struct {
	entryRepo portsrepo.TimeEntryRepository
	pms       portsrepo.PMSGateway
}

// NewTimeEntryService creates a new time entry service.
func NewTimeEntryService(entryRepo portsrepo.TimeEntryRepository, pms portsrepo.PMSGateway) portssvc.TimeEntrySvcFacade {
	return &timeEntryService{entryRepo: entryRepo, pms: pms}
}

var _ portssvc.TimeEntrySvcFacade = (*timeEntryService)(nil)

// CreateEntry records a unit of work. The duplicate pre-check (same employee,
// date, project, task, start time) is read-then-write and best-effort; the
// workflow is single-user-driven, so the race window is accepted.
func (s *timeEntryService) CreateEntry(ctx context.Context, employeeID string, req dto.CreateTimeEntryRequest) (*domain.TimeEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PercentComplete.LessThan(decimal.Zero) || req.PercentComplete.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: percentComplete must be between 0 and 100", apperrors.ErrValidation)
	}

	count, err := s.entryRepo.CountDuplicates(ctx, employeeID, req.WorkDate, req.ProjectName, req.TaskDescription, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: an identical entry already exists for %s", apperrors.ErrDuplicate, req.WorkDate)
	}

	now := time.Now().UTC()
	entry := domain.TimeEntry{
		EntryID:         uuid.NewString(),
		EmployeeID:      employeeID,
		WorkDate:        req.WorkDate,
		ProjectName:     req.ProjectName,
		TaskDescription: req.TaskDescription,
		ExternalTaskID:  req.ExternalTaskID,
		StartTime:       req.StartTime,
		PercentComplete: req.PercentComplete,
		Status:          domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     employeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: employeeID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	// Local commit done; mirror progress to the PMS best-effort.
	if entry.ExternalTaskID != "" {
		if entry.PercentComplete.Equal(decimal.NewFromInt(100)) {
			if err := s.pms.SetTaskStatus(ctx, entry.ExternalTaskID, "completed"); err != nil {
				logger.Error("PMS task status write-back failed",
					slog.String("task_id", entry.ExternalTaskID),
					slog.String("error", err.Error()),
				)
			}
		}
		if err := s.pms.SetProjectProgress(ctx, entry.ProjectName, entry.PercentComplete); err != nil {
			logger.Error("PMS project progress write-back failed",
				slog.String("project", entry.ProjectName),
				slog.String("error", err.Error()),
			)
		}
	}

	logger.Info("Time entry created", slog.String("entry_id", entry.EntryID), slog.String("work_date", entry.WorkDate))
	return &entry, nil
}

// UpdateEntry modifies owner-editable fields. Only the owner may update, and
// only while the entry is pending and unsubmitted.
func (s *timeEntryService) UpdateEntry(ctx context.Context, employeeID, entryID string, req dto.UpdateTimeEntryRequest) (*domain.TimeEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %s: %w", entryID, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	if entry.EmployeeID != employeeID {
		return nil, fmt.Errorf("%w: entry belongs to another employee", apperrors.ErrForbidden)
	}
	if entry.Status != domain.StatusPending || entry.Submitted {
		return nil, fmt.Errorf("%w: only unsubmitted pending entries may be edited", apperrors.ErrNotAllowed)
	}

	if req.ProjectName != nil {
		entry.ProjectName = *req.ProjectName
	}
	if req.TaskDescription != nil {
		entry.TaskDescription = *req.TaskDescription
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.PercentComplete != nil {
		if req.PercentComplete.LessThan(decimal.Zero) || req.PercentComplete.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: percentComplete must be between 0 and 100", apperrors.ErrValidation)
		}
		entry.PercentComplete = *req.PercentComplete
	}
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = employeeID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}

func (s *timeEntryService) GetEntry(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %s: %w", entryID, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	return entry, nil
}

func (s *timeEntryService) ListEntriesForDay(ctx context.Context, employeeID, workDate string) ([]domain.TimeEntry, error) {
	entries, err := s.entryRepo.ListEntriesForDay(ctx, employeeID, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}
