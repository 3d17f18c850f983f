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

// reconcilerService computes, per employee and calendar date, the set of
// externally-tracked tasks due that day and not yet represented locally.
type reconcilerService struct {
	pms          portsrepo.PMSGateway
	entryRepo    portsrepo.TimeEntryReader
	employeeRepo portsrepo.EmployeeRepository
	settingsRepo portsrepo.SettingsRepository
	location     *time.Location
}

// NewReconcilerService creates a new deadline reconciler. The location governs
// calendar-day key derivation for due-date comparisons.
func NewReconcilerService(
	pms portsrepo.PMSGateway,
	entryRepo portsrepo.TimeEntryReader,
	employeeRepo portsrepo.EmployeeRepository,
	settingsRepo portsrepo.SettingsRepository,
	location *time.Location,
) portssvc.ReconcilerSvcFacade {
	if location == nil {
		location = time.Local
	}
	return &reconcilerService{
		pms:          pms,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		settingsRepo: settingsRepo,
		location:     location,
	}
}

var _ portssvc.ReconcilerSvcFacade = (*reconcilerService)(nil)

// ComputePending returns the PMS tasks due on workDate that have no matching
// local entry for the employee. The assigned flag and the blocking setting are
// attached for display and do not filter the result.
func (s *reconcilerService) ComputePending(ctx context.Context, employeeID, workDate string) ([]domain.PendingTask, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := time.ParseInLocation(dayKeyLayout, workDate, s.location); err != nil {
		return nil, fmt.Errorf("%w: workDate must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee %s: %w", employeeID, err)
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, employeeID)
	}

	blocking, err := s.settingsRepo.GetBlockingSetting(ctx)
	if err != nil {
		// The flag is display-only context; a missing settings document must
		// not fail reconciliation.
		logger.Warn("Failed to read blocking setting", slog.String("error", err.Error()))
		blocking = domain.BlockingSetting{}
	}

	entries, err := s.entryRepo.ListEntriesForDay(ctx, employeeID, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list local entries: %w", err)
	}

	representedByID := make(map[string]bool)
	representedByTitle := make(map[string]bool)
	for _, entry := range entries {
		if entry.ExternalTaskID != "" {
			representedByID[entry.ExternalTaskID] = true
		}
		representedByTitle[titleKey(entry.ProjectName, entry.TaskDescription)] = true
	}

	pending := []domain.PendingTask{}
	projects := s.pms.ListProjects(ctx, employee.Role, employee.Code, employee.Department)
	for _, project := range projects {
		tasks := s.pms.ListTasks(ctx, project.Code)
		for _, task := range tasks {
			if task.DueDate == nil {
				continue
			}
			if LocalDayKey(*task.DueDate, s.location) != workDate {
				continue
			}
			if taskCompleted(task) {
				continue
			}
			if representedByID[task.ID] {
				continue
			}
			if representedByTitle[titleKey(project.Name, task.Name)] {
				continue
			}
			pending = append(pending, domain.PendingTask{
				Task:               task,
				ProjectCode:        project.Code,
				ProjectName:        project.Name,
				AssignedToEmployee: taskAssignedTo(task, employee.Code),
				BlockingEnabled:    blocking.BlockingEnabled,
			})
		}
	}

	logger.Debug("Deadline reconciliation computed",
		slog.String("employee_id", employeeID),
		slog.String("work_date", workDate),
		slog.Int("pending_count", len(pending)),
	)
	return pending, nil
}

// TaskSubtasks returns a task's PMS subtasks for drill-down display.
func (s *reconcilerService) TaskSubtasks(ctx context.Context, taskID string) []domain.Subtask {
	return s.pms.ListSubtasks(ctx, taskID)
}

// taskCompleted treats the explicit flag and a case-insensitive "completed"
// status string as equivalent completion signals.
func taskCompleted(task domain.ExternalTask) bool {
	return task.Completed || strings.EqualFold(strings.TrimSpace(task.Status), "completed")
}

func taskAssignedTo(task domain.ExternalTask, employeeCode string) bool {
	if employeeCode == "" {
		return false
	}
	if strings.EqualFold(task.Assignee, employeeCode) {
		return true
	}
	for _, member := range task.Members {
		if strings.EqualFold(member, employeeCode) {
			return true
		}
	}
	return false
}

// titleKey is the project+title fallback identity for entries that carry no
// external task id.
func titleKey(projectName, taskName string) string {
	return strings.ToLower(strings.TrimSpace(projectName)) + "\x00" + strings.ToLower(strings.TrimSpace(taskName))
}
