package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
)

type TimeEntryRepository struct {
	pool *pgxpool.Pool
}

// NewTimeEntryRepository creates a new repository for time entry data.
func NewTimeEntryRepository(pool *pgxpool.Pool) *TimeEntryRepository {
	return &TimeEntryRepository{pool: pool}
}

var _ portsrepo.TimeEntryRepository = (*TimeEntryRepository)(nil)

const entryColumns = `
	entry_id, employee_id, work_date, project_name, task_description,
	external_task_id, start_time, percent_complete, status, submitted,
	manager_approved_by, manager_approved_at, approved_by, approved_at,
	rejected_by, rejected_at, rejection_reason,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *TimeEntryRepository) SaveEntry(ctx context.Context, entry domain.TimeEntry) error {
	query := `
		INSERT INTO time_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.pool.Exec(ctx, query,
		entry.EntryID,
		entry.EmployeeID,
		entry.WorkDate,
		entry.ProjectName,
		entry.TaskDescription,
		nullable(entry.ExternalTaskID),
		nullable(entry.StartTime),
		entry.PercentComplete,
		entry.Status,
		entry.Submitted,
		nullable(entry.ManagerApprovedBy),
		entry.ManagerApprovedAt,
		nullable(entry.ApprovedBy),
		entry.ApprovedAt,
		nullable(entry.RejectedBy),
		entry.RejectedAt,
		nullable(entry.RejectionReason),
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert time entry %s: %w", entry.EntryID, err)
	}
	return nil
}

func (r *TimeEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE entry_id = $1;`
	row := r.pool.QueryRow(ctx, query, entryID)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Indicate not found explicitly
		}
		return nil, fmt.Errorf("failed to find entry by ID: %w", err)
	}
	return entry, nil
}

func (r *TimeEntryRepository) ListEntriesForDay(ctx context.Context, employeeID, workDate string) ([]domain.TimeEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM time_entries
		WHERE employee_id = $1 AND work_date = $2
		ORDER BY created_at ASC;
	`
	rows, err := r.pool.Query(ctx, query, employeeID, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for day: %w", err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *TimeEntryRepository) CountDuplicates(ctx context.Context, employeeID, workDate, projectName, taskDescription, startTime string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM time_entries
		WHERE employee_id = $1
		  AND work_date = $2
		  AND project_name = $3
		  AND task_description = $4
		  AND COALESCE(start_time, '') = $5;
	`
	var count int
	err := r.pool.QueryRow(ctx, query, employeeID, workDate, projectName, taskDescription, startTime).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count duplicate entries: %w", err)
	}
	return count, nil
}

func (r *TimeEntryRepository) UpdateEntry(ctx context.Context, entry domain.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET project_name = $2,
		    task_description = $3,
		    start_time = $4,
		    percent_complete = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE entry_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		entry.EntryID,
		entry.ProjectName,
		entry.TaskDescription,
		nullable(entry.StartTime),
		entry.PercentComplete,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s not found for update: %w", entry.EntryID, pgx.ErrNoRows)
	}
	return nil
}

func (r *TimeEntryRepository) UpdateEntryStatus(ctx context.Context, entry domain.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET status = $2,
		    manager_approved_by = $3,
		    manager_approved_at = $4,
		    approved_by = $5,
		    approved_at = $6,
		    rejected_by = $7,
		    rejected_at = $8,
		    rejection_reason = $9,
		    last_updated_at = $10,
		    last_updated_by = $11
		WHERE entry_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		entry.EntryID,
		entry.Status,
		nullable(entry.ManagerApprovedBy),
		entry.ManagerApprovedAt,
		nullable(entry.ApprovedBy),
		entry.ApprovedAt,
		nullable(entry.RejectedBy),
		entry.RejectedAt,
		nullable(entry.RejectionReason),
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry status %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s not found for status update: %w", entry.EntryID, pgx.ErrNoRows)
	}
	return nil
}

func (r *TimeEntryRepository) MarkEntriesSubmitted(ctx context.Context, employeeID, workDate string, submittedAt time.Time) (int, error) {
	query := `
		UPDATE time_entries
		SET submitted = TRUE,
		    last_updated_at = $3,
		    last_updated_by = $1
		WHERE employee_id = $1 AND work_date = $2 AND submitted = FALSE;
	`
	tag, err := r.pool.Exec(ctx, query, employeeID, workDate, submittedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to mark entries submitted: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// scanEntry reads one entry from a row; nullable text columns round-trip
// through pointers.
func scanEntry(row pgx.Row) (*domain.TimeEntry, error) {
	var entry domain.TimeEntry
	var externalTaskID, startTime, managerApprovedBy, approvedBy, rejectedBy, rejectionReason *string
	err := row.Scan(
		&entry.EntryID,
		&entry.EmployeeID,
		&entry.WorkDate,
		&entry.ProjectName,
		&entry.TaskDescription,
		&externalTaskID,
		&startTime,
		&entry.PercentComplete,
		&entry.Status,
		&entry.Submitted,
		&managerApprovedBy,
		&entry.ManagerApprovedAt,
		&approvedBy,
		&entry.ApprovedAt,
		&rejectedBy,
		&entry.RejectedAt,
		&rejectionReason,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	entry.ExternalTaskID = deref(externalTaskID)
	entry.StartTime = deref(startTime)
	entry.ManagerApprovedBy = deref(managerApprovedBy)
	entry.ApprovedBy = deref(approvedBy)
	entry.RejectedBy = deref(rejectedBy)
	entry.RejectionReason = deref(rejectionReason)
	return &entry, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
