package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
)

// PostponementRepository persists the append-only ledger. No UPDATE or DELETE
// statements exist here on purpose.
type PostponementRepository struct {
	pool *pgxpool.Pool
}

// NewPostponementRepository creates a new repository for the postponement ledger.
func NewPostponementRepository(pool *pgxpool.Pool) *PostponementRepository {
	return &PostponementRepository{pool: pool}
}

var _ portsrepo.PostponementRepository = (*PostponementRepository)(nil)

func (r *PostponementRepository) CountPostponements(ctx context.Context, taskID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM postponements WHERE task_id = $1;`, taskID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count postponements for task %s: %w", taskID, err)
	}
	return count, nil
}

func (r *PostponementRepository) ListPostponements(ctx context.Context, taskID string) ([]domain.Postponement, error) {
	query := `
		SELECT postponement_id, task_id, previous_due_date, new_due_date, reason, actor, sequence, created_at
		FROM postponements
		WHERE task_id = $1
		ORDER BY sequence ASC;
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query postponements: %w", err)
	}
	defer rows.Close()

	records := []domain.Postponement{}
	for rows.Next() {
		var p domain.Postponement
		err := rows.Scan(
			&p.PostponementID,
			&p.TaskID,
			&p.PreviousDueDate,
			&p.NewDueDate,
			&p.Reason,
			&p.Actor,
			&p.Sequence,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan postponement row: %w", err)
		}
		records = append(records, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating postponement rows: %w", rows.Err())
	}
	return records, nil
}

func (r *PostponementRepository) AppendPostponement(ctx context.Context, p domain.Postponement) error {
	query := `
		INSERT INTO postponements (postponement_id, task_id, previous_due_date, new_due_date, reason, actor, sequence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		p.PostponementID,
		p.TaskID,
		p.PreviousDueDate,
		p.NewDueDate,
		p.Reason,
		p.Actor,
		p.Sequence,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append postponement for task %s: %w", p.TaskID, err)
	}
	return nil
}

func (r *PostponementRepository) AppendAcknowledgement(ctx context.Context, a domain.Acknowledgement) error {
	query := `
		INSERT INTO acknowledgements (ack_id, task_id, actor, project_code, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query,
		a.AckID,
		a.TaskID,
		a.Actor,
		a.ProjectCode,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append acknowledgement for task %s: %w", a.TaskID, err)
	}
	return nil
}
