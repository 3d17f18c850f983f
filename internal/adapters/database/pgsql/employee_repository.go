package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
)

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository creates a new repository for employee data.
func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

var _ portsrepo.EmployeeRepository = (*EmployeeRepository)(nil)

func (r *EmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `
		SELECT employee_id, code, name, email, department, role, manager_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM employees
		WHERE employee_id = $1;
	`
	var employee domain.Employee
	var managerID *string
	err := r.pool.QueryRow(ctx, query, employeeID).Scan(
		&employee.EmployeeID,
		&employee.Code,
		&employee.Name,
		&employee.Email,
		&employee.Department,
		&employee.Role,
		&managerID,
		&employee.CreatedAt,
		&employee.CreatedBy,
		&employee.LastUpdatedAt,
		&employee.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Indicate not found explicitly
		}
		return nil, fmt.Errorf("failed to find employee by ID: %w", err)
	}
	employee.ManagerID = deref(managerID)
	return &employee, nil
}

func (r *EmployeeRepository) FindEmployeesByRole(ctx context.Context, roles ...domain.EmployeeRole) ([]domain.Employee, error) {
	if len(roles) == 0 {
		return []domain.Employee{}, nil
	}
	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = string(role)
	}

	query := `
		SELECT employee_id, code, name, email, department, role, manager_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM employees
		WHERE role = ANY($1)
		ORDER BY name ASC;
	`
	rows, err := r.pool.Query(ctx, query, roleStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees by role: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		var employee domain.Employee
		var managerID *string
		err := rows.Scan(
			&employee.EmployeeID,
			&employee.Code,
			&employee.Name,
			&employee.Email,
			&employee.Department,
			&employee.Role,
			&managerID,
			&employee.CreatedAt,
			&employee.CreatedBy,
			&employee.LastUpdatedAt,
			&employee.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employee.ManagerID = deref(managerID)
		employees = append(employees, employee)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", rows.Err())
	}
	return employees, nil
}

func (r *EmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		INSERT INTO employees (employee_id, code, name, email, department, role, manager_id,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id) DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			department = EXCLUDED.department,
			role = EXCLUDED.role,
			manager_id = EXCLUDED.manager_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		employee.EmployeeID,
		employee.Code,
		employee.Name,
		employee.Email,
		employee.Department,
		employee.Role,
		nullable(employee.ManagerID),
		employee.CreatedAt,
		employee.CreatedBy,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}
