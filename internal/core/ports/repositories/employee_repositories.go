package repositories

import (
	"context"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// EmployeeRepository defines the employee reads this core needs: department
// matching and notification recipient assembly. Employee administration is
// handled by an external collaborator.
type EmployeeRepository interface {
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeesByRole retrieves all employees holding any of the given
	// roles, e.g. the admin/HR notification group.
	FindEmployeesByRole(ctx context.Context, roles ...domain.EmployeeRole) ([]domain.Employee, error)

	// SaveEmployee upserts an employee record (seed/support path).
	SaveEmployee(ctx context.Context, employee domain.Employee) error
}
