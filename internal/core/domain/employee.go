package domain

// EmployeeRole defines the authorization role of an employee.
type EmployeeRole string

const (
	RoleEmployee EmployeeRole = "employee"
	RoleManager  EmployeeRole = "manager"
	RoleAdmin    EmployeeRole = "admin"
	RoleHR       EmployeeRole = "hr"
)

// Employee represents a user of the timesheet system. Organisation and
// department administration happen elsewhere; this core reads employees for
// department matching and notification recipient assembly.
type Employee struct {
	EmployeeID string       `json:"employeeID"` // Primary Key (UUID)
	Code       string       `json:"code"`       // Short code referenced by PMS task assignees
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Department string       `json:"department"`
	Role       EmployeeRole `json:"role"`
	ManagerID  string       `json:"managerID,omitempty"`
	AuditFields
}
