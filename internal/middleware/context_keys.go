package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// employeeIDKey is the key used to store the authenticated employee's ID.
const employeeIDKey = contextKey("employeeID")

// roleKey is the key used to store the authenticated employee's role.
const roleKey = contextKey("role")

// GetEmployeeIDFromContext retrieves the authenticated employee ID from the
// Gin context. It returns the ID and a boolean indicating if it was found.
func GetEmployeeIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(employeeIDKey)
	if val == nil {
		return "", false
	}
	employeeID, ok := val.(string)
	return employeeID, ok
}

// GetRoleFromContext retrieves the authenticated employee's role from the Gin
// context, defaulting to the plain employee role when absent.
func GetRoleFromContext(c *gin.Context) domain.EmployeeRole {
	val := c.Request.Context().Value(roleKey)
	if val == nil {
		return domain.RoleEmployee
	}
	role, ok := val.(domain.EmployeeRole)
	if !ok {
		return domain.RoleEmployee
	}
	return role
}
