package services

import (
	"strings"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// departmentSynonyms canonicalizes free-text department labels that evolved
// independently in the local employee records and the PMS project metadata.
// Keys are lowercased/trimmed raw labels, values are the canonical token.
var departmentSynonyms = map[string]string{
	"software developers":    "software",
	"software developer":     "software",
	"software development":   "software",
	"developers":             "software",
	"dev":                    "software",
	"engineering":            "software",
	"hr & admin":             "hr",
	"hr and admin":           "hr",
	"human resources":        "hr",
	"admin & hr":             "hr",
	"finance & accounts":     "finance",
	"accounts":               "finance",
	"accounting":             "finance",
	"qa":                     "quality",
	"quality assurance":      "quality",
	"testing":                "quality",
	"sales & marketing":      "sales",
	"marketing":              "sales",
	"business development":   "sales",
	"operations & logistics": "operations",
	"ops":                    "operations",
}

// NormalizeDepartment canonicalizes a free-text department label into a
// comparable token, falling back to the lowercased/trimmed input when no
// synonym exists.
func NormalizeDepartment(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := departmentSynonyms[key]; ok {
		return canonical
	}
	return key
}

// DepartmentsMatch reports whether two department labels canonicalize to the
// same token. Symmetric by construction.
func DepartmentsMatch(a, b string) bool {
	return NormalizeDepartment(a) == NormalizeDepartment(b)
}

// AnyDepartmentMatches reports whether any candidate label matches the given
// department. Candidates are the canonical set decoded from a project's
// department field, which may have carried one or many labels.
func AnyDepartmentMatches(candidates []string, department string) bool {
	for _, candidate := range candidates {
		if DepartmentsMatch(candidate, department) {
			return true
		}
	}
	return false
}

// ProjectVisibleTo decides whether a project is visible to an employee.
// Admin bypasses department filtering entirely. A project exposing no
// department information is excluded for everyone else.
func ProjectVisibleTo(role domain.EmployeeRole, projectDepartments []string, employeeDepartment string) bool {
	if role == domain.RoleAdmin {
		return true
	}
	if len(projectDepartments) == 0 {
		return false
	}
	return AnyDepartmentMatches(projectDepartments, employeeDepartment)
}
