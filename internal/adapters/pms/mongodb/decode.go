package mongodb

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

// The PMS schema drifts between deployments: the same logical field appears
// under different names and shapes depending on which version populated the
// document. Each decode function maps a raw bson.M into the one canonical
// internal shape; absent fields decode to zero values so a request still
// succeeds with reduced data.

var (
	projectCodeFields = []string{"code", "project_code", "projectCode", "short_code"}
	projectNameFields = []string{"name", "project_name", "projectName", "title"}
	departmentFields  = []string{"department", "departments", "dept", "department_name", "departmentNames"}
	dueDateFields     = []string{"due_date", "dueDate", "deadline", "end_date", "endDate"}
	taskNameFields    = []string{"name", "task_name", "taskName", "title"}
	taskProjectFields = []string{"project_id", "projectId", "project_code", "project"}
	assigneeFields    = []string{"assignee", "assigned_to", "assignedTo", "owner"}
	memberFields      = []string{"members", "member_list", "memberList", "assignees"}
	completedFields   = []string{"completed", "is_completed", "isCompleted", "done"}
	statusFields      = []string{"status", "task_status", "state"}
	subtaskLinkFields = []string{"task_id", "taskId", "parent_task_id", "parentTaskId", "task"}
)

func decodeProject(doc bson.M) domain.ExternalProject {
	return domain.ExternalProject{
		Code:        stringField(doc, projectCodeFields...),
		Name:        stringField(doc, projectNameFields...),
		DueDate:     timeField(doc, dueDateFields...),
		Departments: stringSetField(doc, departmentFields...),
	}
}

func decodeTask(doc bson.M) domain.ExternalTask {
	return domain.ExternalTask{
		ID:        idField(doc),
		ProjectID: stringField(doc, taskProjectFields...),
		Name:      stringField(doc, taskNameFields...),
		DueDate:   timeField(doc, dueDateFields...),
		Assignee:  stringField(doc, assigneeFields...),
		Members:   stringSetField(doc, memberFields...),
		Completed: boolField(doc, completedFields...),
		Status:    stringField(doc, statusFields...),
	}
}

func decodeSubtask(doc bson.M) domain.Subtask {
	return domain.Subtask{
		ID:        idField(doc),
		TaskID:    stringField(doc, subtaskLinkFields...),
		Name:      stringField(doc, taskNameFields...),
		DueDate:   timeField(doc, dueDateFields...),
		Completed: boolField(doc, completedFields...),
	}
}

// idField canonicalizes the document identity: an ObjectID _id renders as its
// hex form, string ids pass through, and explicit "id"/"task_id" fields win
// over nothing.
func idField(doc bson.M) string {
	if raw, ok := doc["_id"]; ok {
		switch v := raw.(type) {
		case bson.ObjectID:
			return v.Hex()
		case string:
			return v
		}
	}
	return stringField(doc, "id", "task_id", "taskId")
}

func stringField(doc bson.M, names ...string) string {
	for _, name := range names {
		if raw, ok := doc[name]; ok {
			if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// stringSetField accepts a single string, an array of strings, or a
// comma-separated string and produces the canonical candidate set.
func stringSetField(doc bson.M, names ...string) []string {
	for _, name := range names {
		raw, ok := doc[name]
		if !ok || raw == nil {
			continue
		}
		result := coerceStringSet(raw)
		if len(result) > 0 {
			return result
		}
	}
	return nil
}

func coerceStringSet(raw any) []string {
	switch v := raw.(type) {
	case string:
		return splitCommaSeparated(v)
	case bson.A:
		result := []string{}
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				result = append(result, strings.TrimSpace(s))
			}
		}
		return result
	case []string:
		result := []string{}
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				result = append(result, strings.TrimSpace(s))
			}
		}
		return result
	}
	return nil
}

func splitCommaSeparated(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// timeField tolerates native BSON datetimes, Go times, and date strings in a
// few common layouts.
func timeField(doc bson.M, names ...string) *time.Time {
	for _, name := range names {
		raw, ok := doc[name]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case bson.DateTime:
			t := v.Time()
			return &t
		case time.Time:
			return &v
		case string:
			for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
				if t, err := time.Parse(layout, v); err == nil {
					return &t
				}
			}
		}
	}
	return nil
}

// presentField returns the first candidate name the document already carries,
// so a write lands on the field reads will resolve instead of creating a
// parallel canonical one. Falls back to the canonical (first) name when the
// document carries none of them.
func presentField(doc bson.M, candidates []string) string {
	for _, name := range candidates {
		if _, ok := doc[name]; ok {
			return name
		}
	}
	return candidates[0]
}

func boolField(doc bson.M, names ...string) bool {
	for _, name := range names {
		if raw, ok := doc[name]; ok {
			if b, ok := raw.(bool); ok {
				return b
			}
		}
	}
	return false
}
