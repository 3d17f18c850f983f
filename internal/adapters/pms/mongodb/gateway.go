package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
	"github.com/tempushq/timesheet_backend/internal/core/services"
)

// Gateway bridges to the external PMS MongoDB. Reads are fail-open: any
// failure degrades to an empty result and a log line, because a PMS outage
// must not block local timesheet operations. Writes are narrow single-field
// updates whose errors the caller logs without rolling anything back.
type Gateway struct {
	resolver *collectionResolver
	logger   *slog.Logger
}

// NewGateway creates a PMS gateway over the given database handle.
func NewGateway(db *mongo.Database, logger *slog.Logger) *Gateway {
	return &Gateway{
		resolver: newCollectionResolver(db, logger),
		logger:   logger,
	}
}

var _ portsrepo.PMSGateway = (*Gateway)(nil)

// ListProjects returns the projects visible to the role/department. Admin
// bypasses department narrowing; projects exposing no department information
// are excluded for everyone else.
func (g *Gateway) ListProjects(ctx context.Context, role domain.EmployeeRole, employeeCode, department string) []domain.ExternalProject {
	docs := g.findAll(ctx, "projects", bson.M{})

	projects := []domain.ExternalProject{}
	for _, doc := range docs {
		project := decodeProject(doc)
		if project.Code == "" && project.Name == "" {
			continue
		}
		if !services.ProjectVisibleTo(role, project.Departments, department) {
			continue
		}
		projects = append(projects, project)
	}
	return projects
}

// ListTasks returns the tasks of a project, matched under any of the known
// project foreign-key names.
func (g *Gateway) ListTasks(ctx context.Context, projectID string) []domain.ExternalTask {
	filter := orFieldEquals(taskProjectFields, projectID)
	docs := g.findAll(ctx, "tasks", filter)

	tasks := []domain.ExternalTask{}
	for _, doc := range docs {
		task := decodeTask(doc)
		if task.ID == "" {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// ListSubtasks returns the subtasks of a task, matched under any of the known
// task linkage names.
func (g *Gateway) ListSubtasks(ctx context.Context, taskID string) []domain.Subtask {
	filter := orFieldEquals(subtaskLinkFields, taskID)
	docs := g.findAll(ctx, "subtasks", filter)

	subtasks := []domain.Subtask{}
	for _, doc := range docs {
		subtask := decodeSubtask(doc)
		if subtask.ID == "" {
			continue
		}
		subtasks = append(subtasks, subtask)
	}
	return subtasks
}

// SetTaskDueDate writes the postponed due date back to the task document.
func (g *Gateway) SetTaskDueDate(ctx context.Context, taskID string, due time.Time) error {
	return g.setTaskField(ctx, taskID, dueDateFields, due)
}

// SetTaskStatus writes a status string to the task document.
func (g *Gateway) SetTaskStatus(ctx context.Context, taskID, status string) error {
	return g.setTaskField(ctx, taskID, statusFields, status)
}

// SetProjectProgress writes a completion percentage to the project document.
func (g *Gateway) SetProjectProgress(ctx context.Context, projectCode string, percent decimal.Decimal) error {
	value, _ := percent.Float64()
	coll := g.resolver.Collection(ctx, "projects")
	filter := orFieldEquals(append(projectCodeFields, projectNameFields...), projectCode)
	result, err := coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"progress": value}})
	if err != nil {
		return fmt.Errorf("pms project progress update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pms project %q not found for progress update", projectCode)
	}
	return nil
}

// findAll runs a find and decodes into loose documents. All failures,
// including cursor errors, degrade to an empty slice.
func (g *Gateway) findAll(ctx context.Context, logical string, filter bson.M) []bson.M {
	coll := g.resolver.Collection(ctx, logical)

	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		g.logger.Warn("PMS read failed, returning empty result",
			slog.String("collection", coll.Name()),
			slog.String("error", err.Error()),
		)
		return nil
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		g.logger.Warn("PMS cursor decode failed, returning empty result",
			slog.String("collection", coll.Name()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return docs
}

// setTaskField updates one logical task field. The physical field name is
// resolved against the stored document first, mirroring the decode layer's
// name probing, so drifted deployments are updated in place rather than
// gaining a second canonical field.
func (g *Gateway) setTaskField(ctx context.Context, taskID string, candidates []string, value any) error {
	coll := g.resolver.Collection(ctx, "tasks")

	var doc bson.M
	if err := coll.FindOne(ctx, idFilter(taskID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("pms tasks document %q not found for update", taskID)
		}
		return fmt.Errorf("pms tasks lookup failed: %w", err)
	}

	field := presentField(doc, candidates)
	result, err := coll.UpdateOne(ctx, idFilter(taskID), bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("pms tasks update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pms tasks document %q not found for update", taskID)
	}
	return nil
}

// idFilter matches a document by hex ObjectID or by a plain string id field.
func idFilter(id string) bson.M {
	or := bson.A{
		bson.M{"_id": id},
		bson.M{"id": id},
	}
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		or = append(or, bson.M{"_id": oid})
	}
	return bson.M{"$or": or}
}

// orFieldEquals matches value under any of the candidate field names.
func orFieldEquals(fields []string, value string) bson.M {
	or := make(bson.A, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: value})
	}
	return bson.M{"$or": or}
}
