package mongodb

import (
	"context"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Logical collections and their candidate physical names, in probe order.
// Older PMS deployments used capitalized or prefixed collection names.
var collectionCandidates = map[string][]string{
	"projects": {"projects", "Projects", "pms_projects", "project"},
	"tasks":    {"tasks", "Tasks", "pms_tasks", "task"},
	"subtasks": {"subtasks", "Subtasks", "pms_subtasks", "sub_tasks"},
}

// collectionResolver performs schema discovery once and caches the result,
// replacing the per-request name probing older deployments did. Discovery is
// cached only on success; after a failed listing every call falls back to the
// canonical names and the next call retries, so a PMS that comes up after
// this process does still gets resolved.
type collectionResolver struct {
	db     *mongo.Database
	logger *slog.Logger
	list   func(ctx context.Context) ([]string, error)

	mu       sync.Mutex
	resolved map[string]string
}

func newCollectionResolver(db *mongo.Database, logger *slog.Logger) *collectionResolver {
	return &collectionResolver{
		db:     db,
		logger: logger,
		list: func(ctx context.Context) ([]string, error) {
			return db.ListCollectionNames(ctx, bson.M{})
		},
	}
}

// Collection returns the handle for a logical collection name.
func (r *collectionResolver) Collection(ctx context.Context, logical string) *mongo.Collection {
	return r.db.Collection(r.name(ctx, logical))
}

// name resolves a logical collection to its physical name, running discovery
// if no successful discovery has been cached yet.
func (r *collectionResolver) name(ctx context.Context, logical string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved == nil {
		r.discover(ctx)
	}
	if r.resolved == nil {
		return collectionCandidates[logical][0]
	}
	name, ok := r.resolved[logical]
	if !ok {
		name = collectionCandidates[logical][0]
	}
	return name
}

func (r *collectionResolver) discover(ctx context.Context) {
	existing, err := r.list(ctx)
	if err != nil {
		r.logger.Warn("PMS collection discovery failed, assuming canonical names", slog.String("error", err.Error()))
		return
	}

	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	r.resolved = make(map[string]string)
	for logical, candidates := range collectionCandidates {
		r.resolved[logical] = candidates[0]
		for _, candidate := range candidates {
			if present[candidate] {
				r.resolved[logical] = candidate
				break
			}
		}
		r.logger.Info("PMS collection resolved",
			slog.String("logical", logical),
			slog.String("physical", r.resolved[logical]),
		)
	}
}
