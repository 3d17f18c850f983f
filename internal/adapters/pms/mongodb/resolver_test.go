package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestResolver(list func(ctx context.Context) ([]string, error)) *collectionResolver {
	return &collectionResolver{logger: slog.Default(), list: list}
}

func TestResolver_PrefersExistingAlternateNames(t *testing.T) {
	r := newTestResolver(func(ctx context.Context) ([]string, error) {
		return []string{"Projects", "tasks", "unrelated"}, nil
	})

	assert.Equal(t, "Projects", r.name(context.Background(), "projects"))
	assert.Equal(t, "tasks", r.name(context.Background(), "tasks"))
	// Absent collections resolve to the canonical name.
	assert.Equal(t, "subtasks", r.name(context.Background(), "subtasks"))
}

func TestResolver_DiscoveryRunsOnceOnSuccess(t *testing.T) {
	calls := 0
	r := newTestResolver(func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"pms_tasks"}, nil
	})

	assert.Equal(t, "pms_tasks", r.name(context.Background(), "tasks"))
	assert.Equal(t, "pms_tasks", r.name(context.Background(), "tasks"))
	assert.Equal(t, 1, calls)
}

func TestResolver_RetriesAfterFailedDiscovery(t *testing.T) {
	calls := 0
	r := newTestResolver(func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("pms down")
		}
		return []string{"Projects"}, nil
	})

	// First call fails; fall back to the canonical name without caching.
	assert.Equal(t, "projects", r.name(context.Background(), "projects"))

	// The PMS is up now; the next call re-runs discovery and resolves.
	assert.Equal(t, "Projects", r.name(context.Background(), "projects"))
	assert.Equal(t, 2, calls)

	// The successful result is cached.
	assert.Equal(t, "Projects", r.name(context.Background(), "projects"))
	assert.Equal(t, 2, calls)
}
