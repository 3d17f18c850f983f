package settings_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempushq/timesheet_backend/internal/adapters/settings"
	"github.com/tempushq/timesheet_backend/internal/core/domain"
)

func TestFileStore_MissingFileYieldsZeroValue(t *testing.T) {
	store := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.json"))

	setting, err := store.GetBlockingSetting(context.Background())

	require.NoError(t, err)
	assert.False(t, setting.BlockingEnabled)
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.json"))

	require.NoError(t, store.PutBlockingSetting(ctx, domain.BlockingSetting{BlockingEnabled: true}))

	setting, err := store.GetBlockingSetting(ctx)
	require.NoError(t, err)
	assert.True(t, setting.BlockingEnabled)

	// Last writer wins.
	require.NoError(t, store.PutBlockingSetting(ctx, domain.BlockingSetting{BlockingEnabled: false}))
	setting, err = store.GetBlockingSetting(ctx)
	require.NoError(t, err)
	assert.False(t, setting.BlockingEnabled)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := settings.NewFileStore(path)

	_, err := store.GetBlockingSetting(context.Background())

	assert.Error(t, err)
}
