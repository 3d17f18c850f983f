// Package settings persists the process-wide BlockingSetting as one flat JSON
// document. The file is read and written whole with no locking; concurrent
// writers are last-writer-wins, which is acceptable for a single advisory
// flag.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
)

type FileStore struct {
	path string
}

// NewFileStore creates a settings store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ portsrepo.SettingsRepository = (*FileStore)(nil)

// GetBlockingSetting reads the document; a missing file yields the zero value.
func (s *FileStore) GetBlockingSetting(_ context.Context) (domain.BlockingSetting, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.BlockingSetting{}, nil
		}
		return domain.BlockingSetting{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var setting domain.BlockingSetting
	if err := json.Unmarshal(data, &setting); err != nil {
		return domain.BlockingSetting{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return setting, nil
}

// PutBlockingSetting replaces the whole document.
func (s *FileStore) PutBlockingSetting(_ context.Context, setting domain.BlockingSetting) error {
	data, err := json.MarshalIndent(setting, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
