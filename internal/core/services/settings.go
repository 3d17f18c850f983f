package services

import (
	"context"
	"fmt"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
)

// settingsService exposes the process-wide blocking flag.
type settingsService struct {
	repo portsrepo.SettingsRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo portsrepo.SettingsRepository) portssvc.SettingsSvcFacade {
	return &settingsService{repo: repo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetBlockingSetting(ctx context.Context) (domain.BlockingSetting, error) {
	setting, err := s.repo.GetBlockingSetting(ctx)
	if err != nil {
		return domain.BlockingSetting{}, fmt.Errorf("failed to read blocking setting: %w", err)
	}
	return setting, nil
}

func (s *settingsService) UpdateBlockingSetting(ctx context.Context, setting domain.BlockingSetting) error {
	if err := s.repo.PutBlockingSetting(ctx, setting); err != nil {
		return fmt.Errorf("failed to write blocking setting: %w", err)
	}
	return nil
}
