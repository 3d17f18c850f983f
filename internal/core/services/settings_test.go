package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/core/services"
)

// --- Test Suite ---
type SettingsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettingsRepository
	service  portssvc.SettingsSvcFacade
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingsRepository)
	suite.service = services.NewSettingsService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *SettingsServiceTestSuite) TestGetBlockingSetting() {
	ctx := context.Background()
	suite.mockRepo.On("GetBlockingSetting", ctx).Return(domain.BlockingSetting{BlockingEnabled: true}, nil).Once()

	setting, err := suite.service.GetBlockingSetting(ctx)

	suite.Require().NoError(err)
	suite.True(setting.BlockingEnabled)
}

func (suite *SettingsServiceTestSuite) TestGetBlockingSetting_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("GetBlockingSetting", ctx).Return(domain.BlockingSetting{}, assert.AnError).Once()

	_, err := suite.service.GetBlockingSetting(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *SettingsServiceTestSuite) TestUpdateBlockingSetting() {
	ctx := context.Background()
	setting := domain.BlockingSetting{BlockingEnabled: true}
	suite.mockRepo.On("PutBlockingSetting", ctx, setting).Return(nil).Once()

	err := suite.service.UpdateBlockingSetting(ctx, setting)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
