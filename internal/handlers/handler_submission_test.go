package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	"github.com/tempushq/timesheet_backend/internal/dto"
)

// --- Test Suite ---
type SubmissionHandlerTestSuite struct {
	suite.Suite
	env *routerEnv
}

func (suite *SubmissionHandlerTestSuite) SetupTest() {
	suite.env = newRouterEnv()
}

// --- Test Cases ---

func (suite *SubmissionHandlerTestSuite) TestSubmit_SuccessWithWarnings() {
	suite.env.submission.On("CanSubmit", mock.Anything, "emp-1", "2026-03-05").Return(true, nil).Once()
	suite.env.submission.On("Submit", mock.Anything, "emp-1", "2026-03-05").Return(&dto.SubmitResult{
		Submitted:      true,
		EntriesUpdated: 2,
		Warnings: []dto.PendingTaskResponse{
			{TaskID: "t1", TaskName: "Design review", ProjectCode: "PRJ1", DueDate: "2026-03-05"},
		},
	}, nil).Once()

	w := suite.env.do(http.MethodPost, "/api/v1/timesheets/submit", testToken("emp-1", domain.RoleEmployee),
		dto.SubmitTimesheetRequest{WorkDate: "2026-03-05"})

	// Outstanding tasks warn, they never block.
	suite.Equal(http.StatusOK, w.Code)
	var body dto.SubmitResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Submitted)
	suite.Equal(2, body.EntriesUpdated)
	suite.Len(body.Warnings, 1)
	suite.env.submission.AssertExpectations(suite.T())
}

func (suite *SubmissionHandlerTestSuite) TestSubmit_NoDraftEntriesIs409() {
	suite.env.submission.On("CanSubmit", mock.Anything, "emp-1", "2026-03-05").Return(false, nil).Once()

	w := suite.env.do(http.MethodPost, "/api/v1/timesheets/submit", testToken("emp-1", domain.RoleEmployee),
		dto.SubmitTimesheetRequest{WorkDate: "2026-03-05"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.env.submission.AssertNotCalled(suite.T(), "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubmissionHandlerTestSuite) TestSubmit_MissingWorkDateIs400() {
	w := suite.env.do(http.MethodPost, "/api/v1/timesheets/submit", testToken("emp-1", domain.RoleEmployee), map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *SubmissionHandlerTestSuite) TestGetBlockingSetting() {
	suite.env.settings.On("GetBlockingSetting", mock.Anything).
		Return(domain.BlockingSetting{BlockingEnabled: true}, nil).Once()

	w := suite.env.do(http.MethodGet, "/api/v1/settings/blocking", testToken("emp-1", domain.RoleEmployee), nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.BlockingSettingDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.BlockingEnabled)
}

func (suite *SubmissionHandlerTestSuite) TestUpdateBlockingSetting_AdminOnly() {
	w := suite.env.do(http.MethodPut, "/api/v1/settings/blocking", testToken("emp-1", domain.RoleEmployee),
		dto.BlockingSettingDTO{BlockingEnabled: true})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.env.settings.AssertNotCalled(suite.T(), "UpdateBlockingSetting", mock.Anything, mock.Anything)
}

func (suite *SubmissionHandlerTestSuite) TestUpdateBlockingSetting_AsAdmin() {
	suite.env.settings.On("UpdateBlockingSetting", mock.Anything, domain.BlockingSetting{BlockingEnabled: true}).
		Return(nil).Once()

	w := suite.env.do(http.MethodPut, "/api/v1/settings/blocking", testToken("adm-1", domain.RoleAdmin),
		dto.BlockingSettingDTO{BlockingEnabled: true})

	suite.Equal(http.StatusOK, w.Code)
	suite.env.settings.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestSubmissionHandler(t *testing.T) {
	suite.Run(t, new(SubmissionHandlerTestSuite))
}
