package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tempushq/timesheet_backend/internal/apperrors"
	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/core/services"
	"github.com/tempushq/timesheet_backend/internal/dto"
)

// --- Mock PostponementRepository ---
type MockPostponementRepository struct {
	mock.Mock
}

func (m *MockPostponementRepository) CountPostponements(ctx context.Context, taskID string) (int, error) {
	args := m.Called(ctx, taskID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostponementRepository) ListPostponements(ctx context.Context, taskID string) ([]domain.Postponement, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Postponement), args.Error(1)
}

func (m *MockPostponementRepository) AppendPostponement(ctx context.Context, p domain.Postponement) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPostponementRepository) AppendAcknowledgement(ctx context.Context, a domain.Acknowledgement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// --- Test Suite ---
type PostponementServiceTestSuite struct {
	suite.Suite
	mockLedger       *MockPostponementRepository
	mockEmployeeRepo *MockEmployeeRepository
	mockPMS          *MockPMSGateway
	mockNotifier     *MockNotifier
	service          portssvc.PostponementSvcFacade
}

func (suite *PostponementServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockPostponementRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.mockPMS = new(MockPMSGateway)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewPostponementService(
		suite.mockLedger,
		suite.mockEmployeeRepo,
		suite.mockPMS,
		suite.mockNotifier,
		time.UTC,
	)
}

func (suite *PostponementServiceTestSuite) expectNotification() {
	suite.mockEmployeeRepo.On("FindEmployeesByRole", mock.Anything, domain.RoleAdmin, domain.RoleHR).
		Return([]domain.Employee{{EmployeeID: "adm-1", Email: "admin@example.com"}}, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").
		Return(&domain.Employee{EmployeeID: "emp-1", Email: "emp@example.com"}, nil).Once()
	suite.mockNotifier.On("NotifyPostponement", mock.Anything, []string{"admin@example.com", "emp@example.com"}, mock.Anything).
		Return(nil).Once()
}

// --- Test Cases ---

func (suite *PostponementServiceTestSuite) TestPostpone_Success() {
	ctx := context.Background()
	req := dto.PostponeTaskRequest{
		PreviousDueDate: "2026-03-05",
		NewDueDate:      "2026-03-12",
		Reason:          "blocked on vendor delivery",
	}

	suite.mockLedger.On("CountPostponements", ctx, "task-1").Return(2, nil).Once()
	suite.mockLedger.On("AppendPostponement", ctx, mock.MatchedBy(func(p domain.Postponement) bool {
		return p.TaskID == "task-1" && p.Sequence == 3 && p.Reason == req.Reason && p.Actor == "emp-1"
	})).Return(nil).Once()
	suite.mockPMS.On("SetTaskDueDate", ctx, "task-1", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)).Return(nil).Once()
	suite.expectNotification()

	record, err := suite.service.Postpone(ctx, "task-1", "emp-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.Equal(3, record.Sequence)
	suite.Equal("2026-03-12", record.NewDueDate)
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockPMS.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PostponementServiceTestSuite) TestPostpone_MissingFields() {
	ctx := context.Background()

	record, err := suite.service.Postpone(ctx, "task-1", "emp-1", dto.PostponeTaskRequest{})

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "reason")
	suite.ErrorContains(err, "newDueDate")
	suite.mockLedger.AssertNotCalled(suite.T(), "AppendPostponement", mock.Anything, mock.Anything)
}

func (suite *PostponementServiceTestSuite) TestPostpone_BadDateFormat() {
	ctx := context.Background()
	req := dto.PostponeTaskRequest{NewDueDate: "12/03/2026", Reason: "slipped"}

	record, err := suite.service.Postpone(ctx, "task-1", "emp-1", req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostponementServiceTestSuite) TestPostpone_FirstRecordGetsSequenceOne() {
	ctx := context.Background()
	req := dto.PostponeTaskRequest{NewDueDate: "2026-03-12", Reason: "slipped"}

	suite.mockLedger.On("CountPostponements", ctx, "task-1").Return(0, nil).Once()
	suite.mockLedger.On("AppendPostponement", ctx, mock.MatchedBy(func(p domain.Postponement) bool {
		return p.Sequence == 1
	})).Return(nil).Once()
	suite.mockPMS.On("SetTaskDueDate", ctx, "task-1", mock.Anything).Return(nil).Once()
	suite.expectNotification()

	record, err := suite.service.Postpone(ctx, "task-1", "emp-1", req)

	suite.Require().NoError(err)
	suite.Equal(1, record.Sequence)
}

func (suite *PostponementServiceTestSuite) TestPostpone_PMSWriteBackFailureTolerated() {
	ctx := context.Background()
	req := dto.PostponeTaskRequest{NewDueDate: "2026-03-12", Reason: "slipped"}

	suite.mockLedger.On("CountPostponements", ctx, "task-1").Return(0, nil).Once()
	suite.mockLedger.On("AppendPostponement", ctx, mock.Anything).Return(nil).Once()
	suite.mockPMS.On("SetTaskDueDate", ctx, "task-1", mock.Anything).Return(assert.AnError).Once()
	suite.expectNotification()

	record, err := suite.service.Postpone(ctx, "task-1", "emp-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
}

func (suite *PostponementServiceTestSuite) TestPostpone_LedgerAppendFailure() {
	ctx := context.Background()
	req := dto.PostponeTaskRequest{NewDueDate: "2026-03-12", Reason: "slipped"}
	expectedErr := assert.AnError

	suite.mockLedger.On("CountPostponements", ctx, "task-1").Return(0, nil).Once()
	suite.mockLedger.On("AppendPostponement", ctx, mock.Anything).Return(expectedErr).Once()

	record, err := suite.service.Postpone(ctx, "task-1", "emp-1", req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, expectedErr)
	suite.mockPMS.AssertNotCalled(suite.T(), "SetTaskDueDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostponementServiceTestSuite) TestAcknowledge_Success() {
	ctx := context.Background()

	suite.mockLedger.On("AppendAcknowledgement", ctx, mock.MatchedBy(func(a domain.Acknowledgement) bool {
		return a.TaskID == "task-1" && a.Actor == "emp-1" && a.ProjectCode == "PRJ1"
	})).Return(nil).Once()

	record, err := suite.service.Acknowledge(ctx, "task-1", "emp-1", dto.AcknowledgeTaskRequest{ProjectCode: "PRJ1"})

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.mockLedger.AssertExpectations(suite.T())
	// Acknowledging must not touch the task's due date.
	suite.mockPMS.AssertNotCalled(suite.T(), "SetTaskDueDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostponementServiceTestSuite) TestAcknowledge_MissingActor() {
	ctx := context.Background()

	record, err := suite.service.Acknowledge(ctx, "task-1", "", dto.AcknowledgeTaskRequest{})

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostponementServiceTestSuite) TestHistory_OrderedBySequence() {
	ctx := context.Background()
	records := []domain.Postponement{
		{PostponementID: "p1", TaskID: "task-1", Sequence: 1},
		{PostponementID: "p2", TaskID: "task-1", Sequence: 2},
	}
	suite.mockLedger.On("ListPostponements", ctx, "task-1").Return(records, nil).Once()

	history, err := suite.service.History(ctx, "task-1")

	suite.Require().NoError(err)
	suite.Equal(records, history)
}

// --- Run Suite ---
func TestPostponementService(t *testing.T) {
	suite.Run(t, new(PostponementServiceTestSuite))
}
