package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tempushq/timesheet_backend/internal/apperrors"
	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/core/services"
)

// --- Mock TimeEntryRepository ---
type MockTimeEntryRepository struct {
	mock.Mock
}

func (m *MockTimeEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) ListEntriesForDay(ctx context.Context, employeeID, workDate string) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, employeeID, workDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) CountDuplicates(ctx context.Context, employeeID, workDate, projectName, taskDescription, startTime string) (int, error) {
	args := m.Called(ctx, employeeID, workDate, projectName, taskDescription, startTime)
	return args.Int(0), args.Error(1)
}

func (m *MockTimeEntryRepository) SaveEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) UpdateEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) UpdateEntryStatus(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) MarkEntriesSubmitted(ctx context.Context, employeeID, workDate string, submittedAt time.Time) (int, error) {
	args := m.Called(ctx, employeeID, workDate, submittedAt)
	return args.Int(0), args.Error(1)
}

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeesByRole(ctx context.Context, roles ...domain.EmployeeRole) ([]domain.Employee, error) {
	callArgs := []any{ctx}
	for _, role := range roles {
		callArgs = append(callArgs, role)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetBlockingSetting(ctx context.Context) (domain.BlockingSetting, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.BlockingSetting), args.Error(1)
}

func (m *MockSettingsRepository) PutBlockingSetting(ctx context.Context, s domain.BlockingSetting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// --- Mock PMSGateway ---
type MockPMSGateway struct {
	mock.Mock
}

func (m *MockPMSGateway) ListProjects(ctx context.Context, role domain.EmployeeRole, employeeCode, department string) []domain.ExternalProject {
	args := m.Called(ctx, role, employeeCode, department)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ExternalProject)
}

func (m *MockPMSGateway) ListTasks(ctx context.Context, projectID string) []domain.ExternalTask {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ExternalTask)
}

func (m *MockPMSGateway) ListSubtasks(ctx context.Context, taskID string) []domain.Subtask {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Subtask)
}

func (m *MockPMSGateway) SetTaskDueDate(ctx context.Context, taskID string, due time.Time) error {
	args := m.Called(ctx, taskID, due)
	return args.Error(0)
}

func (m *MockPMSGateway) SetTaskStatus(ctx context.Context, taskID, status string) error {
	args := m.Called(ctx, taskID, status)
	return args.Error(0)
}

func (m *MockPMSGateway) SetProjectProgress(ctx context.Context, projectCode string, percent decimal.Decimal) error {
	args := m.Called(ctx, projectCode, percent)
	return args.Error(0)
}

// --- Test Suite ---
type ReconcilerServiceTestSuite struct {
	suite.Suite
	mockPMS          *MockPMSGateway
	mockEntryRepo    *MockTimeEntryRepository
	mockEmployeeRepo *MockEmployeeRepository
	mockSettingsRepo *MockSettingsRepository
	service          portssvc.ReconcilerSvcFacade

	employee *domain.Employee
}

func (suite *ReconcilerServiceTestSuite) SetupTest() {
	suite.mockPMS = new(MockPMSGateway)
	suite.mockEntryRepo = new(MockTimeEntryRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.service = services.NewReconcilerService(
		suite.mockPMS,
		suite.mockEntryRepo,
		suite.mockEmployeeRepo,
		suite.mockSettingsRepo,
		time.UTC,
	)
	suite.employee = &domain.Employee{
		EmployeeID: "emp-1",
		Code:       "E001",
		Department: "Software Developers",
		Role:       domain.RoleEmployee,
	}
}

func (suite *ReconcilerServiceTestSuite) expectCommonReads(entries []domain.TimeEntry, workDate string) {
	ctx := context.Background()
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, "emp-1").Return(suite.employee, nil).Once()
	suite.mockSettingsRepo.On("GetBlockingSetting", ctx).Return(domain.BlockingSetting{BlockingEnabled: true}, nil).Once()
	suite.mockEntryRepo.On("ListEntriesForDay", ctx, "emp-1", workDate).Return(entries, nil).Once()
}

func due(t time.Time) *time.Time { return &t }

// --- Test Cases ---

func (suite *ReconcilerServiceTestSuite) TestComputePending_TaskDueTodayIsReturned() {
	ctx := context.Background()
	workDate := "2026-03-05"
	suite.expectCommonReads([]domain.TimeEntry{}, workDate)

	suite.mockPMS.On("ListProjects", ctx, domain.RoleEmployee, "E001", "Software Developers").
		Return([]domain.ExternalProject{{Code: "PRJ1", Name: "Phoenix"}}).Once()
	suite.mockPMS.On("ListTasks", ctx, "PRJ1").Return([]domain.ExternalTask{
		{ID: "t1", Name: "Design review", DueDate: due(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)), Assignee: "E001"},
		{ID: "t2", Name: "Next week task", DueDate: due(time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC))},
	}).Once()

	pending, err := suite.service.ComputePending(ctx, "emp-1", workDate)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("t1", pending[0].Task.ID)
	suite.Equal("PRJ1", pending[0].ProjectCode)
	suite.True(pending[0].AssignedToEmployee)
	suite.True(pending[0].BlockingEnabled)
	suite.mockPMS.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestComputePending_CompletedTasksExcluded() {
	ctx := context.Background()
	workDate := "2026-03-05"
	dueToday := due(time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC))
	suite.expectCommonReads([]domain.TimeEntry{}, workDate)

	suite.mockPMS.On("ListProjects", ctx, domain.RoleEmployee, "E001", "Software Developers").
		Return([]domain.ExternalProject{{Code: "PRJ1", Name: "Phoenix"}}).Once()
	suite.mockPMS.On("ListTasks", ctx, "PRJ1").Return([]domain.ExternalTask{
		{ID: "t1", Name: "Done via flag", DueDate: dueToday, Completed: true},
		{ID: "t2", Name: "Done via status", DueDate: dueToday, Status: "Completed"},
		{ID: "t3", Name: "Still open", DueDate: dueToday, Status: "in progress"},
	}).Once()

	pending, err := suite.service.ComputePending(ctx, "emp-1", workDate)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("t3", pending[0].Task.ID)
}

func (suite *ReconcilerServiceTestSuite) TestComputePending_LocalEntryByExternalIDExcludes() {
	ctx := context.Background()
	workDate := "2026-03-05"
	entries := []domain.TimeEntry{{EntryID: "e1", ExternalTaskID: "t1", ProjectName: "Phoenix", TaskDescription: "something else"}}
	suite.expectCommonReads(entries, workDate)

	suite.mockPMS.On("ListProjects", ctx, domain.RoleEmployee, "E001", "Software Developers").
		Return([]domain.ExternalProject{{Code: "PRJ1", Name: "Phoenix"}}).Once()
	suite.mockPMS.On("ListTasks", ctx, "PRJ1").Return([]domain.ExternalTask{
		{ID: "t1", Name: "Design review", DueDate: due(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))},
	}).Once()

	pending, err := suite.service.ComputePending(ctx, "emp-1", workDate)

	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *ReconcilerServiceTestSuite) TestComputePending_LocalEntryByTitleFallbackExcludes() {
	ctx := context.Background()
	workDate := "2026-03-05"
	// No external id on the local entry; match falls back to project+title,
	// case-insensitively.
	entries := []domain.TimeEntry{{EntryID: "e1", ProjectName: "  PHOENIX ", TaskDescription: "design REVIEW"}}
	suite.expectCommonReads(entries, workDate)

	suite.mockPMS.On("ListProjects", ctx, domain.RoleEmployee, "E001", "Software Developers").
		Return([]domain.ExternalProject{{Code: "PRJ1", Name: "Phoenix"}}).Once()
	suite.mockPMS.On("ListTasks", ctx, "PRJ1").Return([]domain.ExternalTask{
		{ID: "t1", Name: "Design Review", DueDate: due(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))},
	}).Once()

	pending, err := suite.service.ComputePending(ctx, "emp-1", workDate)

	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *ReconcilerServiceTestSuite) TestComputePending_DueDateComparedInLocalDay() {
	ctx := context.Background()
	workDate := "2026-03-05"

	ist := time.FixedZone("IST", 5*3600+1800)
	service := services.NewReconcilerService(
		suite.mockPMS, suite.mockEntryRepo, suite.mockEmployeeRepo, suite.mockSettingsRepo, ist,
	)

	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, "emp-1").Return(suite.employee, nil).Once()
	suite.mockSettingsRepo.On("GetBlockingSetting", ctx).Return(domain.BlockingSetting{}, nil).Once()
	suite.mockEntryRepo.On("ListEntriesForDay", ctx, "emp-1", workDate).Return([]domain.TimeEntry{}, nil).Once()

	// Stored as 20:00 UTC on the 4th, which is 01:30 on the 5th in IST. The
	// UTC day key would miss it.
	suite.mockPMS.On("ListProjects", ctx, domain.RoleEmployee, "E001", "Software Developers").
		Return([]domain.ExternalProject{{Code: "PRJ1", Name: "Phoenix"}}).Once()
	suite.mockPMS.On("ListTasks", ctx, "PRJ1").Return([]domain.ExternalTask{
		{ID: "t1", Name: "Late UTC task", DueDate: due(time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC))},
	}).Once()

	pending, err := service.ComputePending(ctx, "emp-1", workDate)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("t1", pending[0].Task.ID)
}

func (suite *ReconcilerServiceTestSuite) TestComputePending_TasksWithoutDueDateSkipped() {
	ctx := context.Background()
	workDate := "2026-03-05"
	suite.expectCommonReads([]domain.TimeEntry{}, workDate)

	suite.mockPMS.On("ListProjects", ctx, domain.RoleEmployee, "E001", "Software Developers").
		Return([]domain.ExternalProject{{Code: "PRJ1", Name: "Phoenix"}}).Once()
	suite.mockPMS.On("ListTasks", ctx, "PRJ1").Return([]domain.ExternalTask{
		{ID: "t1", Name: "No deadline"},
	}).Once()

	pending, err := suite.service.ComputePending(ctx, "emp-1", workDate)

	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *ReconcilerServiceTestSuite) TestComputePending_PMSOutageYieldsEmptyNotError() {
	ctx := context.Background()
	workDate := "2026-03-05"
	suite.expectCommonReads([]domain.TimeEntry{}, workDate)

	// Gateway reads degrade to nil on outage; the reconciler must pass that
	// through as an empty result.
	suite.mockPMS.On("ListProjects", ctx, domain.RoleEmployee, "E001", "Software Developers").
		Return(nil).Once()

	pending, err := suite.service.ComputePending(ctx, "emp-1", workDate)

	suite.Require().NoError(err)
	suite.NotNil(pending)
	suite.Empty(pending)
}

func (suite *ReconcilerServiceTestSuite) TestComputePending_SettingsFailureDoesNotFail() {
	ctx := context.Background()
	workDate := "2026-03-05"
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, "emp-1").Return(suite.employee, nil).Once()
	suite.mockSettingsRepo.On("GetBlockingSetting", ctx).Return(domain.BlockingSetting{}, assert.AnError).Once()
	suite.mockEntryRepo.On("ListEntriesForDay", ctx, "emp-1", workDate).Return([]domain.TimeEntry{}, nil).Once()

	suite.mockPMS.On("ListProjects", ctx, domain.RoleEmployee, "E001", "Software Developers").
		Return([]domain.ExternalProject{{Code: "PRJ1", Name: "Phoenix"}}).Once()
	suite.mockPMS.On("ListTasks", ctx, "PRJ1").Return([]domain.ExternalTask{
		{ID: "t1", Name: "Design review", DueDate: due(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))},
	}).Once()

	pending, err := suite.service.ComputePending(ctx, "emp-1", workDate)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.False(pending[0].BlockingEnabled)
}

func (suite *ReconcilerServiceTestSuite) TestComputePending_InvalidDate() {
	ctx := context.Background()

	pending, err := suite.service.ComputePending(ctx, "emp-1", "05-03-2026")

	suite.Require().Error(err)
	suite.Nil(pending)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconcilerServiceTestSuite) TestComputePending_EmployeeNotFound() {
	ctx := context.Background()
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, "ghost").Return(nil, nil).Once()

	pending, err := suite.service.ComputePending(ctx, "ghost", "2026-03-05")

	suite.Require().Error(err)
	suite.Nil(pending)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconcilerServiceTestSuite) TestTaskSubtasks_PassesThroughGateway() {
	ctx := context.Background()
	subtasks := []domain.Subtask{{ID: "st-1", TaskID: "task-1", Name: "Draft"}}
	suite.mockPMS.On("ListSubtasks", ctx, "task-1").Return(subtasks).Once()

	suite.Equal(subtasks, suite.service.TaskSubtasks(ctx, "task-1"))
	suite.mockPMS.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestReconcilerService(t *testing.T) {
	suite.Run(t, new(ReconcilerServiceTestSuite))
}
