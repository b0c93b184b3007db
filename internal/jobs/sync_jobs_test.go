package jobs_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/jobs"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type mockSyncService struct {
	mock.Mock
}

func (m *mockSyncService) SyncFeeReceivables(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error) {
	panic("not used")
}
func (m *mockSyncService) SyncRentalReceivables(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error) {
	panic("not used")
}
func (m *mockSyncService) SyncMemberProfitPayables(ctx context.Context, actorID string) (*domain.PayableSyncResult, error) {
	panic("not used")
}
func (m *mockSyncService) SyncAllAccountingData(ctx context.Context, actorID string) (*domain.SyncResult, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}
func (m *mockSyncService) SyncBeforeMonthlyClosing(ctx context.Context, year, month int, actorID string) (*domain.ClosingSyncSummary, error) {
	panic("not used")
}

var _ portssvc.SyncSvc = (*mockSyncService)(nil)

// mockOverdue implements only the overdue sweeps of both ledger facades.
type mockOverdue struct {
	mock.Mock
	portssvc.ReceivableSvcFacade
	portssvc.PayableSvcFacade
}

func (m *mockOverdue) MarkOverdueReceivables(ctx context.Context, asOf time.Time, userID string) (int, error) {
	args := m.Called(ctx, asOf, userID)
	return args.Int(0), args.Error(1)
}
func (m *mockOverdue) MarkOverduePayables(ctx context.Context, asOf time.Time, userID string) (int, error) {
	args := m.Called(ctx, asOf, userID)
	return args.Int(0), args.Error(1)
}

type AccountingJobsTestSuite struct {
	suite.Suite
	syncSvc *mockSyncService
	overdue *mockOverdue
	jobs    *jobs.AccountingJobs
}

func (suite *AccountingJobsTestSuite) SetupTest() {
	suite.syncSvc = new(mockSyncService)
	suite.overdue = new(mockOverdue)
	suite.jobs = jobs.NewAccountingJobs(&portssvc.ServiceContainer{
		Sync:       suite.syncSvc,
		Receivable: suite.overdue,
		Payable:    suite.overdue,
	}, nil, nil)
}

func (suite *AccountingJobsTestSuite) TestHandleSyncAll_UsesPayloadActor() {
	task, err := jobs.NewSyncAllTask("user-9")
	suite.Require().NoError(err)
	suite.syncSvc.On("SyncAllAccountingData", mock.Anything, "user-9").Return(&domain.SyncResult{
		Reports: []domain.SyncReport{
			{Domain: domain.SourceFee, Items: []domain.SyncItemResult{{Outcome: domain.OutcomeCreated}}},
			{Domain: domain.SourceRental, Error: "rental module unavailable"},
		},
	}, nil).Once()

	suite.NoError(suite.jobs.HandleSyncAll(context.Background(), task))
	suite.syncSvc.AssertExpectations(suite.T())
}

func (suite *AccountingJobsTestSuite) TestHandleSyncAll_ScheduledRunUsesSystemActor() {
	task, err := jobs.NewSyncAllTask("")
	suite.Require().NoError(err)
	suite.syncSvc.On("SyncAllAccountingData", mock.Anything, domain.SystemActor).Return(&domain.SyncResult{}, nil).Once()

	suite.NoError(suite.jobs.HandleSyncAll(context.Background(), task))
}

func (suite *AccountingJobsTestSuite) TestHandleSyncAll_LockHeldIsNotRetried() {
	task, _ := jobs.NewSyncAllTask("user-9")
	suite.syncSvc.On("SyncAllAccountingData", mock.Anything, "user-9").
		Return(nil, fmt.Errorf("%w: already running", apperrors.ErrConflict)).Once()

	suite.NoError(suite.jobs.HandleSyncAll(context.Background(), task))
}

func (suite *AccountingJobsTestSuite) TestHandleSyncAll_FailureIsReturned() {
	task, _ := jobs.NewSyncAllTask("user-9")
	boom := errors.New("database unavailable")
	suite.syncSvc.On("SyncAllAccountingData", mock.Anything, "user-9").Return(nil, boom).Once()

	suite.ErrorIs(suite.jobs.HandleSyncAll(context.Background(), task), boom)
}

func (suite *AccountingJobsTestSuite) TestHandleSyncAll_BadPayloadSkipsRetry() {
	task := asynq.NewTask(jobs.TaskSyncAll, []byte("{not json"))

	suite.ErrorIs(suite.jobs.HandleSyncAll(context.Background(), task), asynq.SkipRetry)
	suite.syncSvc.AssertNotCalled(suite.T(), "SyncAllAccountingData", mock.Anything, mock.Anything)
}

func (suite *AccountingJobsTestSuite) TestHandleMarkOverdue_ExplicitDate() {
	asOf := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	task, err := jobs.NewMarkOverdueTask("user-2", asOf)
	suite.Require().NoError(err)
	suite.overdue.On("MarkOverdueReceivables", mock.Anything, asOf, "user-2").Return(2, nil).Once()
	suite.overdue.On("MarkOverduePayables", mock.Anything, asOf, "user-2").Return(1, nil).Once()

	suite.NoError(suite.jobs.HandleMarkOverdue(context.Background(), task))
	suite.overdue.AssertExpectations(suite.T())
}

func (suite *AccountingJobsTestSuite) TestHandleMarkOverdue_ZeroDateUsesNow() {
	task, _ := jobs.NewMarkOverdueTask("", time.Time{})
	notZero := mock.MatchedBy(func(t time.Time) bool { return !t.IsZero() })
	suite.overdue.On("MarkOverdueReceivables", mock.Anything, notZero, domain.SystemActor).Return(0, nil).Once()
	suite.overdue.On("MarkOverduePayables", mock.Anything, notZero, domain.SystemActor).Return(0, nil).Once()

	suite.NoError(suite.jobs.HandleMarkOverdue(context.Background(), task))
	suite.overdue.AssertExpectations(suite.T())
}

func (suite *AccountingJobsTestSuite) TestHandleMarkOverdue_StopsOnReceivableError() {
	task, _ := jobs.NewMarkOverdueTask("user-2", time.Now())
	suite.overdue.On("MarkOverdueReceivables", mock.Anything, mock.Anything, "user-2").Return(0, errors.New("boom")).Once()

	suite.Error(suite.jobs.HandleMarkOverdue(context.Background(), task))
	suite.overdue.AssertNotCalled(suite.T(), "MarkOverduePayables", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountingJobsTestSuite(t *testing.T) {
	suite.Run(t, new(AccountingJobsTestSuite))
}

func TestNewSyncAllTask_Payload(t *testing.T) {
	task, err := jobs.NewSyncAllTask("user-1")
	require.NoError(t, err)
	assert.Equal(t, jobs.TaskSyncAll, task.Type())

	var payload jobs.SyncAllPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "user-1", payload.ActorID)
	assert.False(t, payload.RequestedAt.IsZero())
}

func TestDefaultSchedule(t *testing.T) {
	regs, err := jobs.DefaultSchedule(config.SyncConfig{SyncCron: "0 2 * * *", OverdueCron: "30 0 * * *"})
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, jobs.TaskSyncAll, regs[0].Task.Type())
	assert.Equal(t, "0 2 * * *", regs[0].Spec)
	assert.Equal(t, jobs.TaskMarkOverdue, regs[1].Task.Type())

	regs, err = jobs.DefaultSchedule(config.SyncConfig{OverdueCron: "30 0 * * *"})
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, jobs.TaskMarkOverdue, regs[0].Task.Type())
}

func TestHandlersRegistersBothTasks(t *testing.T) {
	j := jobs.NewAccountingJobs(&portssvc.ServiceContainer{}, nil, nil)
	types := []string{}
	for _, h := range j.Handlers() {
		types = append(types, h.Type)
	}
	assert.ElementsMatch(t, []string{jobs.TaskSyncAll, jobs.TaskMarkOverdue}, types)
}
