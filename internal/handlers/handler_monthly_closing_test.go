package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/handlers"
	"github.com/marmotkit/asset-mgmt-accounting/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClosingAndSyncHandlerTestSuite struct {
	suite.Suite
	mockClosingService *MockMonthlyClosingService
	mockSyncService    *MockSyncService
	mockEnqueuer       *MockSyncEnqueuer
	token              string
}

func (suite *ClosingAndSyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockClosingService = new(MockMonthlyClosingService)
	suite.mockSyncService = new(MockSyncService)
	suite.mockEnqueuer = new(MockSyncEnqueuer)
	suite.token = generateTestToken("user-1")
}

// router builds a fresh engine; enqueuer may be nil to simulate a missing queue.
func (suite *ClosingAndSyncHandlerTestSuite) router(enqueuer handlers.SyncEnqueuer) *gin.Engine {
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterAccountingRoutes(v1, &portssvc.ServiceContainer{
		MonthlyClosing: suite.mockClosingService,
		Sync:           suite.mockSyncService,
	}, handlers.Extras{Enqueuer: enqueuer})
	return r
}

func (suite *ClosingAndSyncHandlerTestSuite) do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	raw := []byte(nil)
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func pendingClosing() *domain.MonthlyClosing {
	c := domain.NewMonthlyClosing("mc-1", domain.Period{Year: 2025, Month: 7},
		decimal.NewFromInt(5000), decimal.NewFromInt(3200), "user-1",
		time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC))
	return &c
}

func (suite *ClosingAndSyncHandlerTestSuite) TestCreateClosing_WithoutSync() {
	suite.mockClosingService.On("CreateMonthlyClosing", mock.Anything, 2025, 7, "July", "user-1").
		Return(pendingClosing(), nil).Once()

	w := suite.do(suite.router(nil), http.MethodPost, "/api/v1/accounting/monthly-closings/close",
		map[string]any{"year": 2025, "month": 7, "notes": "July"})

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.MonthlyClosingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("mc-1", got.Closing.ClosingID)
	suite.True(got.Closing.NetAmount.Equal(decimal.NewFromInt(1800)))
	suite.Nil(got.PreClosingSync)
	suite.mockSyncService.AssertNotCalled(suite.T(), "SyncBeforeMonthlyClosing", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestCreateClosing_SyncFirst() {
	summary := &domain.ClosingSyncSummary{Year: 2025, Month: 7, JournalCount: 12}
	suite.mockSyncService.On("SyncBeforeMonthlyClosing", mock.Anything, 2025, 7, "user-1").Return(summary, nil).Once()
	suite.mockClosingService.On("CreateMonthlyClosing", mock.Anything, 2025, 7, "", "user-1").
		Return(pendingClosing(), nil).Once()

	w := suite.do(suite.router(nil), http.MethodPost, "/api/v1/accounting/monthly-closings/close",
		map[string]any{"year": 2025, "month": 7, "sync_first": true})

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.MonthlyClosingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().NotNil(got.PreClosingSync)
	suite.Equal(12, got.PreClosingSync.JournalCount)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestCreateClosing_AlreadyExists() {
	suite.mockClosingService.On("CreateMonthlyClosing", mock.Anything, 2025, 7, "", "user-1").
		Return(nil, fmt.Errorf("%w: %w", apperrors.ErrDuplicate, domain.ErrClosingExists)).Once()

	w := suite.do(suite.router(nil), http.MethodPost, "/api/v1/accounting/monthly-closings/close",
		map[string]any{"year": 2025, "month": 7})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestCreateClosing_InvalidMonth() {
	w := suite.do(suite.router(nil), http.MethodPost, "/api/v1/accounting/monthly-closings/close",
		map[string]any{"year": 2025, "month": 0})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestFinalizeClosing() {
	finalized := pendingClosing()
	now := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
	finalized.Status = domain.ClosingFinalized
	finalized.ClosingDate = &now
	suite.mockClosingService.On("FinalizeMonthlyClosing", mock.Anything, "mc-1", "user-1").Return(finalized, nil).Once()

	w := suite.do(suite.router(nil), http.MethodPost, "/api/v1/accounting/monthly-closings/mc-1/finalize", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"finalized"`)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestFinalizeClosing_AlreadyFinalized() {
	suite.mockClosingService.On("FinalizeMonthlyClosing", mock.Anything, "mc-1", "user-1").
		Return(nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, domain.ErrClosingFinalized)).Once()

	w := suite.do(suite.router(nil), http.MethodPost, "/api/v1/accounting/monthly-closings/mc-1/finalize", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestSyncFees_UpstreamDown() {
	suite.mockSyncService.On("SyncFeeReceivables", mock.Anything, "user-1").
		Return(nil, fmt.Errorf("%w: fees: connection refused", apperrors.ErrUpstream)).Once()

	w := suite.do(suite.router(nil), http.MethodPost, "/api/v1/accounting/sync/fees", nil)

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestSyncAll_Synchronous() {
	result := &domain.SyncResult{
		Reports: []domain.SyncReport{
			{Domain: domain.SourceFee, Items: []domain.SyncItemResult{{SourceID: "f-1", Outcome: domain.OutcomeCreated}}},
			{Domain: domain.SourceRental, Error: "rental module unavailable"},
		},
	}
	suite.mockSyncService.On("SyncAllAccountingData", mock.Anything, "user-1").Return(result, nil).Once()

	w := suite.do(suite.router(suite.mockEnqueuer), http.MethodPost, "/api/v1/accounting/sync/all", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "rental module unavailable")
	suite.mockEnqueuer.AssertNotCalled(suite.T(), "EnqueueSyncAll", mock.Anything, mock.Anything)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestSyncAll_Async() {
	suite.mockEnqueuer.On("EnqueueSyncAll", mock.Anything, "user-1").Return("task-42", nil).Once()

	w := suite.do(suite.router(suite.mockEnqueuer), http.MethodPost, "/api/v1/accounting/sync/all?async=true", nil)

	suite.Equal(http.StatusAccepted, w.Code)
	var got dto.SyncAcceptedResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("task-42", got.TaskID)
	suite.mockSyncService.AssertNotCalled(suite.T(), "SyncAllAccountingData", mock.Anything, mock.Anything)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestSyncAll_AsyncWithoutQueue() {
	w := suite.do(suite.router(nil), http.MethodPost, "/api/v1/accounting/sync/all?async=true", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *ClosingAndSyncHandlerTestSuite) TestSyncAll_EnqueueFailure() {
	suite.mockEnqueuer.On("EnqueueSyncAll", mock.Anything, "user-1").Return("", errors.New("redis down")).Once()

	w := suite.do(suite.router(suite.mockEnqueuer), http.MethodPost, "/api/v1/accounting/sync/all?async=true", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "redis down")
}

func (suite *ClosingAndSyncHandlerTestSuite) TestSyncAll_LockHeld() {
	suite.mockSyncService.On("SyncAllAccountingData", mock.Anything, "user-1").
		Return(nil, fmt.Errorf("%w: sync already running", apperrors.ErrConflict)).Once()

	w := suite.do(suite.router(nil), http.MethodPost, "/api/v1/accounting/sync/all", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func TestClosingAndSyncHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingAndSyncHandlerTestSuite))
}
