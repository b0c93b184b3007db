package handlers_test

import (
	"bytes"
	"encoding/json"
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

type ReceivableHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockReceivableService *MockReceivableService
	token                 string
}

func (suite *ReceivableHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockReceivableService = new(MockReceivableService)
	suite.token = generateTestToken("user-1")

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterAccountingRoutes(v1, &portssvc.ServiceContainer{Receivable: suite.mockReceivableService}, handlers.Extras{})
}

func (suite *ReceivableHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
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
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReceivableHandlerTestSuite) TestCreateReceivable_Success() {
	body := map[string]any{
		"customer_id":    "member-7",
		"customer_name":  "Wang",
		"invoice_number": "INV-2025-001",
		"amount":         "1200",
		"due_date":       "2025-08-31",
	}
	created := &domain.Receivable{
		ReceivableID:  "rcv-1",
		CustomerID:    "member-7",
		CustomerName:  "Wang",
		InvoiceNumber: "INV-2025-001",
		Amount:        decimal.NewFromInt(1200),
		PaymentAmount: decimal.Zero,
		DueDate:       time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:        domain.StatusPending,
	}
	suite.mockReceivableService.On("CreateReceivable", mock.Anything,
		mock.MatchedBy(func(req dto.CreateReceivableRequest) bool {
			return req.InvoiceNumber == "INV-2025-001" && req.Amount.Equal(decimal.NewFromInt(1200))
		}), "user-1").Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounting/receivables", body)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.Receivable
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("rcv-1", got.ReceivableID)
	suite.Equal(domain.StatusPending, got.Status)
}

func (suite *ReceivableHandlerTestSuite) TestCreateReceivable_InvalidStatus() {
	body := map[string]any{
		"customer_name":  "Wang",
		"invoice_number": "INV-2025-002",
		"amount":         "10",
		"status":         "lost",
	}
	w := suite.do(http.MethodPost, "/api/v1/accounting/receivables", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReceivableService.AssertNotCalled(suite.T(), "CreateReceivable", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReceivableHandlerTestSuite) TestCreateReceivable_DuplicateInvoice() {
	body := map[string]any{
		"customer_name":  "Wang",
		"invoice_number": "INV-2025-001",
		"amount":         "10",
	}
	suite.mockReceivableService.On("CreateReceivable", mock.Anything, mock.Anything, "user-1").
		Return(nil, fmt.Errorf("invoice INV-2025-001: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounting/receivables", body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ReceivableHandlerTestSuite) TestRecordPayment() {
	paid := &domain.Receivable{
		ReceivableID:  "rcv-1",
		Amount:        decimal.NewFromInt(1200),
		PaymentAmount: decimal.NewFromInt(1200),
		Status:        domain.StatusPaid,
	}
	suite.mockReceivableService.On("RecordReceivablePayment", mock.Anything, "rcv-1",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(1200)) }), "user-1").
		Return(paid, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounting/receivables/rcv-1/payments", map[string]any{"amount": 1200})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"paid"`)
}

func (suite *ReceivableHandlerTestSuite) TestRecordPayment_NegativeAmountRejected() {
	w := suite.do(http.MethodPost, "/api/v1/accounting/receivables/rcv-1/payments", map[string]any{"amount": -5})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ReceivableHandlerTestSuite) TestMarkOverdue() {
	suite.mockReceivableService.On("MarkOverdueReceivables", mock.Anything, mock.AnythingOfType("time.Time"), "user-1").
		Return(3, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounting/receivables/mark-overdue", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.MarkOverdueResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(3, got.Updated)
}

func (suite *ReceivableHandlerTestSuite) TestListReceivables_FiltersByStatus() {
	suite.mockReceivableService.On("ListReceivables", mock.Anything,
		mock.MatchedBy(func(p dto.ListLedgerParams) bool { return p.Status == domain.StatusOverdue })).
		Return(&dto.ListReceivablesResponse{Receivables: []domain.Receivable{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounting/receivables?status=overdue", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReceivableService.AssertExpectations(suite.T())
}

func TestReceivableHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReceivableHandlerTestSuite))
}
