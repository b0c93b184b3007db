package handlers_test

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed HS256 token for userID.
func generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "aam-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) UpdateJournalEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) DeleteJournalEntry(ctx context.Context, entryID string, userID string) error {
	return m.Called(ctx, entryID, userID).Error(0)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ReceivableService ---
type MockReceivableService struct {
	mock.Mock
}

func (m *MockReceivableService) CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest, userID string) (*domain.Receivable, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}
func (m *MockReceivableService) GetReceivable(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}
func (m *MockReceivableService) ListReceivables(ctx context.Context, params dto.ListLedgerParams) (*dto.ListReceivablesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListReceivablesResponse), args.Error(1)
}
func (m *MockReceivableService) UpdateReceivable(ctx context.Context, receivableID string, req dto.UpdateReceivableRequest, userID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}
func (m *MockReceivableService) DeleteReceivable(ctx context.Context, receivableID string, userID string) error {
	return m.Called(ctx, receivableID, userID).Error(0)
}
func (m *MockReceivableService) RecordReceivablePayment(ctx context.Context, receivableID string, amount decimal.Decimal, userID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID, amount, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}
func (m *MockReceivableService) MarkOverdueReceivables(ctx context.Context, asOf time.Time, userID string) (int, error) {
	args := m.Called(ctx, asOf, userID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.ReceivableSvcFacade = (*MockReceivableService)(nil)

// --- Mock MonthlyClosingService ---
type MockMonthlyClosingService struct {
	mock.Mock
}

func (m *MockMonthlyClosingService) EnsurePeriodOpen(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}
func (m *MockMonthlyClosingService) CreateMonthlyClosing(ctx context.Context, year, month int, notes string, userID string) (*domain.MonthlyClosing, error) {
	args := m.Called(ctx, year, month, notes, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyClosing), args.Error(1)
}
func (m *MockMonthlyClosingService) FinalizeMonthlyClosing(ctx context.Context, closingID string, userID string) (*domain.MonthlyClosing, error) {
	args := m.Called(ctx, closingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyClosing), args.Error(1)
}
func (m *MockMonthlyClosingService) GetMonthlyClosing(ctx context.Context, closingID string) (*domain.ClosingDetail, error) {
	args := m.Called(ctx, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingDetail), args.Error(1)
}
func (m *MockMonthlyClosingService) ListMonthlyClosings(ctx context.Context, year *int) ([]domain.MonthlyClosing, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyClosing), args.Error(1)
}
func (m *MockMonthlyClosingService) UpdateMonthlyClosing(ctx context.Context, closingID string, req dto.UpdateMonthlyClosingRequest, userID string) (*domain.MonthlyClosing, error) {
	args := m.Called(ctx, closingID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyClosing), args.Error(1)
}
func (m *MockMonthlyClosingService) DeleteMonthlyClosing(ctx context.Context, closingID string, userID string) error {
	return m.Called(ctx, closingID, userID).Error(0)
}

var _ portssvc.MonthlyClosingSvcFacade = (*MockMonthlyClosingService)(nil)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncFeeReceivables(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceivableSyncResult), args.Error(1)
}
func (m *MockSyncService) SyncRentalReceivables(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceivableSyncResult), args.Error(1)
}
func (m *MockSyncService) SyncMemberProfitPayables(ctx context.Context, actorID string) (*domain.PayableSyncResult, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayableSyncResult), args.Error(1)
}
func (m *MockSyncService) SyncAllAccountingData(ctx context.Context, actorID string) (*domain.SyncResult, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}
func (m *MockSyncService) SyncBeforeMonthlyClosing(ctx context.Context, year, month int, actorID string) (*domain.ClosingSyncSummary, error) {
	args := m.Called(ctx, year, month, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingSyncSummary), args.Error(1)
}

var _ portssvc.SyncSvc = (*MockSyncService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetIncomeExpenseReport(ctx context.Context, year int, month *int) (*domain.IncomeExpenseReport, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeExpenseReport), args.Error(1)
}
func (m *MockReportingService) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) GetCashFlowStatement(ctx context.Context, year int, month *int) (*domain.CashFlowStatement, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowStatement), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, time.Time, *domain.User, error) {
	args := m.Called(ctx, username, password)
	var user *domain.User
	if args.Get(2) != nil {
		user = args.Get(2).(*domain.User)
	}
	return args.String(0), args.Get(1).(time.Time), user, args.Error(3)
}
func (m *MockAuthService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) SetUserActive(ctx context.Context, username string, active bool, actorID string) (*domain.User, error) {
	args := m.Called(ctx, username, active, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

// --- Mock SyncEnqueuer ---
type MockSyncEnqueuer struct {
	mock.Mock
}

func (m *MockSyncEnqueuer) EnqueueSyncAll(ctx context.Context, actorID string) (string, error) {
	args := m.Called(ctx, actorID)
	return args.String(0), args.Error(1)
}
