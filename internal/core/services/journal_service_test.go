package services_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/adapters/memory"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PeriodGuard ---
type MockPeriodGuard struct {
	mock.Mock
}

var _ portssvc.PeriodGuard = (*MockPeriodGuard)(nil)

func (m *MockPeriodGuard) EnsurePeriodOpen(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

type JournalServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	guard   *MockPeriodGuard
	service portssvc.JournalSvcFacade
	ctx     context.Context
	userID  string
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.guard = new(MockPeriodGuard)
	suite.ctx = context.Background()
	suite.userID = "user-1"
	repos := suite.store.Repositories()
	suite.service = services.NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.CategoryRepo, suite.guard,
		services.WithClock(fixedClock))
}

func (suite *JournalServiceTestSuite) validRequest() dto.CreateJournalEntryRequest {
	category := feeCategoryID
	return dto.CreateJournalEntryRequest{
		EntryDate:       dto.Date{Time: time.Date(2025, 7, 3, 15, 4, 0, 0, time.UTC)},
		Description:     "  Membership fee  ",
		DebitAccountID:  cashAccountID,
		CreditAccountID: feeIncomeID,
		Amount:          dec("1200"),
		CategoryID:      &category,
	}
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	suite.guard.On("EnsurePeriodOpen", suite.ctx, day(2025, 7, 3)).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(suite.ctx, suite.validRequest(), suite.userID)
	suite.Require().NoError(err)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(day(2025, 7, 3), entry.EntryDate)
	suite.Equal("Membership fee", entry.Description)
	suite.Regexp(regexp.MustCompile(`^JE-20250703-[0-9A-F]{8}$`), entry.JournalNumber)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Equal(fixedNow, entry.CreatedAt)

	stored, err := suite.service.GetJournalEntry(suite.ctx, entry.EntryID)
	suite.Require().NoError(err)
	suite.Equal(entry.JournalNumber, stored.JournalNumber)
	suite.guard.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_DuplicateNumber() {
	suite.guard.On("EnsurePeriodOpen", mock.Anything, mock.Anything).Return(nil)
	req := suite.validRequest()
	req.JournalNumber = "JE-FIXED"

	_, err := suite.service.CreateJournalEntry(suite.ctx, req, suite.userID)
	suite.Require().NoError(err)
	_, err = suite.service.CreateJournalEntry(suite.ctx, req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_ValidationFailures() {
	cases := map[string]func(r *dto.CreateJournalEntryRequest){
		"same account":     func(r *dto.CreateJournalEntryRequest) { r.CreditAccountID = r.DebitAccountID },
		"unknown account":  func(r *dto.CreateJournalEntryRequest) { r.DebitAccountID = "nope" },
		"zero amount":      func(r *dto.CreateJournalEntryRequest) { r.Amount = dec("0") },
		"blank text":       func(r *dto.CreateJournalEntryRequest) { r.Description = "   " },
		"missing date":     func(r *dto.CreateJournalEntryRequest) { r.EntryDate = dto.Date{} },
		"unknown category": func(r *dto.CreateJournalEntryRequest) { r.CategoryID = strPtr("nope") },
	}
	for name, mutate := range cases {
		suite.Run(name, func() {
			req := suite.validRequest()
			mutate(&req)
			_, err := suite.service.CreateJournalEntry(suite.ctx, req, suite.userID)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.guard.AssertNotCalled(suite.T(), "EnsurePeriodOpen", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccount() {
	suite.store.PutAccount(domain.Account{AccountID: "old", Code: "9999", Name: "Old", AccountType: domain.Asset, IsActive: false})
	req := suite.validRequest()
	req.DebitAccountID = "old"

	_, err := suite.service.CreateJournalEntry(suite.ctx, req, suite.userID)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_PeriodLocked() {
	suite.guard.On("EnsurePeriodOpen", suite.ctx, day(2025, 7, 3)).Return(apperrors.ErrPeriodLocked).Once()

	_, err := suite.service.CreateJournalEntry(suite.ctx, suite.validRequest(), suite.userID)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)

	entries, err := suite.store.ListJournalEntries(suite.ctx, domain.JournalEntryFilter{})
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_ChecksOldAndNewDate() {
	suite.guard.On("EnsurePeriodOpen", mock.Anything, day(2025, 7, 3)).Return(nil)
	suite.guard.On("EnsurePeriodOpen", mock.Anything, day(2025, 8, 9)).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(suite.ctx, suite.validRequest(), suite.userID)
	suite.Require().NoError(err)

	newDate := dto.Date{Time: day(2025, 8, 9)}
	amount := dec("1500")
	updated, err := suite.service.UpdateJournalEntry(suite.ctx, entry.EntryID, dto.UpdateJournalEntryRequest{EntryDate: &newDate, Amount: &amount}, "user-2")
	suite.Require().NoError(err)
	suite.Equal(day(2025, 8, 9), updated.EntryDate)
	suite.True(amount.Equal(updated.Amount))
	suite.Equal("user-2", updated.LastUpdatedBy)
	suite.Equal(suite.userID, updated.CreatedBy)
	suite.guard.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntry_NotFound() {
	err := suite.service.DeleteJournalEntry(suite.ctx, "missing", suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_ByMonth() {
	seedEntry(suite.store, "a", day(2025, 7, 1), cashAccountID, feeIncomeID, "1", nil)
	seedEntry(suite.store, "b", day(2025, 7, 31), cashAccountID, feeIncomeID, "2", nil)
	seedEntry(suite.store, "c", day(2025, 8, 1), cashAccountID, feeIncomeID, "3", nil)

	year, month := 2025, 7
	resp, err := suite.service.ListJournalEntries(suite.ctx, dto.ListJournalEntriesParams{Year: &year, Month: &month})
	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.Equal(50, resp.Limit)

	_, err = suite.service.ListJournalEntries(suite.ctx, dto.ListJournalEntriesParams{Month: &month})
	suite.ErrorIs(err, apperrors.ErrValidation)
}
