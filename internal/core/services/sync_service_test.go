package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/adapters/memory"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSyncLocker struct {
	mock.Mock
}

func (m *MockSyncLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func(context.Context) error), args.Error(1)
}

// failingReceivableRepo rejects saves for one upstream source ID.
type failingReceivableRepo struct {
	portsrepo.ReceivableRepositoryFacade
	failSourceID string
}

func (r *failingReceivableRepo) SaveReceivable(ctx context.Context, rec domain.Receivable) error {
	if rec.Source != nil && rec.Source.ID == r.failSourceID {
		return errors.New("insert failed")
	}
	return r.ReceivableRepositoryFacade.SaveReceivable(ctx, rec)
}

type SyncServiceTestSuite struct {
	suite.Suite
	store    *memory.Store
	sources  *memory.Sources
	observer *recordingObserver
	service  portssvc.SyncSvc
	ctx      context.Context
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.sources = memory.NewSources()
	suite.observer = newRecordingObserver()
	suite.ctx = context.Background()
	repos := suite.store.Repositories()
	suite.service = services.NewSyncService(repos.ReceivableRepo, repos.PayableRepo, repos.JournalRepo, suite.sources,
		services.WithClock(fixedClock),
		services.WithSyncObserver(suite.observer),
		services.WithDefaultDueDays(30),
	)

	due := day(2025, 7, 31)
	suite.sources.SetFees(
		domain.PendingFee{FeeID: "fee-1", MemberID: "m-1", MemberNo: "A001", MemberName: "王小明", MemberType: "一般會員", Amount: dec("1200"), DueDate: &due},
		domain.PendingFee{FeeID: "fee-2", MemberID: "m-2", MemberNo: "A002", MemberName: "Alice", MemberType: "企業會員", Amount: dec("5000")},
	)
	suite.sources.SetRentals(
		domain.PendingRental{PaymentID: "rent-1", InvestmentID: "inv-9", InvestmentName: "台北店面", TenantID: "t-1", TenantName: "好租客有限公司", Year: 2025, Month: 7, Amount: dec("30000")},
	)
	suite.sources.SetProfits(
		domain.PendingProfit{ProfitID: "profit-1", InvestmentID: "inv-9", InvestmentName: "台北店面", MemberID: "m-1", MemberName: "王小明", Year: 2025, Month: 6, Amount: dec("800")},
	)
}

func (suite *SyncServiceTestSuite) TestSyncFeeReceivables_CreatesOnePerFee() {
	result, err := suite.service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Require().Len(result.Created, 2)

	first := result.Created[0]
	suite.Equal("FEE-A001-2025", first.InvoiceNumber)
	suite.Equal("會費 - 王小明 (一般會員)", first.Description)
	suite.Equal("m-1", first.CustomerID)
	suite.Equal(domain.StatusPending, first.Status)
	suite.True(first.PaymentAmount.IsZero())
	suite.Equal(day(2025, 7, 31), first.DueDate)
	suite.Equal(domain.SystemActor, first.CreatedBy)
	suite.Equal(&domain.SourceLink{Domain: domain.SourceFee, ID: "fee-1"}, first.Source)

	// No upstream due date: now + 30 days.
	suite.Equal(day(2025, 8, 14), result.Created[1].DueDate)
	suite.Equal(2, result.Report.Count(domain.OutcomeCreated))
	suite.Equal(2, suite.observer.items["fee/created"])
	suite.Equal(1, suite.observer.runs["fee/ok"])
}

func (suite *SyncServiceTestSuite) TestSyncFeeReceivables_SecondRunIsIdempotent() {
	_, err := suite.service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)

	again, err := suite.service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Empty(again.Created)
	suite.Equal(2, again.Report.Count(domain.OutcomeSkippedDuplicate))

	all, err := suite.store.ListReceivables(suite.ctx, domain.LedgerFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *SyncServiceTestSuite) TestSyncFeeReceivables_SkipsUnlinkedLegacyRecord() {
	legacy := domain.Receivable{
		ReceivableID:  "legacy-1",
		CustomerName:  " alice",
		InvoiceNumber: "FEE-A002-2024",
		Amount:        dec("5000.00"),
		DueDate:       day(2025, 7, 1),
		Description:   "會費 - Alice (企業會員)",
		Status:        domain.StatusPending,
	}
	suite.Require().NoError(suite.store.SaveReceivable(suite.ctx, legacy))

	result, err := suite.service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Require().Len(result.Created, 1)
	suite.Equal("fee-1", result.Created[0].Source.ID)

	var skipped domain.SyncItemResult
	for _, item := range result.Report.Items {
		if item.SourceID == "fee-2" {
			skipped = item
		}
	}
	suite.Equal(domain.OutcomeSkippedDuplicate, skipped.Outcome)
	suite.Equal("legacy-1", skipped.LedgerID)
}

func (suite *SyncServiceTestSuite) TestSyncFeeReceivables_SkipsFullWidthLegacyName() {
	legacy := domain.Receivable{
		ReceivableID:  "legacy-fw",
		CustomerName:  "ＡＬＩＣＥ",
		InvoiceNumber: "FEE-OLD-1",
		Amount:        dec("5000"),
		DueDate:       day(2025, 7, 1),
		Description:   "會費 - ＡＬＩＣＥ",
		Status:        domain.StatusPending,
	}
	suite.Require().NoError(suite.store.SaveReceivable(suite.ctx, legacy))

	result, err := suite.service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Require().Len(result.Created, 1)
	for _, item := range result.Report.Items {
		if item.SourceID == "fee-2" {
			suite.Equal(domain.OutcomeSkippedDuplicate, item.Outcome)
			suite.Equal("legacy-fw", item.LedgerID)
		}
	}
}

func (suite *SyncServiceTestSuite) TestSyncMemberProfitPayables_SkipsFullWidthLegacyName() {
	suite.sources.SetProfits(
		domain.PendingProfit{ProfitID: "profit-2", InvestmentID: "inv-9", InvestmentName: "台北店面", MemberID: "m-2", MemberName: "Alice", Year: 2025, Month: 6, Amount: dec("800")},
	)
	legacy := domain.Payable{
		PayableID:     "legacy-p",
		SupplierName:  "ａｌｉｃｅ",
		InvoiceNumber: "PROFIT-OLD-1",
		Amount:        dec("800"),
		DueDate:       day(2025, 7, 1),
		Description:   "分潤 - ａｌｉｃｅ",
		Status:        domain.StatusPending,
	}
	suite.Require().NoError(suite.store.SavePayable(suite.ctx, legacy))

	result, err := suite.service.SyncMemberProfitPayables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Empty(result.Created)
	suite.Require().Len(result.Report.Items, 1)
	suite.Equal(domain.OutcomeSkippedDuplicate, result.Report.Items[0].Outcome)
	suite.Equal("legacy-p", result.Report.Items[0].LedgerID)
}

func (suite *SyncServiceTestSuite) TestSyncFeeReceivables_LinkedLegacyLookalikeIsNotReused() {
	linked := domain.Receivable{
		ReceivableID:  "linked-1",
		CustomerName:  "Alice",
		InvoiceNumber: "FEE-OTHER",
		Amount:        dec("5000"),
		DueDate:       day(2025, 7, 1),
		Description:   "會費 - Alice",
		Status:        domain.StatusPending,
		Source:        &domain.SourceLink{Domain: domain.SourceFee, ID: "fee-old"},
	}
	suite.Require().NoError(suite.store.SaveReceivable(suite.ctx, linked))

	result, err := suite.service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Len(result.Created, 2)
}

func (suite *SyncServiceTestSuite) TestSyncFeeReceivables_SaveFailureFailsOnlyThatRecord() {
	suite.sources.SetFees(
		domain.PendingFee{FeeID: "fee-1", MemberID: "m-1", MemberNo: "A001", MemberName: "王小明", Amount: dec("1200")},
		domain.PendingFee{FeeID: "fee-2", MemberID: "m-2", MemberNo: "A002", MemberName: "Alice", Amount: dec("5000")},
		domain.PendingFee{FeeID: "fee-3", MemberID: "m-3", MemberNo: "A003", MemberName: "Carol", Amount: dec("700")},
	)
	repos := suite.store.Repositories()
	receivables := &failingReceivableRepo{ReceivableRepositoryFacade: repos.ReceivableRepo, failSourceID: "fee-2"}
	service := services.NewSyncService(receivables, repos.PayableRepo, repos.JournalRepo, suite.sources,
		services.WithClock(fixedClock))

	result, err := service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Require().Len(result.Created, 2)
	suite.Equal("fee-1", result.Created[0].Source.ID)
	suite.Equal("fee-3", result.Created[1].Source.ID)

	suite.Require().Len(result.Report.Items, 3)
	suite.Equal(domain.OutcomeCreated, result.Report.Items[0].Outcome)
	suite.Equal(domain.OutcomeFailed, result.Report.Items[1].Outcome)
	suite.Equal("fee-2", result.Report.Items[1].SourceID)
	suite.Contains(result.Report.Items[1].Reason, "insert failed")
	suite.Equal(domain.OutcomeCreated, result.Report.Items[2].Outcome)

	stored, err := suite.store.ListReceivables(suite.ctx, domain.LedgerFilter{})
	suite.Require().NoError(err)
	suite.Len(stored, 2)
}

func (suite *SyncServiceTestSuite) TestSyncFeeReceivables_LegacyRecordWithOtherAmountDoesNotMatch() {
	legacy := domain.Receivable{
		ReceivableID:  "legacy-1",
		CustomerName:  "Alice",
		InvoiceNumber: "FEE-A002-2024",
		Amount:        dec("4000"),
		DueDate:       day(2025, 7, 1),
		Description:   "會費 - Alice (企業會員)",
		Status:        domain.StatusPending,
	}
	suite.Require().NoError(suite.store.SaveReceivable(suite.ctx, legacy))

	result, err := suite.service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Len(result.Created, 2)
}

func (suite *SyncServiceTestSuite) TestSyncFeeReceivables_FetchFailureIsReturned() {
	upstreamErr := errors.New("connection refused")
	suite.sources.FailWith(upstreamErr, domain.SourceFee)

	result, err := suite.service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().Error(err)
	suite.ErrorIs(err, upstreamErr)
	suite.Empty(result.Created)
	suite.NotEmpty(result.Report.Error)
	suite.Equal(1, suite.observer.runs["fee/failed"])
}

func (suite *SyncServiceTestSuite) TestSyncFeeReceivables_InvalidAmountFailsOnlyThatRecord() {
	suite.sources.SetFees(
		domain.PendingFee{FeeID: "fee-bad", MemberID: "m-3", MemberNo: "A003", MemberName: "Bad", Amount: dec("0")},
		domain.PendingFee{FeeID: "fee-1", MemberID: "m-1", MemberNo: "A001", MemberName: "王小明", Amount: dec("1200")},
	)

	result, err := suite.service.SyncFeeReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Len(result.Created, 1)
	suite.Equal(1, result.Report.Count(domain.OutcomeFailed))
	suite.Equal(domain.OutcomeFailed, result.Report.Items[0].Outcome)
	suite.NotEmpty(result.Report.Items[0].Reason)
}

func (suite *SyncServiceTestSuite) TestSyncRentalReceivables_InvoiceAndDescription() {
	result, err := suite.service.SyncRentalReceivables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Require().Len(result.Created, 1)
	suite.Equal("RENTAL-inv-9-2025-7", result.Created[0].InvoiceNumber)
	suite.Contains(result.Created[0].Description, "租金")
	suite.Equal("好租客有限公司", result.Created[0].CustomerName)
}

func (suite *SyncServiceTestSuite) TestSyncMemberProfitPayables_CreatesPayable() {
	result, err := suite.service.SyncMemberProfitPayables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Require().Len(result.Created, 1)

	payable := result.Created[0]
	suite.Equal("PROFIT-inv-9-2025-6", payable.InvoiceNumber)
	suite.Equal("分潤 - 王小明 (台北店面 2025/6)", payable.Description)
	suite.Equal("m-1", payable.SupplierID)
	suite.Equal(domain.SourceMemberProfit, payable.Source.Domain)

	again, err := suite.service.SyncMemberProfitPayables(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Empty(again.Created)
}

func (suite *SyncServiceTestSuite) TestSyncAll_SubSyncFailureDoesNotStopOthers() {
	suite.sources.FailWith(errors.New("fee module down"), domain.SourceFee)

	result, err := suite.service.SyncAllAccountingData(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.Empty(result.FeeReceivables)
	suite.Len(result.RentalReceivables, 1)
	suite.Len(result.ProfitPayables, 1)
	suite.Require().Len(result.Reports, 3)
	suite.Equal(domain.SourceFee, result.Reports[0].Domain)
	suite.Contains(result.Reports[0].Error, "fee module down")
	suite.Empty(result.Reports[1].Error)
}

func (suite *SyncServiceTestSuite) TestSyncAll_CancelledContextReturnsPartialResult() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	result, err := suite.service.SyncAllAccountingData(ctx, domain.SystemActor)
	suite.Require().ErrorIs(err, context.Canceled)
	suite.Require().NotNil(result)
	suite.Empty(result.FeeReceivables)

	all, lerr := suite.store.ListReceivables(suite.ctx, domain.LedgerFilter{})
	suite.Require().NoError(lerr)
	suite.Empty(all)
}

func (suite *SyncServiceTestSuite) TestSyncAll_LockHeldElsewhere() {
	locker := new(MockSyncLocker)
	locker.On("Acquire", mock.Anything, services.SyncLockKey, 5*time.Minute).Return(nil, apperrors.ErrConflict).Once()
	repos := suite.store.Repositories()
	svc := services.NewSyncService(repos.ReceivableRepo, repos.PayableRepo, repos.JournalRepo, suite.sources,
		services.WithSyncLocker(locker, 5*time.Minute))

	_, err := svc.SyncAllAccountingData(suite.ctx, domain.SystemActor)
	suite.ErrorIs(err, services.ErrSyncInProgress)
	suite.ErrorIs(err, apperrors.ErrConflict)
	locker.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncAll_ReleasesLock() {
	released := false
	release := func(context.Context) error {
		released = true
		return nil
	}
	locker := new(MockSyncLocker)
	locker.On("Acquire", mock.Anything, services.SyncLockKey, 10*time.Minute).Return(release, nil).Once()
	repos := suite.store.Repositories()
	svc := services.NewSyncService(repos.ReceivableRepo, repos.PayableRepo, repos.JournalRepo, suite.sources,
		services.WithSyncLocker(locker, 0), services.WithClock(fixedClock))

	_, err := svc.SyncAllAccountingData(suite.ctx, domain.SystemActor)
	suite.Require().NoError(err)
	suite.True(released)
	locker.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncBeforeMonthlyClosing_SummarizesMonth() {
	seedEntry(suite.store, "e1", day(2025, 7, 3), cashAccountID, feeIncomeID, "1000", nil)
	seedEntry(suite.store, "e2", day(2025, 7, 31), profitExpenseID, bankAccountID, "300", nil)
	seedEntry(suite.store, "e3", day(2025, 8, 1), cashAccountID, feeIncomeID, "999", nil)

	summary, err := suite.service.SyncBeforeMonthlyClosing(suite.ctx, 2025, 7, "user-1")
	suite.Require().NoError(err)
	suite.Equal(2025, summary.Year)
	suite.Equal(7, summary.Month)
	suite.Equal(2, summary.JournalCount)
	suite.Require().NotNil(summary.Sync)
	suite.Empty(summary.SyncError)

	// fee-1 is due 2025-07-31; fee-2 and the rental fall due in August, the profit payable too.
	suite.Equal(1, summary.ReceivablesCount)
	suite.True(dec("1200").Equal(summary.TotalReceivables))
	suite.Equal(0, summary.PayablesCount)
	suite.True(summary.TotalPayables.IsZero())
}

func (suite *SyncServiceTestSuite) TestSyncBeforeMonthlyClosing_InvalidPeriod() {
	_, err := suite.service.SyncBeforeMonthlyClosing(suite.ctx, 2025, 13, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SyncServiceTestSuite) TestSyncBeforeMonthlyClosing_LockConflictIsAdvisory() {
	locker := new(MockSyncLocker)
	locker.On("Acquire", mock.Anything, services.SyncLockKey, mock.Anything).Return(nil, apperrors.ErrConflict)
	repos := suite.store.Repositories()
	svc := services.NewSyncService(repos.ReceivableRepo, repos.PayableRepo, repos.JournalRepo, suite.sources,
		services.WithSyncLocker(locker, time.Minute))

	summary, err := svc.SyncBeforeMonthlyClosing(suite.ctx, 2025, 7, "user-1")
	suite.Require().NoError(err)
	suite.NotEmpty(summary.SyncError)
	suite.Nil(summary.Sync)
}
