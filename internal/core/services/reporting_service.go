package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var unsettled = []domain.LedgerStatus{domain.StatusPending, domain.StatusPartiallyPaid, domain.StatusOverdue}

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	journalRepo    portsrepo.JournalEntryReader
	accountRepo    portsrepo.AccountReader
	categoryRepo   portsrepo.CategoryReader
	receivableRepo portsrepo.ReceivableReader
	payableRepo    portsrepo.PayableReader
}

// NewReportingService creates a new reporting service
func NewReportingService(
	journalRepo portsrepo.JournalEntryReader,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	receivableRepo portsrepo.ReceivableReader,
	payableRepo portsrepo.PayableReader,
	opts ...ServiceOption,
) portssvc.ReportingService {
	o := applyOptions(opts)
	return &reportingService{
		BaseService:    BaseService{now: o.now},
		journalRepo:    journalRepo,
		accountRepo:    accountRepo,
		categoryRepo:   categoryRepo,
		receivableRepo: receivableRepo,
		payableRepo:    payableRepo,
	}
}

// GetIncomeExpenseReport implements ReportingService.GetIncomeExpenseReport
func (s *reportingService) GetIncomeExpenseReport(ctx context.Context, year int, month *int) (*domain.IncomeExpenseReport, error) {
	window, err := domain.ReportRange(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	summary, err := summarizeRange(ctx, s.journalRepo, s.accountRepo, s.categoryRepo, window.From, window.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to build income expense report")
		return nil, err
	}

	return &domain.IncomeExpenseReport{
		Year:         year,
		Month:        month,
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		NetIncome:    summary.Net(),
		Income:       summary.Income,
		Expense:      summary.Expense,
	}, nil
}

// GetBalanceSheet implements ReportingService.GetBalanceSheet.
// TotalAssets = TotalLiabilities + TotalEquity + CurrentEarnings for a consistent ledger.
func (s *reportingService) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	asOf = truncateToDate(asOf)
	to := asOf.AddDate(0, 0, 1)

	var (
		entries     []domain.JournalEntry
		accounts    []domain.Account
		receivables []domain.Receivable
		payables    []domain.Payable
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entries, err = s.journalRepo.ListJournalEntries(gctx, domain.JournalEntryFilter{To: &to})
		return err
	})
	g.Go(func() (err error) {
		accounts, err = s.accountRepo.ListAccounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		receivables, err = s.receivableRepo.ListReceivables(gctx, domain.LedgerFilter{Statuses: unsettled})
		return err
	})
	g.Go(func() (err error) {
		payables, err = s.payableRepo.ListPayables(gctx, domain.LedgerFilter{Statuses: unsettled})
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load balance sheet data")
		return nil, fmt.Errorf("failed to load balance sheet data: %w", err)
	}

	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}
	balances, err := accounting.AccountBalances(entries, byID)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:                   asOf,
		Assets:                 []domain.AccountAmount{},
		Liabilities:            []domain.AccountAmount{},
		Equity:                 []domain.AccountAmount{},
		TotalAssets:            decimal.Zero,
		TotalLiabilities:       decimal.Zero,
		TotalEquity:            decimal.Zero,
		CurrentEarnings:        decimal.Zero,
		OutstandingReceivables: decimal.Zero,
		OutstandingPayables:    decimal.Zero,
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	for _, acc := range accounts {
		balance := balances[acc.AccountID]
		line := domain.AccountAmount{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			NetAmount:   balance,
		}
		switch acc.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(balance)
		case domain.Equity:
			report.Equity = append(report.Equity, line)
			report.TotalEquity = report.TotalEquity.Add(balance)
		case domain.Income:
			report.CurrentEarnings = report.CurrentEarnings.Add(balance)
		case domain.Expense:
			report.CurrentEarnings = report.CurrentEarnings.Sub(balance)
		}
	}

	for _, r := range receivables {
		if existedBefore(r.AuditFields, to) {
			report.OutstandingReceivables = report.OutstandingReceivables.Add(r.Outstanding())
		}
	}
	for _, p := range payables {
		if existedBefore(p.AuditFields, to) {
			report.OutstandingPayables = report.OutstandingPayables.Add(p.Outstanding())
		}
	}
	return report, nil
}

// existedBefore reports whether a ledger record was created before cutoff.
// Records without a creation time (imported rows) always count.
func existedBefore(audit domain.AuditFields, cutoff time.Time) bool {
	return audit.CreatedAt.IsZero() || audit.CreatedAt.Before(cutoff)
}

// GetCashFlowStatement implements ReportingService.GetCashFlowStatement
func (s *reportingService) GetCashFlowStatement(ctx context.Context, year int, month *int) (*domain.CashFlowStatement, error) {
	window, err := domain.ReportRange(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	entries, err := s.journalRepo.ListJournalEntries(ctx, domain.JournalEntryFilter{From: &window.From, To: &window.To})
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries for cash flow")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}

	inflows, outflows := accounting.CashMovements(entries, byID)
	statement := &domain.CashFlowStatement{
		Year:     year,
		Month:    month,
		Inflows:  accountAmounts(inflows, byID),
		Outflows: accountAmounts(outflows, byID),
	}
	statement.TotalInflow = sumAmounts(statement.Inflows)
	statement.TotalOutflow = sumAmounts(statement.Outflows)
	statement.NetCashFlow = statement.TotalInflow.Sub(statement.TotalOutflow)
	return statement, nil
}

func accountAmounts(amounts map[string]decimal.Decimal, accounts map[string]domain.Account) []domain.AccountAmount {
	lines := make([]domain.AccountAmount, 0, len(amounts))
	for id, amount := range amounts {
		acc := accounts[id]
		lines = append(lines, domain.AccountAmount{
			AccountID:   id,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			NetAmount:   amount,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].NetAmount.Equal(lines[j].NetAmount) {
			return lines[i].NetAmount.GreaterThan(lines[j].NetAmount)
		}
		return lines[i].Code < lines[j].Code
	})
	return lines
}

func sumAmounts(lines []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.NetAmount)
	}
	return total
}
