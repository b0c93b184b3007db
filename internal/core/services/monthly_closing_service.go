package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils/accounting"
)

var (
	ErrClosingExists    = fmt.Errorf("%w: %w", apperrors.ErrDuplicate, domain.ErrClosingExists)
	ErrClosingNotFound  = fmt.Errorf("%w: %w", apperrors.ErrNotFound, domain.ErrClosingNotFound)
	ErrClosingFinalized = fmt.Errorf("%w: %w", apperrors.ErrConflict, domain.ErrClosingFinalized)
)

type monthlyClosingService struct {
	BaseService
	closingRepo  portsrepo.MonthlyClosingRepositoryFacade
	journalRepo  portsrepo.JournalEntryReader
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryReader
}

// NewMonthlyClosingService creates a new MonthlyClosingService. It also serves as the
// PeriodGuard of the journal service.
func NewMonthlyClosingService(
	closingRepo portsrepo.MonthlyClosingRepositoryFacade,
	journalRepo portsrepo.JournalEntryReader,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	opts ...ServiceOption,
) portssvc.MonthlyClosingSvcFacade {
	o := applyOptions(opts)
	return &monthlyClosingService{
		BaseService:  BaseService{now: o.now},
		closingRepo:  closingRepo,
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.MonthlyClosingSvcFacade = (*monthlyClosingService)(nil)

// CreateMonthlyClosing snapshots the month's income and expense as a pending closing.
func (s *monthlyClosingService) CreateMonthlyClosing(ctx context.Context, year, month int, notes string, userID string) (*domain.MonthlyClosing, error) {
	period, err := domain.NewPeriod(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	_, err = s.closingRepo.FindMonthlyClosingByPeriod(ctx, period)
	if err == nil {
		return nil, ErrClosingExists
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing closing: %w", err)
	}

	summary, err := s.summarize(ctx, period)
	if err != nil {
		return nil, err
	}

	closing := domain.NewMonthlyClosing(uuid.NewString(), period, summary.TotalIncome, summary.TotalExpense, userID, s.Now())
	closing.Notes = notes
	if err := s.closingRepo.SaveMonthlyClosing(ctx, closing); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrClosingExists
		}
		s.LogError(ctx, err, "Failed to save monthly closing", slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to save monthly closing: %w", err)
	}

	s.LogInfo(ctx, "Monthly closing created",
		slog.String("closing_id", closing.ClosingID),
		slog.String("period", period.String()),
		slog.String("net_amount", closing.NetAmount.String()))
	return &closing, nil
}

// FinalizeMonthlyClosing locks the period. It cannot be undone.
func (s *monthlyClosingService) FinalizeMonthlyClosing(ctx context.Context, closingID string, userID string) (*domain.MonthlyClosing, error) {
	closing, err := s.findClosing(ctx, closingID)
	if err != nil {
		return nil, err
	}
	if err := closing.Finalize(userID, s.Now()); err != nil {
		return nil, ErrClosingFinalized
	}
	if err := s.closingRepo.UpdateMonthlyClosing(ctx, *closing); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrClosingFinalized
		}
		return nil, fmt.Errorf("failed to finalize monthly closing: %w", err)
	}

	s.LogInfo(ctx, "Monthly closing finalized",
		slog.String("closing_id", closingID),
		slog.String("period", closing.Period().String()),
		slog.String("finalized_by", userID))
	return closing, nil
}

// GetMonthlyClosing returns the closing with its income and expense category breakdown.
func (s *monthlyClosingService) GetMonthlyClosing(ctx context.Context, closingID string) (*domain.ClosingDetail, error) {
	closing, err := s.findClosing(ctx, closingID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(ctx, closing.Period())
	if err != nil {
		return nil, err
	}
	stale := !summary.TotalIncome.Equal(closing.TotalIncome) || !summary.TotalExpense.Equal(closing.TotalExpense)
	return &domain.ClosingDetail{
		Closing:           *closing,
		IncomeByCategory:  accounting.Rebase(summary.Income, closing.TotalIncome),
		ExpenseByCategory: accounting.Rebase(summary.Expense, closing.TotalExpense),
		Stale:             stale,
	}, nil
}

func (s *monthlyClosingService) ListMonthlyClosings(ctx context.Context, year *int) ([]domain.MonthlyClosing, error) {
	closings, err := s.closingRepo.ListMonthlyClosings(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly closings: %w", err)
	}
	return closings, nil
}

// UpdateMonthlyClosing edits the notes of a pending closing and optionally recomputes its totals.
func (s *monthlyClosingService) UpdateMonthlyClosing(ctx context.Context, closingID string, req dto.UpdateMonthlyClosingRequest, userID string) (*domain.MonthlyClosing, error) {
	closing, err := s.findClosing(ctx, closingID)
	if err != nil {
		return nil, err
	}
	if closing.IsFinalized() {
		return nil, ErrClosingFinalized
	}

	if req.Notes != nil {
		closing.Notes = *req.Notes
	}
	if req.Recalculate {
		summary, err := s.summarize(ctx, closing.Period())
		if err != nil {
			return nil, err
		}
		closing.SetTotals(summary.TotalIncome, summary.TotalExpense)
	}
	closing.LastUpdatedAt = s.Now()
	closing.LastUpdatedBy = userID

	if err := s.closingRepo.UpdateMonthlyClosing(ctx, *closing); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrClosingFinalized
		}
		return nil, fmt.Errorf("failed to update monthly closing: %w", err)
	}
	return closing, nil
}

// DeleteMonthlyClosing removes a pending closing.
func (s *monthlyClosingService) DeleteMonthlyClosing(ctx context.Context, closingID string, userID string) error {
	closing, err := s.findClosing(ctx, closingID)
	if err != nil {
		return err
	}
	if closing.IsFinalized() {
		return ErrClosingFinalized
	}
	if err := s.closingRepo.DeleteMonthlyClosing(ctx, closingID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			return ErrClosingFinalized
		case errors.Is(err, apperrors.ErrNotFound):
			return ErrClosingNotFound
		}
		return fmt.Errorf("failed to delete monthly closing: %w", err)
	}
	s.LogInfo(ctx, "Monthly closing deleted", slog.String("closing_id", closingID), slog.String("deleted_by", userID))
	return nil
}

// EnsurePeriodOpen rejects dates inside a finalized month.
func (s *monthlyClosingService) EnsurePeriodOpen(ctx context.Context, date time.Time) error {
	period := domain.PeriodOf(date)
	closing, err := s.closingRepo.FindMonthlyClosingByPeriod(ctx, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check period %s: %w", period, err)
	}
	if closing.IsFinalized() {
		return fmt.Errorf("%w: %s", apperrors.ErrPeriodLocked, period)
	}
	return nil
}

func (s *monthlyClosingService) findClosing(ctx context.Context, closingID string) (*domain.MonthlyClosing, error) {
	closing, err := s.closingRepo.FindMonthlyClosingByID(ctx, closingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrClosingNotFound
		}
		return nil, fmt.Errorf("failed to find monthly closing %s: %w", closingID, err)
	}
	return closing, nil
}

// summarize computes the period's income/expense totals from the journal.
func (s *monthlyClosingService) summarize(ctx context.Context, period domain.Period) (accounting.IncomeExpenseSummary, error) {
	return summarizeRange(ctx, s.journalRepo, s.accountRepo, s.categoryRepo, period.Start(), period.End())
}

// summarizeRange is shared with the reporting service.
func summarizeRange(
	ctx context.Context,
	journalRepo portsrepo.JournalEntryReader,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	from, to time.Time,
) (accounting.IncomeExpenseSummary, error) {
	entries, err := journalRepo.ListJournalEntries(ctx, domain.JournalEntryFilter{From: &from, To: &to})
	if err != nil {
		return accounting.IncomeExpenseSummary{}, fmt.Errorf("failed to list journal entries: %w", err)
	}
	accounts, err := accountsForEntries(ctx, accountRepo, entries)
	if err != nil {
		return accounting.IncomeExpenseSummary{}, err
	}
	categories, err := categoryMap(ctx, categoryRepo)
	if err != nil {
		return accounting.IncomeExpenseSummary{}, err
	}
	return accounting.SummarizeIncomeExpense(entries, accounts, categories), nil
}

func accountsForEntries(ctx context.Context, accountRepo portsrepo.AccountReader, entries []domain.JournalEntry) (map[string]domain.Account, error) {
	if len(entries) == 0 {
		return map[string]domain.Account{}, nil
	}
	seen := make(map[string]struct{}, len(entries)*2)
	ids := make([]string, 0, len(entries)*2)
	for _, e := range entries {
		for _, id := range []string{e.DebitAccountID, e.CreditAccountID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	accounts, err := accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

func categoryMap(ctx context.Context, categoryRepo portsrepo.CategoryReader) (map[string]domain.Category, error) {
	categories, err := categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.CategoryID] = c
	}
	return byID, nil
}
