package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound     = fmt.Errorf("%w: account not found", apperrors.ErrValidation)
	ErrAccountInactive     = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrCategoryNotFound    = fmt.Errorf("%w: category not found", apperrors.ErrValidation)
	ErrSameAccount         = fmt.Errorf("%w: debit and credit account must differ", apperrors.ErrValidation)
	ErrAmountNotPositive   = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	ErrDescriptionMissing  = fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	ErrEntryDateMissing    = fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	ErrJournalNumberInUse  = fmt.Errorf("%w: journal number already in use", apperrors.ErrDuplicate)
	ErrMonthWithoutYear    = fmt.Errorf("%w: month filter requires year", apperrors.ErrValidation)
	errJournalEntryMissing = fmt.Errorf("%w: journal entry not found", apperrors.ErrNotFound)
)

// journalService provides journal entry operations.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalEntryRepositoryFacade
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryReader
	periodGuard  portssvc.PeriodGuard
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalEntryRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	periodGuard portssvc.PeriodGuard,
	opts ...ServiceOption,
) portssvc.JournalSvcFacade {
	o := applyOptions(opts)
	return &journalService{
		BaseService:  BaseService{now: o.now},
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		periodGuard:  periodGuard,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry validates and persists a new entry.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	now := s.Now()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryDate:       truncateToDate(req.EntryDate.Time),
		JournalNumber:   strings.TrimSpace(req.JournalNumber),
		ReferenceNumber: trimmedOrNil(req.ReferenceNumber),
		Description:     strings.TrimSpace(req.Description),
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          req.Amount,
		CategoryID:      trimmedOrNil(req.CategoryID),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if entry.JournalNumber == "" {
		entry.JournalNumber = newJournalNumber(entry.EntryDate)
	}

	if err := s.validateEntry(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.periodGuard.EnsurePeriodOpen(ctx, entry.EntryDate); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrJournalNumberInUse, entry.JournalNumber)
		}
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("journal_number", entry.JournalNumber))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("journal_number", entry.JournalNumber))
	return &entry, nil
}

// GetJournalEntry retrieves one entry.
func (s *journalService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errJournalEntryMissing
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListJournalEntries lists entries for the optional year/month window.
func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	filter := domain.JournalEntryFilter{
		Search:     strings.TrimSpace(params.Search),
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	if params.Month != nil && params.Year == nil {
		return nil, ErrMonthWithoutYear
	}
	if params.Year != nil {
		window, err := domain.ReportRange(*params.Year, params.Month)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.From = &window.From
		filter.To = &window.To
	}

	entries, err := s.journalRepo.ListJournalEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return &dto.ListJournalEntriesResponse{Entries: entries, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// UpdateJournalEntry applies the non-nil request fields. Both the stored and the new
// entry date must lie in open periods.
func (s *journalService) UpdateJournalEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	existing, err := s.GetJournalEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.periodGuard.EnsurePeriodOpen(ctx, existing.EntryDate); err != nil {
		return nil, err
	}

	updated := *existing
	if req.EntryDate != nil {
		updated.EntryDate = truncateToDate(req.EntryDate.Time)
	}
	if req.ReferenceNumber != nil {
		updated.ReferenceNumber = trimmedOrNil(req.ReferenceNumber)
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.DebitAccountID != nil {
		updated.DebitAccountID = *req.DebitAccountID
	}
	if req.CreditAccountID != nil {
		updated.CreditAccountID = *req.CreditAccountID
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		updated.CategoryID = trimmedOrNil(req.CategoryID)
	}
	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = userID

	if err := s.validateEntry(ctx, updated); err != nil {
		return nil, err
	}
	if !updated.EntryDate.Equal(existing.EntryDate) {
		if err := s.periodGuard.EnsurePeriodOpen(ctx, updated.EntryDate); err != nil {
			return nil, err
		}
	}

	if err := s.journalRepo.UpdateJournalEntry(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errJournalEntryMissing
		}
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	return &updated, nil
}

// DeleteJournalEntry removes an entry from an open period.
func (s *journalService) DeleteJournalEntry(ctx context.Context, entryID string, userID string) error {
	existing, err := s.GetJournalEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if err := s.periodGuard.EnsurePeriodOpen(ctx, existing.EntryDate); err != nil {
		return err
	}
	if err := s.journalRepo.DeleteJournalEntry(ctx, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errJournalEntryMissing
		}
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", userID))
	return nil
}

func (s *journalService) validateEntry(ctx context.Context, entry domain.JournalEntry) error {
	if entry.EntryDate.IsZero() {
		return ErrEntryDateMissing
	}
	if entry.Description == "" {
		return ErrDescriptionMissing
	}
	if !entry.Amount.GreaterThan(decimal.Zero) {
		return ErrAmountNotPositive
	}
	if entry.DebitAccountID == entry.CreditAccountID {
		return ErrSameAccount
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{entry.DebitAccountID, entry.CreditAccountID})
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range []string{entry.DebitAccountID, entry.CreditAccountID} {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s", ErrAccountInactive, id)
		}
	}

	if entry.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *entry.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrCategoryNotFound, *entry.CategoryID)
			}
			return fmt.Errorf("failed to fetch category: %w", err)
		}
	}
	return nil
}

// newJournalNumber yields e.g. JE-20250715-3F9A12BC.
func newJournalNumber(date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("JE-%s-%s", date.Format("20060102"), suffix)
}

func truncateToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
