// Package memory is an in-process implementation of every repository port. It backs
// STORAGE_DRIVER=memory and the service tests, and enforces the same uniqueness and
// period-lock rules as the PostgreSQL schema.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store keeps all records in maps guarded by one RWMutex.
type Store struct {
	mu          sync.RWMutex
	accounts    map[string]domain.Account
	categories  map[string]domain.Category
	entries     map[string]domain.JournalEntry
	receivables map[string]domain.Receivable
	payables    map[string]domain.Payable
	closings    map[string]domain.MonthlyClosing
	users       map[string]domain.User
}

// NewStore returns a store seeded with the default accounts and categories.
func NewStore() *Store {
	s := &Store{
		accounts:    make(map[string]domain.Account),
		categories:  make(map[string]domain.Category),
		entries:     make(map[string]domain.JournalEntry),
		receivables: make(map[string]domain.Receivable),
		payables:    make(map[string]domain.Payable),
		closings:    make(map[string]domain.MonthlyClosing),
		users:       make(map[string]domain.User),
	}
	for _, a := range DefaultAccounts() {
		s.accounts[a.AccountID] = a
	}
	for _, c := range DefaultCategories() {
		s.categories[c.CategoryID] = c
	}
	return s
}

// Repositories exposes the store through the repository ports.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:        s,
		CategoryRepo:       s,
		JournalRepo:        s,
		ReceivableRepo:     s,
		PayableRepo:        s,
		MonthlyClosingRepo: s,
		UserRepo:           s,
	}
}

// PutAccount inserts or replaces an account.
func (s *Store) PutAccount(account domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountID] = account
}

var (
	_ portsrepo.AccountReader                  = (*Store)(nil)
	_ portsrepo.CategoryReader                 = (*Store)(nil)
	_ portsrepo.JournalEntryRepositoryFacade   = (*Store)(nil)
	_ portsrepo.ReceivableRepositoryFacade     = (*Store)(nil)
	_ portsrepo.PayableRepositoryFacade        = (*Store)(nil)
	_ portsrepo.MonthlyClosingRepositoryFacade = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade           = (*Store)(nil)
)

// --- accounts & categories ---

func (s *Store) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := s.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out, nil
}

func (s *Store) FindCategoryByID(_ context.Context, categoryID string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

// --- journal entries ---

func (s *Store) FindJournalEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (s *Store) ListJournalEntries(_ context.Context, filter domain.JournalEntryFilter) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := make([]domain.JournalEntry, 0)
	for _, e := range s.entries {
		if filter.From != nil && e.EntryDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.EntryDate.Before(*filter.To) {
			continue
		}
		if filter.AccountID != "" && e.DebitAccountID != filter.AccountID && e.CreditAccountID != filter.AccountID {
			continue
		}
		if filter.CategoryID != "" && (e.CategoryID == nil || *e.CategoryID != filter.CategoryID) {
			continue
		}
		if search != "" && !containsAny(search, e.Description, e.JournalNumber, deref(e.ReferenceNumber)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].JournalNumber < out[j].JournalNumber
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (s *Store) SaveJournalEntry(_ context.Context, entry domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.periodOpenLocked(entry.EntryDate); err != nil {
		return err
	}
	if _, ok := s.entries[entry.EntryID]; ok {
		return apperrors.ErrDuplicate
	}
	for _, e := range s.entries {
		if e.JournalNumber == entry.JournalNumber {
			return fmt.Errorf("%w: journal number %s", apperrors.ErrDuplicate, entry.JournalNumber)
		}
	}
	s.entries[entry.EntryID] = entry
	return nil
}

func (s *Store) UpdateJournalEntry(_ context.Context, entry domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[entry.EntryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := s.periodOpenLocked(existing.EntryDate); err != nil {
		return err
	}
	if err := s.periodOpenLocked(entry.EntryDate); err != nil {
		return err
	}
	for id, e := range s.entries {
		if id != entry.EntryID && e.JournalNumber == entry.JournalNumber {
			return fmt.Errorf("%w: journal number %s", apperrors.ErrDuplicate, entry.JournalNumber)
		}
	}
	s.entries[entry.EntryID] = entry
	return nil
}

func (s *Store) DeleteJournalEntry(_ context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := s.periodOpenLocked(existing.EntryDate); err != nil {
		return err
	}
	delete(s.entries, entryID)
	return nil
}

func (s *Store) periodOpenLocked(date time.Time) error {
	period := domain.PeriodOf(date)
	for _, c := range s.closings {
		if c.Period() == period && c.IsFinalized() {
			return fmt.Errorf("%w: %s", apperrors.ErrPeriodLocked, period)
		}
	}
	return nil
}

// --- receivables ---

func (s *Store) FindReceivableByID(_ context.Context, receivableID string) (*domain.Receivable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.receivables[receivableID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (s *Store) FindReceivableBySource(_ context.Context, source domain.SourceLink) (*domain.Receivable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.receivables {
		if r.Source != nil && *r.Source == source {
			return &r, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListReceivables(_ context.Context, filter domain.LedgerFilter) ([]domain.Receivable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Receivable, 0)
	for _, r := range s.receivables {
		if ledgerMatches(filter, r.CustomerName, r.InvoiceNumber, r.Description, r.Status, r.DueDate, r.Amount, r.Source != nil) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].InvoiceNumber < out[j].InvoiceNumber
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (s *Store) SaveReceivable(_ context.Context, receivable domain.Receivable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.receivables[receivable.ReceivableID]; ok {
		return apperrors.ErrDuplicate
	}
	if receivable.Source != nil {
		for _, r := range s.receivables {
			if r.Source != nil && *r.Source == *receivable.Source {
				return fmt.Errorf("%w: source %s/%s", apperrors.ErrDuplicate, receivable.Source.Domain, receivable.Source.ID)
			}
		}
	}
	s.receivables[receivable.ReceivableID] = receivable
	return nil
}

func (s *Store) UpdateReceivable(_ context.Context, receivable domain.Receivable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.receivables[receivable.ReceivableID]
	if !ok {
		return apperrors.ErrNotFound
	}
	receivable.Source = existing.Source
	receivable.CreatedAt, receivable.CreatedBy = existing.CreatedAt, existing.CreatedBy
	s.receivables[receivable.ReceivableID] = receivable
	return nil
}

func (s *Store) DeleteReceivable(_ context.Context, receivableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.receivables[receivableID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.receivables, receivableID)
	return nil
}

// --- payables ---

func (s *Store) FindPayableByID(_ context.Context, payableID string) (*domain.Payable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payables[payableID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (s *Store) FindPayableBySource(_ context.Context, source domain.SourceLink) (*domain.Payable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.payables {
		if p.Source != nil && *p.Source == source {
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListPayables(_ context.Context, filter domain.LedgerFilter) ([]domain.Payable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Payable, 0)
	for _, p := range s.payables {
		if ledgerMatches(filter, p.SupplierName, p.InvoiceNumber, p.Description, p.Status, p.DueDate, p.Amount, p.Source != nil) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].InvoiceNumber < out[j].InvoiceNumber
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (s *Store) SavePayable(_ context.Context, payable domain.Payable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payables[payable.PayableID]; ok {
		return apperrors.ErrDuplicate
	}
	if payable.Source != nil {
		for _, p := range s.payables {
			if p.Source != nil && *p.Source == *payable.Source {
				return fmt.Errorf("%w: source %s/%s", apperrors.ErrDuplicate, payable.Source.Domain, payable.Source.ID)
			}
		}
	}
	s.payables[payable.PayableID] = payable
	return nil
}

func (s *Store) UpdatePayable(_ context.Context, payable domain.Payable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.payables[payable.PayableID]
	if !ok {
		return apperrors.ErrNotFound
	}
	payable.Source = existing.Source
	payable.CreatedAt, payable.CreatedBy = existing.CreatedAt, existing.CreatedBy
	s.payables[payable.PayableID] = payable
	return nil
}

func (s *Store) DeletePayable(_ context.Context, payableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payables[payableID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.payables, payableID)
	return nil
}

// --- monthly closings ---

func (s *Store) FindMonthlyClosingByID(_ context.Context, closingID string) (*domain.MonthlyClosing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.closings[closingID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) FindMonthlyClosingByPeriod(_ context.Context, period domain.Period) (*domain.MonthlyClosing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.closings {
		if c.Period() == period {
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListMonthlyClosings(_ context.Context, year *int) ([]domain.MonthlyClosing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MonthlyClosing, 0, len(s.closings))
	for _, c := range s.closings {
		if year == nil || c.Year == *year {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

func (s *Store) SaveMonthlyClosing(_ context.Context, closing domain.MonthlyClosing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.closings {
		if c.ClosingID == closing.ClosingID || c.Period() == closing.Period() {
			return fmt.Errorf("%w: closing for %s", apperrors.ErrDuplicate, closing.Period())
		}
	}
	s.closings[closing.ClosingID] = closing
	return nil
}

func (s *Store) UpdateMonthlyClosing(_ context.Context, closing domain.MonthlyClosing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.closings[closing.ClosingID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if existing.IsFinalized() {
		return fmt.Errorf("%w: closing %s is finalized", apperrors.ErrConflict, closing.ClosingID)
	}
	closing.Year, closing.Month = existing.Year, existing.Month
	s.closings[closing.ClosingID] = closing
	return nil
}

func (s *Store) DeleteMonthlyClosing(_ context.Context, closingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.closings[closingID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if existing.IsFinalized() {
		return fmt.Errorf("%w: closing %s is finalized", apperrors.ErrConflict, closingID)
	}
	delete(s.closings, closingID)
	return nil
}

// --- users ---

func (s *Store) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserID == user.UserID || strings.EqualFold(u.Username, user.Username) {
			return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.Username)
		}
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) UpdateUserStatus(_ context.Context, userID string, active bool, updatedBy string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	u.IsActive = active
	u.LastUpdatedBy = updatedBy
	u.LastUpdatedAt = updatedAt
	s.users[userID] = u
	return nil
}

// --- helpers ---

func ledgerMatches(filter domain.LedgerFilter, counterparty, invoice, description string, status domain.LedgerStatus, due time.Time, amount decimal.Decimal, linked bool) bool {
	if filter.Amount != nil && !amount.Equal(*filter.Amount) {
		return false
	}
	if filter.UnlinkedOnly && linked {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, st := range filter.Statuses {
			if st == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.DueFrom != nil && due.Before(*filter.DueFrom) {
		return false
	}
	if filter.DueTo != nil && !due.Before(*filter.DueTo) {
		return false
	}
	if filter.Search != "" && !containsAny(strings.ToLower(filter.Search), counterparty, invoice, description) {
		return false
	}
	return true
}

func containsAny(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// paginate applies offset and limit; a non-positive limit returns everything after offset.
func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
