package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	"github.com/marmotkit/asset-mgmt-accounting/internal/models"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils/mapping"
)

type PgxJournalEntryRepository struct {
	BaseRepository
}

func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

const journalEntryColumns = `entry_id, entry_date, journal_number, reference_number, description,
		debit_account_id, credit_account_id, amount, category_id,
		created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxJournalEntryRepository) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+journalEntryColumns+` FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry %s: %w", entryID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, notFoundOr(err, "journal entry", entryID)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func (r *PgxJournalEntryRepository) ListJournalEntries(ctx context.Context, filter domain.JournalEntryFilter) ([]domain.JournalEntry, error) {
	var qb queryBuilder
	if filter.From != nil {
		qb.add("entry_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		qb.add("entry_date < $%d", *filter.To)
	}
	if filter.AccountID != "" {
		qb.add("(debit_account_id = $%[1]d OR credit_account_id = $%[1]d)", filter.AccountID)
	}
	if filter.CategoryID != "" {
		qb.add("category_id = $%d", filter.CategoryID)
	}
	if filter.Search != "" {
		qb.add("(description ILIKE $%[1]d OR journal_number ILIKE $%[1]d OR reference_number ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries` + qb.where() +
		` ORDER BY entry_date ASC, journal_number ASC` + qb.page(filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}
	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nil
}

// SaveJournalEntry inserts the entry after checking, inside the same transaction, that its
// month has not been finalized.
func (r *PgxJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := periodOpenInTx(ctx, tx, entry.EntryDate); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO journal_entries (`+journalEntryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
			m.EntryID, m.EntryDate, m.JournalNumber, m.ReferenceNumber, m.Description,
			m.DebitAccountID, m.CreditAccountID, m.Amount, m.CategoryID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: journal number %s", apperrors.ErrDuplicate, m.JournalNumber)
			}
			return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
		}
		return nil
	})
}

func (r *PgxJournalEntryRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		storedDate, err := lockEntryDate(ctx, tx, entry.EntryID)
		if err != nil {
			return err
		}
		if err := periodOpenInTx(ctx, tx, storedDate); err != nil {
			return err
		}
		if err := periodOpenInTx(ctx, tx, entry.EntryDate); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE journal_entries SET
				entry_date = $2, journal_number = $3, reference_number = $4, description = $5,
				debit_account_id = $6, credit_account_id = $7, amount = $8, category_id = $9,
				last_updated_at = $10, last_updated_by = $11
			WHERE entry_id = $1;`,
			m.EntryID, m.EntryDate, m.JournalNumber, m.ReferenceNumber, m.Description,
			m.DebitAccountID, m.CreditAccountID, m.Amount, m.CategoryID,
			m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: journal number %s", apperrors.ErrDuplicate, m.JournalNumber)
			}
			return fmt.Errorf("failed to update journal entry %s: %w", m.EntryID, err)
		}
		return nil
	})
}

func (r *PgxJournalEntryRepository) DeleteJournalEntry(ctx context.Context, entryID string) error {
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		storedDate, err := lockEntryDate(ctx, tx, entryID)
		if err != nil {
			return err
		}
		if err := periodOpenInTx(ctx, tx, storedDate); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
			return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
		}
		return nil
	})
}

// lockEntryDate returns the stored entry date, holding a row lock until the transaction ends.
func lockEntryDate(ctx context.Context, tx pgx.Tx, entryID string) (time.Time, error) {
	var stored time.Time
	err := tx.QueryRow(ctx, `SELECT entry_date FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID).Scan(&stored)
	if err != nil {
		return time.Time{}, notFoundOr(err, "journal entry", entryID)
	}
	return stored, nil
}

// periodOpenInTx takes a share lock on the month's closing row, if any, so a concurrent
// finalize waits for this write and vice versa.
func periodOpenInTx(ctx context.Context, tx pgx.Tx, date time.Time) error {
	period := domain.PeriodOf(date.UTC())
	var status string
	err := tx.QueryRow(ctx,
		`SELECT status FROM monthly_closings WHERE year = $1 AND month = $2 FOR SHARE;`,
		period.Year, period.Month,
	).Scan(&status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check closing for %s: %w", period, err)
	case domain.ClosingStatus(status) == domain.ClosingFinalized:
		return fmt.Errorf("%w: %s", apperrors.ErrPeriodLocked, period)
	}
	return nil
}
