package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/models"
)

// ledgerTable holds the queries shared by the receivables and payables tables, which
// differ only in their table, key and counterparty column names.
type ledgerTable struct {
	pool      *pgxpool.Pool
	table     string
	idCol     string
	partyID   string
	partyName string
}

func (t ledgerTable) selectColumns() string {
	return fmt.Sprintf(`%s AS id, %s AS counterparty_id, %s AS counterparty_name,
		invoice_number, amount, payment_amount, due_date, description, status,
		source_domain, source_id, created_at, created_by, last_updated_at, last_updated_by`,
		t.idCol, t.partyID, t.partyName)
}

func (t ledgerTable) findOne(ctx context.Context, cond string, args ...any) (models.LedgerRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s;`, t.selectColumns(), t.table, cond)
	rows, err := t.pool.Query(ctx, query, args...)
	if err != nil {
		return models.LedgerRecord{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LedgerRecord])
}

func (t ledgerTable) list(ctx context.Context, filter domain.LedgerFilter) ([]models.LedgerRecord, error) {
	var qb queryBuilder
	if filter.Amount != nil {
		qb.add("amount = $%d", *filter.Amount)
	}
	if filter.UnlinkedOnly {
		qb.addRaw("source_id IS NULL")
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		qb.add("status = ANY($%d)", statuses)
	}
	if filter.DueFrom != nil {
		qb.add("due_date >= $%d", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		qb.add("due_date < $%d", *filter.DueTo)
	}
	if filter.Search != "" {
		qb.add("("+t.partyName+" ILIKE $%[1]d OR invoice_number ILIKE $%[1]d OR description ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	query := fmt.Sprintf(`SELECT %s FROM %s`, t.selectColumns(), t.table) + qb.where() +
		` ORDER BY due_date ASC, invoice_number ASC` + qb.page(filter.Limit, filter.Offset)

	rows, err := t.pool.Query(ctx, query, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.table, err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerRecord])
}

func (t ledgerTable) insert(ctx context.Context, m models.LedgerRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, invoice_number, amount, payment_amount, due_date, description, status,
			source_domain, source_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
		t.table, t.idCol, t.partyID, t.partyName)
	_, err := t.pool.Exec(ctx, query,
		m.ID, m.CounterpartyID, m.CounterpartyName, m.InvoiceNumber, m.Amount, m.PaymentAmount,
		m.DueDate, m.Description, m.Status, m.SourceDomain, m.SourceID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s record %s", apperrors.ErrDuplicate, strings.TrimSuffix(t.table, "s"), m.ID)
		}
		return fmt.Errorf("failed to insert into %s: %w", t.table, err)
	}
	return nil
}

// update leaves the source link and creation audit columns untouched.
func (t ledgerTable) update(ctx context.Context, m models.LedgerRecord) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, invoice_number = $4, amount = $5, payment_amount = $6,
			due_date = $7, description = $8, status = $9, last_updated_at = $10, last_updated_by = $11
		WHERE %s = $1;`,
		t.table, t.partyID, t.partyName, t.idCol)
	tag, err := t.pool.Exec(ctx, query,
		m.ID, m.CounterpartyID, m.CounterpartyName, m.InvoiceNumber, m.Amount, m.PaymentAmount,
		m.DueDate, m.Description, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", t.table, m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, t.table, m.ID)
	}
	return nil
}

func (t ledgerTable) delete(ctx context.Context, id string) error {
	tag, err := t.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1;`, t.table, t.idCol), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, t.table, id)
	}
	return nil
}
