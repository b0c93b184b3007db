package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	"github.com/marmotkit/asset-mgmt-accounting/internal/models"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils/mapping"
)

type PgxMonthlyClosingRepository struct {
	BaseRepository
}

func newPgxMonthlyClosingRepository(pool *pgxpool.Pool) portsrepo.MonthlyClosingRepositoryFacade {
	return &PgxMonthlyClosingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MonthlyClosingRepositoryFacade = (*PgxMonthlyClosingRepository)(nil)

const closingColumns = `closing_id, year, month, total_income, total_expense, net_amount, status, closing_date, notes,
		created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxMonthlyClosingRepository) findOne(ctx context.Context, cond string, args ...any) (*domain.MonthlyClosing, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+closingColumns+` FROM monthly_closings WHERE `+cond+`;`, args...)
	if err != nil {
		return nil, err
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.MonthlyClosing])
	if err != nil {
		return nil, err
	}
	c := mapping.ToDomainMonthlyClosing(m)
	return &c, nil
}

func (r *PgxMonthlyClosingRepository) FindMonthlyClosingByID(ctx context.Context, closingID string) (*domain.MonthlyClosing, error) {
	c, err := r.findOne(ctx, "closing_id = $1", closingID)
	if err != nil {
		return nil, notFoundOr(err, "monthly closing", closingID)
	}
	return c, nil
}

func (r *PgxMonthlyClosingRepository) FindMonthlyClosingByPeriod(ctx context.Context, period domain.Period) (*domain.MonthlyClosing, error) {
	c, err := r.findOne(ctx, "year = $1 AND month = $2", period.Year, period.Month)
	if err != nil {
		return nil, notFoundOr(err, "monthly closing for", period.String())
	}
	return c, nil
}

func (r *PgxMonthlyClosingRepository) ListMonthlyClosings(ctx context.Context, year *int) ([]domain.MonthlyClosing, error) {
	var qb queryBuilder
	if year != nil {
		qb.add("year = $%d", *year)
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+closingColumns+` FROM monthly_closings`+qb.where()+` ORDER BY year DESC, month DESC;`, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly closings: %w", err)
	}
	modelClosings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MonthlyClosing])
	if err != nil {
		return nil, fmt.Errorf("failed to scan monthly closings: %w", err)
	}
	closings := make([]domain.MonthlyClosing, len(modelClosings))
	for i, m := range modelClosings {
		closings[i] = mapping.ToDomainMonthlyClosing(m)
	}
	return closings, nil
}

func (r *PgxMonthlyClosingRepository) SaveMonthlyClosing(ctx context.Context, closing domain.MonthlyClosing) error {
	m := mapping.ToModelMonthlyClosing(closing)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO monthly_closings (`+closingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.ClosingID, m.Year, m.Month, m.TotalIncome, m.TotalExpense, m.NetAmount, m.Status, m.ClosingDate, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: closing for %s", apperrors.ErrDuplicate, closing.Period())
		}
		return fmt.Errorf("failed to insert monthly closing %s: %w", m.ClosingID, err)
	}
	return nil
}

// UpdateMonthlyClosing writes totals, notes and status. The status guard in the WHERE clause
// makes a finalize race lose with ErrConflict instead of overwriting a finalized row.
func (r *PgxMonthlyClosingRepository) UpdateMonthlyClosing(ctx context.Context, closing domain.MonthlyClosing) error {
	m := mapping.ToModelMonthlyClosing(closing)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE monthly_closings SET
			total_income = $2, total_expense = $3, net_amount = $4, status = $5, closing_date = $6,
			notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE closing_id = $1 AND status = 'pending';`,
		m.ClosingID, m.TotalIncome, m.TotalExpense, m.NetAmount, m.Status, m.ClosingDate,
		m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update monthly closing %s: %w", m.ClosingID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, m.ClosingID)
	}
	return nil
}

func (r *PgxMonthlyClosingRepository) DeleteMonthlyClosing(ctx context.Context, closingID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM monthly_closings WHERE closing_id = $1 AND status = 'pending';`, closingID)
	if err != nil {
		return fmt.Errorf("failed to delete monthly closing %s: %w", closingID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, closingID)
	}
	return nil
}

func (r *PgxMonthlyClosingRepository) missOrConflict(ctx context.Context, closingID string) error {
	if _, err := r.FindMonthlyClosingByID(ctx, closingID); err != nil {
		return err
	}
	return fmt.Errorf("%w: closing %s is finalized", apperrors.ErrConflict, closingID)
}
