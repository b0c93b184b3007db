package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
)

const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TxRunner = (*BaseRepository)(nil)

// WithinTx commits when fn succeeds. A failed fn or commit leaves the
// transaction rolled back.
func (r *BaseRepository) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Default().WarnContext(ctx, "transaction rollback failed", "error", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// notFoundOr maps pgx.ErrNoRows to apperrors.ErrNotFound and wraps anything else.
func notFoundOr(err error, what, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, what, id)
	}
	return fmt.Errorf("failed to find %s %s: %w", what, id, err)
}

// queryBuilder accumulates WHERE clauses with positional arguments.
type queryBuilder struct {
	conds []string
	args  []any
}

func (b *queryBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(cond, len(b.args)))
}

// addRaw appends a condition that takes no argument.
func (b *queryBuilder) addRaw(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *queryBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	out := " WHERE " + b.conds[0]
	for _, c := range b.conds[1:] {
		out += " AND " + c
	}
	return out
}

// page appends LIMIT/OFFSET; a non-positive limit means no limit.
func (b *queryBuilder) page(limit, offset int) string {
	out := ""
	if limit > 0 {
		b.args = append(b.args, limit)
		out += fmt.Sprintf(" LIMIT $%d", len(b.args))
	}
	if offset > 0 {
		b.args = append(b.args, offset)
		out += fmt.Sprintf(" OFFSET $%d", len(b.args))
	}
	return out
}
