package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	"github.com/marmotkit/asset-mgmt-accounting/internal/models"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils/mapping"
)

// PgxAccountRepository serves the seeded chart of accounts and the category list.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.AccountReader  = (*PgxAccountRepository)(nil)
	_ portsrepo.CategoryReader = (*PgxAccountRepository)(nil)
)

const accountColumns = `account_id, code, name, account_type, is_cash_equivalent, is_active, description`

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	modelAccs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	accounts := make([]domain.Account, len(modelAccs))
	for i, m := range modelAccs {
		accounts[i] = mapping.ToDomainAccount(m)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1);`, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	modelAccs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	for _, m := range modelAccs {
		out[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return out, nil
}

func (r *PgxAccountRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, `SELECT category_id, name, category_type FROM categories ORDER BY category_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	modelCats, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	categories := make([]domain.Category, len(modelCats))
	for i, m := range modelCats {
		categories[i] = mapping.ToDomainCategory(m)
	}
	return categories, nil
}

func (r *PgxAccountRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	rows, err := r.Pool.Query(ctx, `SELECT category_id, name, category_type FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, notFoundOr(err, "category", categoryID)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}
