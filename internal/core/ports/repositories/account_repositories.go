package repositories

import (
	"context"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// FindAccountsByIDs returns the accounts found; missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// CategoryReader defines read operations for journal categories
type CategoryReader interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
}
