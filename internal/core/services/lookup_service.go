package services

import (
	"context"
	"fmt"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
)

type lookupService struct {
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryReader
}

// NewLookupService creates the service behind the account and category lookups.
func NewLookupService(accountRepo portsrepo.AccountReader, categoryRepo portsrepo.CategoryReader) portssvc.LookupSvc {
	return &lookupService{accountRepo: accountRepo, categoryRepo: categoryRepo}
}

func (s *lookupService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *lookupService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
