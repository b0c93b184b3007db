package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalEntryRepository(dbPool)
	closingRepo := newPgxMonthlyClosingRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		CategoryRepo:       accountRepo,
		JournalRepo:        journalRepo,
		ReceivableRepo:     newPgxReceivableRepository(dbPool),
		PayableRepo:        newPgxPayableRepository(dbPool),
		MonthlyClosingRepo: closingRepo,
		UserRepo:           userRepo,
	}
}
