package services

import (
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/upstream"
)

// NewServiceContainer wires every service from the repositories and upstream sources.
func NewServiceContainer(authCfg AuthConfig, repos portsrepo.RepositoryProvider, sources upstream.Sources, opts ...ServiceOption) *portssvc.ServiceContainer {
	closingSvc := NewMonthlyClosingService(repos.MonthlyClosingRepo, repos.JournalRepo, repos.AccountRepo, repos.CategoryRepo, opts...)

	return &portssvc.ServiceContainer{
		Journal:        NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.CategoryRepo, closingSvc, opts...),
		Lookup:         NewLookupService(repos.AccountRepo, repos.CategoryRepo),
		Receivable:     NewReceivableService(repos.ReceivableRepo, opts...),
		Payable:        NewPayableService(repos.PayableRepo, opts...),
		Sync:           NewSyncService(repos.ReceivableRepo, repos.PayableRepo, repos.JournalRepo, sources, opts...),
		MonthlyClosing: closingSvc,
		Reporting:      NewReportingService(repos.JournalRepo, repos.AccountRepo, repos.CategoryRepo, repos.ReceivableRepo, repos.PayableRepo, opts...),
		Auth:           NewAuthService(repos.UserRepo, authCfg, opts...),
	}
}
