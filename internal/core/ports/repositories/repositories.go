package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo        AccountReader
	CategoryRepo       CategoryReader
	JournalRepo        JournalEntryRepositoryFacade
	ReceivableRepo     ReceivableRepositoryFacade
	PayableRepo        PayableRepositoryFacade
	MonthlyClosingRepo MonthlyClosingRepositoryFacade
	UserRepo           UserRepositoryFacade
}
