package repositories

import (
	"context"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries
type JournalEntryReader interface {
	// FindJournalEntryByID retrieves a journal entry by its ID.
	FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves entries matching the filter ordered by entry date.
	ListJournalEntries(ctx context.Context, filter domain.JournalEntryFilter) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries.
// Writers return apperrors.ErrPeriodLocked when the stored or the new entry date lies in a
// finalized month and apperrors.ErrDuplicate when the journal number is taken.
type JournalEntryWriter interface {
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error
	UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error
	DeleteJournalEntry(ctx context.Context, entryID string) error
}

// JournalEntryRepositoryFacade combines all journal entry operations
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
