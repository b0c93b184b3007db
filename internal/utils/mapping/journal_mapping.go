package mapping

import (
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryDate:       d.EntryDate,
		JournalNumber:   d.JournalNumber,
		ReferenceNumber: toNullString(d.ReferenceNumber),
		Description:     d.Description,
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		Amount:          d.Amount,
		CategoryID:      toNullString(d.CategoryID),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryDate:       m.EntryDate.UTC(),
		JournalNumber:   m.JournalNumber,
		ReferenceNumber: fromNullString(m.ReferenceNumber),
		Description:     m.Description,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Amount:          m.Amount,
		CategoryID:      fromNullString(m.CategoryID),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
