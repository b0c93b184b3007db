package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a single income/expense record posted against a debit and a credit account.
type JournalEntry struct {
	EntryID         string          `json:"entry_id"`
	EntryDate       time.Time       `json:"entry_date"`
	JournalNumber   string          `json:"journal_number"` // Unique
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	Description     string          `json:"description"`
	DebitAccountID  string          `json:"debit_account_id"`
	CreditAccountID string          `json:"credit_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryID      *string         `json:"category_id,omitempty"`
	AuditFields
}

// JournalEntryFilter narrows journal listings. To is exclusive.
type JournalEntryFilter struct {
	From       *time.Time
	To         *time.Time
	Search     string
	AccountID  string
	CategoryID string
	Limit      int
	Offset     int
}
