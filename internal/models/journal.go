package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	EntryDate       time.Time       `db:"entry_date"`
	JournalNumber   string          `db:"journal_number"`
	ReferenceNumber sql.NullString  `db:"reference_number"`
	Description     string          `db:"description"`
	DebitAccountID  string          `db:"debit_account_id"`
	CreditAccountID string          `db:"credit_account_id"`
	Amount          decimal.Decimal `db:"amount"`
	CategoryID      sql.NullString  `db:"category_id"`
	AuditFields
}
