package dto

import (
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalEntryRequest is the body for POST /accounting/journal.
// JournalNumber is generated when empty.
type CreateJournalEntryRequest struct {
	EntryDate       Date            `json:"entry_date"`
	JournalNumber   string          `json:"journal_number" binding:"omitempty,max=64"`
	ReferenceNumber *string         `json:"reference_number" binding:"omitempty,max=64"`
	Description     string          `json:"description" binding:"required"`
	DebitAccountID  string          `json:"debit_account_id" binding:"required"`
	CreditAccountID string          `json:"credit_account_id" binding:"required,nefield=DebitAccountID"`
	Amount          decimal.Decimal `json:"amount" binding:"dpos"`
	CategoryID      *string         `json:"category_id"`
}

// UpdateJournalEntryRequest is the body for PUT /accounting/journal/:id. Nil fields stay unchanged.
type UpdateJournalEntryRequest struct {
	EntryDate       *Date            `json:"entry_date"`
	ReferenceNumber *string          `json:"reference_number" binding:"omitempty,max=64"`
	Description     *string          `json:"description" binding:"omitempty,min=1"`
	DebitAccountID  *string          `json:"debit_account_id" binding:"omitempty,min=1"`
	CreditAccountID *string          `json:"credit_account_id" binding:"omitempty,min=1"`
	Amount          *decimal.Decimal `json:"amount" binding:"omitempty,dpos"`
	CategoryID      *string          `json:"category_id"`
}

// ListJournalEntriesParams are the query parameters of GET /accounting/journal.
type ListJournalEntriesParams struct {
	Year       *int   `form:"year" binding:"omitempty,min=1900,max=9999"`
	Month      *int   `form:"month" binding:"omitempty,min=1,max=12"`
	Search     string `form:"search"`
	AccountID  string `form:"account_id"`
	CategoryID string `form:"category_id"`
	Limit      int    `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	Offset     int    `form:"offset" binding:"omitempty,min=0"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries []domain.JournalEntry `json:"entries"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}
