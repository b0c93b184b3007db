package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerStatus is the settlement state shared by receivables and payables.
type LedgerStatus string

const (
	StatusPending       LedgerStatus = "pending"
	StatusPartiallyPaid LedgerStatus = "partially_paid"
	StatusPaid          LedgerStatus = "paid"
	StatusOverdue       LedgerStatus = "overdue"
)

// IsValid reports whether s is one of the known statuses.
func (s LedgerStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPartiallyPaid, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// DeriveLedgerStatus computes the status from the amount due and the amount paid so far.
// It never yields StatusOverdue; only the overdue sweep sets that.
func DeriveLedgerStatus(amount, paid decimal.Decimal) LedgerStatus {
	switch {
	case paid.GreaterThanOrEqual(amount) && amount.IsPositive():
		return StatusPaid
	case paid.IsPositive():
		return StatusPartiallyPaid
	default:
		return StatusPending
	}
}

// SourceDomain names the upstream business module a ledger record was synchronized from.
type SourceDomain string

const (
	SourceFee          SourceDomain = "fee"
	SourceRental       SourceDomain = "rental"
	SourceMemberProfit SourceDomain = "member_profit"
)

// SourceLink ties a ledger record to exactly one upstream record.
type SourceLink struct {
	Domain SourceDomain `json:"domain"`
	ID     string       `json:"id"`
}

// Receivable is an amount owed to the organization.
type Receivable struct {
	ReceivableID  string          `json:"receivable_id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	DueDate       time.Time       `json:"due_date"`
	Description   string          `json:"description"`
	Status        LedgerStatus    `json:"status"`
	Source        *SourceLink     `json:"source,omitempty"`
	AuditFields
}

// Outstanding returns the unpaid remainder, never negative.
func (r Receivable) Outstanding() decimal.Decimal {
	return outstanding(r.Amount, r.PaymentAmount)
}

// Payable is an amount the organization owes to a supplier or member.
type Payable struct {
	PayableID     string          `json:"payable_id"`
	SupplierID    string          `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	DueDate       time.Time       `json:"due_date"`
	Description   string          `json:"description"`
	Status        LedgerStatus    `json:"status"`
	Source        *SourceLink     `json:"source,omitempty"`
	AuditFields
}

// Outstanding returns the unpaid remainder, never negative.
func (p Payable) Outstanding() decimal.Decimal {
	return outstanding(p.Amount, p.PaymentAmount)
}

func outstanding(amount, paid decimal.Decimal) decimal.Decimal {
	rest := amount.Sub(paid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// LedgerFilter narrows receivable/payable listings.
type LedgerFilter struct {
	Search       string // free text over counterparty, invoice number and description
	Statuses     []LedgerStatus
	Amount       *decimal.Decimal // exact amount due
	UnlinkedOnly bool             // only records without a source link
	DueFrom      *time.Time
	DueTo        *time.Time // exclusive
	Limit        int
	Offset       int
}
