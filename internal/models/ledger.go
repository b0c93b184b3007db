package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRecord is a row of the receivables or payables table. Both tables share the
// layout; CounterpartyID/Name map to customer_* or supplier_* columns.
type LedgerRecord struct {
	ID               string          `db:"id"`
	CounterpartyID   string          `db:"counterparty_id"`
	CounterpartyName string          `db:"counterparty_name"`
	InvoiceNumber    string          `db:"invoice_number"`
	Amount           decimal.Decimal `db:"amount"`
	PaymentAmount    decimal.Decimal `db:"payment_amount"`
	DueDate          time.Time       `db:"due_date"`
	Description      string          `db:"description"`
	Status           string          `db:"status"`
	SourceDomain     sql.NullString  `db:"source_domain"`
	SourceID         sql.NullString  `db:"source_id"`
	AuditFields
}
