package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// MonthlyClosing is a row of the monthly_closings table.
type MonthlyClosing struct {
	ClosingID    string          `db:"closing_id"`
	Year         int             `db:"year"`
	Month        int             `db:"month"`
	TotalIncome  decimal.Decimal `db:"total_income"`
	TotalExpense decimal.Decimal `db:"total_expense"`
	NetAmount    decimal.Decimal `db:"net_amount"`
	Status       string          `db:"status"`
	ClosingDate  sql.NullTime    `db:"closing_date"`
	Notes        string          `db:"notes"`
	AuditFields
}
