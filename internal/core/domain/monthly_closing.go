package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ClosingStatus is the lifecycle state of a monthly closing.
type ClosingStatus string

const (
	ClosingPending   ClosingStatus = "pending"
	ClosingFinalized ClosingStatus = "finalized"
)

var (
	ErrClosingExists    = errors.New("monthly closing already exists for this period")
	ErrClosingNotFound  = errors.New("monthly closing not found")
	ErrClosingFinalized = errors.New("monthly closing is already finalized")
)

// MonthlyClosing is the per-month snapshot of income and expense.
type MonthlyClosing struct {
	ClosingID    string          `json:"closing_id"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	Status       ClosingStatus   `json:"status"`
	ClosingDate  *time.Time      `json:"closing_date,omitempty"`
	Notes        string          `json:"notes"`
	AuditFields
}

// NewMonthlyClosing builds a pending closing with the net amount derived from the totals.
func NewMonthlyClosing(id string, period Period, income, expense decimal.Decimal, userID string, now time.Time) MonthlyClosing {
	c := MonthlyClosing{
		ClosingID: id,
		Year:      period.Year,
		Month:     period.Month,
		Status:    ClosingPending,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	c.SetTotals(income, expense)
	return c
}

// Period returns the month the closing covers.
func (c MonthlyClosing) Period() Period {
	return Period{Year: c.Year, Month: c.Month}
}

// IsFinalized reports whether the closing reached its terminal state.
func (c MonthlyClosing) IsFinalized() bool {
	return c.Status == ClosingFinalized
}

// SetTotals replaces both totals and keeps NetAmount = TotalIncome - TotalExpense.
func (c *MonthlyClosing) SetTotals(income, expense decimal.Decimal) {
	c.TotalIncome = income
	c.TotalExpense = expense
	c.NetAmount = income.Sub(expense)
}

// Finalize moves a pending closing to finalized. There is no inverse.
func (c *MonthlyClosing) Finalize(userID string, now time.Time) error {
	if c.IsFinalized() {
		return ErrClosingFinalized
	}
	c.Status = ClosingFinalized
	closedAt := now
	c.ClosingDate = &closedAt
	c.LastUpdatedAt = now
	c.LastUpdatedBy = userID
	return nil
}

// CategoryShare is one category's amount and its share of the relevant total, in percent.
type CategoryShare struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// ClosingDetail is a closing together with its category breakdown.
// Percentages are shares of the closing's stored totals; Stale is set when the
// journal no longer sums to those totals.
type ClosingDetail struct {
	Closing           MonthlyClosing  `json:"closing"`
	IncomeByCategory  []CategoryShare `json:"income_by_category"`
	ExpenseByCategory []CategoryShare `json:"expense_by_category"`
	Stale             bool            `json:"stale"`
}
