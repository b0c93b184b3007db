package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID   string          `json:"account_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"account_type"`
	NetAmount   decimal.Decimal `json:"net_amount"`
}

// IncomeExpenseReport is the income statement for a year or a single month.
type IncomeExpenseReport struct {
	Year         int             `json:"year"`
	Month        *int            `json:"month,omitempty"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetIncome    decimal.Decimal `json:"net_income"`
	Income       []CategoryShare `json:"income"`
	Expense      []CategoryShare `json:"expense"`
}

// BalanceSheetReport represents a balance sheet as of a date.
type BalanceSheetReport struct {
	AsOf                   time.Time       `json:"as_of"`
	Assets                 []AccountAmount `json:"assets"`
	Liabilities            []AccountAmount `json:"liabilities"`
	Equity                 []AccountAmount `json:"equity"`
	TotalAssets            decimal.Decimal `json:"total_assets"`
	TotalLiabilities       decimal.Decimal `json:"total_liabilities"`
	TotalEquity            decimal.Decimal `json:"total_equity"`
	CurrentEarnings        decimal.Decimal `json:"current_earnings"` // income minus expense up to AsOf
	OutstandingReceivables decimal.Decimal `json:"outstanding_receivables"`
	OutstandingPayables    decimal.Decimal `json:"outstanding_payables"`
}

// CashFlowStatement lists money moving through cash-equivalent accounts.
type CashFlowStatement struct {
	Year         int             `json:"year"`
	Month        *int            `json:"month,omitempty"`
	Inflows      []AccountAmount `json:"inflows"`  // grouped by counter account
	Outflows     []AccountAmount `json:"outflows"` // grouped by counter account
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	NetCashFlow  decimal.Decimal `json:"net_cash_flow"`
}
