package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is an entry of the chart of accounts referenced by journal entries.
type Account struct {
	AccountID        string      `json:"account_id"`
	Code             string      `json:"code"`
	Name             string      `json:"name"`
	AccountType      AccountType `json:"account_type"`
	IsCashEquivalent bool        `json:"is_cash_equivalent"` // Cash, bank and similar accounts used by the cash flow statement
	IsActive         bool        `json:"is_active"`
	Description      string      `json:"description"`
}

// CategoryType classifies a category as income or expense.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category is an optional analytical tag on journal entries.
type Category struct {
	CategoryID   string       `json:"category_id"`
	Name         string       `json:"name"`
	CategoryType CategoryType `json:"category_type"`
}
