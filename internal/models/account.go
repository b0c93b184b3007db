package models

// Account is a row of the accounts table.
type Account struct {
	AccountID        string `db:"account_id"`
	Code             string `db:"code"`
	Name             string `db:"name"`
	AccountType      string `db:"account_type"`
	IsCashEquivalent bool   `db:"is_cash_equivalent"`
	IsActive         bool   `db:"is_active"`
	Description      string `db:"description"`
}

// Category is a row of the categories table.
type Category struct {
	CategoryID   string `db:"category_id"`
	Name         string `db:"name"`
	CategoryType string `db:"category_type"`
}
