package accounting_test

import (
	"testing"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fixtureAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"cash":    {AccountID: "cash", Name: "Cash", AccountType: domain.Asset, IsCashEquivalent: true},
		"bank":    {AccountID: "bank", Name: "Bank", AccountType: domain.Asset, IsCashEquivalent: true},
		"ar":      {AccountID: "ar", Name: "Receivables", AccountType: domain.Asset},
		"fees":    {AccountID: "fees", Name: "Fee income", AccountType: domain.Income},
		"rent":    {AccountID: "rent", Name: "Rental income", AccountType: domain.Income},
		"repairs": {AccountID: "repairs", Name: "Repairs", AccountType: domain.Expense},
		"loan":    {AccountID: "loan", Name: "Loan", AccountType: domain.Liability},
	}
}

func TestSummarizeIncomeExpense(t *testing.T) {
	categories := map[string]domain.Category{
		"c-fee":  {CategoryID: "c-fee", Name: "會費", CategoryType: domain.CategoryIncome},
		"c-rent": {CategoryID: "c-rent", Name: "租金", CategoryType: domain.CategoryIncome},
	}
	entries := []domain.JournalEntry{
		{EntryID: "1", DebitAccountID: "cash", CreditAccountID: "fees", Amount: decimal.NewFromInt(300), CategoryID: strPtr("c-fee")},
		{EntryID: "2", DebitAccountID: "bank", CreditAccountID: "rent", Amount: decimal.NewFromInt(700), CategoryID: strPtr("c-rent")},
		{EntryID: "3", DebitAccountID: "repairs", CreditAccountID: "cash", Amount: decimal.NewFromInt(250)},
		{EntryID: "4", DebitAccountID: "bank", CreditAccountID: "cash", Amount: decimal.NewFromInt(999)},
	}

	s := accounting.SummarizeIncomeExpense(entries, fixtureAccounts(), categories)

	assert.True(t, s.TotalIncome.Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.TotalExpense.Equal(decimal.NewFromInt(250)))
	assert.True(t, s.Net().Equal(decimal.NewFromInt(750)))

	require.Len(t, s.Income, 2)
	assert.Equal(t, "租金", s.Income[0].CategoryName)
	assert.True(t, s.Income[0].Percentage.Equal(decimal.NewFromInt(70)))
	assert.True(t, s.Income[1].Percentage.Equal(decimal.NewFromInt(30)))

	require.Len(t, s.Expense, 1)
	assert.Equal(t, accounting.UncategorizedName, s.Expense[0].CategoryName)
	assert.True(t, s.Expense[0].Percentage.Equal(decimal.NewFromInt(100)))
}

func TestPercentage_ZeroTotal(t *testing.T) {
	assert.True(t, accounting.Percentage(decimal.NewFromInt(5), decimal.Zero).IsZero())

	shares := accounting.Shares(map[string]decimal.Decimal{"x": decimal.Zero}, nil, decimal.Zero)
	require.Len(t, shares, 1)
	assert.True(t, shares[0].Percentage.IsZero())
}

func TestRebase(t *testing.T) {
	shares := []domain.CategoryShare{
		{CategoryID: "a", Amount: decimal.NewFromInt(300), Percentage: decimal.NewFromInt(75)},
		{CategoryID: "b", Amount: decimal.NewFromInt(100), Percentage: decimal.NewFromInt(25)},
	}

	rebased := accounting.Rebase(shares, decimal.NewFromInt(300))
	require.Len(t, rebased, 2)
	assert.True(t, rebased[0].Percentage.Equal(decimal.NewFromInt(100)))
	assert.True(t, rebased[1].Percentage.Equal(decimal.RequireFromString("33.33")))
	// Input is left alone.
	assert.True(t, shares[0].Percentage.Equal(decimal.NewFromInt(75)))
}

func TestAccountBalances(t *testing.T) {
	entries := []domain.JournalEntry{
		{EntryID: "1", DebitAccountID: "cash", CreditAccountID: "loan", Amount: decimal.NewFromInt(1000)},
		{EntryID: "2", DebitAccountID: "repairs", CreditAccountID: "cash", Amount: decimal.NewFromInt(200)},
	}

	balances, err := accounting.AccountBalances(entries, fixtureAccounts())
	require.NoError(t, err)
	assert.True(t, balances["cash"].Equal(decimal.NewFromInt(800)))
	assert.True(t, balances["loan"].Equal(decimal.NewFromInt(1000)))
	assert.True(t, balances["repairs"].Equal(decimal.NewFromInt(200)))

	_, err = accounting.AccountBalances([]domain.JournalEntry{{EntryID: "x", DebitAccountID: "missing", CreditAccountID: "cash"}}, fixtureAccounts())
	assert.Error(t, err)
}

func TestCashMovements(t *testing.T) {
	entries := []domain.JournalEntry{
		{DebitAccountID: "cash", CreditAccountID: "fees", Amount: decimal.NewFromInt(300)},
		{DebitAccountID: "repairs", CreditAccountID: "bank", Amount: decimal.NewFromInt(120)},
		{DebitAccountID: "bank", CreditAccountID: "cash", Amount: decimal.NewFromInt(50)},
		{DebitAccountID: "ar", CreditAccountID: "rent", Amount: decimal.NewFromInt(700)},
	}

	in, out := accounting.CashMovements(entries, fixtureAccounts())
	assert.Len(t, in, 1)
	assert.True(t, in["fees"].Equal(decimal.NewFromInt(300)))
	assert.Len(t, out, 1)
	assert.True(t, out["repairs"].Equal(decimal.NewFromInt(120)))
}
