package accounting

import (
	"fmt"
	"sort"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UncategorizedName labels entries without a category in breakdowns.
const UncategorizedName = "Uncategorized"

var hundred = decimal.NewFromInt(100)

// SignedAmount applies the correct sign to an amount based on account type and side.
func SignedAmount(amount decimal.Decimal, isDebit bool, accountType domain.AccountType) (decimal.Decimal, error) {
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	return amount, nil
}

// IsIncome reports whether the entry credits an income account.
func IsIncome(entry domain.JournalEntry, accounts map[string]domain.Account) bool {
	acc, ok := accounts[entry.CreditAccountID]
	return ok && acc.AccountType == domain.Income
}

// IsExpense reports whether the entry debits an expense account.
func IsExpense(entry domain.JournalEntry, accounts map[string]domain.Account) bool {
	acc, ok := accounts[entry.DebitAccountID]
	return ok && acc.AccountType == domain.Expense
}

// IncomeExpenseSummary holds period totals and their category breakdown.
type IncomeExpenseSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Income       []domain.CategoryShare
	Expense      []domain.CategoryShare
}

// Net returns income minus expense.
func (s IncomeExpenseSummary) Net() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}

// SummarizeIncomeExpense sums income-type and expense-type entries and groups them by category.
func SummarizeIncomeExpense(entries []domain.JournalEntry, accounts map[string]domain.Account, categories map[string]domain.Category) IncomeExpenseSummary {
	income := make(map[string]decimal.Decimal)
	expense := make(map[string]decimal.Decimal)
	summary := IncomeExpenseSummary{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}

	for _, entry := range entries {
		key := ""
		if entry.CategoryID != nil {
			key = *entry.CategoryID
		}
		if IsIncome(entry, accounts) {
			income[key] = income[key].Add(entry.Amount)
			summary.TotalIncome = summary.TotalIncome.Add(entry.Amount)
		}
		if IsExpense(entry, accounts) {
			expense[key] = expense[key].Add(entry.Amount)
			summary.TotalExpense = summary.TotalExpense.Add(entry.Amount)
		}
	}

	summary.Income = Shares(income, categories, summary.TotalIncome)
	summary.Expense = Shares(expense, categories, summary.TotalExpense)
	return summary
}

// Shares turns per-category amounts into percentages of total, largest first.
// A zero total yields zero percent for every category.
func Shares(amounts map[string]decimal.Decimal, categories map[string]domain.Category, total decimal.Decimal) []domain.CategoryShare {
	shares := make([]domain.CategoryShare, 0, len(amounts))
	for id, amount := range amounts {
		name := UncategorizedName
		if cat, ok := categories[id]; ok {
			name = cat.Name
		} else if id != "" {
			name = id
		}
		shares = append(shares, domain.CategoryShare{
			CategoryID:   id,
			CategoryName: name,
			Amount:       amount,
			Percentage:   Percentage(amount, total),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Amount.Equal(shares[j].Amount) {
			return shares[i].Amount.GreaterThan(shares[j].Amount)
		}
		return shares[i].CategoryName < shares[j].CategoryName
	})
	return shares
}

// Rebase recomputes each share's percentage against total, keeping amounts and order.
func Rebase(shares []domain.CategoryShare, total decimal.Decimal) []domain.CategoryShare {
	out := make([]domain.CategoryShare, len(shares))
	for i, share := range shares {
		share.Percentage = Percentage(share.Amount, total)
		out[i] = share
	}
	return out
}

// Percentage returns part/total*100 rounded to two places, or zero when total is zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(total, 2)
}

// AccountBalances computes the signed balance of every account touched by the entries.
func AccountBalances(entries []domain.JournalEntry, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		debit, ok := accounts[entry.DebitAccountID]
		if !ok {
			return nil, fmt.Errorf("debit account %s of entry %s not found", entry.DebitAccountID, entry.EntryID)
		}
		credit, ok := accounts[entry.CreditAccountID]
		if !ok {
			return nil, fmt.Errorf("credit account %s of entry %s not found", entry.CreditAccountID, entry.EntryID)
		}

		d, err := SignedAmount(entry.Amount, true, debit.AccountType)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", entry.EntryID, err)
		}
		c, err := SignedAmount(entry.Amount, false, credit.AccountType)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", entry.EntryID, err)
		}
		balances[debit.AccountID] = balances[debit.AccountID].Add(d)
		balances[credit.AccountID] = balances[credit.AccountID].Add(c)
	}
	return balances, nil
}

// CashMovements splits entries touching exactly one cash-equivalent account into
// inflows and outflows keyed by the counter account. Transfers between two cash
// accounts are not movements.
func CashMovements(entries []domain.JournalEntry, accounts map[string]domain.Account) (inflows, outflows map[string]decimal.Decimal) {
	inflows = make(map[string]decimal.Decimal)
	outflows = make(map[string]decimal.Decimal)
	for _, entry := range entries {
		debitCash := accounts[entry.DebitAccountID].IsCashEquivalent
		creditCash := accounts[entry.CreditAccountID].IsCashEquivalent
		switch {
		case debitCash && !creditCash:
			inflows[entry.CreditAccountID] = inflows[entry.CreditAccountID].Add(entry.Amount)
		case creditCash && !debitCash:
			outflows[entry.DebitAccountID] = outflows[entry.DebitAccountID].Add(entry.Amount)
		}
	}
	return inflows, outflows
}
