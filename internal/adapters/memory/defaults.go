package memory

import "github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"

// DefaultAccounts is the starter chart of accounts. The same rows are seeded by the
// initial SQL migration.
func DefaultAccounts() []domain.Account {
	return []domain.Account{
		{AccountID: "00000000-0000-0000-0000-000000001101", Code: "1101", Name: "現金", AccountType: domain.Asset, IsCashEquivalent: true, IsActive: true, Description: "Cash on hand"},
		{AccountID: "00000000-0000-0000-0000-000000001102", Code: "1102", Name: "銀行存款", AccountType: domain.Asset, IsCashEquivalent: true, IsActive: true, Description: "Bank deposits"},
		{AccountID: "00000000-0000-0000-0000-000000001201", Code: "1201", Name: "應收帳款", AccountType: domain.Asset, IsActive: true, Description: "Accounts receivable"},
		{AccountID: "00000000-0000-0000-0000-000000002101", Code: "2101", Name: "應付帳款", AccountType: domain.Liability, IsActive: true, Description: "Accounts payable"},
		{AccountID: "00000000-0000-0000-0000-000000003101", Code: "3101", Name: "資本", AccountType: domain.Equity, IsActive: true, Description: "Paid-in capital"},
		{AccountID: "00000000-0000-0000-0000-000000004101", Code: "4101", Name: "會費收入", AccountType: domain.Income, IsActive: true, Description: "Membership fee income"},
		{AccountID: "00000000-0000-0000-0000-000000004102", Code: "4102", Name: "租金收入", AccountType: domain.Income, IsActive: true, Description: "Rental income"},
		{AccountID: "00000000-0000-0000-0000-000000005101", Code: "5101", Name: "分潤支出", AccountType: domain.Expense, IsActive: true, Description: "Member profit share"},
		{AccountID: "00000000-0000-0000-0000-000000005102", Code: "5102", Name: "營運費用", AccountType: domain.Expense, IsActive: true, Description: "Operating expense"},
	}
}

// DefaultCategories is the starter set of journal categories.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{CategoryID: "00000000-0000-0000-0000-00000000c001", Name: "會費", CategoryType: domain.CategoryIncome},
		{CategoryID: "00000000-0000-0000-0000-00000000c002", Name: "租金", CategoryType: domain.CategoryIncome},
		{CategoryID: "00000000-0000-0000-0000-00000000c003", Name: "其他收入", CategoryType: domain.CategoryIncome},
		{CategoryID: "00000000-0000-0000-0000-00000000c101", Name: "分潤", CategoryType: domain.CategoryExpense},
		{CategoryID: "00000000-0000-0000-0000-00000000c102", Name: "行政費用", CategoryType: domain.CategoryExpense},
		{CategoryID: "00000000-0000-0000-0000-00000000c103", Name: "其他支出", CategoryType: domain.CategoryExpense},
	}
}
