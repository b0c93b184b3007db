package dto

// PeriodReportParams are the query parameters of the income-expense and cash-flow reports.
type PeriodReportParams struct {
	Year  int  `form:"year" binding:"required,min=1900,max=9999"`
	Month *int `form:"month" binding:"omitempty,min=1,max=12"`
}

// BalanceSheetParams are the query parameters of the balance sheet report.
type BalanceSheetParams struct {
	Date string `form:"date"` // YYYY-MM-DD, defaults to today
}
