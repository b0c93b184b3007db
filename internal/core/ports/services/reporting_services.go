package services

import (
	"context"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
)

// ReportingService defines the interface for generating financial reports
type ReportingService interface {
	// GetIncomeExpenseReport summarizes income and expense for a year, or one month of it.
	GetIncomeExpenseReport(ctx context.Context, year int, month *int) (*domain.IncomeExpenseReport, error)

	// GetBalanceSheet generates a balance sheet as of a given date (inclusive).
	GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// GetCashFlowStatement lists cash movements for a year, or one month of it.
	GetCashFlowStatement(ctx context.Context, year int, month *int) (*domain.CashFlowStatement, error)
}
