package services

import (
	"context"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
)

// PeriodGuard rejects writes into finalized months.
type PeriodGuard interface {
	// EnsurePeriodOpen returns apperrors.ErrPeriodLocked when date falls in a finalized month.
	EnsurePeriodOpen(ctx context.Context, date time.Time) error
}

// MonthlyClosingSvcFacade manages the pending -> finalized closing workflow.
type MonthlyClosingSvcFacade interface {
	PeriodGuard

	CreateMonthlyClosing(ctx context.Context, year, month int, notes string, userID string) (*domain.MonthlyClosing, error)
	FinalizeMonthlyClosing(ctx context.Context, closingID string, userID string) (*domain.MonthlyClosing, error)
	GetMonthlyClosing(ctx context.Context, closingID string) (*domain.ClosingDetail, error)
	ListMonthlyClosings(ctx context.Context, year *int) ([]domain.MonthlyClosing, error)
	UpdateMonthlyClosing(ctx context.Context, closingID string, req dto.UpdateMonthlyClosingRequest, userID string) (*domain.MonthlyClosing, error)
	DeleteMonthlyClosing(ctx context.Context, closingID string, userID string) error
}
