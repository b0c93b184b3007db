package repositories

import (
	"context"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
)

// MonthlyClosingReader defines read operations for monthly closings
type MonthlyClosingReader interface {
	FindMonthlyClosingByID(ctx context.Context, closingID string) (*domain.MonthlyClosing, error)
	FindMonthlyClosingByPeriod(ctx context.Context, period domain.Period) (*domain.MonthlyClosing, error)

	// ListMonthlyClosings returns closings newest period first; a nil year lists all.
	ListMonthlyClosings(ctx context.Context, year *int) ([]domain.MonthlyClosing, error)
}

// MonthlyClosingWriter defines write operations for monthly closings
type MonthlyClosingWriter interface {
	// SaveMonthlyClosing returns apperrors.ErrDuplicate when the period already has a closing.
	SaveMonthlyClosing(ctx context.Context, closing domain.MonthlyClosing) error

	// UpdateMonthlyClosing only touches closings that are still pending in storage and
	// returns apperrors.ErrConflict otherwise.
	UpdateMonthlyClosing(ctx context.Context, closing domain.MonthlyClosing) error

	// DeleteMonthlyClosing only removes pending closings.
	DeleteMonthlyClosing(ctx context.Context, closingID string) error
}

// MonthlyClosingRepositoryFacade combines all monthly closing operations
type MonthlyClosingRepositoryFacade interface {
	MonthlyClosingReader
	MonthlyClosingWriter
}
