package upstream

import (
	"context"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
)

// FeeSource lists membership fees that are still unpaid upstream.
type FeeSource interface {
	ListPendingFees(ctx context.Context) ([]domain.PendingFee, error)
}

// RentalSource lists rental payments that are still unpaid upstream.
type RentalSource interface {
	ListPendingRentals(ctx context.Context) ([]domain.PendingRental, error)
}

// ProfitSource lists member profit shares that are still unpaid upstream.
type ProfitSource interface {
	ListPendingProfits(ctx context.Context) ([]domain.PendingProfit, error)
}

// Sources groups the three upstream modules read by the sync engine.
type Sources interface {
	FeeSource
	RentalSource
	ProfitSource
}
