package repositories

import (
	"context"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
)

// ReceivableReader defines read operations for receivables
type ReceivableReader interface {
	FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error)

	// FindReceivableBySource returns apperrors.ErrNotFound when no receivable is linked to the source record.
	FindReceivableBySource(ctx context.Context, source domain.SourceLink) (*domain.Receivable, error)

	ListReceivables(ctx context.Context, filter domain.LedgerFilter) ([]domain.Receivable, error)
}

// ReceivableWriter defines write operations for receivables
type ReceivableWriter interface {
	// SaveReceivable returns apperrors.ErrDuplicate when the source link is already taken.
	SaveReceivable(ctx context.Context, receivable domain.Receivable) error
	UpdateReceivable(ctx context.Context, receivable domain.Receivable) error
	DeleteReceivable(ctx context.Context, receivableID string) error
}

// ReceivableRepositoryFacade combines all receivable operations
type ReceivableRepositoryFacade interface {
	ReceivableReader
	ReceivableWriter
}

// PayableReader defines read operations for payables
type PayableReader interface {
	FindPayableByID(ctx context.Context, payableID string) (*domain.Payable, error)
	FindPayableBySource(ctx context.Context, source domain.SourceLink) (*domain.Payable, error)
	ListPayables(ctx context.Context, filter domain.LedgerFilter) ([]domain.Payable, error)
}

// PayableWriter defines write operations for payables
type PayableWriter interface {
	SavePayable(ctx context.Context, payable domain.Payable) error
	UpdatePayable(ctx context.Context, payable domain.Payable) error
	DeletePayable(ctx context.Context, payableID string) error
}

// PayableRepositoryFacade combines all payable operations
type PayableRepositoryFacade interface {
	PayableReader
	PayableWriter
}
