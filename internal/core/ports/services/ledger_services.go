package services

import (
	"context"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/shopspring/decimal"
)

// ReceivableSvcFacade manages amounts owed to the organization.
type ReceivableSvcFacade interface {
	CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest, userID string) (*domain.Receivable, error)
	GetReceivable(ctx context.Context, receivableID string) (*domain.Receivable, error)
	ListReceivables(ctx context.Context, params dto.ListLedgerParams) (*dto.ListReceivablesResponse, error)
	UpdateReceivable(ctx context.Context, receivableID string, req dto.UpdateReceivableRequest, userID string) (*domain.Receivable, error)
	DeleteReceivable(ctx context.Context, receivableID string, userID string) error

	// RecordReceivablePayment adds amount to the paid total and recomputes the status.
	RecordReceivablePayment(ctx context.Context, receivableID string, amount decimal.Decimal, userID string) (*domain.Receivable, error)

	// MarkOverdueReceivables flags unpaid receivables due before asOf and returns how many changed.
	MarkOverdueReceivables(ctx context.Context, asOf time.Time, userID string) (int, error)
}

// PayableSvcFacade manages amounts the organization owes.
type PayableSvcFacade interface {
	CreatePayable(ctx context.Context, req dto.CreatePayableRequest, userID string) (*domain.Payable, error)
	GetPayable(ctx context.Context, payableID string) (*domain.Payable, error)
	ListPayables(ctx context.Context, params dto.ListLedgerParams) (*dto.ListPayablesResponse, error)
	UpdatePayable(ctx context.Context, payableID string, req dto.UpdatePayableRequest, userID string) (*domain.Payable, error)
	DeletePayable(ctx context.Context, payableID string, userID string) error
	RecordPayablePayment(ctx context.Context, payableID string, amount decimal.Decimal, userID string) (*domain.Payable, error)
	MarkOverduePayables(ctx context.Context, asOf time.Time, userID string) (int, error)
}
