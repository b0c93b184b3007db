package services

import (
	"context"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
)

// SyncSvc propagates pending upstream records into receivables and payables.
type SyncSvc interface {
	// SyncFeeReceivables reconciles pending membership fees. A failure to list the
	// pending fees is returned; per-record failures are reported in the result.
	SyncFeeReceivables(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error)

	// SyncRentalReceivables reconciles pending rental payments.
	SyncRentalReceivables(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error)

	// SyncMemberProfitPayables reconciles pending member profit shares.
	SyncMemberProfitPayables(ctx context.Context, actorID string) (*domain.PayableSyncResult, error)

	// SyncAllAccountingData runs the three passes in order. Sub-sync failures are
	// logged and recorded in the per-domain reports, never returned.
	SyncAllAccountingData(ctx context.Context, actorID string) (*domain.SyncResult, error)

	// SyncBeforeMonthlyClosing syncs everything and summarizes the month's ledger.
	SyncBeforeMonthlyClosing(ctx context.Context, year, month int, actorID string) (*domain.ClosingSyncSummary, error)
}
