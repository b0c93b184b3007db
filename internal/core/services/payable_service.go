package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/shopspring/decimal"
)

var errPayableMissing = fmt.Errorf("%w: payable not found", apperrors.ErrNotFound)

type payableService struct {
	BaseService
	payableRepo portsrepo.PayableRepositoryFacade
}

// NewPayableService creates a new PayableService.
func NewPayableService(payableRepo portsrepo.PayableRepositoryFacade, opts ...ServiceOption) portssvc.PayableSvcFacade {
	o := applyOptions(opts)
	return &payableService{
		BaseService: BaseService{now: o.now},
		payableRepo: payableRepo,
	}
}

var _ portssvc.PayableSvcFacade = (*payableService)(nil)

func (s *payableService) CreatePayable(ctx context.Context, req dto.CreatePayableRequest, userID string) (*domain.Payable, error) {
	dueDate, err := dueDateOrErr(req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := validateLedgerText(req.SupplierName, req.InvoiceNumber); err != nil {
		return nil, err
	}
	if err := validateLedgerAmounts(req.Amount, req.PaymentAmount); err != nil {
		return nil, err
	}

	now := s.Now()
	payable := domain.Payable{
		PayableID:  uuid.NewString(),
		SupplierID:    strings.TrimSpace(req.SupplierID),
		SupplierName:  strings.TrimSpace(req.SupplierName),
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		Amount:        req.Amount,
		PaymentAmount: req.PaymentAmount,
		DueDate:       dueDate,
		Description:   strings.TrimSpace(req.Description),
		Status:        domain.DeriveLedgerStatus(req.Amount, req.PaymentAmount),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.payableRepo.SavePayable(ctx, payable); err != nil {
		s.LogError(ctx, err, "Failed to save payable", slog.String("invoice_number", payable.InvoiceNumber))
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}
	return &payable, nil
}

func (s *payableService) GetPayable(ctx context.Context, payableID string) (*domain.Payable, error) {
	payable, err := s.payableRepo.FindPayableByID(ctx, payableID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errPayableMissing
		}
		return nil, fmt.Errorf("failed to find payable %s: %w", payableID, err)
	}
	return payable, nil
}

func (s *payableService) ListPayables(ctx context.Context, params dto.ListLedgerParams) (*dto.ListPayablesResponse, error) {
	filter := ledgerFilterFromParams(params)
	payables, err := s.payableRepo.ListPayables(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payables: %w", err)
	}
	return &dto.ListPayablesResponse{Payables: payables, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *payableService) UpdatePayable(ctx context.Context, payableID string, req dto.UpdatePayableRequest, userID string) (*domain.Payable, error) {
	existing, err := s.GetPayable(ctx, payableID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.SupplierID != nil {
		updated.SupplierID = strings.TrimSpace(*req.SupplierID)
	}
	if req.SupplierName != nil {
		updated.SupplierName = strings.TrimSpace(*req.SupplierName)
	}
	if req.InvoiceNumber != nil {
		updated.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.PaymentAmount != nil {
		updated.PaymentAmount = *req.PaymentAmount
	}
	if req.DueDate != nil {
		if updated.DueDate, err = dueDateOrErr(*req.DueDate); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}

	if err := validateLedgerText(updated.SupplierName, updated.InvoiceNumber); err != nil {
		return nil, err
	}
	if err := validateLedgerAmounts(updated.Amount, updated.PaymentAmount); err != nil {
		return nil, err
	}
	now := s.Now()
	updated.Status = domain.DeriveLedgerStatus(updated.Amount, updated.PaymentAmount)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.payableRepo.UpdatePayable(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errPayableMissing
		}
		return nil, fmt.Errorf("failed to update payable: %w", err)
	}
	return &updated, nil
}

func (s *payableService) DeletePayable(ctx context.Context, payableID string, userID string) error {
	if err := s.payableRepo.DeletePayable(ctx, payableID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errPayableMissing
		}
		return fmt.Errorf("failed to delete payable: %w", err)
	}
	s.LogInfo(ctx, "Payable deleted", slog.String("payable_id", payableID), slog.String("deleted_by", userID))
	return nil
}

func (s *payableService) RecordPayablePayment(ctx context.Context, payableID string, amount decimal.Decimal, userID string) (*domain.Payable, error) {
	payable, err := s.GetPayable(ctx, payableID)
	if err != nil {
		return nil, err
	}
	paid, err := addPayment(payable.Amount, payable.PaymentAmount, amount)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	payable.PaymentAmount = paid
	payable.Status = domain.DeriveLedgerStatus(payable.Amount, paid)
	payable.LastUpdatedAt = now
	payable.LastUpdatedBy = userID

	if err := s.payableRepo.UpdatePayable(ctx, *payable); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	s.LogInfo(ctx, "Payable payment recorded",
		slog.String("payable_id", payableID),
		slog.String("amount", amount.String()),
		slog.String("status", string(payable.Status)))
	return payable, nil
}

func (s *payableService) MarkOverduePayables(ctx context.Context, asOf time.Time, userID string) (int, error) {
	candidates, err := s.payableRepo.ListPayables(ctx, overdueCandidates(asOf))
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue payables: %w", err)
	}

	marked := 0
	now := s.Now()
	for _, r := range candidates {
		if err := ctx.Err(); err != nil {
			return marked, err
		}
		r.Status = domain.StatusOverdue
		r.LastUpdatedAt = now
		r.LastUpdatedBy = userID
		if err := s.payableRepo.UpdatePayable(ctx, r); err != nil {
			s.LogError(ctx, err, "Failed to mark payable overdue", slog.String("payable_id", r.PayableID))
			continue
		}
		marked++
	}
	if marked > 0 {
		s.LogInfo(ctx, "Payables marked overdue", slog.Int("count", marked))
	}
	return marked, nil
}
