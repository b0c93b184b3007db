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

var errReceivableMissing = fmt.Errorf("%w: receivable not found", apperrors.ErrNotFound)

type receivableService struct {
	BaseService
	receivableRepo portsrepo.ReceivableRepositoryFacade
}

// NewReceivableService creates a new ReceivableService.
func NewReceivableService(receivableRepo portsrepo.ReceivableRepositoryFacade, opts ...ServiceOption) portssvc.ReceivableSvcFacade {
	o := applyOptions(opts)
	return &receivableService{
		BaseService:    BaseService{now: o.now},
		receivableRepo: receivableRepo,
	}
}

var _ portssvc.ReceivableSvcFacade = (*receivableService)(nil)

func (s *receivableService) CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest, userID string) (*domain.Receivable, error) {
	dueDate, err := dueDateOrErr(req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := validateLedgerText(req.CustomerName, req.InvoiceNumber); err != nil {
		return nil, err
	}
	if err := validateLedgerAmounts(req.Amount, req.PaymentAmount); err != nil {
		return nil, err
	}

	now := s.Now()
	receivable := domain.Receivable{
		ReceivableID:  uuid.NewString(),
		CustomerID:    strings.TrimSpace(req.CustomerID),
		CustomerName:  strings.TrimSpace(req.CustomerName),
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

	if err := s.receivableRepo.SaveReceivable(ctx, receivable); err != nil {
		s.LogError(ctx, err, "Failed to save receivable", slog.String("invoice_number", receivable.InvoiceNumber))
		return nil, fmt.Errorf("failed to save receivable: %w", err)
	}
	return &receivable, nil
}

func (s *receivableService) GetReceivable(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errReceivableMissing
		}
		return nil, fmt.Errorf("failed to find receivable %s: %w", receivableID, err)
	}
	return receivable, nil
}

func (s *receivableService) ListReceivables(ctx context.Context, params dto.ListLedgerParams) (*dto.ListReceivablesResponse, error) {
	filter := ledgerFilterFromParams(params)
	receivables, err := s.receivableRepo.ListReceivables(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivables: %w", err)
	}
	return &dto.ListReceivablesResponse{Receivables: receivables, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *receivableService) UpdateReceivable(ctx context.Context, receivableID string, req dto.UpdateReceivableRequest, userID string) (*domain.Receivable, error) {
	existing, err := s.GetReceivable(ctx, receivableID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.CustomerID != nil {
		updated.CustomerID = strings.TrimSpace(*req.CustomerID)
	}
	if req.CustomerName != nil {
		updated.CustomerName = strings.TrimSpace(*req.CustomerName)
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

	if err := validateLedgerText(updated.CustomerName, updated.InvoiceNumber); err != nil {
		return nil, err
	}
	if err := validateLedgerAmounts(updated.Amount, updated.PaymentAmount); err != nil {
		return nil, err
	}
	now := s.Now()
	updated.Status = domain.DeriveLedgerStatus(updated.Amount, updated.PaymentAmount)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.receivableRepo.UpdateReceivable(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errReceivableMissing
		}
		return nil, fmt.Errorf("failed to update receivable: %w", err)
	}
	return &updated, nil
}

func (s *receivableService) DeleteReceivable(ctx context.Context, receivableID string, userID string) error {
	if err := s.receivableRepo.DeleteReceivable(ctx, receivableID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errReceivableMissing
		}
		return fmt.Errorf("failed to delete receivable: %w", err)
	}
	s.LogInfo(ctx, "Receivable deleted", slog.String("receivable_id", receivableID), slog.String("deleted_by", userID))
	return nil
}

func (s *receivableService) RecordReceivablePayment(ctx context.Context, receivableID string, amount decimal.Decimal, userID string) (*domain.Receivable, error) {
	receivable, err := s.GetReceivable(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	paid, err := addPayment(receivable.Amount, receivable.PaymentAmount, amount)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	receivable.PaymentAmount = paid
	receivable.Status = domain.DeriveLedgerStatus(receivable.Amount, paid)
	receivable.LastUpdatedAt = now
	receivable.LastUpdatedBy = userID

	if err := s.receivableRepo.UpdateReceivable(ctx, *receivable); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	s.LogInfo(ctx, "Receivable payment recorded",
		slog.String("receivable_id", receivableID),
		slog.String("amount", amount.String()),
		slog.String("status", string(receivable.Status)))
	return receivable, nil
}

func (s *receivableService) MarkOverdueReceivables(ctx context.Context, asOf time.Time, userID string) (int, error) {
	candidates, err := s.receivableRepo.ListReceivables(ctx, overdueCandidates(asOf))
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue receivables: %w", err)
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
		if err := s.receivableRepo.UpdateReceivable(ctx, r); err != nil {
			s.LogError(ctx, err, "Failed to mark receivable overdue", slog.String("receivable_id", r.ReceivableID))
			continue
		}
		marked++
	}
	if marked > 0 {
		s.LogInfo(ctx, "Receivables marked overdue", slog.Int("count", marked))
	}
	return marked, nil
}
