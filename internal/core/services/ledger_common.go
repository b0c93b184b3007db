package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/shopspring/decimal"
)

var (
	ErrDueDateMissing   = fmt.Errorf("%w: due date is required", apperrors.ErrValidation)
	ErrNegativePayment  = fmt.Errorf("%w: payment amount must not be negative", apperrors.ErrValidation)
	ErrOverpayment      = fmt.Errorf("%w: payment exceeds the amount due", apperrors.ErrValidation)
	ErrCounterpartyName = fmt.Errorf("%w: counterparty name is required", apperrors.ErrValidation)
	ErrInvoiceMissing   = fmt.Errorf("%w: invoice number is required", apperrors.ErrValidation)
)

const defaultListLimit = 50

func validateLedgerAmounts(amount, paid decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if paid.IsNegative() {
		return ErrNegativePayment
	}
	if paid.GreaterThan(amount) {
		return ErrOverpayment
	}
	return nil
}

func validateLedgerText(counterparty, invoice string) error {
	if strings.TrimSpace(counterparty) == "" {
		return ErrCounterpartyName
	}
	if strings.TrimSpace(invoice) == "" {
		return ErrInvoiceMissing
	}
	return nil
}

// addPayment returns the new paid total after a payment of amount.
func addPayment(total, paid, payment decimal.Decimal) (decimal.Decimal, error) {
	if payment.IsNegative() {
		return decimal.Zero, ErrNegativePayment
	}
	next := paid.Add(payment)
	if next.GreaterThan(total) {
		return decimal.Zero, fmt.Errorf("%w: outstanding %s", ErrOverpayment, total.Sub(paid).StringFixed(2))
	}
	return next, nil
}

func ledgerFilterFromParams(params dto.ListLedgerParams) domain.LedgerFilter {
	filter := domain.LedgerFilter{
		Search: strings.TrimSpace(params.Search),
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if params.Status != "" {
		filter.Statuses = []domain.LedgerStatus{params.Status}
	}
	return filter
}

// overdueCandidates selects unpaid records due before the start of asOf's day.
func overdueCandidates(asOf time.Time) domain.LedgerFilter {
	startOfDay := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	return domain.LedgerFilter{
		Statuses: []domain.LedgerStatus{domain.StatusPending, domain.StatusPartiallyPaid},
		DueTo:    &startOfDay,
	}
}

func dueDateOrErr(d dto.Date) (time.Time, error) {
	if d.IsZero() {
		return time.Time{}, ErrDueDateMissing
	}
	return truncateToDate(d.Time), nil
}
