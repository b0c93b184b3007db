package upstream

import (
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/shopspring/decimal"
)

// Wire shapes of the upstream modules. Due dates arrive as plain dates or RFC3339.

type feeDTO struct {
	ID         string          `json:"id"`
	MemberID   string          `json:"member_id"`
	MemberNo   string          `json:"member_no"`
	MemberName string          `json:"member_name"`
	MemberType string          `json:"member_type"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    *dto.Date       `json:"due_date"`
}

func (w feeDTO) toDomain() domain.PendingFee {
	return domain.PendingFee{
		FeeID:      w.ID,
		MemberID:   w.MemberID,
		MemberNo:   w.MemberNo,
		MemberName: w.MemberName,
		MemberType: w.MemberType,
		Amount:     w.Amount,
		DueDate:    datePtr(w.DueDate),
	}
}

type rentalDTO struct {
	ID             string          `json:"id"`
	InvestmentID   string          `json:"investment_id"`
	InvestmentName string          `json:"investment_name"`
	TenantID       string          `json:"tenant_id"`
	TenantName     string          `json:"tenant_name"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        *dto.Date       `json:"due_date"`
}

func (w rentalDTO) toDomain() domain.PendingRental {
	return domain.PendingRental{
		PaymentID:      w.ID,
		InvestmentID:   w.InvestmentID,
		InvestmentName: w.InvestmentName,
		TenantID:       w.TenantID,
		TenantName:     w.TenantName,
		Year:           w.Year,
		Month:          w.Month,
		Amount:         w.Amount,
		DueDate:        datePtr(w.DueDate),
	}
}

type profitDTO struct {
	ID             string          `json:"id"`
	InvestmentID   string          `json:"investment_id"`
	InvestmentName string          `json:"investment_name"`
	MemberID       string          `json:"member_id"`
	MemberName     string          `json:"member_name"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        *dto.Date       `json:"due_date"`
}

func (w profitDTO) toDomain() domain.PendingProfit {
	return domain.PendingProfit{
		ProfitID:       w.ID,
		InvestmentID:   w.InvestmentID,
		InvestmentName: w.InvestmentName,
		MemberID:       w.MemberID,
		MemberName:     w.MemberName,
		Year:           w.Year,
		Month:          w.Month,
		Amount:         w.Amount,
		DueDate:        datePtr(w.DueDate),
	}
}

func datePtr(d *dto.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
