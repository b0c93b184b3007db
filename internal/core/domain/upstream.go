package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingFee is an unpaid membership fee read from the membership module.
type PendingFee struct {
	FeeID      string          `json:"id"`
	MemberID   string          `json:"member_id"`
	MemberNo   string          `json:"member_no"`
	MemberName string          `json:"member_name"`
	MemberType string          `json:"member_type"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
}

// PendingRental is an unpaid rental payment read from the rental module.
type PendingRental struct {
	PaymentID      string          `json:"id"`
	InvestmentID   string          `json:"investment_id"`
	InvestmentName string          `json:"investment_name"`
	TenantID       string          `json:"tenant_id"`
	TenantName     string          `json:"tenant_name"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
}

// PendingProfit is an unpaid profit share owed to a member.
type PendingProfit struct {
	ProfitID       string          `json:"id"`
	InvestmentID   string          `json:"investment_id"`
	InvestmentName string          `json:"investment_name"`
	MemberID       string          `json:"member_id"`
	MemberName     string          `json:"member_name"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
}
