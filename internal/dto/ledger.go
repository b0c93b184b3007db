package dto

import (
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceivableRequest is the body for POST /accounting/receivables.
// Status is accepted for compatibility but always recomputed from the amounts.
type CreateReceivableRequest struct {
	CustomerID    string              `json:"customer_id"`
	CustomerName  string              `json:"customer_name" binding:"required"`
	InvoiceNumber string              `json:"invoice_number" binding:"required,max=64"`
	Amount        decimal.Decimal     `json:"amount" binding:"dpos"`
	PaymentAmount decimal.Decimal     `json:"payment_amount" binding:"gte=0"`
	DueDate       Date                `json:"due_date"`
	Description   string              `json:"description"`
	Status        domain.LedgerStatus `json:"status" binding:"omitempty,ledgerstatus"`
}

// UpdateReceivableRequest is the body for PUT /accounting/receivables/:id. Nil fields stay unchanged.
type UpdateReceivableRequest struct {
	CustomerID    *string          `json:"customer_id"`
	CustomerName  *string          `json:"customer_name" binding:"omitempty,min=1"`
	InvoiceNumber *string          `json:"invoice_number" binding:"omitempty,min=1,max=64"`
	Amount        *decimal.Decimal `json:"amount" binding:"omitempty,dpos"`
	PaymentAmount *decimal.Decimal `json:"payment_amount" binding:"omitempty,gte=0"`
	DueDate       *Date            `json:"due_date"`
	Description   *string          `json:"description"`
}

// CreatePayableRequest is the body for POST /accounting/payables.
type CreatePayableRequest struct {
	SupplierID    string              `json:"supplier_id"`
	SupplierName  string              `json:"supplier_name" binding:"required"`
	InvoiceNumber string              `json:"invoice_number" binding:"required,max=64"`
	Amount        decimal.Decimal     `json:"amount" binding:"dpos"`
	PaymentAmount decimal.Decimal     `json:"payment_amount" binding:"gte=0"`
	DueDate       Date                `json:"due_date"`
	Description   string              `json:"description"`
	Status        domain.LedgerStatus `json:"status" binding:"omitempty,ledgerstatus"`
}

// UpdatePayableRequest is the body for PUT /accounting/payables/:id.
type UpdatePayableRequest struct {
	SupplierID    *string          `json:"supplier_id"`
	SupplierName  *string          `json:"supplier_name" binding:"omitempty,min=1"`
	InvoiceNumber *string          `json:"invoice_number" binding:"omitempty,min=1,max=64"`
	Amount        *decimal.Decimal `json:"amount" binding:"omitempty,dpos"`
	PaymentAmount *decimal.Decimal `json:"payment_amount" binding:"omitempty,gte=0"`
	DueDate       *Date            `json:"due_date"`
	Description   *string          `json:"description"`
}

// RecordPaymentRequest is the body for POST .../:id/payments.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"gte=0"`
}

// ListLedgerParams are the query parameters for receivable and payable listings.
type ListLedgerParams struct {
	Search string              `form:"search"`
	Status domain.LedgerStatus `form:"status" binding:"omitempty,ledgerstatus"`
	Limit  int                 `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	Offset int                 `form:"offset" binding:"omitempty,min=0"`
}

// ListReceivablesResponse wraps a page of receivables.
type ListReceivablesResponse struct {
	Receivables []domain.Receivable `json:"receivables"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
}

// ListPayablesResponse wraps a page of payables.
type ListPayablesResponse struct {
	Payables []domain.Payable `json:"payables"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// MarkOverdueResponse reports how many records the overdue sweep changed.
type MarkOverdueResponse struct {
	Updated int `json:"updated"`
}
