package dto

import "github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"

// CreateMonthlyClosingRequest is the body for POST /accounting/monthly-closings/close.
type CreateMonthlyClosingRequest struct {
	Year      int    `json:"year" binding:"required,min=1900,max=9999"`
	Month     int    `json:"month" binding:"required,min=1,max=12"`
	SyncFirst bool   `json:"sync_first"`
	Notes     string `json:"notes" binding:"max=1000"`
}

// UpdateMonthlyClosingRequest is the body for PUT /accounting/monthly-closings/:id.
type UpdateMonthlyClosingRequest struct {
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
	Recalculate bool    `json:"recalculate"`
}

// ListMonthlyClosingsParams are the query parameters of GET /accounting/monthly-closings.
type ListMonthlyClosingsParams struct {
	Year *int `form:"year" binding:"omitempty,min=1900,max=9999"`
}

// PreClosingSyncRequest is the body for POST /accounting/sync/pre-closing.
type PreClosingSyncRequest struct {
	Year  int `json:"year" binding:"required,min=1900,max=9999"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// MonthlyClosingResponse is returned by POST /accounting/monthly-closings/close.
type MonthlyClosingResponse struct {
	Closing        domain.MonthlyClosing      `json:"closing"`
	PreClosingSync *domain.ClosingSyncSummary `json:"pre_closing_sync,omitempty"`
}

// SyncAcceptedResponse is returned when a sync run was queued instead of executed.
type SyncAcceptedResponse struct {
	TaskID string `json:"task_id"`
}
