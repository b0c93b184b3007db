package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/middleware"
)

// receivableHandler handles HTTP requests for accounts receivable.
type receivableHandler struct {
	receivableService portssvc.ReceivableSvcFacade
}

func registerReceivableRoutes(rg *gin.RouterGroup, receivableService portssvc.ReceivableSvcFacade) {
	h := &receivableHandler{receivableService: receivableService}

	receivables := rg.Group("/receivables")
	{
		receivables.GET("", h.listReceivables)
		receivables.POST("", h.createReceivable)
		receivables.POST("/mark-overdue", h.markOverdue)
		receivables.GET("/:receivableID", h.getReceivable)
		receivables.PUT("/:receivableID", h.updateReceivable)
		receivables.DELETE("/:receivableID", h.deleteReceivable)
		receivables.POST("/:receivableID/payments", h.recordPayment)
	}
}

// listReceivables godoc
// @Summary List or search receivables
// @Tags receivables
// @Produce json
// @Param search query string false "Search in customer, invoice number and description"
// @Param status query string false "pending, partially_paid, paid or overdue"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListReceivablesResponse
// @Failure 400 {object} ErrorResponse
// @Router /accounting/receivables [get]
// @Security BearerAuth
func (h *receivableHandler) listReceivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "receivable query")
		return
	}
	resp, err := h.receivableService.ListReceivables(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list receivables")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createReceivable godoc
// @Summary Create a receivable
// @Tags receivables
// @Accept json
// @Produce json
// @Param receivable body dto.CreateReceivableRequest true "Receivable"
// @Success 201 {object} domain.Receivable
// @Failure 400 {object} ErrorResponse
// @Router /accounting/receivables [post]
// @Security BearerAuth
func (h *receivableHandler) createReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "receivable")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	receivable, err := h.receivableService.CreateReceivable(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create receivable")
		return
	}
	logger.Info("Receivable created", slog.String("receivable_id", receivable.ReceivableID))
	c.JSON(http.StatusCreated, receivable)
}

// getReceivable godoc
// @Summary Get a receivable
// @Tags receivables
// @Produce json
// @Param receivableID path string true "Receivable ID"
// @Success 200 {object} domain.Receivable
// @Failure 404 {object} ErrorResponse
// @Router /accounting/receivables/{receivableID} [get]
// @Security BearerAuth
func (h *receivableHandler) getReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("receivableID")

	receivable, err := h.receivableService.GetReceivable(c.Request.Context(), receivableID)
	if err != nil {
		respondError(c, logger.With(slog.String("receivable_id", receivableID)), err, "Failed to retrieve receivable")
		return
	}
	c.JSON(http.StatusOK, receivable)
}

// updateReceivable godoc
// @Summary Update a receivable
// @Description Status is recomputed from amount, payment amount and due date.
// @Tags receivables
// @Accept json
// @Produce json
// @Param receivableID path string true "Receivable ID"
// @Param receivable body dto.UpdateReceivableRequest true "Fields to change"
// @Success 200 {object} domain.Receivable
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounting/receivables/{receivableID} [put]
// @Security BearerAuth
func (h *receivableHandler) updateReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("receivableID")

	var req dto.UpdateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "receivable update")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	receivable, err := h.receivableService.UpdateReceivable(c.Request.Context(), receivableID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("receivable_id", receivableID)), err, "Failed to update receivable")
		return
	}
	c.JSON(http.StatusOK, receivable)
}

// deleteReceivable godoc
// @Summary Delete a receivable
// @Tags receivables
// @Param receivableID path string true "Receivable ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /accounting/receivables/{receivableID} [delete]
// @Security BearerAuth
func (h *receivableHandler) deleteReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("receivableID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.receivableService.DeleteReceivable(c.Request.Context(), receivableID, userID); err != nil {
		respondError(c, logger.With(slog.String("receivable_id", receivableID)), err, "Failed to delete receivable")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment against a receivable
// @Tags receivables
// @Accept json
// @Produce json
// @Param receivableID path string true "Receivable ID"
// @Param payment body dto.RecordPaymentRequest true "Payment"
// @Success 200 {object} domain.Receivable
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounting/receivables/{receivableID}/payments [post]
// @Security BearerAuth
func (h *receivableHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("receivableID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "payment")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	receivable, err := h.receivableService.RecordReceivablePayment(c.Request.Context(), receivableID, req.Amount, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("receivable_id", receivableID)), err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, receivable)
}

// markOverdue godoc
// @Summary Flag unpaid receivables past their due date as overdue
// @Tags receivables
// @Produce json
// @Success 200 {object} dto.MarkOverdueResponse
// @Router /accounting/receivables/mark-overdue [post]
// @Security BearerAuth
func (h *receivableHandler) markOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	n, err := h.receivableService.MarkOverdueReceivables(c.Request.Context(), time.Now().UTC(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to mark overdue receivables")
		return
	}
	c.JSON(http.StatusOK, dto.MarkOverdueResponse{Updated: n})
}
