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

// payableHandler handles HTTP requests for accounts payable.
type payableHandler struct {
	payableService portssvc.PayableSvcFacade
}

func registerPayableRoutes(rg *gin.RouterGroup, payableService portssvc.PayableSvcFacade) {
	h := &payableHandler{payableService: payableService}

	payables := rg.Group("/payables")
	{
		payables.GET("", h.listPayables)
		payables.POST("", h.createPayable)
		payables.POST("/mark-overdue", h.markOverdue)
		payables.GET("/:payableID", h.getPayable)
		payables.PUT("/:payableID", h.updatePayable)
		payables.DELETE("/:payableID", h.deletePayable)
		payables.POST("/:payableID/payments", h.recordPayment)
	}
}

// listPayables godoc
// @Summary List or search payables
// @Tags payables
// @Produce json
// @Param search query string false "Search in supplier, invoice number and description"
// @Param status query string false "pending, partially_paid, paid or overdue"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListPayablesResponse
// @Failure 400 {object} ErrorResponse
// @Router /accounting/payables [get]
// @Security BearerAuth
func (h *payableHandler) listPayables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "payable query")
		return
	}
	resp, err := h.payableService.ListPayables(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list payables")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createPayable godoc
// @Summary Create a payable
// @Tags payables
// @Accept json
// @Produce json
// @Param payable body dto.CreatePayableRequest true "Payable"
// @Success 201 {object} domain.Payable
// @Failure 400 {object} ErrorResponse
// @Router /accounting/payables [post]
// @Security BearerAuth
func (h *payableHandler) createPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "payable")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	payable, err := h.payableService.CreatePayable(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create payable")
		return
	}
	logger.Info("Payable created", slog.String("payable_id", payable.PayableID))
	c.JSON(http.StatusCreated, payable)
}

// getPayable godoc
// @Summary Get a payable
// @Tags payables
// @Produce json
// @Param payableID path string true "Payable ID"
// @Success 200 {object} domain.Payable
// @Failure 404 {object} ErrorResponse
// @Router /accounting/payables/{payableID} [get]
// @Security BearerAuth
func (h *payableHandler) getPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("payableID")

	payable, err := h.payableService.GetPayable(c.Request.Context(), payableID)
	if err != nil {
		respondError(c, logger.With(slog.String("payable_id", payableID)), err, "Failed to retrieve payable")
		return
	}
	c.JSON(http.StatusOK, payable)
}

// updatePayable godoc
// @Summary Update a payable
// @Description Status is recomputed from amount, payment amount and due date.
// @Tags payables
// @Accept json
// @Produce json
// @Param payableID path string true "Payable ID"
// @Param payable body dto.UpdatePayableRequest true "Fields to change"
// @Success 200 {object} domain.Payable
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounting/payables/{payableID} [put]
// @Security BearerAuth
func (h *payableHandler) updatePayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("payableID")

	var req dto.UpdatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "payable update")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	payable, err := h.payableService.UpdatePayable(c.Request.Context(), payableID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("payable_id", payableID)), err, "Failed to update payable")
		return
	}
	c.JSON(http.StatusOK, payable)
}

// deletePayable godoc
// @Summary Delete a payable
// @Tags payables
// @Param payableID path string true "Payable ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /accounting/payables/{payableID} [delete]
// @Security BearerAuth
func (h *payableHandler) deletePayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("payableID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.payableService.DeletePayable(c.Request.Context(), payableID, userID); err != nil {
		respondError(c, logger.With(slog.String("payable_id", payableID)), err, "Failed to delete payable")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment against a payable
// @Tags payables
// @Accept json
// @Produce json
// @Param payableID path string true "Payable ID"
// @Param payment body dto.RecordPaymentRequest true "Payment"
// @Success 200 {object} domain.Payable
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounting/payables/{payableID}/payments [post]
// @Security BearerAuth
func (h *payableHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("payableID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "payment")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	payable, err := h.payableService.RecordPayablePayment(c.Request.Context(), payableID, req.Amount, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("payable_id", payableID)), err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, payable)
}

// markOverdue godoc
// @Summary Flag unpaid payables past their due date as overdue
// @Tags payables
// @Produce json
// @Success 200 {object} dto.MarkOverdueResponse
// @Router /accounting/payables/mark-overdue [post]
// @Security BearerAuth
func (h *payableHandler) markOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	n, err := h.payableService.MarkOverduePayables(c.Request.Context(), time.Now().UTC(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to mark overdue payables")
		return
	}
	c.JSON(http.StatusOK, dto.MarkOverdueResponse{Updated: n})
}
