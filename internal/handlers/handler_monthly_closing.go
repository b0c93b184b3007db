package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/middleware"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils"
)

// monthlyClosingHandler drives the pending -> finalized closing workflow.
type monthlyClosingHandler struct {
	closingService portssvc.MonthlyClosingSvcFacade
	syncService    portssvc.SyncSvc
	posthogClient  *utils.PosthogClientWrapper
}

func registerMonthlyClosingRoutes(rg *gin.RouterGroup, closingService portssvc.MonthlyClosingSvcFacade, syncService portssvc.SyncSvc, posthogClient *utils.PosthogClientWrapper) {
	h := &monthlyClosingHandler{
		closingService: closingService,
		syncService:    syncService,
		posthogClient:  posthogClient,
	}

	closings := rg.Group("/monthly-closings")
	{
		closings.GET("", h.listMonthlyClosings)
		closings.POST("/close", h.createMonthlyClosing)
		closings.GET("/:closingID", h.getMonthlyClosing)
		closings.PUT("/:closingID", h.updateMonthlyClosing)
		closings.DELETE("/:closingID", h.deleteMonthlyClosing)
		closings.POST("/:closingID/finalize", h.finalizeMonthlyClosing)
	}
}

// createMonthlyClosing godoc
// @Summary Close a month
// @Description Computes income and expense totals for the month and stores a pending closing. With sync_first the upstream modules are synchronized beforehand; a sync failure does not block the closing.
// @Tags monthly-closings
// @Accept json
// @Produce json
// @Param closing body dto.CreateMonthlyClosingRequest true "Period"
// @Success 201 {object} dto.MonthlyClosingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A closing already exists for the period"
// @Router /accounting/monthly-closings/close [post]
// @Security BearerAuth
func (h *monthlyClosingHandler) createMonthlyClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMonthlyClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "monthly closing")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Int("year", req.Year), slog.Int("month", req.Month))

	var summary *domain.ClosingSyncSummary
	if req.SyncFirst && h.syncService != nil {
		s, err := h.syncService.SyncBeforeMonthlyClosing(c.Request.Context(), req.Year, req.Month, userID)
		if err != nil {
			respondError(c, logger, err, "Failed to synchronize before closing")
			return
		}
		summary = s
	}

	closing, err := h.closingService.CreateMonthlyClosing(c.Request.Context(), req.Year, req.Month, req.Notes, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create monthly closing")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, utils.EventClosingCreated, map[string]any{
		"period":     closing.Period().String(),
		"net_amount": closing.NetAmount.String(),
		"sync_first": req.SyncFirst,
	})
	logger.Info("Monthly closing created", slog.String("closing_id", closing.ClosingID))
	c.JSON(http.StatusCreated, dto.MonthlyClosingResponse{Closing: *closing, PreClosingSync: summary})
}

// finalizeMonthlyClosing godoc
// @Summary Finalize a monthly closing
// @Description Moves a pending closing to finalized. Journal entries of the month become read-only.
// @Tags monthly-closings
// @Produce json
// @Param closingID path string true "Closing ID"
// @Success 200 {object} domain.MonthlyClosing
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already finalized"
// @Router /accounting/monthly-closings/{closingID}/finalize [post]
// @Security BearerAuth
func (h *monthlyClosingHandler) finalizeMonthlyClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID := c.Param("closingID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	closing, err := h.closingService.FinalizeMonthlyClosing(c.Request.Context(), closingID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("closing_id", closingID)), err, "Failed to finalize monthly closing")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, utils.EventClosingFinalized, map[string]any{
		"period": closing.Period().String(),
	})
	c.JSON(http.StatusOK, closing)
}

// getMonthlyClosing godoc
// @Summary Get a monthly closing with its category breakdown
// @Tags monthly-closings
// @Produce json
// @Param closingID path string true "Closing ID"
// @Success 200 {object} domain.ClosingDetail
// @Failure 404 {object} ErrorResponse
// @Router /accounting/monthly-closings/{closingID} [get]
// @Security BearerAuth
func (h *monthlyClosingHandler) getMonthlyClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID := c.Param("closingID")

	detail, err := h.closingService.GetMonthlyClosing(c.Request.Context(), closingID)
	if err != nil {
		respondError(c, logger.With(slog.String("closing_id", closingID)), err, "Failed to retrieve monthly closing")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// listMonthlyClosings godoc
// @Summary List monthly closings
// @Tags monthly-closings
// @Produce json
// @Param year query int false "Year"
// @Success 200 {array} domain.MonthlyClosing
// @Router /accounting/monthly-closings [get]
// @Security BearerAuth
func (h *monthlyClosingHandler) listMonthlyClosings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMonthlyClosingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "monthly closing query")
		return
	}
	closings, err := h.closingService.ListMonthlyClosings(c.Request.Context(), params.Year)
	if err != nil {
		respondError(c, logger, err, "Failed to list monthly closings")
		return
	}
	c.JSON(http.StatusOK, closings)
}

// updateMonthlyClosing godoc
// @Summary Update a pending monthly closing
// @Description Changes notes and, with recalculate, recomputes the totals from the journal.
// @Tags monthly-closings
// @Accept json
// @Produce json
// @Param closingID path string true "Closing ID"
// @Param closing body dto.UpdateMonthlyClosingRequest true "Changes"
// @Success 200 {object} domain.MonthlyClosing
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already finalized"
// @Router /accounting/monthly-closings/{closingID} [put]
// @Security BearerAuth
func (h *monthlyClosingHandler) updateMonthlyClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID := c.Param("closingID")

	var req dto.UpdateMonthlyClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "monthly closing update")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	closing, err := h.closingService.UpdateMonthlyClosing(c.Request.Context(), closingID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("closing_id", closingID)), err, "Failed to update monthly closing")
		return
	}
	c.JSON(http.StatusOK, closing)
}

// deleteMonthlyClosing godoc
// @Summary Delete a pending monthly closing
// @Tags monthly-closings
// @Param closingID path string true "Closing ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already finalized"
// @Router /accounting/monthly-closings/{closingID} [delete]
// @Security BearerAuth
func (h *monthlyClosingHandler) deleteMonthlyClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID := c.Param("closingID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.closingService.DeleteMonthlyClosing(c.Request.Context(), closingID, userID); err != nil {
		respondError(c, logger.With(slog.String("closing_id", closingID)), err, "Failed to delete monthly closing")
		return
	}
	c.Status(http.StatusNoContent)
}
