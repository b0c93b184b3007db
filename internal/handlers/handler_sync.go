package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/middleware"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils"
)

// SyncEnqueuer hands a full synchronization run to the background worker.
type SyncEnqueuer interface {
	EnqueueSyncAll(ctx context.Context, actorID string) (taskID string, err error)
}

type syncHandler struct {
	syncService   portssvc.SyncSvc
	enqueuer      SyncEnqueuer
	posthogClient *utils.PosthogClientWrapper
}

func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvc, enqueuer SyncEnqueuer, posthogClient *utils.PosthogClientWrapper) {
	h := &syncHandler{syncService: syncService, enqueuer: enqueuer, posthogClient: posthogClient}

	sync := rg.Group("/sync")
	{
		sync.POST("/fees", h.syncFees)
		sync.POST("/rentals", h.syncRentals)
		sync.POST("/member-profits", h.syncMemberProfits)
		sync.POST("/all", h.syncAll)
		sync.POST("/pre-closing", h.syncPreClosing)
	}
}

// syncFees godoc
// @Summary Synchronize pending membership fees into receivables
// @Tags sync
// @Produce json
// @Success 200 {object} domain.ReceivableSyncResult
// @Failure 409 {object} ErrorResponse "Another sync is running"
// @Failure 502 {object} ErrorResponse "Fee module unavailable"
// @Router /accounting/sync/fees [post]
// @Security BearerAuth
func (h *syncHandler) syncFees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	result, err := h.syncService.SyncFeeReceivables(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to synchronize fees")
		return
	}
	h.track(c, result.Report)
	c.JSON(http.StatusOK, result)
}

// syncRentals godoc
// @Summary Synchronize pending rental payments into receivables
// @Tags sync
// @Produce json
// @Success 200 {object} domain.ReceivableSyncResult
// @Failure 409 {object} ErrorResponse "Another sync is running"
// @Failure 502 {object} ErrorResponse "Rental module unavailable"
// @Router /accounting/sync/rentals [post]
// @Security BearerAuth
func (h *syncHandler) syncRentals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	result, err := h.syncService.SyncRentalReceivables(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to synchronize rentals")
		return
	}
	h.track(c, result.Report)
	c.JSON(http.StatusOK, result)
}

// syncMemberProfits godoc
// @Summary Synchronize pending member profit shares into payables
// @Tags sync
// @Produce json
// @Success 200 {object} domain.PayableSyncResult
// @Failure 409 {object} ErrorResponse "Another sync is running"
// @Failure 502 {object} ErrorResponse "Profit module unavailable"
// @Router /accounting/sync/member-profits [post]
// @Security BearerAuth
func (h *syncHandler) syncMemberProfits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	result, err := h.syncService.SyncMemberProfitPayables(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to synchronize member profits")
		return
	}
	h.track(c, result.Report)
	c.JSON(http.StatusOK, result)
}

// syncAll godoc
// @Summary Run all synchronizations
// @Description Runs fees, rentals and member profits in order. A failing pass is reported, not returned. With async=true the run is queued and 202 is returned.
// @Tags sync
// @Produce json
// @Param async query bool false "Queue the run on the background worker"
// @Success 200 {object} domain.SyncResult
// @Success 202 {object} dto.SyncAcceptedResponse
// @Failure 409 {object} ErrorResponse "Another sync is running"
// @Failure 503 {object} ErrorResponse "No background queue configured"
// @Router /accounting/sync/all [post]
// @Security BearerAuth
func (h *syncHandler) syncAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	async, _ := strconv.ParseBool(c.Query("async"))
	if async {
		if h.enqueuer == nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "background queue not configured"})
			return
		}
		taskID, err := h.enqueuer.EnqueueSyncAll(c.Request.Context(), userID)
		if err != nil {
			respondError(c, logger, err, "Failed to queue synchronization")
			return
		}
		logger.Info("Sync all queued", slog.String("task_id", taskID))
		c.JSON(http.StatusAccepted, dto.SyncAcceptedResponse{TaskID: taskID})
		return
	}

	result, err := h.syncService.SyncAllAccountingData(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to synchronize accounting data")
		return
	}
	for _, report := range result.Reports {
		h.track(c, report)
	}
	c.JSON(http.StatusOK, result)
}

// syncPreClosing godoc
// @Summary Synchronize and summarize a month before closing it
// @Tags sync
// @Accept json
// @Produce json
// @Param period body dto.PreClosingSyncRequest true "Period"
// @Success 200 {object} domain.ClosingSyncSummary
// @Failure 400 {object} ErrorResponse
// @Router /accounting/sync/pre-closing [post]
// @Security BearerAuth
func (h *syncHandler) syncPreClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PreClosingSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "pre-closing sync")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	summary, err := h.syncService.SyncBeforeMonthlyClosing(c.Request.Context(), req.Year, req.Month, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to run pre-closing synchronization")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *syncHandler) track(c *gin.Context, report domain.SyncReport) {
	middleware.PosthogEvent(c, h.posthogClient, utils.EventSyncCompleted, map[string]any{
		"domain":  string(report.Domain),
		"created": report.Count(domain.OutcomeCreated),
		"skipped": report.Count(domain.OutcomeSkippedDuplicate),
		"failed":  report.Count(domain.OutcomeFailed),
	})
}
