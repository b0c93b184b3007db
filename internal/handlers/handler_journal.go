package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// registerJournalRoutes registers journal entry routes under /accounting/journal.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journal := rg.Group("/journal")
	{
		journal.GET("", h.listJournalEntries)
		journal.POST("", h.createJournalEntry)
		journal.GET("/:entryID", h.getJournalEntry)
		journal.PUT("/:entryID", h.updateJournalEntry)
		journal.DELETE("/:entryID", h.deleteJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Posts an income or expense record against a debit and a credit account. Fails with 409 when the month is closed.
// @Tags journal
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} domain.JournalEntry
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounting/journal [post]
// @Security BearerAuth
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "journal entry")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("journal_number", entry.JournalNumber))
	c.JSON(http.StatusCreated, entry)
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounting/journal/{entryID} [get]
// @Security BearerAuth
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entries ordered by date, optionally restricted to a year or month, an account, a category or a search term.
// @Tags journal
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (requires year)"
// @Param search query string false "Search in description, journal and reference number"
// @Param account_id query string false "Debit or credit account"
// @Param category_id query string false "Category"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounting/journal [get]
// @Security BearerAuth
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "journal query")
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateJournalEntry godoc
// @Summary Update a journal entry
// @Tags journal
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Fields to change"
// @Success 200 {object} domain.JournalEntry
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /accounting/journal/{entryID} [put]
// @Security BearerAuth
func (h *journalHandler) updateJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "journal entry update")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// deleteJournalEntry godoc
// @Summary Delete a journal entry
// @Tags journal
// @Param entryID path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /accounting/journal/{entryID} [delete]
// @Security BearerAuth
func (h *journalHandler) deleteJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), entryID, userID); err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}
