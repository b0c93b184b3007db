package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/middleware"
)

type lookupHandler struct {
	lookupService portssvc.LookupSvc
}

func registerLookupRoutes(rg *gin.RouterGroup, lookupService portssvc.LookupSvc) {
	h := &lookupHandler{lookupService: lookupService}
	rg.GET("/accounts", h.listAccounts)
	rg.GET("/categories", h.listCategories)
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Tags lookups
// @Produce json
// @Success 200 {array} domain.Account
// @Router /accounting/accounts [get]
// @Security BearerAuth
func (h *lookupHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.lookupService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// listCategories godoc
// @Summary List journal categories
// @Tags lookups
// @Produce json
// @Success 200 {array} domain.Category
// @Router /accounting/categories [get]
// @Security BearerAuth
func (h *lookupHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categories, err := h.lookupService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}
