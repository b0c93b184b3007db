package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/middleware"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService, now: time.Now}

	reports := rg.Group("/reports")
	{
		reports.GET("/income-expense", h.getIncomeExpenseReport)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlowStatement)
	}
}

// getIncomeExpenseReport godoc
// @Summary Income and expense report
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int false "Month"
// @Success 200 {object} domain.IncomeExpenseReport
// @Failure 400 {object} ErrorResponse
// @Router /accounting/reports/income-expense [get]
// @Security BearerAuth
func (h *reportingHandler) getIncomeExpenseReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PeriodReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "report query")
		return
	}
	report, err := h.reportingService.GetIncomeExpenseReport(c.Request.Context(), params.Year, params.Month)
	if err != nil {
		respondError(c, logger, err, "Failed to generate income and expense report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Balance sheet as of a date
// @Tags reports
// @Produce json
// @Param date query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} ErrorResponse
// @Router /accounting/reports/balance-sheet [get]
// @Security BearerAuth
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "report query")
		return
	}
	asOf := h.now().UTC()
	if params.Date != "" {
		parsed, err := dto.ParseDate(params.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		asOf = parsed
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getCashFlowStatement godoc
// @Summary Cash flow statement
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int false "Month"
// @Success 200 {object} domain.CashFlowStatement
// @Failure 400 {object} ErrorResponse
// @Router /accounting/reports/cash-flow [get]
// @Security BearerAuth
func (h *reportingHandler) getCashFlowStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PeriodReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "report query")
		return
	}
	report, err := h.reportingService.GetCashFlowStatement(c.Request.Context(), params.Year, params.Month)
	if err != nil {
		respondError(c, logger, err, "Failed to generate cash flow statement")
		return
	}
	c.JSON(http.StatusOK, report)
}
