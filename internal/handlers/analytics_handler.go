package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

const defaultReportFormat = "pdf"

// AnalyticsHandler serves the derived views: monthly summary, dashboard and reports.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// MonthlySummaryQuery binds the monthly summary query string.
type MonthlySummaryQuery struct {
	Month string `form:"month" binding:"required"`
	Year  string `form:"year" binding:"required"`
}

// ReportQuery binds the report summary query string.
type ReportQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
	Format    string `form:"format" binding:"omitempty,report_format"`
}

// ReportResponse is a report summary tagged with the requested output format.
type ReportResponse struct {
	*analytics.ReportSummary
	Format string `json:"format"`
}

// GetMonthlySummary handles the monthly summary request
// @Summary     Monthly summary
// @Description Income, expense, balance and transaction count for one calendar month
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       month query int true "Month (1-12)"
// @Param       year  query int true "Year"
// @Success     200 {object} analytics.MonthlySummary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/monthly [get]
func (h *AnalyticsHandler) GetMonthlySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q MonthlySummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month and year are required"))
		return
	}
	month, err := strconv.Atoi(q.Month)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidMonth)
		return
	}
	year, err := strconv.Atoi(q.Year)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidYear)
		return
	}

	summary, err := h.analyticsService.GetMonthlySummary(c.Request.Context(), userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetDashboard handles the dashboard request
// @Summary     Dashboard
// @Description Current month summary, recent transactions, category breakdown, trend and budget alert
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.DashboardSnapshot "Dashboard snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.analyticsService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetReportSummary handles the report summary request
// @Summary     Report summary
// @Description Totals, transactions and category breakdown for an inclusive date range. A reversed range yields an empty report.
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string true  "Start date (YYYY-MM-DD)"
// @Param       end_date   query string true  "End date (YYYY-MM-DD, inclusive)"
// @Param       format     query string false "Output format (pdf, excel)" default(pdf)
// @Success     200 {object} ReportResponse "Report summary"
// @Failure     400 {object} ErrorResponse "Invalid dates or format"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/summary [get]
func (h *AnalyticsHandler) GetReportSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		if q.Format != "" && !validator.ValidReportFormat(q.Format) {
			respondWithError(c, apperrors.ErrInvalidFormat)
			return
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date and end_date are required"))
		return
	}
	startDate, err := time.Parse(validator.DateLayout, q.StartDate)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidDateRange)
		return
	}
	endDate, err := time.Parse(validator.DateLayout, q.EndDate)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidDateRange)
		return
	}
	format := q.Format
	if format == "" {
		format = defaultReportFormat
	}

	report, err := h.analyticsService.GetReportSummary(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReportResponse{ReportSummary: report, Format: format})
}
