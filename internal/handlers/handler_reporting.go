package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/middleware"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles HTTP requests for aggregate reports.
type reportingHandler struct {
	reporting portssvc.ReportingService
}

func newReportingHandler(reporting portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reporting: reporting}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reporting portssvc.ReportingService) {
	h := newReportingHandler(reporting)

	reports := rg.Group("/reports")
	{
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/dashboard", h.dashboard)
		reports.GET("/inventory", h.inventory)
		reports.GET("/project-progress", h.projectProgress)
		reports.GET("/recent-projects", h.recentProjects)
	}
}

func (h *reportingHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	statement, err := h.reporting.IncomeStatement(c.Request.Context(), params.From, params.To)
	if err != nil {
		logger.Error("Failed to generate income statement", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to generate income statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(statement,
		params.From.Format(reportDateLayout), params.To.Format(reportDateLayout)))
}

func (h *reportingHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.reporting.DashboardStats(c.Request.Context(), time.Now().UTC())
	if err != nil {
		logger.Error("Failed to compute dashboard stats", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to compute dashboard stats")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardStatsResponse(stats))
}

func (h *reportingHandler) inventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reporting.InventoryReport(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate inventory report", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to generate inventory report")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryReportResponse(report))
}

func (h *reportingHandler) projectProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.reporting.ProjectProgress(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute project progress", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to compute project progress")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectProgressResponses(rows))
}

func (h *reportingHandler) recentProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	projects, err := h.reporting.RecentProjects(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list recent projects", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to list recent projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponses(projects))
}
