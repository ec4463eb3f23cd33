package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/middleware"
)

// plotSaleHandler handles HTTP requests related to plot sales.
type plotSaleHandler struct {
	posting    portssvc.PostingSvcFacade
	settlement portssvc.SettlementSvc
}

func newPlotSaleHandler(posting portssvc.PostingSvcFacade, settlement portssvc.SettlementSvc) *plotSaleHandler {
	return &plotSaleHandler{posting: posting, settlement: settlement}
}

// registerPlotSaleRoutes registers routes related to plot sales.
func registerPlotSaleRoutes(rg *gin.RouterGroup, posting portssvc.PostingSvcFacade, settlement portssvc.SettlementSvc) {
	h := newPlotSaleHandler(posting, settlement)

	plots := rg.Group("/plot-sales")
	{
		plots.POST("", h.createPlotSale)
		plots.POST("/:id/receipts", h.recordReceipt)
		plots.POST("/:id/void", h.voidPlotSale)
	}
}

func (h *plotSaleHandler) createPlotSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePlotSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.posting.CreatePlotSale(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create plot sale", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create plot sale")
		return
	}

	logger.Info("Plot sale created", slog.String("plot_sale_id", sale.PlotSaleID), slog.String("reference_no", sale.ReferenceNo))
	c.JSON(http.StatusCreated, dto.ToPlotSaleResponse(sale))
}

func (h *plotSaleHandler) recordReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plotSaleID := c.Param("id")

	var req dto.RecordReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.settlement.RecordPlotReceipt(c.Request.Context(), plotSaleID, req, userID)
	if err != nil {
		logger.Warn("Failed to record plot receipt", slog.String("plot_sale_id", plotSaleID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to record receipt")
		return
	}

	logger.Info("Plot receipt recorded", slog.String("plot_sale_id", plotSaleID), slog.String("status", string(sale.Status)))
	c.JSON(http.StatusOK, dto.ToPlotSaleResponse(sale))
}

func (h *plotSaleHandler) voidPlotSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plotSaleID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.posting.VoidPlotSale(c.Request.Context(), plotSaleID, userID); err != nil {
		logger.Warn("Failed to void plot sale", slog.String("plot_sale_id", plotSaleID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to void plot sale")
		return
	}
	c.Status(http.StatusNoContent)
}
