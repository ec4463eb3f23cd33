package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/middleware"
)

// reconciliationHandler handles HTTP requests for stock reconciliation.
type reconciliationHandler struct {
	reconciler portssvc.StockReconcilerSvc
}

func newReconciliationHandler(reconciler portssvc.StockReconcilerSvc) *reconciliationHandler {
	return &reconciliationHandler{reconciler: reconciler}
}

// registerReconciliationRoutes registers routes related to stock reconciliation.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciler portssvc.StockReconcilerSvc) {
	h := newReconciliationHandler(reconciler)

	recon := rg.Group("/reconciliation")
	{
		recon.GET("/stock/:code", h.reconcileItem)
		recon.POST("/stock", h.reconcileAll)
	}
}

func (h *reconciliationHandler) reconcileItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemCode := c.Param("code")

	rec, err := h.reconciler.ReconcileStock(c.Request.Context(), itemCode)
	if err != nil {
		logger.Warn("Failed to reconcile stock", slog.String("item_code", itemCode), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to reconcile stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockReconciliationResponse(rec))
}

func (h *reconciliationHandler) reconcileAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fix, _ := strconv.ParseBool(c.DefaultQuery("fix", "false"))

	recs, err := h.reconciler.ReconcileAllStock(c.Request.Context(), fix)
	if err != nil {
		logger.Error("Failed to reconcile all stock", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to reconcile stock")
		return
	}

	responses := make([]dto.StockReconciliationResponse, len(recs))
	drifted := 0
	for i := range recs {
		responses[i] = dto.ToStockReconciliationResponse(&recs[i])
		if !recs[i].Drift.IsZero() {
			drifted++
		}
	}
	logger.Info("Stock reconciliation completed", slog.Int("items", len(recs)), slog.Int("drifted", drifted), slog.Bool("fix", fix))
	c.JSON(http.StatusOK, gin.H{"items": responses, "drifted": drifted})
}
