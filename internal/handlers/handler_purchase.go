package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/middleware"
)

// purchaseHandler handles HTTP requests related to purchases.
type purchaseHandler struct {
	posting    portssvc.PostingSvcFacade
	settlement portssvc.SettlementSvc
}

func newPurchaseHandler(posting portssvc.PostingSvcFacade, settlement portssvc.SettlementSvc) *purchaseHandler {
	return &purchaseHandler{posting: posting, settlement: settlement}
}

// registerPurchaseRoutes registers routes related to purchases.
func registerPurchaseRoutes(rg *gin.RouterGroup, posting portssvc.PostingSvcFacade, settlement portssvc.SettlementSvc) {
	h := newPurchaseHandler(posting, settlement)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:id", h.getPurchase)
		purchases.POST("/:id/payments", h.recordPayment)
		purchases.POST("/:id/void", h.voidPurchase)
	}
}

func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	purchase, err := h.posting.CreatePurchase(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create purchase", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create purchase")
		return
	}

	logger.Info("Purchase created", slog.String("purchase_id", purchase.PurchaseID), slog.String("reference_no", purchase.ReferenceNo))
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

func (h *purchaseHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPurchasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.posting.ListPurchases(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list purchases", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to list purchases")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	purchase, err := h.posting.GetPurchaseByID(c.Request.Context(), purchaseID)
	if err != nil {
		logger.Warn("Failed to get purchase", slog.String("purchase_id", purchaseID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to retrieve purchase")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

func (h *purchaseHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	purchase, err := h.settlement.RecordPurchasePayment(c.Request.Context(), purchaseID, req, userID)
	if err != nil {
		logger.Warn("Failed to record purchase payment", slog.String("purchase_id", purchaseID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to record payment")
		return
	}

	logger.Info("Purchase payment recorded", slog.String("purchase_id", purchaseID), slog.String("status", string(purchase.PaymentStatus)))
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

func (h *purchaseHandler) voidPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.posting.VoidPurchase(c.Request.Context(), purchaseID, userID); err != nil {
		logger.Warn("Failed to void purchase", slog.String("purchase_id", purchaseID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to void purchase")
		return
	}

	logger.Info("Purchase voided", slog.String("purchase_id", purchaseID))
	c.Status(http.StatusNoContent)
}
