package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/middleware"
)

// paymentHandler handles HTTP requests for bank and cash payment vouchers.
type paymentHandler struct {
	posting portssvc.PostingSvcFacade
}

func newPaymentHandler(posting portssvc.PostingSvcFacade) *paymentHandler {
	return &paymentHandler{posting: posting}
}

// registerPaymentRoutes registers routes related to payment vouchers.
func registerPaymentRoutes(rg *gin.RouterGroup, posting portssvc.PostingSvcFacade) {
	h := newPaymentHandler(posting)

	bank := rg.Group("/bank-payments")
	{
		bank.POST("", h.createBankPayment)
		bank.POST("/:id/void", h.voidBankPayment)
	}
	cash := rg.Group("/cash-payments")
	{
		cash.POST("", h.createCashPayment)
		cash.POST("/:id/void", h.voidCashPayment)
	}
}

func (h *paymentHandler) createBankPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.posting.CreateBankPayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create bank payment", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create bank payment")
		return
	}

	logger.Info("Bank payment created", slog.String("payment_id", payment.PaymentID), slog.String("reference_no", payment.ReferenceNo))
	c.JSON(http.StatusCreated, dto.ToBankPaymentResponse(payment))
}

func (h *paymentHandler) voidBankPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.posting.VoidBankPayment(c.Request.Context(), paymentID, userID); err != nil {
		logger.Warn("Failed to void bank payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to void bank payment")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *paymentHandler) createCashPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCashPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.posting.CreateCashPayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create cash payment", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create cash payment")
		return
	}

	logger.Info("Cash payment created", slog.String("payment_id", payment.PaymentID), slog.String("reference_no", payment.ReferenceNo))
	c.JSON(http.StatusCreated, dto.ToCashPaymentResponse(payment))
}

func (h *paymentHandler) voidCashPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.posting.VoidCashPayment(c.Request.Context(), paymentID, userID); err != nil {
		logger.Warn("Failed to void cash payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to void cash payment")
		return
	}
	c.Status(http.StatusNoContent)
}
