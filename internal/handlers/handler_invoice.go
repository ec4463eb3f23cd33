package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/middleware"
)

// invoiceHandler handles HTTP requests related to sales invoices.
type invoiceHandler struct {
	posting    portssvc.PostingSvcFacade
	settlement portssvc.SettlementSvc
}

func newInvoiceHandler(posting portssvc.PostingSvcFacade, settlement portssvc.SettlementSvc) *invoiceHandler {
	return &invoiceHandler{posting: posting, settlement: settlement}
}

// registerInvoiceRoutes registers routes related to sales invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, posting portssvc.PostingSvcFacade, settlement portssvc.SettlementSvc) {
	h := newInvoiceHandler(posting, settlement)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.POST("/:id/receipts", h.recordReceipt)
		invoices.POST("/:id/void", h.voidInvoice)
	}
}

func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSalesInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.posting.CreateSalesInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create invoice", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("reference_no", invoice.ReferenceNo))
	c.JSON(http.StatusCreated, dto.ToSalesInvoiceResponse(invoice))
}

func (h *invoiceHandler) recordReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

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

	invoice, err := h.settlement.RecordInvoiceReceipt(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		logger.Warn("Failed to record invoice receipt", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to record receipt")
		return
	}

	logger.Info("Invoice receipt recorded", slog.String("invoice_id", invoiceID), slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToSalesInvoiceResponse(invoice))
}

func (h *invoiceHandler) voidInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.posting.VoidSalesInvoice(c.Request.Context(), invoiceID, userID); err != nil {
		logger.Warn("Failed to void invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to void invoice")
		return
	}
	c.Status(http.StatusNoContent)
}
