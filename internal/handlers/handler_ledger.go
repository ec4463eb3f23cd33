package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for on-demand ledger reconstruction.
type ledgerHandler struct {
	ledger portssvc.LedgerService
}

func newLedgerHandler(ledger portssvc.LedgerService) *ledgerHandler {
	return &ledgerHandler{ledger: ledger}
}

// registerLedgerRoutes registers routes related to ledgers.
func registerLedgerRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerService) {
	h := newLedgerHandler(ledger)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.GET("/suppliers/:code", h.supplierLedger)
		ledgers.GET("/customers/:id", h.customerLedger)
		ledgers.GET("/projects/:id", h.projectLedger)
	}
}

func bindLedgerRange(c *gin.Context) (domain.DateRange, bool) {
	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return domain.DateRange{}, false
	}
	return domain.DateRange{From: params.From, To: params.To}, true
}

func (h *ledgerHandler) supplierLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierCode := c.Param("code")

	rng, ok := bindLedgerRange(c)
	if !ok {
		return
	}

	ledger, err := h.ledger.SupplierLedger(c.Request.Context(), supplierCode, rng)
	if err != nil {
		logger.Warn("Failed to build supplier ledger", slog.String("supplier_code", supplierCode), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to build supplier ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

func (h *ledgerHandler) customerLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	rng, ok := bindLedgerRange(c)
	if !ok {
		return
	}

	ledger, err := h.ledger.CustomerLedger(c.Request.Context(), customerID, rng)
	if err != nil {
		logger.Warn("Failed to build customer ledger", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to build customer ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

func (h *ledgerHandler) projectLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")

	rng, ok := bindLedgerRange(c)
	if !ok {
		return
	}

	ledger, err := h.ledger.ProjectLedger(c.Request.Context(), projectID, rng)
	if err != nil {
		logger.Warn("Failed to build project ledger", slog.String("project_id", projectID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to build project ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}
