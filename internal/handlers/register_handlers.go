package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitebooks/site_books_app/internal/apperrors"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerMasterDataRoutes(v1, services.MasterData)
	registerPurchaseRoutes(v1, services.Posting, services.Reconciliation)
	registerPaymentRoutes(v1, services.Posting)
	registerInvoiceRoutes(v1, services.Posting, services.Reconciliation)
	registerPlotSaleRoutes(v1, services.Posting, services.Reconciliation)
	registerLedgerRoutes(v1, services.Ledger)
	registerReportingRoutes(v1, services.Reporting)
	registerReconciliationRoutes(v1, services.Reconciliation)
	registerApprovalRoutes(v1, services.Approval)
}

// respondWithError translates service errors into HTTP responses. Handlers
// fall back to it after logging whatever context they have.
func respondWithError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
