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

// approvalHandler handles HTTP requests for the change approval queue.
type approvalHandler struct {
	approval portssvc.ApprovalSvcFacade
}

func newApprovalHandler(approval portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{approval: approval}
}

// registerApprovalRoutes registers routes related to change requests.
func registerApprovalRoutes(rg *gin.RouterGroup, approval portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(approval)

	requests := rg.Group("/change-requests")
	{
		requests.POST("", h.submitChangeRequest)
		requests.GET("", h.listChangeRequests)
		requests.GET("/:id", h.getChangeRequest)
		requests.POST("/:id/approve", h.approveChangeRequest)
		requests.POST("/:id/reject", h.rejectChangeRequest)
	}
}

func (h *approvalHandler) submitChangeRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cr, err := h.approval.SubmitChangeRequest(c.Request.Context(), req, requesterID)
	if err != nil {
		logger.Warn("Failed to submit change request", slog.String("entity", string(req.Entity)), slog.String("op", string(req.Op)), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to submit change request")
		return
	}

	logger.Info("Change request submitted", slog.String("request_id", cr.RequestID))
	c.JSON(http.StatusCreated, dto.ToChangeRequestResponse(cr))
}

func (h *approvalHandler) listChangeRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListChangeRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.approval.ListChangeRequests(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list change requests", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to list change requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *approvalHandler) getChangeRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	cr, err := h.approval.GetChangeRequestByID(c.Request.Context(), requestID)
	if err != nil {
		logger.Warn("Failed to get change request", slog.String("request_id", requestID), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to retrieve change request")
		return
	}
	c.JSON(http.StatusOK, dto.ToChangeRequestResponse(cr))
}

func (h *approvalHandler) approveChangeRequest(c *gin.Context) {
	h.review(c, true)
}

func (h *approvalHandler) rejectChangeRequest(c *gin.Context) {
	h.review(c, false)
}

func (h *approvalHandler) review(c *gin.Context, approve bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	// The review note is optional, an empty body is fine.
	var req dto.ReviewChangeRequest
	_ = c.ShouldBindJSON(&req)

	reviewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var cr *domain.ChangeRequest
	var err error
	if approve {
		cr, err = h.approval.ApproveChangeRequest(c.Request.Context(), requestID, reviewerID, req.Note)
	} else {
		cr, err = h.approval.RejectChangeRequest(c.Request.Context(), requestID, reviewerID, req.Note)
	}
	if err != nil {
		logger.Warn("Failed to review change request", slog.String("request_id", requestID), slog.Bool("approve", approve), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to review change request")
		return
	}

	logger.Info("Change request reviewed", slog.String("request_id", requestID), slog.String("status", string(cr.Status)))
	c.JSON(http.StatusOK, dto.ToChangeRequestResponse(cr))
}
