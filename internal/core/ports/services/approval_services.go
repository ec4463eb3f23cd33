package services

import (
	"context"

	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/dto"
)

// ApprovalReaderSvc defines read operations for the approval queue
type ApprovalReaderSvc interface {
	// GetChangeRequestByID retrieves a specific change request by its ID.
	GetChangeRequestByID(ctx context.Context, requestID string) (*domain.ChangeRequest, error)

	// ListChangeRequests retrieves a paginated list of change requests.
	ListChangeRequests(ctx context.Context, params dto.ListChangeRequestsParams) (*dto.ListChangeRequestsResponse, error)
}

// ApprovalWriterSvc defines write operations for the approval queue
type ApprovalWriterSvc interface {
	// SubmitChangeRequest queues a create, edit or void for review.
	SubmitChangeRequest(ctx context.Context, req dto.SubmitChangeRequest, requesterID string) (*domain.ChangeRequest, error)

	// ApproveChangeRequest applies a pending request and marks it approved.
	ApproveChangeRequest(ctx context.Context, requestID string, reviewerID string, note string) (*domain.ChangeRequest, error)

	// RejectChangeRequest marks a pending request rejected without applying it.
	RejectChangeRequest(ctx context.Context, requestID string, reviewerID string, note string) (*domain.ChangeRequest, error)
}

// ApprovalSvcFacade combines all approval-related service interfaces
type ApprovalSvcFacade interface {
	ApprovalReaderSvc
	ApprovalWriterSvc
}
