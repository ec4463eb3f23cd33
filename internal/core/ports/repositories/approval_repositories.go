package repositories

import (
	"context"
	"time"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// ChangeRequestReader defines read operations for the approval queue.
type ChangeRequestReader interface {
	// FindChangeRequestByID retrieves a change request by ID.
	FindChangeRequestByID(ctx context.Context, requestID string) (*domain.ChangeRequest, error)

	// ListChangeRequests retrieves requests filtered by status (empty matches
	// all), newest first, with token pagination.
	ListChangeRequests(ctx context.Context, status domain.RequestStatus, limit int, nextToken string) ([]domain.ChangeRequest, string, error)
}

// ChangeRequestWriter defines write operations for the approval queue.
type ChangeRequestWriter interface {
	// CreateChangeRequest persists a new pending change request.
	CreateChangeRequest(ctx context.Context, request domain.ChangeRequest) error

	// MarkReviewed transitions a request out of pending. The update is guarded
	// so that only pending requests transition; a request already reviewed
	// yields apperrors.ErrConflict.
	MarkReviewed(ctx context.Context, requestID string, status domain.RequestStatus, reviewerID string, note string, reviewedAt time.Time) error
}

// ChangeRequestRepositoryFacade combines reader and writer for the approval queue.
type ChangeRequestRepositoryFacade interface {
	ChangeRequestReader
	ChangeRequestWriter
}
