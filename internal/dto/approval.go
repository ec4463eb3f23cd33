package dto

import (
	"encoding/json"
	"time"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// SubmitChangeRequest defines the data needed to queue a change for review.
// Patch carries the proposed document body verbatim; it is validated against
// the entity's own rules only when the request is applied.
type SubmitChangeRequest struct {
	Entity   domain.EntityKind `json:"entity" binding:"required"`
	Op       domain.ChangeOp   `json:"op" binding:"required,oneof=create edit void"`
	EntityID string            `json:"entityID"`
	Patch    json.RawMessage   `json:"patch"`
}

// ReviewChangeRequest defines the reviewer's verdict payload.
type ReviewChangeRequest struct {
	Note string `json:"note"`
}

// ListChangeRequestsParams defines query parameters for listing change requests.
type ListChangeRequestsParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ChangeRequestResponse defines the data returned for a change request.
type ChangeRequestResponse struct {
	RequestID   string               `json:"requestID"`
	Entity      domain.EntityKind    `json:"entity"`
	Op          domain.ChangeOp      `json:"op"`
	EntityID    string               `json:"entityID,omitempty"`
	Patch       json.RawMessage      `json:"patch,omitempty"`
	Status      domain.RequestStatus `json:"status"`
	RequestedBy string               `json:"requestedBy"`
	ReviewedBy  string               `json:"reviewedBy,omitempty"`
	ReviewNote  string               `json:"reviewNote,omitempty"`
	ReviewedAt  *time.Time           `json:"reviewedAt,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ListChangeRequestsResponse wraps a page of change requests.
type ListChangeRequestsResponse struct {
	Requests  []ChangeRequestResponse `json:"requests"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToChangeRequestResponse converts a domain.ChangeRequest to its DTO.
func ToChangeRequestResponse(cr *domain.ChangeRequest) ChangeRequestResponse {
	return ChangeRequestResponse{
		RequestID:   cr.RequestID,
		Entity:      cr.Entity,
		Op:          cr.Op,
		EntityID:    cr.EntityID,
		Patch:       cr.Patch,
		Status:      cr.Status,
		RequestedBy: cr.RequestedBy,
		ReviewedBy:  cr.ReviewedBy,
		ReviewNote:  cr.ReviewNote,
		ReviewedAt:  cr.ReviewedAt,
		CreatedAt:   cr.CreatedAt,
	}
}

// ToChangeRequestResponses converts a slice of domain.ChangeRequest to DTOs.
func ToChangeRequestResponses(requests []domain.ChangeRequest) []ChangeRequestResponse {
	responses := make([]ChangeRequestResponse, len(requests))
	for i, cr := range requests {
		responses[i] = ToChangeRequestResponse(&cr)
	}
	return responses
}
