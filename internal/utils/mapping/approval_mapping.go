package mapping

import (
	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/models"
)

// ToModelChangeRequest converts a domain ChangeRequest to its model
func ToModelChangeRequest(d domain.ChangeRequest) models.ChangeRequest {
	return models.ChangeRequest{
		RequestID:   d.RequestID,
		Entity:      string(d.Entity),
		Op:          string(d.Op),
		EntityID:    d.EntityID,
		Patch:       []byte(d.Patch),
		Status:      string(d.Status),
		RequestedBy: d.RequestedBy,
		ReviewedBy:  d.ReviewedBy,
		ReviewNote:  d.ReviewNote,
		ReviewedAt:  d.ReviewedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChangeRequest converts a model ChangeRequest to domain form
func ToDomainChangeRequest(m models.ChangeRequest) domain.ChangeRequest {
	return domain.ChangeRequest{
		RequestID:   m.RequestID,
		Entity:      domain.EntityKind(m.Entity),
		Op:          domain.ChangeOp(m.Op),
		EntityID:    m.EntityID,
		Patch:       m.Patch,
		Status:      domain.RequestStatus(m.Status),
		RequestedBy: m.RequestedBy,
		ReviewedBy:  m.ReviewedBy,
		ReviewNote:  m.ReviewNote,
		ReviewedAt:  m.ReviewedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChangeRequestSlice converts a slice of model ChangeRequests
func ToDomainChangeRequestSlice(ms []models.ChangeRequest) []domain.ChangeRequest {
	ds := make([]domain.ChangeRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainChangeRequest(m)
	}
	return ds
}
