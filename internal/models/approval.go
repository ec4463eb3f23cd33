package models

import "time"

// ChangeRequest mirrors the change_requests table.
type ChangeRequest struct {
	RequestID   string     `db:"request_id"`
	Entity      string     `db:"entity"`
	Op          string     `db:"op"`
	EntityID    string     `db:"entity_id"` // Nullable
	Patch       []byte     `db:"patch"`     // JSONB
	Status      string     `db:"status"`
	RequestedBy string     `db:"requested_by"`
	ReviewedBy  string     `db:"reviewed_by"` // Nullable
	ReviewNote  string     `db:"review_note"`
	ReviewedAt  *time.Time `db:"reviewed_at"`
	AuditFields
}
