package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// DateRange bounds a query period. A nil side leaves that side open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether no bound is set.
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// Contains reports whether t falls inside the range (inclusive on both ends).
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}
