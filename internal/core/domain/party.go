package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is a vendor counterparty, addressed by its business code.
type Supplier struct {
	SupplierID string `json:"supplierID"` // Primary key (UUID)
	Code       string `json:"code"`       // Unique business key, e.g. "SUP-014"
	Name       string `json:"name"`
	Company    string `json:"company"`
	Category   string `json:"category"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// Customer is a buying counterparty for invoices and plot sales.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary key (UUID)
	Name       string `json:"name"`
	Company    string `json:"company"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// ProjectStatus is the lifecycle state of a construction project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectOnHold    ProjectStatus = "On Hold"
)

// Project groups purchases and payments for progress tracking.
// Budget is ValueOfJob, falling back to EstimatedCost when unset.
type Project struct {
	ProjectID     string          `json:"projectID"` // Primary key (UUID)
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Client        string          `json:"client"`
	Status        ProjectStatus   `json:"status"`
	ValueOfJob    decimal.Decimal `json:"valueOfJob"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
	StartDate     *time.Time      `json:"startDate,omitempty"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	AuditFields
}

// Budget returns the spending ceiling used for progress calculations.
func (p Project) Budget() decimal.Decimal {
	if p.ValueOfJob.IsPositive() {
		return p.ValueOfJob
	}
	return p.EstimatedCost
}
