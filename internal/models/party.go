package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier mirrors the suppliers table.
type Supplier struct {
	SupplierID string `db:"supplier_id"`
	Code       string `db:"code"`
	Name       string `db:"name"`
	Company    string `db:"company"`
	Category   string `db:"category"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// Customer mirrors the customers table.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Company    string `db:"company"`
	Phone      string `db:"phone"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// Project mirrors the projects table.
type Project struct {
	ProjectID     string          `db:"project_id"`
	Code          string          `db:"code"`
	Name          string          `db:"name"`
	Client        string          `db:"client"`
	Status        string          `db:"status"`
	ValueOfJob    decimal.Decimal `db:"value_of_job"`
	EstimatedCost decimal.Decimal `db:"estimated_cost"`
	StartDate     *time.Time      `db:"start_date"`
	EndDate       *time.Time      `db:"end_date"`
	AuditFields
}
