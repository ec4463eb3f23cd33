package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase mirrors the purchases table.
type Purchase struct {
	PurchaseID    string          `db:"purchase_id"`
	ReferenceNo   string          `db:"reference_no"`
	Date          time.Time       `db:"doc_date"`
	SupplierCode  string          `db:"supplier_code"`
	SupplierName  string          `db:"supplier_name"`
	ProjectID     string          `db:"project_id"` // Nullable
	ItemCode      string          `db:"item_code"`
	Description   string          `db:"description"`
	Quantity      decimal.Decimal `db:"quantity"`
	Unit          string          `db:"unit"`
	Rate          decimal.Decimal `db:"rate"`
	GrossAmount   decimal.Decimal `db:"gross_amount"`
	Discount      decimal.Decimal `db:"discount"`
	NetAmount     decimal.Decimal `db:"net_amount"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	PaymentStatus string          `db:"payment_status"`
	Cancelled     bool            `db:"cancelled"`
	Version       int64           `db:"version"`
	AuditFields
}

// PurchasePayment mirrors the purchase_payments table.
type PurchasePayment struct {
	PaymentID   string          `db:"payment_id"`
	PurchaseID  string          `db:"purchase_id"`
	Amount      decimal.Decimal `db:"amount"`
	Date        time.Time       `db:"doc_date"`
	Description string          `db:"description"`
	AuditFields
}
