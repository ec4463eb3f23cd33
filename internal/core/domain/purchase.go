package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks how much of a payable/receivable document has been settled.
type PaymentStatus string

const (
	Unpaid  PaymentStatus = "unpaid"
	Partial PaymentStatus = "partial"
	Paid    PaymentStatus = "paid"
)

// Purchase is an immutable record of goods bought from a supplier.
// AmountPaid and PaymentStatus are derived caches over the payment log;
// they are only ever changed together, under optimistic concurrency.
type Purchase struct {
	PurchaseID    string          `json:"purchaseID"`   // Primary key (UUID)
	ReferenceNo   string          `json:"referenceNo"`  // Server-assigned, e.g. "PU000001"
	Date          time.Time       `json:"date"`
	SupplierCode  string          `json:"supplierCode"` // FK -> suppliers.code
	SupplierName  string          `json:"supplierName"` // Denormalized for display only
	ProjectID     string          `json:"projectID"`    // Optional FK -> projects
	ItemCode      string          `json:"itemCode"`     // FK -> items.item_code
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Rate          decimal.Decimal `json:"rate"`
	GrossAmount   decimal.Decimal `json:"grossAmount"`
	Discount      decimal.Decimal `json:"discount"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Cancelled     bool            `json:"cancelled"`
	Version       int64           `json:"-"` // Optimistic concurrency token
	AuditFields
}

// PurchasePayment is one settlement applied against a purchase.
type PurchasePayment struct {
	PaymentID   string          `json:"paymentID"`
	PurchaseID  string          `json:"purchaseID"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	AuditFields
}
