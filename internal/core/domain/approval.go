package domain

import (
	"encoding/json"
	"time"
)

// EntityKind names an entity a change request can target. The set is closed;
// dispatch over (EntityKind, ChangeOp) pairs is typed, not string-keyed.
type EntityKind string

const (
	EntityPurchase     EntityKind = "purchase"
	EntityBankPayment  EntityKind = "bank_payment"
	EntityCashPayment  EntityKind = "cash_payment"
	EntitySalesInvoice EntityKind = "sales_invoice"
	EntityPlotSale     EntityKind = "plot_sale"
	EntitySupplier     EntityKind = "supplier"
	EntityCustomer     EntityKind = "customer"
	EntityProject      EntityKind = "project"
)

// ChangeOp is the operation a change request asks for.
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpEdit   ChangeOp = "edit"
	OpVoid   ChangeOp = "void"
)

// RequestStatus is the review state of a change request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ChangeRequest is a proposed create/edit/void held for review. The patch is
// the raw request payload; it is applied by the registered applier for the
// (Entity, Op) pair only when the request is approved.
type ChangeRequest struct {
	RequestID   string          `json:"requestID"` // Primary key (UUID)
	Entity      EntityKind      `json:"entity"`
	Op          ChangeOp        `json:"op"`
	EntityID    string          `json:"entityID"` // Required for edit/void
	Patch       json.RawMessage `json:"patch"`
	Status      RequestStatus   `json:"status"`
	RequestedBy string          `json:"requestedBy"`
	ReviewedBy  string          `json:"reviewedBy"`
	ReviewNote  string          `json:"reviewNote"`
	ReviewedAt  *time.Time      `json:"reviewedAt,omitempty"`
	AuditFields
}
