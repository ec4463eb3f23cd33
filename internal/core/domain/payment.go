package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentLine allocates part of a payment to an expense account head.
type PaymentLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// BankPayment is an outgoing payment from a bank account. SupplierCode is the
// explicit counterparty reference; PayeeName remains only for legacy rows that
// predate supplier codes and is matched through the legacynames adapter.
type BankPayment struct {
	PaymentID      string          `json:"paymentID"`   // Primary key (UUID)
	ReferenceNo    string          `json:"referenceNo"` // Server-assigned, e.g. "BP000001"
	Date           time.Time       `json:"date"`
	SupplierCode   string          `json:"supplierCode"`
	PayeeName      string          `json:"payeeName"`
	ProjectID      string          `json:"projectID"`
	BankAccount    string          `json:"bankAccount"`
	BankAccountNo  string          `json:"bankAccountNo"`
	ChequeNo       string          `json:"chequeNo"`
	ChequeDate     *time.Time      `json:"chequeDate,omitempty"`
	Description    string          `json:"description"`
	Lines          []PaymentLine   `json:"lines"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Cancelled      bool            `json:"cancelled"`
	AuditFields
}

// CashPayment is a petty-cash disbursement, usually against a project.
type CashPayment struct {
	PaymentID   string          `json:"paymentID"`   // Primary key (UUID)
	ReferenceNo string          `json:"referenceNo"` // Server-assigned, e.g. "CP000001"
	Date        time.Time       `json:"date"`
	ProjectID   string          `json:"projectID"`
	Description string          `json:"description"`
	Lines       []PaymentLine   `json:"lines"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Remarks     string          `json:"remarks"`
	Cancelled   bool            `json:"cancelled"`
	AuditFields
}
