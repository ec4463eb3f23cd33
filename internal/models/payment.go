package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankPayment mirrors the bank_payments table.
type BankPayment struct {
	PaymentID     string          `db:"payment_id"`
	ReferenceNo   string          `db:"reference_no"`
	Date          time.Time       `db:"doc_date"`
	SupplierCode  string          `db:"supplier_code"` // Nullable; legacy rows match by payee name
	PayeeName     string          `db:"payee_name"`
	ProjectID     string          `db:"project_id"` // Nullable
	BankAccount   string          `db:"bank_account"`
	BankAccountNo string          `db:"bank_account_no"`
	ChequeNo      string          `db:"cheque_no"`
	ChequeDate    *time.Time      `db:"cheque_date"`
	Description   string          `db:"description"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	Cancelled     bool            `db:"cancelled"`
	AuditFields
}

// PaymentLine mirrors the bank_payment_lines and cash_payment_lines tables.
type PaymentLine struct {
	PaymentID   string          `db:"payment_id"`
	LineNo      int             `db:"line_no"`
	AccountCode string          `db:"account_code"`
	AccountName string          `db:"account_name"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
}

// CashPayment mirrors the cash_payments table.
type CashPayment struct {
	PaymentID   string          `db:"payment_id"`
	ReferenceNo string          `db:"reference_no"`
	Date        time.Time       `db:"doc_date"`
	ProjectID   string          `db:"project_id"` // Nullable
	Description string          `db:"description"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Remarks     string          `db:"remarks"`
	Cancelled   bool            `db:"cancelled"`
	AuditFields
}
