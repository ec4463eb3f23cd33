package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoice mirrors the sales_invoices table.
type SalesInvoice struct {
	InvoiceID      string          `db:"invoice_id"`
	ReferenceNo    string          `db:"reference_no"`
	Date           time.Time       `db:"doc_date"`
	CustomerID     string          `db:"customer_id"`
	ProjectID      string          `db:"project_id"` // Nullable
	GrossTotal     decimal.Decimal `db:"gross_total"`
	Discount       decimal.Decimal `db:"discount"`
	NetTotal       decimal.Decimal `db:"net_total"`
	AmountReceived decimal.Decimal `db:"amount_received"`
	Status         string          `db:"status"`
	Cancelled      bool            `db:"cancelled"`
	Version        int64           `db:"version"`
	AuditFields
}

// SalesInvoiceLine mirrors the sales_invoice_lines table.
type SalesInvoiceLine struct {
	InvoiceID   string          `db:"invoice_id"`
	LineNo      int             `db:"line_no"`
	ItemCode    string          `db:"item_code"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	Rate        decimal.Decimal `db:"rate"`
	Amount      decimal.Decimal `db:"amount"`
}

// CustomerReceipt mirrors the customer_receipts table. Receipts against
// invoices and plot sales share it.
type CustomerReceipt struct {
	ReceiptID   string          `db:"receipt_id"`
	CustomerID  string          `db:"customer_id"`
	Source      string          `db:"source"`
	DocumentID  string          `db:"document_id"`
	Amount      decimal.Decimal `db:"amount"`
	Date        time.Time       `db:"doc_date"`
	Description string          `db:"description"`
	AuditFields
}
