package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is one item sold on a sales invoice.
type InvoiceLine struct {
	ItemCode    string          `json:"itemCode"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// SalesInvoice records a sale to a customer. AmountReceived and Status are
// derived caches maintained together under optimistic concurrency.
type SalesInvoice struct {
	InvoiceID      string          `json:"invoiceID"`   // Primary key (UUID)
	ReferenceNo    string          `json:"referenceNo"` // Server-assigned, e.g. "SI000001"
	Date           time.Time       `json:"date"`
	CustomerID     string          `json:"customerID"` // FK -> customers
	ProjectID      string          `json:"projectID"`  // Optional FK -> projects
	Lines          []InvoiceLine   `json:"lines"`
	GrossTotal     decimal.Decimal `json:"grossTotal"`
	Discount       decimal.Decimal `json:"discount"`
	NetTotal       decimal.Decimal `json:"netTotal"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	Status         PaymentStatus   `json:"status"`
	Cancelled      bool            `json:"cancelled"`
	Version        int64           `json:"-"`
	AuditFields
}

// ReceiptSource identifies which document a customer receipt settles.
type ReceiptSource string

const (
	ReceiptAgainstInvoice  ReceiptSource = "invoice"
	ReceiptAgainstPlotSale ReceiptSource = "plot_sale"
)

// CustomerReceipt records one settlement from a customer. All receipts share
// a single log regardless of the document they settle, which lets customer
// ledgers replay them in one pass.
type CustomerReceipt struct {
	ReceiptID   string          `json:"receiptID"`  // Primary key (UUID)
	CustomerID  string          `json:"customerID"` // FK -> customers
	Source      ReceiptSource   `json:"source"`
	DocumentID  string          `json:"documentID"` // Invoice or plot sale ID
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	AuditFields
}
