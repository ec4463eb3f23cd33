package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// InvoiceReader defines read operations over the sales invoice log.
type InvoiceReader interface {
	// FindSalesInvoiceByID retrieves an invoice by its unique identifier.
	FindSalesInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error)

	// FindSalesInvoiceByReference retrieves an invoice by its reference number.
	FindSalesInvoiceByReference(ctx context.Context, referenceNo string) (*domain.SalesInvoice, error)

	// ListSalesInvoices retrieves non-cancelled invoices in the range, ordered
	// by date then creation time.
	ListSalesInvoices(ctx context.Context, rng domain.DateRange) ([]domain.SalesInvoice, error)

	// ListSalesInvoicesByCustomer retrieves non-cancelled invoices for a customer.
	ListSalesInvoicesByCustomer(ctx context.Context, customerID string, rng domain.DateRange) ([]domain.SalesInvoice, error)

	// ListSalesInvoicesByProject retrieves non-cancelled invoices for a project.
	ListSalesInvoicesByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.SalesInvoice, error)

	// SumSoldQuantityByItem replays invoice lines for one item and returns the
	// total non-cancelled quantity sold.
	SumSoldQuantityByItem(ctx context.Context, itemCode string) (decimal.Decimal, error)

	// ListReceiptsByCustomer retrieves the receipts recorded for a customer in
	// the range, ordered by date then creation time. Invoice and plot sale
	// receipts share one log. Receipts settling a cancelled document are
	// excluded along with it.
	ListReceiptsByCustomer(ctx context.Context, customerID string, rng domain.DateRange) ([]domain.CustomerReceipt, error)
}

// InvoiceWriter defines write operations on the sales invoice log.
type InvoiceWriter interface {
	// CreateSalesInvoice persists a new invoice with its lines.
	CreateSalesInvoice(ctx context.Context, invoice domain.SalesInvoice) error

	// ApplyReceipt appends a customer receipt and updates the derived
	// amountReceived and status atomically, guarded by the expected version.
	// Returns apperrors.ErrConflict when another writer got there first.
	ApplyReceipt(ctx context.Context, invoiceID string, receipt domain.CustomerReceipt, newAmountReceived decimal.Decimal, newStatus domain.PaymentStatus, expectedVersion int64) error

	// VoidSalesInvoice sets the cancelled flag.
	VoidSalesInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) error
}

// InvoiceRepositoryFacade combines invoice reads and writes.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
