package services

import (
	"context"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// LedgerService defines operations for reconstructing counterparty ledgers.
// Ledgers are derived on demand from the transaction log; nothing here writes.
type LedgerService interface {
	// SupplierLedger reconstructs the running-balance ledger for a supplier,
	// merging purchases (debit) and payments (credit) inside the range.
	SupplierLedger(ctx context.Context, supplierCode string, rng domain.DateRange) (*domain.Ledger, error)

	// CustomerLedger reconstructs the ledger for a customer from invoices,
	// receipts and plot sales.
	CustomerLedger(ctx context.Context, customerID string, rng domain.DateRange) (*domain.Ledger, error)

	// ProjectLedger reconstructs the ledger for a project from all money
	// movements attributed to it.
	ProjectLedger(ctx context.Context, projectID string, rng domain.DateRange) (*domain.Ledger, error)
}
