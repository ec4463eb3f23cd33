package services

import (
	"context"

	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/dto"
)

// StockReconcilerSvc defines operations for verifying cached stock counters
type StockReconcilerSvc interface {
	// ReconcileStock replays the purchase and sale history of an item and
	// compares the expected stock with the cached counter.
	ReconcileStock(ctx context.Context, itemCode string) (*domain.StockReconciliation, error)

	// ReconcileAllStock reconciles every active item and corrects drifted
	// counters when fix is true.
	ReconcileAllStock(ctx context.Context, fix bool) ([]domain.StockReconciliation, error)
}

// SettlementSvc defines operations that settle money against open documents
type SettlementSvc interface {
	// RecordPurchasePayment appends a payment to a purchase and recomputes its
	// payment status.
	RecordPurchasePayment(ctx context.Context, purchaseID string, req dto.RecordPaymentRequest, userID string) (*domain.Purchase, error)

	// RecordInvoiceReceipt appends a customer receipt to a sales invoice.
	RecordInvoiceReceipt(ctx context.Context, invoiceID string, req dto.RecordReceiptRequest, userID string) (*domain.SalesInvoice, error)

	// RecordPlotReceipt appends a customer receipt to a plot sale.
	RecordPlotReceipt(ctx context.Context, plotSaleID string, req dto.RecordReceiptRequest, userID string) (*domain.PlotSale, error)
}

// ReconciliationSvcFacade combines stock and settlement reconciliation
type ReconciliationSvcFacade interface {
	StockReconcilerSvc
	SettlementSvc
}
