package services

import (
	"context"

	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/dto"
)

// PurchaseReaderSvc defines read operations over the purchase log
type PurchaseReaderSvc interface {
	// GetPurchaseByID retrieves a specific purchase by its ID.
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPurchases retrieves a paginated list of purchases.
	ListPurchases(ctx context.Context, params dto.ListPurchasesParams) (*dto.ListPurchasesResponse, error)
}

// PurchaseWriterSvc defines write operations over the purchase log
type PurchaseWriterSvc interface {
	// CreatePurchase records a new purchase, assigns its reference number and
	// increments the cached stock for the purchased item.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Purchase, error)

	// VoidPurchase marks a purchase cancelled and reverses its stock effect.
	VoidPurchase(ctx context.Context, purchaseID string, requestingUserID string) error
}

// PaymentWriterSvc defines write operations over the payment logs
type PaymentWriterSvc interface {
	// CreateBankPayment records a new bank payment voucher.
	CreateBankPayment(ctx context.Context, req dto.CreateBankPaymentRequest, creatorUserID string) (*domain.BankPayment, error)

	// CreateCashPayment records a new cash payment voucher.
	CreateCashPayment(ctx context.Context, req dto.CreateCashPaymentRequest, creatorUserID string) (*domain.CashPayment, error)

	// VoidBankPayment marks a bank payment cancelled.
	VoidBankPayment(ctx context.Context, paymentID string, requestingUserID string) error

	// VoidCashPayment marks a cash payment cancelled.
	VoidCashPayment(ctx context.Context, paymentID string, requestingUserID string) error
}

// InvoiceWriterSvc defines write operations over the sales invoice log
type InvoiceWriterSvc interface {
	// CreateSalesInvoice records a new invoice and decrements cached stock for
	// each invoiced item.
	CreateSalesInvoice(ctx context.Context, req dto.CreateSalesInvoiceRequest, creatorUserID string) (*domain.SalesInvoice, error)

	// VoidSalesInvoice marks an invoice cancelled and reverses its stock effect.
	VoidSalesInvoice(ctx context.Context, invoiceID string, requestingUserID string) error
}

// PlotSaleWriterSvc defines write operations over the plot sale log
type PlotSaleWriterSvc interface {
	// CreatePlotSale records a new plot sale.
	CreatePlotSale(ctx context.Context, req dto.CreatePlotSaleRequest, creatorUserID string) (*domain.PlotSale, error)

	// VoidPlotSale marks a plot sale cancelled.
	VoidPlotSale(ctx context.Context, plotSaleID string, requestingUserID string) error
}

// PostingSvcFacade combines all transaction posting interfaces.
// This is a facade for clients that need access to all operations
type PostingSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
	PaymentWriterSvc
	InvoiceWriterSvc
	PlotSaleWriterSvc
}
