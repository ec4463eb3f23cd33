package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	purchaseRepo := newPgxPurchaseRepository(dbPool)
	bankPaymentRepo := newPgxBankPaymentRepository(dbPool)
	cashPaymentRepo := newPgxCashPaymentRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	plotSaleRepo := newPgxPlotSaleRepository(dbPool)
	itemRepo := newPgxItemRepository(dbPool)
	supplierRepo := newPgxSupplierRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	changeRequestRepo := newPgxChangeRequestRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		PurchaseRepo:      purchaseRepo,
		BankPaymentRepo:   bankPaymentRepo,
		CashPaymentRepo:   cashPaymentRepo,
		InvoiceRepo:       invoiceRepo,
		PlotSaleRepo:      plotSaleRepo,
		ItemRepo:          itemRepo,
		SupplierRepo:      supplierRepo,
		CustomerRepo:      customerRepo,
		ProjectRepo:       projectRepo,
		ChangeRequestRepo: changeRequestRepo,
		SequenceRepo:      sequenceRepo,
	}
}
