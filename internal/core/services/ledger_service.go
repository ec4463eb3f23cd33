package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/utils/legacynames"
)

// ledgerService reconstructs counterparty ledgers from the transaction log.
// Nothing here writes; every call replays the relevant documents.
type ledgerService struct {
	BaseService
	purchaseRepo    portsrepo.PurchaseReader
	bankPaymentRepo portsrepo.BankPaymentReader
	invoiceRepo     portsrepo.InvoiceReader
	cashPaymentRepo portsrepo.CashPaymentRepositoryFacade
	plotSaleRepo    portsrepo.PlotSaleRepositoryFacade
	supplierRepo    portsrepo.SupplierRepositoryFacade
	customerRepo    portsrepo.CustomerRepositoryFacade
	projectRepo     portsrepo.ProjectRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repos portsrepo.RepositoryProvider) portssvc.LedgerService {
	return &ledgerService{
		purchaseRepo:    repos.PurchaseRepo,
		bankPaymentRepo: repos.BankPaymentRepo,
		invoiceRepo:     repos.InvoiceRepo,
		cashPaymentRepo: repos.CashPaymentRepo,
		plotSaleRepo:    repos.PlotSaleRepo,
		supplierRepo:    repos.SupplierRepo,
		customerRepo:    repos.CustomerRepo,
		projectRepo:     repos.ProjectRepo,
	}
}

var _ portssvc.LedgerService = (*ledgerService)(nil)

// validateRange rejects ranges whose lower bound lies after the upper bound.
func validateRange(rng domain.DateRange) error {
	if rng.From != nil && rng.To != nil && rng.From.After(*rng.To) {
		return fmt.Errorf("%w: ledger range start %s is after end %s",
			apperrors.ErrValidation, rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02"))
	}
	return nil
}

// buildLedger sorts entries by date with creation order breaking ties, then
// accumulates the running balance as debits minus credits. A ranged ledger
// starts from zero; periods are independent of each other.
func buildLedger(entries []domain.LedgerEntry) *domain.Ledger {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Before(entries[j])
	})

	ledger := &domain.Ledger{
		Entries:     entries,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Balance:     decimal.Zero,
	}
	balance := decimal.Zero
	for i, e := range entries {
		balance = balance.Add(e.Debit).Sub(e.Credit)
		entries[i].RunningBalance = balance
		ledger.TotalDebit = ledger.TotalDebit.Add(e.Debit)
		ledger.TotalCredit = ledger.TotalCredit.Add(e.Credit)
	}
	ledger.Balance = balance
	return ledger
}

// SupplierLedger merges purchases (debit) and bank payments (credit) for one
// supplier. Payments written before supplier codes existed carry no code and
// are matched by payee name through the legacynames adapter.
func (s *ledgerService) SupplierLedger(ctx context.Context, supplierCode string, rng domain.DateRange) (*domain.Ledger, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindSupplierByCode(ctx, supplierCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierCode, err)
	}

	purchases, err := s.purchaseRepo.ListPurchasesBySupplier(ctx, supplierCode, rng)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases for supplier ledger", slog.String("supplier_code", supplierCode))
		return nil, fmt.Errorf("failed to list purchases for supplier %s: %w", supplierCode, err)
	}
	payments, err := s.bankPaymentRepo.ListBankPaymentsBySupplier(ctx, supplierCode, rng)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments for supplier ledger", slog.String("supplier_code", supplierCode))
		return nil, fmt.Errorf("failed to list payments for supplier %s: %w", supplierCode, err)
	}
	legacy, err := s.bankPaymentRepo.ListUnreferencedBankPayments(ctx, rng)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unreferenced payments for supplier ledger", slog.String("supplier_code", supplierCode))
		return nil, fmt.Errorf("failed to list unreferenced payments: %w", err)
	}
	for _, p := range legacy {
		if legacynames.Matches(p.PayeeName, supplier.Name) {
			payments = append(payments, p)
		}
	}

	entries := make([]domain.LedgerEntry, 0, len(purchases)+len(payments))
	for _, p := range purchases {
		entries = append(entries, domain.NewLedgerEntry(
			p.Date, domain.EntryPurchase, p.ReferenceNo, p.Description,
			p.NetAmount, decimal.Zero, p.CreatedAt))
	}
	for _, p := range payments {
		entries = append(entries, domain.NewLedgerEntry(
			p.Date, domain.EntryPayment, p.ReferenceNo, p.Description,
			decimal.Zero, p.TotalAmount, p.CreatedAt))
	}

	ledger := buildLedger(entries)
	s.LogDebug(ctx, "Supplier ledger reconstructed",
		slog.String("supplier_code", supplierCode),
		slog.Int("entry_count", len(ledger.Entries)))
	return ledger, nil
}

// CustomerLedger merges invoices and plot sales (debit) with receipts (credit)
// for one customer.
func (s *ledgerService) CustomerLedger(ctx context.Context, customerID string, rng domain.DateRange) (*domain.Ledger, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}

	invoices, err := s.invoiceRepo.ListSalesInvoicesByCustomer(ctx, customerID, rng)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices for customer ledger", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to list invoices for customer %s: %w", customerID, err)
	}
	plotSales, err := s.plotSaleRepo.ListPlotSalesByCustomer(ctx, customerID, rng)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plot sales for customer ledger", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to list plot sales for customer %s: %w", customerID, err)
	}
	receipts, err := s.invoiceRepo.ListReceiptsByCustomer(ctx, customerID, rng)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts for customer ledger", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to list receipts for customer %s: %w", customerID, err)
	}

	entries := make([]domain.LedgerEntry, 0, len(invoices)+len(plotSales)+len(receipts))
	for _, inv := range invoices {
		entries = append(entries, domain.NewLedgerEntry(
			inv.Date, domain.EntryInvoice, inv.ReferenceNo, invoiceDescription(inv),
			inv.NetTotal, decimal.Zero, inv.CreatedAt))
	}
	for _, ps := range plotSales {
		entries = append(entries, domain.NewLedgerEntry(
			ps.Date, domain.EntryPlotSale, ps.ReferenceNo, "Plot "+ps.PlotNumber,
			ps.FinalPrice, decimal.Zero, ps.CreatedAt))
	}
	for _, r := range receipts {
		entries = append(entries, domain.NewLedgerEntry(
			r.Date, domain.EntryReceipt, "", r.Description,
			decimal.Zero, r.Amount, r.CreatedAt))
	}

	ledger := buildLedger(entries)
	s.LogDebug(ctx, "Customer ledger reconstructed",
		slog.String("customer_id", customerID),
		slog.Int("entry_count", len(ledger.Entries)))
	return ledger, nil
}

// ProjectLedger merges all money movements attributed to one project. Costs
// (purchases and payment vouchers) post as debits, income (invoices and plot
// sales) as credits, so the balance is net spend on the project.
func (s *ledgerService) ProjectLedger(ctx context.Context, projectID string, rng domain.DateRange) (*domain.Ledger, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}

	purchases, err := s.purchaseRepo.ListPurchasesByProject(ctx, projectID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases for project %s: %w", projectID, err)
	}
	bankPayments, err := s.bankPaymentRepo.ListBankPaymentsByProject(ctx, projectID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank payments for project %s: %w", projectID, err)
	}
	cashPayments, err := s.cashPaymentRepo.ListCashPaymentsByProject(ctx, projectID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash payments for project %s: %w", projectID, err)
	}
	invoices, err := s.invoiceRepo.ListSalesInvoicesByProject(ctx, projectID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for project %s: %w", projectID, err)
	}
	plotSales, err := s.plotSaleRepo.ListPlotSalesByProject(ctx, projectID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list plot sales for project %s: %w", projectID, err)
	}

	entries := make([]domain.LedgerEntry, 0,
		len(purchases)+len(bankPayments)+len(cashPayments)+len(invoices)+len(plotSales))
	for _, p := range purchases {
		entries = append(entries, domain.NewLedgerEntry(
			p.Date, domain.EntryPurchase, p.ReferenceNo, p.Description,
			p.NetAmount, decimal.Zero, p.CreatedAt))
	}
	for _, p := range bankPayments {
		entries = append(entries, domain.NewLedgerEntry(
			p.Date, domain.EntryPayment, p.ReferenceNo, p.Description,
			p.TotalAmount, decimal.Zero, p.CreatedAt))
	}
	for _, p := range cashPayments {
		entries = append(entries, domain.NewLedgerEntry(
			p.Date, domain.EntryPayment, p.ReferenceNo, p.Description,
			p.TotalAmount, decimal.Zero, p.CreatedAt))
	}
	for _, inv := range invoices {
		entries = append(entries, domain.NewLedgerEntry(
			inv.Date, domain.EntryInvoice, inv.ReferenceNo, invoiceDescription(inv),
			decimal.Zero, inv.NetTotal, inv.CreatedAt))
	}
	for _, ps := range plotSales {
		entries = append(entries, domain.NewLedgerEntry(
			ps.Date, domain.EntryPlotSale, ps.ReferenceNo, "Plot "+ps.PlotNumber,
			decimal.Zero, ps.FinalPrice, ps.CreatedAt))
	}

	ledger := buildLedger(entries)
	s.LogDebug(ctx, "Project ledger reconstructed",
		slog.String("project_id", projectID),
		slog.Int("entry_count", len(ledger.Entries)))
	return ledger, nil
}

func invoiceDescription(inv domain.SalesInvoice) string {
	if len(inv.Lines) == 1 && inv.Lines[0].Description != "" {
		return inv.Lines[0].Description
	}
	return fmt.Sprintf("Invoice with %d items", len(inv.Lines))
}
