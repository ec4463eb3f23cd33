package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/platform/cache"
	"github.com/sitebooks/site_books_app/internal/utils/accounting"
)

// Reference prefixes, one per document type. The sequence behind each prefix
// is allocated by the database so references stay gapless per prefix under
// concurrent writers.
const (
	refPrefixPurchase    = "PU"
	refPrefixBankPayment = "BP"
	refPrefixCashPayment = "CP"
	refPrefixInvoice     = "SI"
	refPrefixPlotSale    = "PS"
)

// postingService records new documents in the transaction log. Every create
// assigns a server-side reference and maintains the stock counters affected
// by the document; voids flip the cancelled flag and reverse stock.
type postingService struct {
	BaseService
	purchaseRepo    portsrepo.PurchaseRepositoryFacade
	bankPaymentRepo portsrepo.BankPaymentRepositoryFacade
	cashPaymentRepo portsrepo.CashPaymentRepositoryFacade
	invoiceRepo     portsrepo.InvoiceRepositoryFacade
	plotSaleRepo    portsrepo.PlotSaleRepositoryFacade
	itemRepo        portsrepo.ItemRepositoryFacade
	supplierRepo    portsrepo.SupplierRepositoryFacade
	customerRepo    portsrepo.CustomerRepositoryFacade
	projectRepo     portsrepo.ProjectRepositoryFacade
	sequenceRepo    portsrepo.SequenceRepository
	reportCache     cache.ReportCache
}

// NewPostingService creates a new PostingService.
func NewPostingService(repos portsrepo.RepositoryProvider, reportCache cache.ReportCache) portssvc.PostingSvcFacade {
	return &postingService{
		purchaseRepo:    repos.PurchaseRepo,
		bankPaymentRepo: repos.BankPaymentRepo,
		cashPaymentRepo: repos.CashPaymentRepo,
		invoiceRepo:     repos.InvoiceRepo,
		plotSaleRepo:    repos.PlotSaleRepo,
		itemRepo:        repos.ItemRepo,
		supplierRepo:    repos.SupplierRepo,
		customerRepo:    repos.CustomerRepo,
		projectRepo:     repos.ProjectRepo,
		sequenceRepo:    repos.SequenceRepo,
		reportCache:     reportCache,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// checkProject validates an optional project reference.
func (s *postingService) checkProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return nil
	}
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return fmt.Errorf("failed to find project %s: %w", projectID, err)
	}
	return nil
}

// CreatePurchase records a purchase, derives its amounts, assigns the next
// reference and increments the cached stock of the purchased item.
func (s *postingService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Purchase, error) {
	supplier, err := s.supplierRepo.FindSupplierByCode(ctx, req.SupplierCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", req.SupplierCode, err)
	}
	if _, err := s.itemRepo.FindItemByCode(ctx, req.ItemCode); err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", req.ItemCode, err)
	}
	if err := s.checkProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	referenceNo, err := s.sequenceRepo.NextReference(ctx, refPrefixPurchase)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate purchase reference")
		return nil, fmt.Errorf("failed to allocate purchase reference: %w", err)
	}

	now := time.Now().UTC()
	gross, net := accounting.NetAmount(req.Quantity, req.Rate, decimal.Zero, req.Discount)
	purchase := domain.Purchase{
		PurchaseID:    uuid.NewString(),
		ReferenceNo:   referenceNo,
		Date:          req.Date,
		SupplierCode:  req.SupplierCode,
		SupplierName:  supplier.Name,
		ProjectID:     req.ProjectID,
		ItemCode:      req.ItemCode,
		Description:   req.Description,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		Rate:          req.Rate,
		GrossAmount:   gross,
		Discount:      req.Discount,
		NetAmount:     net,
		AmountPaid:    decimal.Zero,
		PaymentStatus: domain.Unpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.purchaseRepo.CreatePurchase(ctx, purchase); err != nil {
		s.LogError(ctx, err, "Failed to save purchase", slog.String("reference_no", referenceNo))
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}
	if err := s.itemRepo.AdjustStock(ctx, req.ItemCode, req.Quantity); err != nil {
		s.LogError(ctx, err, "Failed to increment stock after purchase",
			slog.String("item_code", req.ItemCode), slog.String("purchase_id", purchase.PurchaseID))
		return nil, fmt.Errorf("failed to adjust stock for item %s: %w", req.ItemCode, err)
	}

	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Purchase recorded",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("reference_no", referenceNo),
		slog.String("supplier_code", req.SupplierCode))
	return &purchase, nil
}

// GetPurchaseByID retrieves a specific purchase.
func (s *postingService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	return purchase, nil
}

// ListPurchases retrieves a page of purchases.
func (s *postingService) ListPurchases(ctx context.Context, params dto.ListPurchasesParams) (*dto.ListPurchasesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	purchases, nextToken, err := s.purchaseRepo.ListPurchasesPaged(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases")
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return &dto.ListPurchasesResponse{
		Purchases: dto.ToPurchaseResponses(purchases),
		NextToken: nextToken,
	}, nil
}

// VoidPurchase marks a purchase cancelled and reverses its stock increment.
// Voided documents stay in the log and drop out of every aggregate.
func (s *postingService) VoidPurchase(ctx context.Context, purchaseID string, requestingUserID string) error {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	if purchase.Cancelled {
		// Voiding twice is a no-op, not an error.
		return nil
	}

	now := time.Now().UTC()
	if err := s.purchaseRepo.VoidPurchase(ctx, purchaseID, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to void purchase", slog.String("purchase_id", purchaseID))
		return fmt.Errorf("failed to void purchase %s: %w", purchaseID, err)
	}
	if err := s.itemRepo.AdjustStock(ctx, purchase.ItemCode, purchase.Quantity.Neg()); err != nil {
		s.LogError(ctx, err, "Failed to reverse stock after void",
			slog.String("item_code", purchase.ItemCode), slog.String("purchase_id", purchaseID))
		return fmt.Errorf("failed to reverse stock for item %s: %w", purchase.ItemCode, err)
	}

	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Purchase voided", slog.String("purchase_id", purchaseID))
	return nil
}

func buildPaymentLines(reqLines []dto.PaymentLineRequest) ([]domain.PaymentLine, decimal.Decimal) {
	lines := make([]domain.PaymentLine, len(reqLines))
	total := decimal.Zero
	for i, l := range reqLines {
		lines[i] = domain.PaymentLine{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Description: l.Description,
			Amount:      l.Amount,
		}
		total = total.Add(l.Amount)
	}
	return lines, total
}

// CreateBankPayment records a bank payment voucher. The total is always the
// sum of the lines, never client-supplied.
func (s *postingService) CreateBankPayment(ctx context.Context, req dto.CreateBankPaymentRequest, creatorUserID string) (*domain.BankPayment, error) {
	if req.SupplierCode != "" {
		if _, err := s.supplierRepo.FindSupplierByCode(ctx, req.SupplierCode); err != nil {
			return nil, fmt.Errorf("failed to find supplier %s: %w", req.SupplierCode, err)
		}
	}
	if err := s.checkProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	referenceNo, err := s.sequenceRepo.NextReference(ctx, refPrefixBankPayment)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate bank payment reference")
		return nil, fmt.Errorf("failed to allocate bank payment reference: %w", err)
	}

	now := time.Now().UTC()
	lines, total := buildPaymentLines(req.Lines)
	payment := domain.BankPayment{
		PaymentID:     uuid.NewString(),
		ReferenceNo:   referenceNo,
		Date:          req.Date,
		SupplierCode:  req.SupplierCode,
		PayeeName:     req.PayeeName,
		ProjectID:     req.ProjectID,
		BankAccount:   req.BankAccount,
		BankAccountNo: req.BankAccountNo,
		ChequeNo:      req.ChequeNo,
		ChequeDate:    req.ChequeDate,
		Description:   req.Description,
		Lines:         lines,
		TotalAmount:   total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bankPaymentRepo.CreateBankPayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save bank payment", slog.String("reference_no", referenceNo))
		return nil, fmt.Errorf("failed to save bank payment: %w", err)
	}

	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Bank payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("reference_no", referenceNo),
		slog.String("payee", req.PayeeName))
	return &payment, nil
}

// CreateCashPayment records a cash payment voucher.
func (s *postingService) CreateCashPayment(ctx context.Context, req dto.CreateCashPaymentRequest, creatorUserID string) (*domain.CashPayment, error) {
	if err := s.checkProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	referenceNo, err := s.sequenceRepo.NextReference(ctx, refPrefixCashPayment)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate cash payment reference")
		return nil, fmt.Errorf("failed to allocate cash payment reference: %w", err)
	}

	now := time.Now().UTC()
	lines, total := buildPaymentLines(req.Lines)
	payment := domain.CashPayment{
		PaymentID:   uuid.NewString(),
		ReferenceNo: referenceNo,
		Date:        req.Date,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Lines:       lines,
		TotalAmount: total,
		Remarks:     req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.cashPaymentRepo.CreateCashPayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save cash payment", slog.String("reference_no", referenceNo))
		return nil, fmt.Errorf("failed to save cash payment: %w", err)
	}

	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Cash payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("reference_no", referenceNo))
	return &payment, nil
}

// VoidBankPayment marks a bank payment cancelled.
func (s *postingService) VoidBankPayment(ctx context.Context, paymentID string, requestingUserID string) error {
	payment, err := s.bankPaymentRepo.FindBankPaymentByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("failed to find bank payment %s: %w", paymentID, err)
	}
	if payment.Cancelled {
		return nil
	}
	if err := s.bankPaymentRepo.VoidBankPayment(ctx, paymentID, requestingUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to void bank payment", slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to void bank payment %s: %w", paymentID, err)
	}
	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Bank payment voided", slog.String("payment_id", paymentID))
	return nil
}

// VoidCashPayment marks a cash payment cancelled.
func (s *postingService) VoidCashPayment(ctx context.Context, paymentID string, requestingUserID string) error {
	payment, err := s.cashPaymentRepo.FindCashPaymentByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("failed to find cash payment %s: %w", paymentID, err)
	}
	if payment.Cancelled {
		return nil
	}
	if err := s.cashPaymentRepo.VoidCashPayment(ctx, paymentID, requestingUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to void cash payment", slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to void cash payment %s: %w", paymentID, err)
	}
	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Cash payment voided", slog.String("payment_id", paymentID))
	return nil
}

// CreateSalesInvoice records an invoice and decrements cached stock for every
// line. Stock may go negative; reconciliation surfaces it rather than the
// sale being blocked.
func (s *postingService) CreateSalesInvoice(ctx context.Context, req dto.CreateSalesInvoiceRequest, creatorUserID string) (*domain.SalesInvoice, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", req.CustomerID, err)
	}
	if err := s.checkProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	for _, l := range req.Lines {
		if _, err := s.itemRepo.FindItemByCode(ctx, l.ItemCode); err != nil {
			return nil, fmt.Errorf("failed to find item %s: %w", l.ItemCode, err)
		}
	}

	referenceNo, err := s.sequenceRepo.NextReference(ctx, refPrefixInvoice)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate invoice reference")
		return nil, fmt.Errorf("failed to allocate invoice reference: %w", err)
	}

	now := time.Now().UTC()
	lines := make([]domain.InvoiceLine, len(req.Lines))
	gross := decimal.Zero
	for i, l := range req.Lines {
		amount := l.Quantity.Mul(l.Rate)
		lines[i] = domain.InvoiceLine{
			ItemCode:    l.ItemCode,
			Description: l.Description,
			Quantity:    l.Quantity,
			Rate:        l.Rate,
			Amount:      amount,
		}
		gross = gross.Add(amount)
	}

	invoice := domain.SalesInvoice{
		InvoiceID:      uuid.NewString(),
		ReferenceNo:    referenceNo,
		Date:           req.Date,
		CustomerID:     req.CustomerID,
		ProjectID:      req.ProjectID,
		Lines:          lines,
		GrossTotal:     gross,
		Discount:       req.Discount,
		NetTotal:       gross.Sub(req.Discount),
		AmountReceived: decimal.Zero,
		Status:         domain.Unpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.CreateSalesInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save sales invoice", slog.String("reference_no", referenceNo))
		return nil, fmt.Errorf("failed to save sales invoice: %w", err)
	}
	for _, l := range lines {
		if err := s.itemRepo.AdjustStock(ctx, l.ItemCode, l.Quantity.Neg()); err != nil {
			s.LogError(ctx, err, "Failed to decrement stock after sale",
				slog.String("item_code", l.ItemCode), slog.String("invoice_id", invoice.InvoiceID))
			return nil, fmt.Errorf("failed to adjust stock for item %s: %w", l.ItemCode, err)
		}
	}

	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Sales invoice recorded",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("reference_no", referenceNo),
		slog.String("customer_id", req.CustomerID))
	return &invoice, nil
}

// VoidSalesInvoice marks an invoice cancelled and restores the stock its
// lines consumed.
func (s *postingService) VoidSalesInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	invoice, err := s.invoiceRepo.FindSalesInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Cancelled {
		return nil
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.VoidSalesInvoice(ctx, invoiceID, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to void sales invoice", slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to void invoice %s: %w", invoiceID, err)
	}
	for _, l := range invoice.Lines {
		if err := s.itemRepo.AdjustStock(ctx, l.ItemCode, l.Quantity); err != nil {
			s.LogError(ctx, err, "Failed to restore stock after invoice void",
				slog.String("item_code", l.ItemCode), slog.String("invoice_id", invoiceID))
			return fmt.Errorf("failed to restore stock for item %s: %w", l.ItemCode, err)
		}
	}

	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Sales invoice voided", slog.String("invoice_id", invoiceID))
	return nil
}

// CreatePlotSale records a plot sale. Plots are not stocked items; no
// counter moves.
func (s *postingService) CreatePlotSale(ctx context.Context, req dto.CreatePlotSaleRequest, creatorUserID string) (*domain.PlotSale, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", req.CustomerID, err)
	}
	if _, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to find project %s: %w", req.ProjectID, err)
	}

	referenceNo, err := s.sequenceRepo.NextReference(ctx, refPrefixPlotSale)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate plot sale reference")
		return nil, fmt.Errorf("failed to allocate plot sale reference: %w", err)
	}

	now := time.Now().UTC()
	sale := domain.PlotSale{
		PlotSaleID:     uuid.NewString(),
		ReferenceNo:    referenceNo,
		Date:           req.Date,
		PlotNumber:     req.PlotNumber,
		ProjectID:      req.ProjectID,
		CustomerID:     req.CustomerID,
		PlotSize:       req.PlotSize,
		Unit:           req.Unit,
		FinalPrice:     req.FinalPrice,
		AmountReceived: decimal.Zero,
		Balance:        req.FinalPrice,
		Status:         domain.Unpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.plotSaleRepo.CreatePlotSale(ctx, sale); err != nil {
		s.LogError(ctx, err, "Failed to save plot sale", slog.String("reference_no", referenceNo))
		return nil, fmt.Errorf("failed to save plot sale: %w", err)
	}

	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Plot sale recorded",
		slog.String("plot_sale_id", sale.PlotSaleID),
		slog.String("reference_no", referenceNo),
		slog.String("plot_number", req.PlotNumber))
	return &sale, nil
}

// VoidPlotSale marks a plot sale cancelled.
func (s *postingService) VoidPlotSale(ctx context.Context, plotSaleID string, requestingUserID string) error {
	sale, err := s.plotSaleRepo.FindPlotSaleByID(ctx, plotSaleID)
	if err != nil {
		return fmt.Errorf("failed to find plot sale %s: %w", plotSaleID, err)
	}
	if sale.Cancelled {
		return nil
	}
	if err := s.plotSaleRepo.VoidPlotSale(ctx, plotSaleID, requestingUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to void plot sale", slog.String("plot_sale_id", plotSaleID))
		return fmt.Errorf("failed to void plot sale %s: %w", plotSaleID, err)
	}
	s.reportCache.InvalidateReports(ctx)
	s.LogInfo(ctx, "Plot sale voided", slog.String("plot_sale_id", plotSaleID))
	return nil
}
