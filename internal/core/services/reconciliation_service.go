package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/platform/cache"
	"github.com/sitebooks/site_books_app/internal/utils/accounting"
)

// maxSettleRetries bounds how often a settlement is replayed after losing a
// version race before giving up with ErrConflict.
const maxSettleRetries = 3

var ErrDocumentCancelled = errors.New("document is cancelled and cannot be settled")

// reconciliationService verifies cached counters against the transaction log
// and settles money against open documents under optimistic concurrency.
type reconciliationService struct {
	BaseService
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	plotSaleRepo portsrepo.PlotSaleRepositoryFacade
	itemRepo     portsrepo.ItemRepositoryFacade
	reportCache  cache.ReportCache
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(repos portsrepo.RepositoryProvider, reportCache cache.ReportCache) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		purchaseRepo: repos.PurchaseRepo,
		invoiceRepo:  repos.InvoiceRepo,
		plotSaleRepo: repos.PlotSaleRepo,
		itemRepo:     repos.ItemRepo,
		reportCache:  reportCache,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// ReconcileStock replays the full purchase and sale history of one item and
// compares the expected count with the cached counter.
func (s *reconciliationService) ReconcileStock(ctx context.Context, itemCode string) (*domain.StockReconciliation, error) {
	item, err := s.itemRepo.FindItemByCode(ctx, itemCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", itemCode, err)
	}

	purchased, err := s.purchaseRepo.SumPurchasedQuantityByItem(ctx, itemCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to replay purchases for stock reconciliation", slog.String("item_code", itemCode))
		return nil, fmt.Errorf("failed to sum purchased quantity for %s: %w", itemCode, err)
	}
	sold, err := s.invoiceRepo.SumSoldQuantityByItem(ctx, itemCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to replay sales for stock reconciliation", slog.String("item_code", itemCode))
		return nil, fmt.Errorf("failed to sum sold quantity for %s: %w", itemCode, err)
	}

	expected := item.OpeningStock.Add(purchased).Sub(sold)
	rec := &domain.StockReconciliation{
		ItemCode:       itemCode,
		OpeningStock:   item.OpeningStock,
		TotalPurchased: purchased,
		TotalSold:      sold,
		Expected:       expected,
		Cached:         item.CurrentStock,
		Drift:          item.CurrentStock.Sub(expected),
	}
	if !rec.Drift.IsZero() {
		s.LogInfo(ctx, "Stock counter drift detected",
			slog.String("item_code", itemCode),
			slog.String("expected", expected.String()),
			slog.String("cached", item.CurrentStock.String()))
	}
	return rec, nil
}

// ReconcileAllStock reconciles every active item. With fix set, drifted
// counters are overwritten with the replayed value.
func (s *reconciliationService) ReconcileAllStock(ctx context.Context, fix bool) ([]domain.StockReconciliation, error) {
	items, err := s.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for reconciliation: %w", err)
	}

	results := make([]domain.StockReconciliation, 0, len(items))
	for _, item := range items {
		rec, err := s.ReconcileStock(ctx, item.ItemCode)
		if err != nil {
			s.LogError(ctx, err, "Skipping item during bulk reconciliation", slog.String("item_code", item.ItemCode))
			continue
		}
		if fix && !rec.Drift.IsZero() {
			if err := s.itemRepo.SetStock(ctx, item.ItemCode, rec.Expected); err != nil {
				s.LogError(ctx, err, "Failed to correct drifted stock counter", slog.String("item_code", item.ItemCode))
				return nil, fmt.Errorf("failed to correct stock for %s: %w", item.ItemCode, err)
			}
			s.LogInfo(ctx, "Stock counter corrected",
				slog.String("item_code", item.ItemCode),
				slog.String("new_stock", rec.Expected.String()))
		}
		results = append(results, *rec)
	}
	if fix {
		s.reportCache.InvalidateReports(ctx)
	}
	return results, nil
}

// RecordPurchasePayment appends a settlement to a purchase and recomputes its
// payment status. The write is guarded by the document version; on a lost
// race the whole read-compute-write cycle is replayed.
func (s *reconciliationService) RecordPurchasePayment(ctx context.Context, purchaseID string, req dto.RecordPaymentRequest, userID string) (*domain.Purchase, error) {
	now := time.Now().UTC()

	for attempt := 1; attempt <= maxSettleRetries; attempt++ {
		purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
		if err != nil {
			return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
		}
		if purchase.Cancelled {
			return nil, fmt.Errorf("%w: purchase %s", ErrDocumentCancelled, purchaseID)
		}

		newPaid := purchase.AmountPaid.Add(req.Amount)
		newStatus := accounting.PaymentStatusFor(newPaid, purchase.NetAmount)
		payment := domain.PurchasePayment{
			PaymentID:   uuid.NewString(),
			PurchaseID:  purchaseID,
			Amount:      req.Amount,
			Date:        req.Date,
			Description: req.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		err = s.purchaseRepo.ApplyPayment(ctx, purchaseID, payment, newPaid, newStatus, purchase.Version)
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogDebug(ctx, "Purchase settlement lost version race, retrying",
				slog.String("purchase_id", purchaseID),
				slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			s.LogError(ctx, err, "Failed to apply purchase payment", slog.String("purchase_id", purchaseID))
			return nil, fmt.Errorf("failed to apply payment to purchase %s: %w", purchaseID, err)
		}

		purchase.AmountPaid = newPaid
		purchase.PaymentStatus = newStatus
		purchase.Version++
		s.reportCache.InvalidateReports(ctx)
		s.LogInfo(ctx, "Purchase payment recorded",
			slog.String("purchase_id", purchaseID),
			slog.String("amount", req.Amount.String()),
			slog.String("status", string(newStatus)))
		return purchase, nil
	}

	return nil, fmt.Errorf("%w: purchase %s kept changing under concurrent settlement", apperrors.ErrConflict, purchaseID)
}

// RecordInvoiceReceipt appends a customer receipt to a sales invoice.
// Overpayment is allowed; the excess surfaces as other income on reports.
func (s *reconciliationService) RecordInvoiceReceipt(ctx context.Context, invoiceID string, req dto.RecordReceiptRequest, userID string) (*domain.SalesInvoice, error) {
	now := time.Now().UTC()

	for attempt := 1; attempt <= maxSettleRetries; attempt++ {
		invoice, err := s.invoiceRepo.FindSalesInvoiceByID(ctx, invoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
		}
		if invoice.Cancelled {
			return nil, fmt.Errorf("%w: invoice %s", ErrDocumentCancelled, invoiceID)
		}

		newReceived := invoice.AmountReceived.Add(req.Amount)
		newStatus := accounting.PaymentStatusFor(newReceived, invoice.NetTotal)
		receipt := domain.CustomerReceipt{
			ReceiptID:   uuid.NewString(),
			CustomerID:  invoice.CustomerID,
			Source:      domain.ReceiptAgainstInvoice,
			DocumentID:  invoiceID,
			Amount:      req.Amount,
			Date:        req.Date,
			Description: req.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		err = s.invoiceRepo.ApplyReceipt(ctx, invoiceID, receipt, newReceived, newStatus, invoice.Version)
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogDebug(ctx, "Invoice receipt lost version race, retrying",
				slog.String("invoice_id", invoiceID),
				slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			s.LogError(ctx, err, "Failed to apply invoice receipt", slog.String("invoice_id", invoiceID))
			return nil, fmt.Errorf("failed to apply receipt to invoice %s: %w", invoiceID, err)
		}

		invoice.AmountReceived = newReceived
		invoice.Status = newStatus
		invoice.Version++
		s.reportCache.InvalidateReports(ctx)
		s.LogInfo(ctx, "Invoice receipt recorded",
			slog.String("invoice_id", invoiceID),
			slog.String("amount", req.Amount.String()),
			slog.String("status", string(newStatus)))
		return invoice, nil
	}

	return nil, fmt.Errorf("%w: invoice %s kept changing under concurrent settlement", apperrors.ErrConflict, invoiceID)
}

// RecordPlotReceipt appends a customer receipt to a plot sale.
func (s *reconciliationService) RecordPlotReceipt(ctx context.Context, plotSaleID string, req dto.RecordReceiptRequest, userID string) (*domain.PlotSale, error) {
	now := time.Now().UTC()

	for attempt := 1; attempt <= maxSettleRetries; attempt++ {
		sale, err := s.plotSaleRepo.FindPlotSaleByID(ctx, plotSaleID)
		if err != nil {
			return nil, fmt.Errorf("failed to find plot sale %s: %w", plotSaleID, err)
		}
		if sale.Cancelled {
			return nil, fmt.Errorf("%w: plot sale %s", ErrDocumentCancelled, plotSaleID)
		}

		newReceived := sale.AmountReceived.Add(req.Amount)
		newBalance := sale.FinalPrice.Sub(newReceived)
		if newBalance.IsNegative() {
			newBalance = decimal.Zero
		}
		newStatus := accounting.PaymentStatusFor(newReceived, sale.FinalPrice)
		receipt := domain.CustomerReceipt{
			ReceiptID:   uuid.NewString(),
			CustomerID:  sale.CustomerID,
			Source:      domain.ReceiptAgainstPlotSale,
			DocumentID:  plotSaleID,
			Amount:      req.Amount,
			Date:        req.Date,
			Description: req.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		err = s.plotSaleRepo.ApplyReceipt(ctx, plotSaleID, receipt, newReceived, newBalance, newStatus, sale.Version)
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogDebug(ctx, "Plot receipt lost version race, retrying",
				slog.String("plot_sale_id", plotSaleID),
				slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			s.LogError(ctx, err, "Failed to apply plot receipt", slog.String("plot_sale_id", plotSaleID))
			return nil, fmt.Errorf("failed to apply receipt to plot sale %s: %w", plotSaleID, err)
		}

		sale.AmountReceived = newReceived
		sale.Balance = newBalance
		sale.Status = newStatus
		sale.Version++
		s.reportCache.InvalidateReports(ctx)
		s.LogInfo(ctx, "Plot receipt recorded",
			slog.String("plot_sale_id", plotSaleID),
			slog.String("amount", req.Amount.String()),
			slog.String("status", string(newStatus)))
		return sale, nil
	}

	return nil, fmt.Errorf("%w: plot sale %s kept changing under concurrent settlement", apperrors.ErrConflict, plotSaleID)
}
