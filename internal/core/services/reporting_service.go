package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/platform/cache"
	"github.com/sitebooks/site_books_app/internal/utils/accounting"
	"github.com/sitebooks/site_books_app/internal/utils/expenses"
)

const (
	dashboardCacheKey = "reports:dashboard"
	inventoryCacheKey = "reports:inventory"
	reportCacheTTL    = 5 * time.Minute
)

// reportingService derives aggregate views from the transaction log. Reports
// are best effort: a record that cannot be aggregated is skipped and named in
// the result instead of failing the whole report.
type reportingService struct {
	BaseService
	purchaseRepo    portsrepo.PurchaseReader
	bankPaymentRepo portsrepo.BankPaymentReader
	invoiceRepo     portsrepo.InvoiceReader
	itemRepo        portsrepo.ItemReader
	projectRepo     portsrepo.ProjectRepositoryFacade
	reportCache     cache.ReportCache
}

// NewReportingService creates a new ReportingService.
func NewReportingService(repos portsrepo.RepositoryProvider, reportCache cache.ReportCache) portssvc.ReportingService {
	return &reportingService{
		purchaseRepo:    repos.PurchaseRepo,
		bankPaymentRepo: repos.BankPaymentRepo,
		invoiceRepo:     repos.InvoiceRepo,
		itemRepo:        repos.ItemRepo,
		projectRepo:     repos.ProjectRepo,
		reportCache:     reportCache,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// IncomeStatement classifies the period's spending under the seven expense
// heads and nets it against revenue. Revenue is invoice net totals only;
// plot sale proceeds settle through the receipt log and stay off this
// statement. Purchases always post under materialExpense; bank payment
// voucher lines are classified by description.
func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: income statement start %s is after end %s",
			apperrors.ErrValidation, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	rng := domain.DateRange{From: &from, To: &to}

	statement := &domain.IncomeStatement{
		Revenue:       decimal.Zero,
		Expenses:      make(map[domain.ExpenseCategory]decimal.Decimal, len(domain.ExpenseCategories)),
		TotalExpenses: decimal.Zero,
		OtherIncome:   decimal.Zero,
	}
	for _, cat := range domain.ExpenseCategories {
		statement.Expenses[cat] = decimal.Zero
	}

	// Revenue: invoice net totals dated inside the period. Overpaid
	// invoices contribute the excess as other income, not revenue.
	invoices, err := s.invoiceRepo.ListSalesInvoices(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list invoices for income statement: %w", apperrors.ErrComputation, err)
	}
	for _, inv := range invoices {
		statement.Revenue = statement.Revenue.Add(inv.NetTotal)
		excess := inv.AmountReceived.Sub(inv.NetTotal)
		if excess.IsPositive() {
			statement.OtherIncome = statement.OtherIncome.Add(excess)
		}
	}

	// Expenses: purchases under materialExpense, bank voucher lines classified.
	purchases, err := s.purchaseRepo.ListPurchases(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list purchases for income statement: %w", apperrors.ErrComputation, err)
	}
	for _, p := range purchases {
		if p.NetAmount.IsNegative() {
			statement.Skipped = append(statement.Skipped, domain.SkippedRecord{
				EntityType: "purchase", EntityID: p.PurchaseID, Reason: "negative net amount",
			})
			continue
		}
		statement.Expenses[domain.MaterialExpense] = statement.Expenses[domain.MaterialExpense].Add(p.NetAmount)
	}

	bankPayments, err := s.bankPaymentRepo.ListBankPayments(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list bank payments for income statement: %w", apperrors.ErrComputation, err)
	}
	for _, bp := range bankPayments {
		if len(bp.Lines) == 0 {
			statement.Skipped = append(statement.Skipped, domain.SkippedRecord{
				EntityType: "bank_payment", EntityID: bp.PaymentID, Reason: "no expense lines",
			})
			continue
		}
		for _, line := range bp.Lines {
			cat := expenses.Classify(line.Description)
			statement.Expenses[cat] = statement.Expenses[cat].Add(line.Amount)
		}
	}

	for _, cat := range domain.ExpenseCategories {
		statement.TotalExpenses = statement.TotalExpenses.Add(statement.Expenses[cat])
	}
	statement.GrossProfit = statement.Revenue.Sub(statement.TotalExpenses)
	statement.NetIncome = statement.GrossProfit.Add(statement.OtherIncome)

	s.LogDebug(ctx, "Income statement generated",
		slog.Time("from", from), slog.Time("to", to),
		slog.Int("skipped", len(statement.Skipped)))
	return statement, nil
}

// monthTotals sums sales and expenses for one month.
func (s *reportingService) monthTotals(ctx context.Context, from, to time.Time) (sales, spend decimal.Decimal, err error) {
	rng := domain.DateRange{From: &from, To: &to}
	sales, spend = decimal.Zero, decimal.Zero

	invoices, err := s.invoiceRepo.ListSalesInvoices(ctx, rng)
	if err != nil {
		return sales, spend, err
	}
	for _, inv := range invoices {
		sales = sales.Add(inv.NetTotal)
	}

	purchases, err := s.purchaseRepo.ListPurchases(ctx, rng)
	if err != nil {
		return sales, spend, err
	}
	for _, p := range purchases {
		spend = spend.Add(p.NetAmount)
	}
	bankPayments, err := s.bankPaymentRepo.ListBankPayments(ctx, rng)
	if err != nil {
		return sales, spend, err
	}
	for _, bp := range bankPayments {
		spend = spend.Add(bp.TotalAmount)
	}
	return sales, spend, nil
}

// DashboardStats compares the running month against the previous one. The
// result is cached briefly; every write path invalidates it.
func (s *reportingService) DashboardStats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	var cached domain.DashboardStats
	if hit, err := s.reportCache.Get(ctx, dashboardCacheKey, &cached); err == nil && hit {
		s.LogDebug(ctx, "Dashboard stats served from cache")
		return &cached, nil
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.AddDate(0, -1, 0)
	prevEnd := monthStart.Add(-time.Nanosecond)

	curSales, curSpend, err := s.monthTotals(ctx, monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to total current month: %w", apperrors.ErrComputation, err)
	}
	prevSales, prevSpend, err := s.monthTotals(ctx, prevStart, prevEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to total previous month: %w", apperrors.ErrComputation, err)
	}

	activeProjects, err := s.projectRepo.CountProjectsByStatus(ctx, domain.ProjectActive)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count active projects: %w", apperrors.ErrComputation, err)
	}
	startedThisMonth := 0
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list projects: %w", apperrors.ErrComputation, err)
	}
	for _, p := range projects {
		if p.StartDate != nil && !p.StartDate.Before(monthStart) {
			startedThisMonth++
		}
	}

	curProfit := curSales.Sub(curSpend)
	prevProfit := prevSales.Sub(prevSpend)
	stats := &domain.DashboardStats{
		TotalSales:     curSales,
		SalesChange:    accounting.PercentChange(curSales, prevSales),
		TotalExpenses:  curSpend,
		ExpensesChange: accounting.PercentChange(curSpend, prevSpend),
		NetProfit:      curProfit,
		ProfitChange:   accounting.PercentChange(curProfit, prevProfit),
		ActiveProjects: activeProjects,
		ProjectsChange: fmt.Sprintf("+%d this month", startedThisMonth),
	}

	if err := s.reportCache.Set(ctx, dashboardCacheKey, stats, reportCacheTTL); err != nil {
		s.LogDebug(ctx, "Failed to cache dashboard stats", slog.String("error", err.Error()))
	}
	return stats, nil
}

// InventoryReport values and buckets each item from its write-time stock
// counter, with replayed purchased and sold quantities shown alongside. An
// item whose history cannot be replayed is skipped with a reason; the rest
// of the report still comes back.
func (s *reportingService) InventoryReport(ctx context.Context) (*domain.InventoryReport, error) {
	var cached domain.InventoryReport
	if hit, err := s.reportCache.Get(ctx, inventoryCacheKey, &cached); err == nil && hit {
		s.LogDebug(ctx, "Inventory report served from cache")
		return &cached, nil
	}

	items, err := s.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list items for inventory report: %w", apperrors.ErrComputation, err)
	}

	report := &domain.InventoryReport{
		Summary: domain.InventorySummary{TotalInventoryValue: decimal.Zero},
		Items:   make([]domain.InventoryLine, 0, len(items)),
	}
	for _, item := range items {
		purchased, err := s.purchaseRepo.SumPurchasedQuantityByItem(ctx, item.ItemCode)
		if err != nil {
			s.LogError(ctx, err, "Skipping item in inventory report", slog.String("item_code", item.ItemCode))
			report.Skipped = append(report.Skipped, domain.SkippedRecord{
				EntityType: "item", EntityID: item.ItemCode, Reason: "purchase history unavailable",
			})
			continue
		}
		sold, err := s.invoiceRepo.SumSoldQuantityByItem(ctx, item.ItemCode)
		if err != nil {
			s.LogError(ctx, err, "Skipping item in inventory report", slog.String("item_code", item.ItemCode))
			report.Skipped = append(report.Skipped, domain.SkippedRecord{
				EntityType: "item", EntityID: item.ItemCode, Reason: "sale history unavailable",
			})
			continue
		}

		// Status and value read the write-time counter, not a replay.
		// Drift between the two belongs to ReconcileStock.
		value := item.CurrentStock.Mul(item.SellingPrice)
		if value.IsNegative() {
			value = decimal.Zero
		}
		status := domain.StockStatusFor(item.CurrentStock, item.MinStockLevel)
		report.Items = append(report.Items, domain.InventoryLine{
			ItemCode:      item.ItemCode,
			ItemName:      item.Name,
			Category:      item.Category,
			Unit:          item.Unit,
			Purchased:     purchased,
			Sold:          sold,
			CurrentStock:  item.CurrentStock,
			Rate:          item.SellingPrice,
			StockValue:    value,
			MinStockLevel: item.MinStockLevel,
			Status:        status,
		})

		report.Summary.TotalItems++
		report.Summary.TotalInventoryValue = report.Summary.TotalInventoryValue.Add(value)
		switch status {
		case domain.InStock:
			report.Summary.InStockItems++
		case domain.LowStock:
			report.Summary.LowStockItems++
		case domain.OutOfStock:
			report.Summary.OutOfStockItems++
		}
	}

	if err := s.reportCache.Set(ctx, inventoryCacheKey, report, reportCacheTTL); err != nil {
		s.LogDebug(ctx, "Failed to cache inventory report", slog.String("error", err.Error()))
	}
	return report, nil
}

// ProjectProgress computes all-time spend, attributable purchases plus bank
// payments, against budget per project.
func (s *reportingService) ProjectProgress(ctx context.Context) ([]domain.ProjectProgress, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list projects for progress report: %w", apperrors.ErrComputation, err)
	}

	all := domain.DateRange{}
	rows := make([]domain.ProjectProgress, 0, len(projects))
	for _, p := range projects {
		spent := decimal.Zero
		purchases, err := s.purchaseRepo.ListPurchasesByProject(ctx, p.ProjectID, all)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list purchases for project %s: %w", apperrors.ErrComputation, p.ProjectID, err)
		}
		for _, pu := range purchases {
			spent = spent.Add(pu.NetAmount)
		}
		bankPayments, err := s.bankPaymentRepo.ListBankPaymentsByProject(ctx, p.ProjectID, all)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list bank payments for project %s: %w", apperrors.ErrComputation, p.ProjectID, err)
		}
		for _, bp := range bankPayments {
			spent = spent.Add(bp.TotalAmount)
		}

		budget := p.Budget()
		rows = append(rows, domain.ProjectProgress{
			ProjectID: p.ProjectID,
			Name:      p.Name,
			Client:    p.Client,
			Status:    p.Status,
			Budget:    budget,
			Spent:     spent,
			Progress:  accounting.ProgressPercent(spent, budget),
		})
	}
	return rows, nil
}

// RecentProjects lists the newest projects for the dashboard.
func (s *reportingService) RecentProjects(ctx context.Context, limit int) ([]domain.Project, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	projects, err := s.projectRepo.ListRecentProjects(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent projects: %w", err)
	}
	return projects, nil
}
