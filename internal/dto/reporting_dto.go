package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// ReportPeriodParams defines query parameters bounding a report period.
type ReportPeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// SkippedRecordResponse identifies a source record excluded from a report.
type SkippedRecordResponse struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityID"`
	Reason     string `json:"reason"`
}

// IncomeStatementResponse represents the income statement report response.
type IncomeStatementResponse struct {
	FromDate string                     `json:"fromDate"`
	ToDate   string                     `json:"toDate"`
	Revenue  decimal.Decimal            `json:"revenue"`
	Expenses map[string]decimal.Decimal `json:"expenses"`
	Summary  struct {
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		GrossProfit   decimal.Decimal `json:"grossProfit"`
		OtherIncome   decimal.Decimal `json:"otherIncome"`
		NetIncome     decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
	Skipped []SkippedRecordResponse `json:"skipped,omitempty"`
}

// DashboardStatsResponse represents the dashboard totals with change indicators.
type DashboardStatsResponse struct {
	TotalSales     decimal.Decimal `json:"totalSales"`
	SalesChange    string          `json:"salesChange"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	ExpensesChange string          `json:"expensesChange"`
	NetProfit      decimal.Decimal `json:"netProfit"`
	ProfitChange   string          `json:"profitChange"`
	ActiveProjects int             `json:"activeProjects"`
	ProjectsChange string          `json:"projectsChange"`
}

// InventoryLineResponse represents one item row of the inventory report.
type InventoryLineResponse struct {
	ItemCode      string             `json:"itemCode"`
	ItemName      string             `json:"itemName"`
	Category      string             `json:"category,omitempty"`
	Unit          string             `json:"unit,omitempty"`
	Purchased     decimal.Decimal    `json:"purchased"`
	Sold          decimal.Decimal    `json:"sold"`
	CurrentStock  decimal.Decimal    `json:"currentStock"`
	Rate          decimal.Decimal    `json:"rate"`
	StockValue    decimal.Decimal    `json:"stockValue"`
	MinStockLevel decimal.Decimal    `json:"minStockLevel"`
	Status        domain.StockStatus `json:"status"`
}

// InventoryReportResponse represents the inventory report response.
type InventoryReportResponse struct {
	Summary struct {
		TotalItems          int             `json:"totalItems"`
		TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
		InStockItems        int             `json:"inStockItems"`
		LowStockItems       int             `json:"lowStockItems"`
		OutOfStockItems     int             `json:"outOfStockItems"`
	} `json:"summary"`
	Items   []InventoryLineResponse `json:"items"`
	Skipped []SkippedRecordResponse `json:"skipped,omitempty"`
}

// ProjectProgressResponse represents spend against budget for one project.
type ProjectProgressResponse struct {
	ProjectID string          `json:"projectID"`
	Name      string          `json:"name"`
	Client    string          `json:"client,omitempty"`
	Status    string          `json:"status"`
	Budget    decimal.Decimal `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Progress  int             `json:"progress"`
}

// StockReconciliationResponse represents the replay result for one item.
type StockReconciliationResponse struct {
	ItemCode       string          `json:"itemCode"`
	OpeningStock   decimal.Decimal `json:"openingStock"`
	TotalPurchased decimal.Decimal `json:"totalPurchased"`
	TotalSold      decimal.Decimal `json:"totalSold"`
	Expected       decimal.Decimal `json:"expected"`
	Cached         decimal.Decimal `json:"cached"`
	Drift          decimal.Decimal `json:"drift"`
}

func toSkippedResponses(skipped []domain.SkippedRecord) []SkippedRecordResponse {
	if len(skipped) == 0 {
		return nil
	}
	responses := make([]SkippedRecordResponse, len(skipped))
	for i, s := range skipped {
		responses[i] = SkippedRecordResponse{
			EntityType: s.EntityType,
			EntityID:   s.EntityID,
			Reason:     s.Reason,
		}
	}
	return responses
}

// ToIncomeStatementResponse converts a domain.IncomeStatement to its DTO.
func ToIncomeStatementResponse(st *domain.IncomeStatement, fromDate, toDate string) IncomeStatementResponse {
	expenses := make(map[string]decimal.Decimal, len(st.Expenses))
	for category, amount := range st.Expenses {
		expenses[string(category)] = amount
	}
	resp := IncomeStatementResponse{
		FromDate: fromDate,
		ToDate:   toDate,
		Revenue:  st.Revenue,
		Expenses: expenses,
		Skipped:  toSkippedResponses(st.Skipped),
	}
	resp.Summary.TotalExpenses = st.TotalExpenses
	resp.Summary.GrossProfit = st.GrossProfit
	resp.Summary.OtherIncome = st.OtherIncome
	resp.Summary.NetIncome = st.NetIncome
	return resp
}

// ToDashboardStatsResponse converts a domain.DashboardStats to its DTO.
func ToDashboardStatsResponse(st *domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalSales:     st.TotalSales,
		SalesChange:    st.SalesChange,
		TotalExpenses:  st.TotalExpenses,
		ExpensesChange: st.ExpensesChange,
		NetProfit:      st.NetProfit,
		ProfitChange:   st.ProfitChange,
		ActiveProjects: st.ActiveProjects,
		ProjectsChange: st.ProjectsChange,
	}
}

// ToInventoryReportResponse converts a domain.InventoryReport to its DTO.
func ToInventoryReportResponse(rep *domain.InventoryReport) InventoryReportResponse {
	items := make([]InventoryLineResponse, len(rep.Items))
	for i, line := range rep.Items {
		items[i] = InventoryLineResponse{
			ItemCode:      line.ItemCode,
			ItemName:      line.ItemName,
			Category:      line.Category,
			Unit:          line.Unit,
			Purchased:     line.Purchased,
			Sold:          line.Sold,
			CurrentStock:  line.CurrentStock,
			Rate:          line.Rate,
			StockValue:    line.StockValue,
			MinStockLevel: line.MinStockLevel,
			Status:        line.Status,
		}
	}
	resp := InventoryReportResponse{
		Items:   items,
		Skipped: toSkippedResponses(rep.Skipped),
	}
	resp.Summary.TotalItems = rep.Summary.TotalItems
	resp.Summary.TotalInventoryValue = rep.Summary.TotalInventoryValue
	resp.Summary.InStockItems = rep.Summary.InStockItems
	resp.Summary.LowStockItems = rep.Summary.LowStockItems
	resp.Summary.OutOfStockItems = rep.Summary.OutOfStockItems
	return resp
}

// ToProjectProgressResponses converts progress rows to DTOs.
func ToProjectProgressResponses(rows []domain.ProjectProgress) []ProjectProgressResponse {
	responses := make([]ProjectProgressResponse, len(rows))
	for i, r := range rows {
		responses[i] = ProjectProgressResponse{
			ProjectID: r.ProjectID,
			Name:      r.Name,
			Client:    r.Client,
			Status:    string(r.Status),
			Budget:    r.Budget,
			Spent:     r.Spent,
			Progress:  r.Progress,
		}
	}
	return responses
}

// ToStockReconciliationResponse converts a domain.StockReconciliation to its DTO.
func ToStockReconciliationResponse(rec *domain.StockReconciliation) StockReconciliationResponse {
	return StockReconciliationResponse{
		ItemCode:       rec.ItemCode,
		OpeningStock:   rec.OpeningStock,
		TotalPurchased: rec.TotalPurchased,
		TotalSold:      rec.TotalSold,
		Expected:       rec.Expected,
		Cached:         rec.Cached,
		Drift:          rec.Drift,
	}
}
