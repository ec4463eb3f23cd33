package domain

import "github.com/shopspring/decimal"

// SkippedRecord identifies a record excluded from a best-effort aggregate.
type SkippedRecord struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityID"`
	Reason     string `json:"reason"`
}

// IncomeStatement is the period profit and loss view. Purchases are always
// reported under materialExpense; bank payments are classified by description.
type IncomeStatement struct {
	Revenue       decimal.Decimal                     `json:"revenue"`
	Expenses      map[ExpenseCategory]decimal.Decimal `json:"expenses"`
	TotalExpenses decimal.Decimal                     `json:"totalExpenses"`
	GrossProfit   decimal.Decimal                     `json:"grossProfit"`
	OtherIncome   decimal.Decimal                     `json:"otherIncome"`
	NetIncome     decimal.Decimal                     `json:"netIncome"`
	Skipped       []SkippedRecord                     `json:"skipped"`
}

// DashboardStats summarizes the current month with month-over-month changes.
type DashboardStats struct {
	TotalSales     decimal.Decimal `json:"totalSales"`
	SalesChange    string          `json:"salesChange"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	ExpensesChange string          `json:"expensesChange"`
	NetProfit      decimal.Decimal `json:"netProfit"`
	ProfitChange   string          `json:"profitChange"`
	ActiveProjects int             `json:"activeProjects"`
	ProjectsChange string          `json:"projectsChange"`
}

// InventoryLine is the per-item row of an inventory report.
type InventoryLine struct {
	ItemCode      string          `json:"itemCode"`
	ItemName      string          `json:"itemName"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	Purchased     decimal.Decimal `json:"purchased"`
	Sold          decimal.Decimal `json:"sold"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	Rate          decimal.Decimal `json:"rate"`
	StockValue    decimal.Decimal `json:"stockValue"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	Status        StockStatus     `json:"status"`
}

// InventorySummary aggregates the inventory report.
type InventorySummary struct {
	TotalItems          int             `json:"totalItems"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	InStockItems        int             `json:"inStockItems"`
	LowStockItems       int             `json:"lowStockItems"`
	OutOfStockItems     int             `json:"outOfStockItems"`
}

// InventoryReport is the full stock position.
type InventoryReport struct {
	Summary InventorySummary `json:"summary"`
	Items   []InventoryLine  `json:"items"`
	Skipped []SkippedRecord  `json:"skipped"`
}

// ProjectProgress reports spend against budget for one project.
// Progress is capped at 100.
type ProjectProgress struct {
	ProjectID string          `json:"projectID"`
	Name      string          `json:"name"`
	Client    string          `json:"client"`
	Status    ProjectStatus   `json:"status"`
	Budget    decimal.Decimal `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Progress  int             `json:"progress"`
}
