package domain

import "github.com/shopspring/decimal"

// StockStatus classifies an item's stock level against its minimum.
type StockStatus string

const (
	InStock    StockStatus = "In Stock"
	LowStock   StockStatus = "Low Stock"
	OutOfStock StockStatus = "Out of Stock"
)

// Item is an inventory item. CurrentStock is a running counter updated
// incrementally at write time; it must always be recomputable from the
// purchase and sales logs (see StockReconciliation).
type Item struct {
	ItemID        string          `json:"itemID"`   // Primary key (UUID)
	ItemCode      string          `json:"itemCode"` // Unique business key
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	OpeningStock  decimal.Decimal `json:"openingStock"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// StockStatusFor derives the stock status from a counter and a threshold.
func StockStatusFor(currentStock, minStockLevel decimal.Decimal) StockStatus {
	switch {
	case currentStock.LessThanOrEqual(decimal.Zero):
		return OutOfStock
	case currentStock.LessThanOrEqual(minStockLevel):
		return LowStock
	default:
		return InStock
	}
}

// StockReconciliation compares the cached stock counter against a full replay
// of the transaction log for one item.
type StockReconciliation struct {
	ItemCode       string          `json:"itemCode"`
	OpeningStock   decimal.Decimal `json:"openingStock"`
	TotalPurchased decimal.Decimal `json:"totalPurchased"`
	TotalSold      decimal.Decimal `json:"totalSold"`
	Expected       decimal.Decimal `json:"expected"` // opening + purchased - sold
	Cached         decimal.Decimal `json:"cached"`   // items.current_stock
	Drift          decimal.Decimal `json:"drift"`    // cached - expected
}
