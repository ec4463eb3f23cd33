package models

import "github.com/shopspring/decimal"

// Item mirrors the items table.
type Item struct {
	ItemID        string          `db:"item_id"`
	ItemCode      string          `db:"item_code"`
	Name          string          `db:"name"`
	Category      string          `db:"category"`
	Unit          string          `db:"unit"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	SellingPrice  decimal.Decimal `db:"selling_price"`
	OpeningStock  decimal.Decimal `db:"opening_stock"`
	CurrentStock  decimal.Decimal `db:"current_stock"`
	MinStockLevel decimal.Decimal `db:"min_stock_level"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
