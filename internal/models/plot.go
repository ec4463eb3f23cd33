package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlotSale mirrors the plot_sales table.
type PlotSale struct {
	PlotSaleID     string          `db:"plot_sale_id"`
	ReferenceNo    string          `db:"reference_no"`
	Date           time.Time       `db:"doc_date"`
	PlotNumber     string          `db:"plot_number"`
	ProjectID      string          `db:"project_id"`
	CustomerID     string          `db:"customer_id"`
	PlotSize       decimal.Decimal `db:"plot_size"`
	Unit           string          `db:"unit"`
	FinalPrice     decimal.Decimal `db:"final_price"`
	AmountReceived decimal.Decimal `db:"amount_received"`
	Balance        decimal.Decimal `db:"balance"`
	Status         string          `db:"status"`
	Cancelled      bool            `db:"cancelled"`
	Version        int64           `db:"version"`
	AuditFields
}
