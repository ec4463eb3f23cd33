package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlotSale records the sale of a plot to a customer. Balance is derived from
// FinalPrice and AmountReceived; Status follows the shared payment state machine.
type PlotSale struct {
	PlotSaleID     string          `json:"plotSaleID"`  // Primary key (UUID)
	ReferenceNo    string          `json:"referenceNo"` // Server-assigned, e.g. "PS000001"
	Date           time.Time       `json:"date"`
	PlotNumber     string          `json:"plotNumber"`
	ProjectID      string          `json:"projectID"`
	CustomerID     string          `json:"customerID"`
	PlotSize       decimal.Decimal `json:"plotSize"`
	Unit           string          `json:"unit"`
	FinalPrice     decimal.Decimal `json:"finalPrice"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	Balance        decimal.Decimal `json:"balance"`
	Status         PaymentStatus   `json:"status"`
	Cancelled      bool            `json:"cancelled"`
	Version        int64           `json:"-"`
	AuditFields
}
