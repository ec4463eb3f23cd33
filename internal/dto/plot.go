package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// CreatePlotSaleRequest defines the data needed to record a plot sale.
type CreatePlotSaleRequest struct {
	Date       time.Time       `json:"date" binding:"required"`
	PlotNumber string          `json:"plotNumber" binding:"required"`
	ProjectID  string          `json:"projectID" binding:"required"`
	CustomerID string          `json:"customerID" binding:"required"`
	PlotSize   decimal.Decimal `json:"plotSize"`
	Unit       string          `json:"unit"`
	FinalPrice decimal.Decimal `json:"finalPrice" binding:"required,dpositive"`
}

// PlotSaleResponse defines the data returned for a plot sale.
type PlotSaleResponse struct {
	PlotSaleID     string               `json:"plotSaleID"`
	ReferenceNo    string               `json:"referenceNo"`
	Date           time.Time            `json:"date"`
	PlotNumber     string               `json:"plotNumber"`
	ProjectID      string               `json:"projectID"`
	CustomerID     string               `json:"customerID"`
	PlotSize       decimal.Decimal      `json:"plotSize"`
	Unit           string               `json:"unit,omitempty"`
	FinalPrice     decimal.Decimal      `json:"finalPrice"`
	AmountReceived decimal.Decimal      `json:"amountReceived"`
	Balance        decimal.Decimal      `json:"balance"`
	Status         domain.PaymentStatus `json:"status"`
	Cancelled      bool                 `json:"cancelled"`
	CreatedAt      time.Time            `json:"createdAt"`
	CreatedBy      string               `json:"createdBy"`
}

// ToPlotSaleResponse converts a domain.PlotSale to PlotSaleResponse DTO.
func ToPlotSaleResponse(s *domain.PlotSale) PlotSaleResponse {
	return PlotSaleResponse{
		PlotSaleID:     s.PlotSaleID,
		ReferenceNo:    s.ReferenceNo,
		Date:           s.Date,
		PlotNumber:     s.PlotNumber,
		ProjectID:      s.ProjectID,
		CustomerID:     s.CustomerID,
		PlotSize:       s.PlotSize,
		Unit:           s.Unit,
		FinalPrice:     s.FinalPrice,
		AmountReceived: s.AmountReceived,
		Balance:        s.Balance,
		Status:         s.Status,
		Cancelled:      s.Cancelled,
		CreatedAt:      s.CreatedAt,
		CreatedBy:      s.CreatedBy,
	}
}
