package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// InvoiceLineRequest defines one line on a sales invoice.
type InvoiceLineRequest struct {
	ItemCode    string          `json:"itemCode" binding:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required,dpositive"`
	Rate        decimal.Decimal `json:"rate" binding:"required,dpositive"`
}

// CreateSalesInvoiceRequest defines the data needed to record a sales invoice.
type CreateSalesInvoiceRequest struct {
	Date       time.Time            `json:"date" binding:"required"`
	CustomerID string               `json:"customerID" binding:"required"`
	ProjectID  string               `json:"projectID"`
	Discount   decimal.Decimal      `json:"discount"`
	Lines      []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RecordReceiptRequest defines the data needed to settle money from a customer.
type RecordReceiptRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dpositive"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
}

// InvoiceLineResponse defines one line returned on a sales invoice.
type InvoiceLineResponse struct {
	ItemCode    string          `json:"itemCode"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// SalesInvoiceResponse defines the data returned for a sales invoice.
type SalesInvoiceResponse struct {
	InvoiceID      string                `json:"invoiceID"`
	ReferenceNo    string                `json:"referenceNo"`
	Date           time.Time             `json:"date"`
	CustomerID     string                `json:"customerID"`
	ProjectID      string                `json:"projectID,omitempty"`
	Lines          []InvoiceLineResponse `json:"lines"`
	GrossTotal     decimal.Decimal       `json:"grossTotal"`
	Discount       decimal.Decimal       `json:"discount"`
	NetTotal       decimal.Decimal       `json:"netTotal"`
	AmountReceived decimal.Decimal       `json:"amountReceived"`
	Status         domain.PaymentStatus  `json:"status"`
	Cancelled      bool                  `json:"cancelled"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ToSalesInvoiceResponse converts a domain.SalesInvoice to SalesInvoiceResponse DTO.
func ToSalesInvoiceResponse(inv *domain.SalesInvoice) SalesInvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			ItemCode:    l.ItemCode,
			Description: l.Description,
			Quantity:    l.Quantity,
			Rate:        l.Rate,
			Amount:      l.Amount,
		}
	}
	return SalesInvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		ReferenceNo:    inv.ReferenceNo,
		Date:           inv.Date,
		CustomerID:     inv.CustomerID,
		ProjectID:      inv.ProjectID,
		Lines:          lines,
		GrossTotal:     inv.GrossTotal,
		Discount:       inv.Discount,
		NetTotal:       inv.NetTotal,
		AmountReceived: inv.AmountReceived,
		Status:         inv.Status,
		Cancelled:      inv.Cancelled,
		CreatedAt:      inv.CreatedAt,
		CreatedBy:      inv.CreatedBy,
	}
}
