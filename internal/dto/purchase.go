package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// CreatePurchaseRequest defines the data needed to record a purchase.
// Reference numbers are server-assigned and never accepted from clients.
type CreatePurchaseRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	SupplierCode string          `json:"supplierCode" binding:"required"`
	ProjectID    string          `json:"projectID"`
	ItemCode     string          `json:"itemCode" binding:"required"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required,dpositive"`
	Unit         string          `json:"unit"`
	Rate         decimal.Decimal `json:"rate" binding:"required,dpositive"`
	Discount     decimal.Decimal `json:"discount"`
}

// RecordPaymentRequest defines the data needed to settle money against a purchase.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dpositive"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
}

// ListPurchasesParams defines query parameters for listing purchases.
type ListPurchasesParams struct {
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// PurchaseResponse defines the data returned for a purchase.
type PurchaseResponse struct {
	PurchaseID    string               `json:"purchaseID"`
	ReferenceNo   string               `json:"referenceNo"`
	Date          time.Time            `json:"date"`
	SupplierCode  string               `json:"supplierCode"`
	SupplierName  string               `json:"supplierName"`
	ProjectID     string               `json:"projectID,omitempty"`
	ItemCode      string               `json:"itemCode"`
	Description   string               `json:"description"`
	Quantity      decimal.Decimal      `json:"quantity"`
	Unit          string               `json:"unit"`
	Rate          decimal.Decimal      `json:"rate"`
	GrossAmount   decimal.Decimal      `json:"grossAmount"`
	Discount      decimal.Decimal      `json:"discount"`
	NetAmount     decimal.Decimal      `json:"netAmount"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Cancelled     bool                 `json:"cancelled"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// ListPurchasesResponse wraps a page of purchases with the continuation token.
type ListPurchasesResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse DTO.
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:    p.PurchaseID,
		ReferenceNo:   p.ReferenceNo,
		Date:          p.Date,
		SupplierCode:  p.SupplierCode,
		SupplierName:  p.SupplierName,
		ProjectID:     p.ProjectID,
		ItemCode:      p.ItemCode,
		Description:   p.Description,
		Quantity:      p.Quantity,
		Unit:          p.Unit,
		Rate:          p.Rate,
		GrossAmount:   p.GrossAmount,
		Discount:      p.Discount,
		NetAmount:     p.NetAmount,
		AmountPaid:    p.AmountPaid,
		PaymentStatus: p.PaymentStatus,
		Cancelled:     p.Cancelled,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
}

// ToPurchaseResponses converts a slice of domain.Purchase to []PurchaseResponse.
func ToPurchaseResponses(purchases []domain.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		responses[i] = ToPurchaseResponse(&p)
	}
	return responses
}
