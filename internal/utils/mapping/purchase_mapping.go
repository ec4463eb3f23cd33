package mapping

import (
	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/models"
)

// ToModelPurchase converts a domain Purchase to a model Purchase
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:    d.PurchaseID,
		ReferenceNo:   d.ReferenceNo,
		Date:          d.Date,
		SupplierCode:  d.SupplierCode,
		SupplierName:  d.SupplierName,
		ProjectID:     d.ProjectID,
		ItemCode:      d.ItemCode,
		Description:   d.Description,
		Quantity:      d.Quantity,
		Unit:          d.Unit,
		Rate:          d.Rate,
		GrossAmount:   d.GrossAmount,
		Discount:      d.Discount,
		NetAmount:     d.NetAmount,
		AmountPaid:    d.AmountPaid,
		PaymentStatus: string(d.PaymentStatus),
		Cancelled:     d.Cancelled,
		Version:       d.Version,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase to a domain Purchase
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:    m.PurchaseID,
		ReferenceNo:   m.ReferenceNo,
		Date:          m.Date,
		SupplierCode:  m.SupplierCode,
		SupplierName:  m.SupplierName,
		ProjectID:     m.ProjectID,
		ItemCode:      m.ItemCode,
		Description:   m.Description,
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		Rate:          m.Rate,
		GrossAmount:   m.GrossAmount,
		Discount:      m.Discount,
		NetAmount:     m.NetAmount,
		AmountPaid:    m.AmountPaid,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		Cancelled:     m.Cancelled,
		Version:       m.Version,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseSlice converts a slice of model Purchases to domain Purchases
func ToDomainPurchaseSlice(ms []models.Purchase) []domain.Purchase {
	ds := make([]domain.Purchase, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchase(m)
	}
	return ds
}

// ToModelPurchasePayment converts a domain PurchasePayment to its model
func ToModelPurchasePayment(d domain.PurchasePayment) models.PurchasePayment {
	return models.PurchasePayment{
		PaymentID:   d.PaymentID,
		PurchaseID:  d.PurchaseID,
		Amount:      d.Amount,
		Date:        d.Date,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchasePayment converts a model PurchasePayment to its domain form
func ToDomainPurchasePayment(m models.PurchasePayment) domain.PurchasePayment {
	return domain.PurchasePayment{
		PaymentID:   m.PaymentID,
		PurchaseID:  m.PurchaseID,
		Amount:      m.Amount,
		Date:        m.Date,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
