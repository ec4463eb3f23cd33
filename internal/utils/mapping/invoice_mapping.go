package mapping

import (
	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/models"
)

// ToModelSalesInvoice converts a domain SalesInvoice to a model SalesInvoice
func ToModelSalesInvoice(d domain.SalesInvoice) models.SalesInvoice {
	return models.SalesInvoice{
		InvoiceID:      d.InvoiceID,
		ReferenceNo:    d.ReferenceNo,
		Date:           d.Date,
		CustomerID:     d.CustomerID,
		ProjectID:      d.ProjectID,
		GrossTotal:     d.GrossTotal,
		Discount:       d.Discount,
		NetTotal:       d.NetTotal,
		AmountReceived: d.AmountReceived,
		Status:         string(d.Status),
		Cancelled:      d.Cancelled,
		Version:        d.Version,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToModelSalesInvoiceLines converts the invoice's lines for storage
func ToModelSalesInvoiceLines(invoiceID string, ds []domain.InvoiceLine) []models.SalesInvoiceLine {
	ms := make([]models.SalesInvoiceLine, len(ds))
	for i, d := range ds {
		ms[i] = models.SalesInvoiceLine{
			InvoiceID:   invoiceID,
			LineNo:      i + 1,
			ItemCode:    d.ItemCode,
			Description: d.Description,
			Quantity:    d.Quantity,
			Rate:        d.Rate,
			Amount:      d.Amount,
		}
	}
	return ms
}

// ToDomainSalesInvoice converts a model SalesInvoice (with lines) to domain form
func ToDomainSalesInvoice(m models.SalesInvoice, lines []models.SalesInvoiceLine) domain.SalesInvoice {
	ds := make([]domain.InvoiceLine, len(lines))
	for i, l := range lines {
		ds[i] = domain.InvoiceLine{
			ItemCode:    l.ItemCode,
			Description: l.Description,
			Quantity:    l.Quantity,
			Rate:        l.Rate,
			Amount:      l.Amount,
		}
	}
	return domain.SalesInvoice{
		InvoiceID:      m.InvoiceID,
		ReferenceNo:    m.ReferenceNo,
		Date:           m.Date,
		CustomerID:     m.CustomerID,
		ProjectID:      m.ProjectID,
		Lines:          ds,
		GrossTotal:     m.GrossTotal,
		Discount:       m.Discount,
		NetTotal:       m.NetTotal,
		AmountReceived: m.AmountReceived,
		Status:         domain.PaymentStatus(m.Status),
		Cancelled:      m.Cancelled,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomerReceipt converts a domain CustomerReceipt to its model
func ToModelCustomerReceipt(d domain.CustomerReceipt) models.CustomerReceipt {
	return models.CustomerReceipt{
		ReceiptID:   d.ReceiptID,
		CustomerID:  d.CustomerID,
		Source:      string(d.Source),
		DocumentID:  d.DocumentID,
		Amount:      d.Amount,
		Date:        d.Date,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomerReceipt converts a model CustomerReceipt to domain form
func ToDomainCustomerReceipt(m models.CustomerReceipt) domain.CustomerReceipt {
	return domain.CustomerReceipt{
		ReceiptID:   m.ReceiptID,
		CustomerID:  m.CustomerID,
		Source:      domain.ReceiptSource(m.Source),
		DocumentID:  m.DocumentID,
		Amount:      m.Amount,
		Date:        m.Date,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
