package mapping

import (
	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/models"
)

// ToModelPaymentLines converts domain payment lines keyed by position
func ToModelPaymentLines(paymentID string, ds []domain.PaymentLine) []models.PaymentLine {
	ms := make([]models.PaymentLine, len(ds))
	for i, d := range ds {
		ms[i] = models.PaymentLine{
			PaymentID:   paymentID,
			LineNo:      i + 1,
			AccountCode: d.AccountCode,
			AccountName: d.AccountName,
			Description: d.Description,
			Amount:      d.Amount,
		}
	}
	return ms
}

// ToDomainPaymentLines converts model payment lines to domain form
func ToDomainPaymentLines(ms []models.PaymentLine) []domain.PaymentLine {
	ds := make([]domain.PaymentLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.PaymentLine{
			AccountCode: m.AccountCode,
			AccountName: m.AccountName,
			Description: m.Description,
			Amount:      m.Amount,
		}
	}
	return ds
}

// ToModelBankPayment converts a domain BankPayment to a model BankPayment
func ToModelBankPayment(d domain.BankPayment) models.BankPayment {
	return models.BankPayment{
		PaymentID:     d.PaymentID,
		ReferenceNo:   d.ReferenceNo,
		Date:          d.Date,
		SupplierCode:  d.SupplierCode,
		PayeeName:     d.PayeeName,
		ProjectID:     d.ProjectID,
		BankAccount:   d.BankAccount,
		BankAccountNo: d.BankAccountNo,
		ChequeNo:      d.ChequeNo,
		ChequeDate:    d.ChequeDate,
		Description:   d.Description,
		TotalAmount:   d.TotalAmount,
		Cancelled:     d.Cancelled,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankPayment converts a model BankPayment (with lines) to domain form
func ToDomainBankPayment(m models.BankPayment, lines []models.PaymentLine) domain.BankPayment {
	return domain.BankPayment{
		PaymentID:     m.PaymentID,
		ReferenceNo:   m.ReferenceNo,
		Date:          m.Date,
		SupplierCode:  m.SupplierCode,
		PayeeName:     m.PayeeName,
		ProjectID:     m.ProjectID,
		BankAccount:   m.BankAccount,
		BankAccountNo: m.BankAccountNo,
		ChequeNo:      m.ChequeNo,
		ChequeDate:    m.ChequeDate,
		Description:   m.Description,
		Lines:         ToDomainPaymentLines(lines),
		TotalAmount:   m.TotalAmount,
		Cancelled:     m.Cancelled,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCashPayment converts a domain CashPayment to a model CashPayment
func ToModelCashPayment(d domain.CashPayment) models.CashPayment {
	return models.CashPayment{
		PaymentID:   d.PaymentID,
		ReferenceNo: d.ReferenceNo,
		Date:        d.Date,
		ProjectID:   d.ProjectID,
		Description: d.Description,
		TotalAmount: d.TotalAmount,
		Remarks:     d.Remarks,
		Cancelled:   d.Cancelled,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashPayment converts a model CashPayment (with lines) to domain form
func ToDomainCashPayment(m models.CashPayment, lines []models.PaymentLine) domain.CashPayment {
	return domain.CashPayment{
		PaymentID:   m.PaymentID,
		ReferenceNo: m.ReferenceNo,
		Date:        m.Date,
		ProjectID:   m.ProjectID,
		Description: m.Description,
		Lines:       ToDomainPaymentLines(lines),
		TotalAmount: m.TotalAmount,
		Remarks:     m.Remarks,
		Cancelled:   m.Cancelled,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
