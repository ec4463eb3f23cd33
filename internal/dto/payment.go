package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// PaymentLineRequest defines one expense line on a payment voucher.
type PaymentLineRequest struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dpositive"`
}

// CreateBankPaymentRequest defines the data needed to record a bank payment.
type CreateBankPaymentRequest struct {
	Date          time.Time            `json:"date" binding:"required"`
	SupplierCode  string               `json:"supplierCode"`
	PayeeName     string               `json:"payeeName" binding:"required"`
	ProjectID     string               `json:"projectID"`
	BankAccount   string               `json:"bankAccount" binding:"required"`
	BankAccountNo string               `json:"bankAccountNo"`
	ChequeNo      string               `json:"chequeNo"`
	ChequeDate    *time.Time           `json:"chequeDate"`
	Description   string               `json:"description"`
	Lines         []PaymentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CreateCashPaymentRequest defines the data needed to record a cash payment.
type CreateCashPaymentRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	ProjectID   string               `json:"projectID"`
	Description string               `json:"description"`
	Remarks     string               `json:"remarks"`
	Lines       []PaymentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// PaymentLineResponse defines one expense line returned on a payment voucher.
type PaymentLineResponse struct {
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// BankPaymentResponse defines the data returned for a bank payment.
type BankPaymentResponse struct {
	PaymentID     string                `json:"paymentID"`
	ReferenceNo   string                `json:"referenceNo"`
	Date          time.Time             `json:"date"`
	SupplierCode  string                `json:"supplierCode,omitempty"`
	PayeeName     string                `json:"payeeName"`
	ProjectID     string                `json:"projectID,omitempty"`
	BankAccount   string                `json:"bankAccount"`
	BankAccountNo string                `json:"bankAccountNo,omitempty"`
	ChequeNo      string                `json:"chequeNo,omitempty"`
	ChequeDate    *time.Time            `json:"chequeDate,omitempty"`
	Description   string                `json:"description"`
	Lines         []PaymentLineResponse `json:"lines"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	Cancelled     bool                  `json:"cancelled"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
}

// CashPaymentResponse defines the data returned for a cash payment.
type CashPaymentResponse struct {
	PaymentID   string                `json:"paymentID"`
	ReferenceNo string                `json:"referenceNo"`
	Date        time.Time             `json:"date"`
	ProjectID   string                `json:"projectID,omitempty"`
	Description string                `json:"description"`
	Remarks     string                `json:"remarks,omitempty"`
	Lines       []PaymentLineResponse `json:"lines"`
	TotalAmount decimal.Decimal       `json:"totalAmount"`
	Cancelled   bool                  `json:"cancelled"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

func toPaymentLineResponses(lines []domain.PaymentLine) []PaymentLineResponse {
	responses := make([]PaymentLineResponse, len(lines))
	for i, l := range lines {
		responses[i] = PaymentLineResponse{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Description: l.Description,
			Amount:      l.Amount,
		}
	}
	return responses
}

// ToBankPaymentResponse converts a domain.BankPayment to BankPaymentResponse DTO.
func ToBankPaymentResponse(p *domain.BankPayment) BankPaymentResponse {
	return BankPaymentResponse{
		PaymentID:     p.PaymentID,
		ReferenceNo:   p.ReferenceNo,
		Date:          p.Date,
		SupplierCode:  p.SupplierCode,
		PayeeName:     p.PayeeName,
		ProjectID:     p.ProjectID,
		BankAccount:   p.BankAccount,
		BankAccountNo: p.BankAccountNo,
		ChequeNo:      p.ChequeNo,
		ChequeDate:    p.ChequeDate,
		Description:   p.Description,
		Lines:         toPaymentLineResponses(p.Lines),
		TotalAmount:   p.TotalAmount,
		Cancelled:     p.Cancelled,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
}

// ToCashPaymentResponse converts a domain.CashPayment to CashPaymentResponse DTO.
func ToCashPaymentResponse(p *domain.CashPayment) CashPaymentResponse {
	return CashPaymentResponse{
		PaymentID:   p.PaymentID,
		ReferenceNo: p.ReferenceNo,
		Date:        p.Date,
		ProjectID:   p.ProjectID,
		Description: p.Description,
		Remarks:     p.Remarks,
		Lines:       toPaymentLineResponses(p.Lines),
		TotalAmount: p.TotalAmount,
		Cancelled:   p.Cancelled,
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedBy,
	}
}
