package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo    *MockPurchaseRepository
	mockBankPaymentRepo *MockBankPaymentRepository
	mockCashPaymentRepo *MockCashPaymentRepository
	mockInvoiceRepo     *MockInvoiceRepository
	mockPlotSaleRepo    *MockPlotSaleRepository
	mockSupplierRepo    *MockSupplierRepository
	mockCustomerRepo    *MockCustomerRepository
	mockProjectRepo     *MockProjectRepository
	service             portssvc.LedgerService
	supplier            domain.Supplier
	customer            domain.Customer
	project             domain.Project
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockBankPaymentRepo = new(MockBankPaymentRepository)
	suite.mockCashPaymentRepo = new(MockCashPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPlotSaleRepo = new(MockPlotSaleRepository)
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockProjectRepo = new(MockProjectRepository)

	suite.service = services.NewLedgerService(portsrepo.RepositoryProvider{
		PurchaseRepo:    suite.mockPurchaseRepo,
		BankPaymentRepo: suite.mockBankPaymentRepo,
		CashPaymentRepo: suite.mockCashPaymentRepo,
		InvoiceRepo:     suite.mockInvoiceRepo,
		PlotSaleRepo:    suite.mockPlotSaleRepo,
		SupplierRepo:    suite.mockSupplierRepo,
		CustomerRepo:    suite.mockCustomerRepo,
		ProjectRepo:     suite.mockProjectRepo,
	})

	suite.supplier = domain.Supplier{
		SupplierID: uuid.NewString(),
		Code:       "SUP-001",
		Name:       "Ahmed Traders",
		IsActive:   true,
	}
	suite.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Malik Builders",
		IsActive:   true,
	}
	suite.project = domain.Project{
		ProjectID: uuid.NewString(),
		Code:      "PRJ-01",
		Name:      "Riverside Towers",
		Status:    domain.ProjectActive,
	}
}

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func (suite *LedgerServiceTestSuite) TestSupplierLedger_RunningBalance() {
	ctx := context.Background()
	d1, d2, d3 := day(2025, 3, 1), day(2025, 3, 2), day(2025, 3, 3)

	purchases := []domain.Purchase{
		{PurchaseID: uuid.NewString(), ReferenceNo: "PU000001", Date: d1,
			NetAmount: decimal.NewFromInt(1000), AuditFields: domain.AuditFields{CreatedAt: d1}},
		{PurchaseID: uuid.NewString(), ReferenceNo: "PU000002", Date: d3,
			NetAmount: decimal.NewFromInt(600), AuditFields: domain.AuditFields{CreatedAt: d3}},
	}
	payments := []domain.BankPayment{
		{PaymentID: uuid.NewString(), ReferenceNo: "BP000001", Date: d2,
			SupplierCode: suite.supplier.Code, TotalAmount: decimal.NewFromInt(500),
			AuditFields: domain.AuditFields{CreatedAt: d2}},
	}

	suite.mockSupplierRepo.On("FindSupplierByCode", ctx, suite.supplier.Code).Return(&suite.supplier, nil).Once()
	suite.mockPurchaseRepo.On("ListPurchasesBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return(purchases, nil).Once()
	suite.mockBankPaymentRepo.On("ListBankPaymentsBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return(payments, nil).Once()
	suite.mockBankPaymentRepo.On("ListUnreferencedBankPayments", ctx, domain.DateRange{}).Return([]domain.BankPayment{}, nil).Once()

	ledger, err := suite.service.SupplierLedger(ctx, suite.supplier.Code, domain.DateRange{})

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Entries, 3)
	suite.Equal("PU000001", ledger.Entries[0].Reference)
	suite.Equal("BP000001", ledger.Entries[1].Reference)
	suite.Equal("PU000002", ledger.Entries[2].Reference)
	suite.True(ledger.Entries[0].RunningBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(ledger.Entries[1].RunningBalance.Equal(decimal.NewFromInt(500)))
	suite.True(ledger.Entries[2].RunningBalance.Equal(decimal.NewFromInt(1100)))
	suite.True(ledger.TotalDebit.Equal(decimal.NewFromInt(1600)))
	suite.True(ledger.TotalCredit.Equal(decimal.NewFromInt(500)))
	suite.True(ledger.Balance.Equal(decimal.NewFromInt(1100)))
	suite.mockBankPaymentRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSupplierLedger_PaymentBetweenTwoPurchases() {
	ctx := context.Background()
	d1, d3, d2 := day(2025, 5, 1), day(2025, 5, 10), day(2025, 5, 20)

	purchases := []domain.Purchase{
		{PurchaseID: uuid.NewString(), ReferenceNo: "PU000021", Date: d1,
			NetAmount: decimal.NewFromInt(1000), AuditFields: domain.AuditFields{CreatedAt: d1}},
		{PurchaseID: uuid.NewString(), ReferenceNo: "PU000022", Date: d2,
			NetAmount: decimal.NewFromInt(500), AuditFields: domain.AuditFields{CreatedAt: d2}},
	}
	payments := []domain.BankPayment{
		{PaymentID: uuid.NewString(), ReferenceNo: "BP000021", Date: d3,
			SupplierCode: suite.supplier.Code, TotalAmount: decimal.NewFromInt(600),
			AuditFields: domain.AuditFields{CreatedAt: d3}},
	}

	suite.mockSupplierRepo.On("FindSupplierByCode", ctx, suite.supplier.Code).Return(&suite.supplier, nil).Once()
	suite.mockPurchaseRepo.On("ListPurchasesBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return(purchases, nil).Once()
	suite.mockBankPaymentRepo.On("ListBankPaymentsBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return(payments, nil).Once()
	suite.mockBankPaymentRepo.On("ListUnreferencedBankPayments", ctx, domain.DateRange{}).Return([]domain.BankPayment{}, nil).Once()

	ledger, err := suite.service.SupplierLedger(ctx, suite.supplier.Code, domain.DateRange{})

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Entries, 3)
	suite.Equal("PU000021", ledger.Entries[0].Reference)
	suite.Equal("BP000021", ledger.Entries[1].Reference)
	suite.Equal("PU000022", ledger.Entries[2].Reference)
	suite.True(ledger.Entries[0].RunningBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(ledger.Entries[1].RunningBalance.Equal(decimal.NewFromInt(400)))
	suite.True(ledger.Entries[2].RunningBalance.Equal(decimal.NewFromInt(900)))
	suite.True(ledger.Balance.Equal(decimal.NewFromInt(900)))
}

func (suite *LedgerServiceTestSuite) TestSupplierLedger_RebuildIsIdempotent() {
	ctx := context.Background()
	d1, d2 := day(2025, 5, 1), day(2025, 5, 8)

	purchases := []domain.Purchase{
		{PurchaseID: uuid.NewString(), ReferenceNo: "PU000031", Date: d1,
			NetAmount: decimal.NewFromInt(700), AuditFields: domain.AuditFields{CreatedAt: d1}},
	}
	payments := []domain.BankPayment{
		{PaymentID: uuid.NewString(), ReferenceNo: "BP000031", Date: d2,
			SupplierCode: suite.supplier.Code, TotalAmount: decimal.NewFromInt(250),
			AuditFields: domain.AuditFields{CreatedAt: d2}},
	}

	suite.mockSupplierRepo.On("FindSupplierByCode", ctx, suite.supplier.Code).Return(&suite.supplier, nil).Times(2)
	suite.mockPurchaseRepo.On("ListPurchasesBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return(purchases, nil).Times(2)
	suite.mockBankPaymentRepo.On("ListBankPaymentsBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return(payments, nil).Times(2)
	suite.mockBankPaymentRepo.On("ListUnreferencedBankPayments", ctx, domain.DateRange{}).Return([]domain.BankPayment{}, nil).Times(2)

	first, err := suite.service.SupplierLedger(ctx, suite.supplier.Code, domain.DateRange{})
	suite.Require().NoError(err)
	second, err := suite.service.SupplierLedger(ctx, suite.supplier.Code, domain.DateRange{})
	suite.Require().NoError(err)

	suite.Equal(first.Entries, second.Entries)
	suite.True(first.TotalDebit.Equal(second.TotalDebit))
	suite.True(first.TotalCredit.Equal(second.TotalCredit))
	suite.True(first.Balance.Equal(second.Balance))
}

func (suite *LedgerServiceTestSuite) TestSupplierLedger_RepoOrderDoesNotChangeLedger() {
	ctx := context.Background()
	p1 := domain.Purchase{PurchaseID: uuid.NewString(), ReferenceNo: "PU000041", Date: day(2025, 5, 2),
		NetAmount: decimal.NewFromInt(100), AuditFields: domain.AuditFields{CreatedAt: day(2025, 5, 2)}}
	p2 := domain.Purchase{PurchaseID: uuid.NewString(), ReferenceNo: "PU000042", Date: day(2025, 5, 9),
		NetAmount: decimal.NewFromInt(200), AuditFields: domain.AuditFields{CreatedAt: day(2025, 5, 9)}}
	p3 := domain.Purchase{PurchaseID: uuid.NewString(), ReferenceNo: "PU000043", Date: day(2025, 5, 16),
		NetAmount: decimal.NewFromInt(300), AuditFields: domain.AuditFields{CreatedAt: day(2025, 5, 16)}}

	suite.mockSupplierRepo.On("FindSupplierByCode", ctx, suite.supplier.Code).Return(&suite.supplier, nil).Times(2)
	suite.mockPurchaseRepo.On("ListPurchasesBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).
		Return([]domain.Purchase{p1, p2, p3}, nil).Once()
	suite.mockPurchaseRepo.On("ListPurchasesBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).
		Return([]domain.Purchase{p3, p1, p2}, nil).Once()
	suite.mockBankPaymentRepo.On("ListBankPaymentsBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return([]domain.BankPayment{}, nil).Times(2)
	suite.mockBankPaymentRepo.On("ListUnreferencedBankPayments", ctx, domain.DateRange{}).Return([]domain.BankPayment{}, nil).Times(2)

	chronological, err := suite.service.SupplierLedger(ctx, suite.supplier.Code, domain.DateRange{})
	suite.Require().NoError(err)
	scrambled, err := suite.service.SupplierLedger(ctx, suite.supplier.Code, domain.DateRange{})
	suite.Require().NoError(err)

	// The build sorts its input, so store ordering never leaks into the ledger.
	suite.Equal(chronological.Entries, scrambled.Entries)
	suite.True(chronological.Balance.Equal(decimal.NewFromInt(600)))
	suite.True(scrambled.Balance.Equal(decimal.NewFromInt(600)))
}

func (suite *LedgerServiceTestSuite) TestSupplierLedger_SameDateOrderedByCreation() {
	ctx := context.Background()
	d := day(2025, 4, 10)
	morning := d.Add(9 * time.Hour)
	evening := d.Add(17 * time.Hour)

	// The payment was recorded after the purchase on the same day, so the
	// balance must peak before the credit is applied.
	purchases := []domain.Purchase{
		{PurchaseID: uuid.NewString(), ReferenceNo: "PU000010", Date: d,
			NetAmount: decimal.NewFromInt(300), AuditFields: domain.AuditFields{CreatedAt: morning}},
	}
	payments := []domain.BankPayment{
		{PaymentID: uuid.NewString(), ReferenceNo: "BP000010", Date: d,
			SupplierCode: suite.supplier.Code, TotalAmount: decimal.NewFromInt(300),
			AuditFields: domain.AuditFields{CreatedAt: evening}},
	}

	suite.mockSupplierRepo.On("FindSupplierByCode", ctx, suite.supplier.Code).Return(&suite.supplier, nil).Once()
	suite.mockPurchaseRepo.On("ListPurchasesBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return(purchases, nil).Once()
	suite.mockBankPaymentRepo.On("ListBankPaymentsBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return(payments, nil).Once()
	suite.mockBankPaymentRepo.On("ListUnreferencedBankPayments", ctx, domain.DateRange{}).Return([]domain.BankPayment{}, nil).Once()

	ledger, err := suite.service.SupplierLedger(ctx, suite.supplier.Code, domain.DateRange{})

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Entries, 2)
	suite.Equal(domain.EntryPurchase, ledger.Entries[0].Type)
	suite.Equal(domain.EntryPayment, ledger.Entries[1].Type)
	suite.True(ledger.Balance.IsZero())
}

func (suite *LedgerServiceTestSuite) TestSupplierLedger_MatchesLegacyPayeeNames() {
	ctx := context.Background()
	d := day(2025, 1, 15)

	legacy := []domain.BankPayment{
		{PaymentID: uuid.NewString(), ReferenceNo: "BP000003", Date: d,
			PayeeName: "M/S Ahmed Traders", TotalAmount: decimal.NewFromInt(250),
			AuditFields: domain.AuditFields{CreatedAt: d}},
		{PaymentID: uuid.NewString(), ReferenceNo: "BP000004", Date: d,
			PayeeName: "Unrelated Vendor", TotalAmount: decimal.NewFromInt(999),
			AuditFields: domain.AuditFields{CreatedAt: d}},
	}

	suite.mockSupplierRepo.On("FindSupplierByCode", ctx, suite.supplier.Code).Return(&suite.supplier, nil).Once()
	suite.mockPurchaseRepo.On("ListPurchasesBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return([]domain.Purchase{}, nil).Once()
	suite.mockBankPaymentRepo.On("ListBankPaymentsBySupplier", ctx, suite.supplier.Code, domain.DateRange{}).Return([]domain.BankPayment{}, nil).Once()
	suite.mockBankPaymentRepo.On("ListUnreferencedBankPayments", ctx, domain.DateRange{}).Return(legacy, nil).Once()

	ledger, err := suite.service.SupplierLedger(ctx, suite.supplier.Code, domain.DateRange{})

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Entries, 1)
	suite.Equal("BP000003", ledger.Entries[0].Reference)
	suite.True(ledger.Balance.Equal(decimal.NewFromInt(-250)))
}

func (suite *LedgerServiceTestSuite) TestSupplierLedger_RejectsInvertedRange() {
	ctx := context.Background()
	from := day(2025, 6, 30)
	to := day(2025, 6, 1)

	_, err := suite.service.SupplierLedger(ctx, suite.supplier.Code, domain.DateRange{From: &from, To: &to})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSupplierRepo.AssertNotCalled(suite.T(), "FindSupplierByCode")
}

func (suite *LedgerServiceTestSuite) TestSupplierLedger_SupplierNotFound() {
	ctx := context.Background()

	suite.mockSupplierRepo.On("FindSupplierByCode", ctx, "SUP-404").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SupplierLedger(ctx, "SUP-404", domain.DateRange{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "ListPurchasesBySupplier")
}

func (suite *LedgerServiceTestSuite) TestCustomerLedger_MergesInvoicesPlotSalesAndReceipts() {
	ctx := context.Background()
	d1, d2, d3 := day(2025, 2, 1), day(2025, 2, 5), day(2025, 2, 9)
	customerID := suite.customer.CustomerID

	invoices := []domain.SalesInvoice{
		{InvoiceID: uuid.NewString(), ReferenceNo: "SI000001", Date: d1, CustomerID: customerID,
			Lines:    []domain.InvoiceLine{{ItemCode: "BRK-01", Description: "Bricks", Quantity: decimal.NewFromInt(100), Rate: decimal.NewFromInt(20), Amount: decimal.NewFromInt(2000)}},
			NetTotal: decimal.NewFromInt(2000), AuditFields: domain.AuditFields{CreatedAt: d1}},
	}
	plotSales := []domain.PlotSale{
		{PlotSaleID: uuid.NewString(), ReferenceNo: "PS000001", Date: d2, CustomerID: customerID,
			PlotNumber: "A-17", FinalPrice: decimal.NewFromInt(5000), AuditFields: domain.AuditFields{CreatedAt: d2}},
	}
	receipts := []domain.CustomerReceipt{
		{ReceiptID: uuid.NewString(), CustomerID: customerID, Source: domain.ReceiptAgainstInvoice,
			Amount: decimal.NewFromInt(1500), Date: d3, AuditFields: domain.AuditFields{CreatedAt: d3}},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(&suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("ListSalesInvoicesByCustomer", ctx, customerID, domain.DateRange{}).Return(invoices, nil).Once()
	suite.mockPlotSaleRepo.On("ListPlotSalesByCustomer", ctx, customerID, domain.DateRange{}).Return(plotSales, nil).Once()
	suite.mockInvoiceRepo.On("ListReceiptsByCustomer", ctx, customerID, domain.DateRange{}).Return(receipts, nil).Once()

	ledger, err := suite.service.CustomerLedger(ctx, customerID, domain.DateRange{})

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Entries, 3)
	suite.Equal("Bricks", ledger.Entries[0].Description)
	suite.Equal("Plot A-17", ledger.Entries[1].Description)
	suite.Equal(domain.EntryReceipt, ledger.Entries[2].Type)
	suite.True(ledger.TotalDebit.Equal(decimal.NewFromInt(7000)))
	suite.True(ledger.TotalCredit.Equal(decimal.NewFromInt(1500)))
	suite.True(ledger.Balance.Equal(decimal.NewFromInt(5500)))
}

func (suite *LedgerServiceTestSuite) TestProjectLedger_CostsDebitIncomeCredit() {
	ctx := context.Background()
	d1, d2, d3 := day(2025, 5, 1), day(2025, 5, 2), day(2025, 5, 3)
	projectID := suite.project.ProjectID

	purchases := []domain.Purchase{
		{PurchaseID: uuid.NewString(), ReferenceNo: "PU000020", Date: d1, ProjectID: projectID,
			NetAmount: decimal.NewFromInt(1000), AuditFields: domain.AuditFields{CreatedAt: d1}},
	}
	cashPayments := []domain.CashPayment{
		{PaymentID: uuid.NewString(), ReferenceNo: "CP000005", Date: d2, ProjectID: projectID,
			TotalAmount: decimal.NewFromInt(200), AuditFields: domain.AuditFields{CreatedAt: d2}},
	}
	invoices := []domain.SalesInvoice{
		{InvoiceID: uuid.NewString(), ReferenceNo: "SI000009", Date: d3, ProjectID: projectID,
			NetTotal: decimal.NewFromInt(500), AuditFields: domain.AuditFields{CreatedAt: d3}},
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(&suite.project, nil).Once()
	suite.mockPurchaseRepo.On("ListPurchasesByProject", ctx, projectID, domain.DateRange{}).Return(purchases, nil).Once()
	suite.mockBankPaymentRepo.On("ListBankPaymentsByProject", ctx, projectID, domain.DateRange{}).Return([]domain.BankPayment{}, nil).Once()
	suite.mockCashPaymentRepo.On("ListCashPaymentsByProject", ctx, projectID, domain.DateRange{}).Return(cashPayments, nil).Once()
	suite.mockInvoiceRepo.On("ListSalesInvoicesByProject", ctx, projectID, domain.DateRange{}).Return(invoices, nil).Once()
	suite.mockPlotSaleRepo.On("ListPlotSalesByProject", ctx, projectID, domain.DateRange{}).Return([]domain.PlotSale{}, nil).Once()

	ledger, err := suite.service.ProjectLedger(ctx, projectID, domain.DateRange{})

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Entries, 3)
	suite.True(ledger.TotalDebit.Equal(decimal.NewFromInt(1200)))
	suite.True(ledger.TotalCredit.Equal(decimal.NewFromInt(500)))
	suite.True(ledger.Balance.Equal(decimal.NewFromInt(700)))
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
