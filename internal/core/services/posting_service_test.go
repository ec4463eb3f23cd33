package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/core/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/platform/cache"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo    *MockPurchaseRepository
	mockBankPaymentRepo *MockBankPaymentRepository
	mockCashPaymentRepo *MockCashPaymentRepository
	mockInvoiceRepo     *MockInvoiceRepository
	mockPlotSaleRepo    *MockPlotSaleRepository
	mockItemRepo        *MockItemRepository
	mockSupplierRepo    *MockSupplierRepository
	mockCustomerRepo    *MockCustomerRepository
	mockProjectRepo     *MockProjectRepository
	mockSequenceRepo    *MockSequenceRepository
	service             portssvc.PostingSvcFacade
	supplier            domain.Supplier
	customer            domain.Customer
	item                domain.Item
	userID              string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockBankPaymentRepo = new(MockBankPaymentRepository)
	suite.mockCashPaymentRepo = new(MockCashPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPlotSaleRepo = new(MockPlotSaleRepository)
	suite.mockItemRepo = new(MockItemRepository)
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)

	suite.service = services.NewPostingService(portsrepo.RepositoryProvider{
		PurchaseRepo:    suite.mockPurchaseRepo,
		BankPaymentRepo: suite.mockBankPaymentRepo,
		CashPaymentRepo: suite.mockCashPaymentRepo,
		InvoiceRepo:     suite.mockInvoiceRepo,
		PlotSaleRepo:    suite.mockPlotSaleRepo,
		ItemRepo:        suite.mockItemRepo,
		SupplierRepo:    suite.mockSupplierRepo,
		CustomerRepo:    suite.mockCustomerRepo,
		ProjectRepo:     suite.mockProjectRepo,
		SequenceRepo:    suite.mockSequenceRepo,
	}, cache.NoopReportCache{})

	suite.supplier = domain.Supplier{
		SupplierID: uuid.NewString(),
		Code:       "SUP-007",
		Name:       "Bashir & Sons",
		IsActive:   true,
	}
	suite.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "City Developers",
		IsActive:   true,
	}
	suite.item = domain.Item{
		ItemID:       uuid.NewString(),
		ItemCode:     "CEM-01",
		Name:         "Cement 50kg",
		CurrentStock: decimal.NewFromInt(40),
		IsActive:     true,
	}
	suite.userID = uuid.NewString()
}

func (suite *PostingServiceTestSuite) TestCreatePurchase_AssignsReferenceAndIncrementsStock() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		Date:         time.Now().UTC(),
		SupplierCode: suite.supplier.Code,
		ItemCode:     suite.item.ItemCode,
		Description:  "Cement for foundation",
		Quantity:     decimal.NewFromInt(50),
		Unit:         "bag",
		Rate:         decimal.NewFromInt(20),
		Discount:     decimal.NewFromInt(100),
	}

	suite.mockSupplierRepo.On("FindSupplierByCode", ctx, suite.supplier.Code).Return(&suite.supplier, nil).Once()
	suite.mockItemRepo.On("FindItemByCode", ctx, suite.item.ItemCode).Return(&suite.item, nil).Once()
	suite.mockSequenceRepo.On("NextReference", ctx, "PU").Return("PU000042", nil).Once()
	suite.mockPurchaseRepo.On("CreatePurchase", ctx, mock.AnythingOfType("domain.Purchase")).Return(nil).Once()
	suite.mockItemRepo.On("AdjustStock", ctx, suite.item.ItemCode,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(50)) })).Return(nil).Once()

	created, err := suite.service.CreatePurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.PurchaseID)
	suite.Equal("PU000042", created.ReferenceNo)
	suite.Equal(suite.supplier.Name, created.SupplierName)
	suite.True(created.GrossAmount.Equal(decimal.NewFromInt(1000)))
	suite.True(created.NetAmount.Equal(decimal.NewFromInt(900)))
	suite.True(created.AmountPaid.IsZero())
	suite.Equal(domain.Unpaid, created.PaymentStatus)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.mockItemRepo.AssertExpectations(suite.T())
	suite.mockSequenceRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreatePurchase_UnknownSupplier() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		Date:         time.Now().UTC(),
		SupplierCode: "SUP-404",
		ItemCode:     suite.item.ItemCode,
		Quantity:     decimal.NewFromInt(1),
		Rate:         decimal.NewFromInt(10),
	}

	suite.mockSupplierRepo.On("FindSupplierByCode", ctx, "SUP-404").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreatePurchase(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSequenceRepo.AssertNotCalled(suite.T(), "NextReference", mock.Anything, mock.Anything)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "CreatePurchase", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestVoidPurchase_ReversesStock() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	purchase := &domain.Purchase{
		PurchaseID: purchaseID,
		ItemCode:   suite.item.ItemCode,
		Quantity:   decimal.NewFromInt(5),
	}

	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Once()
	suite.mockPurchaseRepo.On("VoidPurchase", ctx, purchaseID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockItemRepo.On("AdjustStock", ctx, suite.item.ItemCode,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(-5)) })).Return(nil).Once()

	err := suite.service.VoidPurchase(ctx, purchaseID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
	suite.mockItemRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestVoidPurchase_AlreadyCancelledIsNoOp() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	purchase := &domain.Purchase{
		PurchaseID: purchaseID,
		ItemCode:   suite.item.ItemCode,
		Quantity:   decimal.NewFromInt(5),
		Cancelled:  true,
	}

	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Once()

	err := suite.service.VoidPurchase(ctx, purchaseID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "VoidPurchase",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockItemRepo.AssertNotCalled(suite.T(), "AdjustStock",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateBankPayment_TotalIsSumOfLines() {
	ctx := context.Background()
	req := dto.CreateBankPaymentRequest{
		Date:        time.Now().UTC(),
		PayeeName:   "Bashir & Sons",
		BankAccount: "HBL Main",
		Lines: []dto.PaymentLineRequest{
			{Description: "Cement supply", Amount: decimal.NewFromInt(300)},
			{Description: "Freight charges", Amount: decimal.NewFromInt(200)},
		},
	}

	suite.mockSequenceRepo.On("NextReference", ctx, "BP").Return("BP000007", nil).Once()
	suite.mockBankPaymentRepo.On("CreateBankPayment", ctx, mock.AnythingOfType("domain.BankPayment")).Return(nil).Once()

	created, err := suite.service.CreateBankPayment(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("BP000007", created.ReferenceNo)
	suite.Require().Len(created.Lines, 2)
	suite.True(created.TotalAmount.Equal(decimal.NewFromInt(500)))
	suite.mockBankPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreateSalesInvoice_DecrementsStockPerLine() {
	ctx := context.Background()
	secondItem := domain.Item{ItemID: uuid.NewString(), ItemCode: "STL-02", Name: "Steel bar", IsActive: true}
	req := dto.CreateSalesInvoiceRequest{
		Date:       time.Now().UTC(),
		CustomerID: suite.customer.CustomerID,
		Discount:   decimal.NewFromInt(50),
		Lines: []dto.InvoiceLineRequest{
			{ItemCode: suite.item.ItemCode, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(25)},
			{ItemCode: secondItem.ItemCode, Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100)},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockItemRepo.On("FindItemByCode", ctx, suite.item.ItemCode).Return(&suite.item, nil).Once()
	suite.mockItemRepo.On("FindItemByCode", ctx, secondItem.ItemCode).Return(&secondItem, nil).Once()
	suite.mockSequenceRepo.On("NextReference", ctx, "SI").Return("SI000015", nil).Once()
	suite.mockInvoiceRepo.On("CreateSalesInvoice", ctx, mock.AnythingOfType("domain.SalesInvoice")).Return(nil).Once()
	suite.mockItemRepo.On("AdjustStock", ctx, suite.item.ItemCode,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(-10)) })).Return(nil).Once()
	suite.mockItemRepo.On("AdjustStock", ctx, secondItem.ItemCode,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(-2)) })).Return(nil).Once()

	created, err := suite.service.CreateSalesInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("SI000015", created.ReferenceNo)
	suite.True(created.GrossTotal.Equal(decimal.NewFromInt(450)))
	suite.True(created.NetTotal.Equal(decimal.NewFromInt(400)))
	suite.Equal(domain.Unpaid, created.Status)
	suite.mockItemRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestStockCounter_SameAfterEitherPostingOrder() {
	ctx := context.Background()

	// Replays a purchase of 50 and a sale of 10 against a counter starting
	// at 20, in both orders, accumulating the stock deltas as the item
	// repository would.
	post := func(purchaseFirst bool) decimal.Decimal {
		purchaseRepo := new(MockPurchaseRepository)
		invoiceRepo := new(MockInvoiceRepository)
		itemRepo := new(MockItemRepository)
		supplierRepo := new(MockSupplierRepository)
		customerRepo := new(MockCustomerRepository)
		sequenceRepo := new(MockSequenceRepository)
		svc := services.NewPostingService(portsrepo.RepositoryProvider{
			PurchaseRepo: purchaseRepo,
			InvoiceRepo:  invoiceRepo,
			ItemRepo:     itemRepo,
			SupplierRepo: supplierRepo,
			CustomerRepo: customerRepo,
			SequenceRepo: sequenceRepo,
		}, cache.NoopReportCache{})

		item := suite.item
		stock := decimal.NewFromInt(20)
		supplierRepo.On("FindSupplierByCode", ctx, suite.supplier.Code).Return(&suite.supplier, nil)
		customerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil)
		itemRepo.On("FindItemByCode", ctx, item.ItemCode).Return(&item, nil)
		sequenceRepo.On("NextReference", ctx, "PU").Return("PU000100", nil)
		sequenceRepo.On("NextReference", ctx, "SI").Return("SI000100", nil)
		purchaseRepo.On("CreatePurchase", ctx, mock.AnythingOfType("domain.Purchase")).Return(nil)
		invoiceRepo.On("CreateSalesInvoice", ctx, mock.AnythingOfType("domain.SalesInvoice")).Return(nil)
		itemRepo.On("AdjustStock", ctx, item.ItemCode, mock.AnythingOfType("decimal.Decimal")).
			Run(func(args mock.Arguments) {
				stock = stock.Add(args.Get(2).(decimal.Decimal))
			}).Return(nil)

		purchaseReq := dto.CreatePurchaseRequest{
			Date:         time.Now().UTC(),
			SupplierCode: suite.supplier.Code,
			ItemCode:     item.ItemCode,
			Quantity:     decimal.NewFromInt(50),
			Unit:         "bag",
			Rate:         decimal.NewFromInt(20),
		}
		invoiceReq := dto.CreateSalesInvoiceRequest{
			Date:       time.Now().UTC(),
			CustomerID: suite.customer.CustomerID,
			Lines: []dto.InvoiceLineRequest{
				{ItemCode: item.ItemCode, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(25)},
			},
		}

		if purchaseFirst {
			_, err := svc.CreatePurchase(ctx, purchaseReq, suite.userID)
			suite.Require().NoError(err)
			_, err = svc.CreateSalesInvoice(ctx, invoiceReq, suite.userID)
			suite.Require().NoError(err)
		} else {
			_, err := svc.CreateSalesInvoice(ctx, invoiceReq, suite.userID)
			suite.Require().NoError(err)
			_, err = svc.CreatePurchase(ctx, purchaseReq, suite.userID)
			suite.Require().NoError(err)
		}
		return stock
	}

	purchaseThenSale := post(true)
	saleThenPurchase := post(false)

	suite.True(purchaseThenSale.Equal(saleThenPurchase))
	suite.True(purchaseThenSale.Equal(decimal.NewFromInt(60)))
}

func (suite *PostingServiceTestSuite) TestCreatePlotSale_StartsUnpaidWithFullBalance() {
	ctx := context.Background()
	project := domain.Project{ProjectID: uuid.NewString(), Name: "Green Valley", Status: domain.ProjectActive}
	req := dto.CreatePlotSaleRequest{
		Date:       time.Now().UTC(),
		PlotNumber: "B-22",
		ProjectID:  project.ProjectID,
		CustomerID: suite.customer.CustomerID,
		PlotSize:   decimal.NewFromInt(5),
		Unit:       "marla",
		FinalPrice: decimal.NewFromInt(750000),
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(&project, nil).Once()
	suite.mockSequenceRepo.On("NextReference", ctx, "PS").Return("PS000003", nil).Once()
	suite.mockPlotSaleRepo.On("CreatePlotSale", ctx, mock.AnythingOfType("domain.PlotSale")).Return(nil).Once()

	created, err := suite.service.CreatePlotSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("PS000003", created.ReferenceNo)
	suite.True(created.AmountReceived.IsZero())
	suite.True(created.Balance.Equal(req.FinalPrice))
	suite.Equal(domain.Unpaid, created.Status)
	suite.mockPlotSaleRepo.AssertExpectations(suite.T())
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
