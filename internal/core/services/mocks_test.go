package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
)

// --- Mock PurchaseRepository ---
type MockPurchaseRepository struct {
	mock.Mock
}

var _ portsrepo.PurchaseRepositoryFacade = (*MockPurchaseRepository)(nil)

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindPurchaseByReference(ctx context.Context, referenceNo string) (*domain.Purchase, error) {
	args := m.Called(ctx, referenceNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchasesBySupplier(ctx context.Context, supplierCode string, rng domain.DateRange) ([]domain.Purchase, error) {
	args := m.Called(ctx, supplierCode, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchasesByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.Purchase, error) {
	args := m.Called(ctx, projectID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, rng domain.DateRange) ([]domain.Purchase, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchasesPaged(ctx context.Context, limit int, nextToken *string) ([]domain.Purchase, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Purchase), returnedToken, args.Error(2)
}

func (m *MockPurchaseRepository) SumPurchasedQuantityByItem(ctx context.Context, itemCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPurchaseRepository) ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchasePayment), args.Error(1)
}

func (m *MockPurchaseRepository) CreatePurchase(ctx context.Context, purchase domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ApplyPayment(ctx context.Context, purchaseID string, payment domain.PurchasePayment, newAmountPaid decimal.Decimal, newStatus domain.PaymentStatus, expectedVersion int64) error {
	args := m.Called(ctx, purchaseID, payment, newAmountPaid, newStatus, expectedVersion)
	return args.Error(0)
}

func (m *MockPurchaseRepository) VoidPurchase(ctx context.Context, purchaseID string, userID string, now time.Time) error {
	args := m.Called(ctx, purchaseID, userID, now)
	return args.Error(0)
}

// --- Mock BankPaymentRepository ---
type MockBankPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.BankPaymentRepositoryFacade = (*MockBankPaymentRepository)(nil)

func (m *MockBankPaymentRepository) FindBankPaymentByID(ctx context.Context, paymentID string) (*domain.BankPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankPayment), args.Error(1)
}

func (m *MockBankPaymentRepository) ListBankPayments(ctx context.Context, rng domain.DateRange) ([]domain.BankPayment, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankPayment), args.Error(1)
}

func (m *MockBankPaymentRepository) ListBankPaymentsBySupplier(ctx context.Context, supplierCode string, rng domain.DateRange) ([]domain.BankPayment, error) {
	args := m.Called(ctx, supplierCode, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankPayment), args.Error(1)
}

func (m *MockBankPaymentRepository) ListUnreferencedBankPayments(ctx context.Context, rng domain.DateRange) ([]domain.BankPayment, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankPayment), args.Error(1)
}

func (m *MockBankPaymentRepository) ListBankPaymentsByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.BankPayment, error) {
	args := m.Called(ctx, projectID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankPayment), args.Error(1)
}

func (m *MockBankPaymentRepository) CreateBankPayment(ctx context.Context, payment domain.BankPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockBankPaymentRepository) VoidBankPayment(ctx context.Context, paymentID string, userID string, now time.Time) error {
	args := m.Called(ctx, paymentID, userID, now)
	return args.Error(0)
}

// --- Mock CashPaymentRepository ---
type MockCashPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.CashPaymentRepositoryFacade = (*MockCashPaymentRepository)(nil)

func (m *MockCashPaymentRepository) CreateCashPayment(ctx context.Context, payment domain.CashPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockCashPaymentRepository) FindCashPaymentByID(ctx context.Context, paymentID string) (*domain.CashPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashPayment), args.Error(1)
}

func (m *MockCashPaymentRepository) ListCashPaymentsByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.CashPayment, error) {
	args := m.Called(ctx, projectID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashPayment), args.Error(1)
}

func (m *MockCashPaymentRepository) VoidCashPayment(ctx context.Context, paymentID string, userID string, now time.Time) error {
	args := m.Called(ctx, paymentID, userID, now)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindSalesInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindSalesInvoiceByReference(ctx context.Context, referenceNo string) (*domain.SalesInvoice, error) {
	args := m.Called(ctx, referenceNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListSalesInvoices(ctx context.Context, rng domain.DateRange) ([]domain.SalesInvoice, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListSalesInvoicesByCustomer(ctx context.Context, customerID string, rng domain.DateRange) ([]domain.SalesInvoice, error) {
	args := m.Called(ctx, customerID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListSalesInvoicesByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.SalesInvoice, error) {
	args := m.Called(ctx, projectID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) SumSoldQuantityByItem(ctx context.Context, itemCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) ListReceiptsByCustomer(ctx context.Context, customerID string, rng domain.DateRange) ([]domain.CustomerReceipt, error) {
	args := m.Called(ctx, customerID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerReceipt), args.Error(1)
}

func (m *MockInvoiceRepository) CreateSalesInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ApplyReceipt(ctx context.Context, invoiceID string, receipt domain.CustomerReceipt, newAmountReceived decimal.Decimal, newStatus domain.PaymentStatus, expectedVersion int64) error {
	args := m.Called(ctx, invoiceID, receipt, newAmountReceived, newStatus, expectedVersion)
	return args.Error(0)
}

func (m *MockInvoiceRepository) VoidSalesInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	args := m.Called(ctx, invoiceID, userID, now)
	return args.Error(0)
}

// --- Mock PlotSaleRepository ---
type MockPlotSaleRepository struct {
	mock.Mock
}

var _ portsrepo.PlotSaleRepositoryFacade = (*MockPlotSaleRepository)(nil)

func (m *MockPlotSaleRepository) CreatePlotSale(ctx context.Context, sale domain.PlotSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockPlotSaleRepository) FindPlotSaleByID(ctx context.Context, plotSaleID string) (*domain.PlotSale, error) {
	args := m.Called(ctx, plotSaleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlotSale), args.Error(1)
}

func (m *MockPlotSaleRepository) ListPlotSalesByCustomer(ctx context.Context, customerID string, rng domain.DateRange) ([]domain.PlotSale, error) {
	args := m.Called(ctx, customerID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlotSale), args.Error(1)
}

func (m *MockPlotSaleRepository) ListPlotSalesByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.PlotSale, error) {
	args := m.Called(ctx, projectID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlotSale), args.Error(1)
}

func (m *MockPlotSaleRepository) ApplyReceipt(ctx context.Context, plotSaleID string, receipt domain.CustomerReceipt, newAmountReceived decimal.Decimal, newBalance decimal.Decimal, newStatus domain.PaymentStatus, expectedVersion int64) error {
	args := m.Called(ctx, plotSaleID, receipt, newAmountReceived, newBalance, newStatus, expectedVersion)
	return args.Error(0)
}

func (m *MockPlotSaleRepository) VoidPlotSale(ctx context.Context, plotSaleID string, userID string, now time.Time) error {
	args := m.Called(ctx, plotSaleID, userID, now)
	return args.Error(0)
}

// --- Mock ItemRepository ---
type MockItemRepository struct {
	mock.Mock
}

var _ portsrepo.ItemRepositoryFacade = (*MockItemRepository)(nil)

func (m *MockItemRepository) FindItemByCode(ctx context.Context, itemCode string) (*domain.Item, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) CreateItem(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) AdjustStock(ctx context.Context, itemCode string, delta decimal.Decimal) error {
	args := m.Called(ctx, itemCode, delta)
	return args.Error(0)
}

func (m *MockItemRepository) SetStock(ctx context.Context, itemCode string, stock decimal.Decimal) error {
	args := m.Called(ctx, itemCode, stock)
	return args.Error(0)
}

// --- Mock SupplierRepository ---
type MockSupplierRepository struct {
	mock.Mock
}

var _ portsrepo.SupplierRepositoryFacade = (*MockSupplierRepository)(nil)

func (m *MockSupplierRepository) CreateSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) FindSupplierByCode(ctx context.Context, code string) (*domain.Supplier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) CreateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectRepositoryFacade = (*MockProjectRepository)(nil)

func (m *MockProjectRepository) CreateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListRecentProjects(ctx context.Context, limit int) ([]domain.Project, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) CountProjectsByStatus(ctx context.Context, status domain.ProjectStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

// --- Mock ChangeRequestRepository ---
type MockChangeRequestRepository struct {
	mock.Mock
}

var _ portsrepo.ChangeRequestRepositoryFacade = (*MockChangeRequestRepository)(nil)

func (m *MockChangeRequestRepository) FindChangeRequestByID(ctx context.Context, requestID string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) ListChangeRequests(ctx context.Context, status domain.RequestStatus, limit int, nextToken string) ([]domain.ChangeRequest, string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.ChangeRequest), args.String(1), args.Error(2)
}

func (m *MockChangeRequestRepository) CreateChangeRequest(ctx context.Context, request domain.ChangeRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockChangeRequestRepository) MarkReviewed(ctx context.Context, requestID string, status domain.RequestStatus, reviewerID string, note string, reviewedAt time.Time) error {
	args := m.Called(ctx, requestID, status, reviewerID, note, reviewedAt)
	return args.Error(0)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextReference(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}
