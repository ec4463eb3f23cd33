package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/core/services"
	"github.com/sitebooks/site_books_app/internal/dto"
)

// --- Mock PostingService (as used by ApprovalService) ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPostingService) ListPurchases(ctx context.Context, params dto.ListPurchasesParams) (*dto.ListPurchasesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPurchasesResponse), args.Error(1)
}

func (m *MockPostingService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Purchase, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPostingService) VoidPurchase(ctx context.Context, purchaseID string, requestingUserID string) error {
	args := m.Called(ctx, purchaseID, requestingUserID)
	return args.Error(0)
}

func (m *MockPostingService) CreateBankPayment(ctx context.Context, req dto.CreateBankPaymentRequest, creatorUserID string) (*domain.BankPayment, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankPayment), args.Error(1)
}

func (m *MockPostingService) CreateCashPayment(ctx context.Context, req dto.CreateCashPaymentRequest, creatorUserID string) (*domain.CashPayment, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashPayment), args.Error(1)
}

func (m *MockPostingService) VoidBankPayment(ctx context.Context, paymentID string, requestingUserID string) error {
	args := m.Called(ctx, paymentID, requestingUserID)
	return args.Error(0)
}

func (m *MockPostingService) VoidCashPayment(ctx context.Context, paymentID string, requestingUserID string) error {
	args := m.Called(ctx, paymentID, requestingUserID)
	return args.Error(0)
}

func (m *MockPostingService) CreateSalesInvoice(ctx context.Context, req dto.CreateSalesInvoiceRequest, creatorUserID string) (*domain.SalesInvoice, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesInvoice), args.Error(1)
}

func (m *MockPostingService) VoidSalesInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	args := m.Called(ctx, invoiceID, requestingUserID)
	return args.Error(0)
}

func (m *MockPostingService) CreatePlotSale(ctx context.Context, req dto.CreatePlotSaleRequest, creatorUserID string) (*domain.PlotSale, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlotSale), args.Error(1)
}

func (m *MockPostingService) VoidPlotSale(ctx context.Context, plotSaleID string, requestingUserID string) error {
	args := m.Called(ctx, plotSaleID, requestingUserID)
	return args.Error(0)
}

// --- Mock MasterDataService (as used by ApprovalService) ---
type MockMasterDataService struct {
	mock.Mock
}

var _ portssvc.MasterDataSvcFacade = (*MockMasterDataService)(nil)

func (m *MockMasterDataService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockMasterDataService) GetSupplierByCode(ctx context.Context, code string) (*domain.Supplier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockMasterDataService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockMasterDataService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockMasterDataService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockMasterDataService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockMasterDataService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockMasterDataService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockMasterDataService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockMasterDataService) CreateItem(ctx context.Context, req dto.CreateItemRequest, creatorUserID string) (*domain.Item, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockMasterDataService) GetItemByCode(ctx context.Context, itemCode string) (*domain.Item, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockMasterDataService) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

// --- Test Suite Setup ---
type ApprovalServiceTestSuite struct {
	suite.Suite
	mockRequestRepo *MockChangeRequestRepository
	mockPosting     *MockPostingService
	mockMasterData  *MockMasterDataService
	service         portssvc.ApprovalSvcFacade
	requesterID     string
	reviewerID      string
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockRequestRepo = new(MockChangeRequestRepository)
	suite.mockPosting = new(MockPostingService)
	suite.mockMasterData = new(MockMasterDataService)
	suite.service = services.NewApprovalService(suite.mockRequestRepo, suite.mockPosting, suite.mockMasterData)
	suite.requesterID = uuid.NewString()
	suite.reviewerID = uuid.NewString()
}

func (suite *ApprovalServiceTestSuite) pendingVoidRequest(entityID string) *domain.ChangeRequest {
	now := time.Now().UTC()
	return &domain.ChangeRequest{
		RequestID:   uuid.NewString(),
		Entity:      domain.EntityPurchase,
		Op:          domain.OpVoid,
		EntityID:    entityID,
		Status:      domain.RequestPending,
		RequestedBy: suite.requesterID,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: suite.requesterID},
	}
}

func (suite *ApprovalServiceTestSuite) TestSubmitChangeRequest_Success() {
	ctx := context.Background()
	patch := json.RawMessage(`{"supplierCode":"SUP-001"}`)
	req := dto.SubmitChangeRequest{
		Entity: domain.EntityPurchase,
		Op:     domain.OpCreate,
		Patch:  patch,
	}

	suite.mockRequestRepo.On("CreateChangeRequest", ctx, mock.AnythingOfType("domain.ChangeRequest")).Return(nil).Once()

	cr, err := suite.service.SubmitChangeRequest(ctx, req, suite.requesterID)

	suite.Require().NoError(err)
	suite.NotEmpty(cr.RequestID)
	suite.Equal(domain.RequestPending, cr.Status)
	suite.Equal(suite.requesterID, cr.RequestedBy)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestSubmitChangeRequest_UnknownPairRejected() {
	ctx := context.Background()
	req := dto.SubmitChangeRequest{
		Entity:   domain.EntitySupplier,
		Op:       domain.OpVoid,
		EntityID: uuid.NewString(),
	}

	_, err := suite.service.SubmitChangeRequest(ctx, req, suite.requesterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "CreateChangeRequest", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestSubmitChangeRequest_EditUnsupported() {
	ctx := context.Background()
	req := dto.SubmitChangeRequest{
		Entity:   domain.EntityPurchase,
		Op:       domain.OpEdit,
		EntityID: uuid.NewString(),
		Patch:    json.RawMessage(`{"description":"edited"}`),
	}

	_, err := suite.service.SubmitChangeRequest(ctx, req, suite.requesterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApprovalServiceTestSuite) TestSubmitChangeRequest_VoidRequiresEntityID() {
	ctx := context.Background()
	req := dto.SubmitChangeRequest{
		Entity: domain.EntityPurchase,
		Op:     domain.OpVoid,
	}

	_, err := suite.service.SubmitChangeRequest(ctx, req, suite.requesterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApprovalServiceTestSuite) TestApproveChangeRequest_AppliesVoidAndMarksReviewed() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	cr := suite.pendingVoidRequest(purchaseID)

	suite.mockRequestRepo.On("FindChangeRequestByID", ctx, cr.RequestID).Return(cr, nil).Once()
	suite.mockPosting.On("VoidPurchase", ctx, purchaseID, suite.reviewerID).Return(nil).Once()
	suite.mockRequestRepo.On("MarkReviewed", ctx, cr.RequestID, domain.RequestApproved,
		suite.reviewerID, "looks right", mock.AnythingOfType("time.Time")).Return(nil).Once()

	reviewed, err := suite.service.ApproveChangeRequest(ctx, cr.RequestID, suite.reviewerID, "looks right")

	suite.Require().NoError(err)
	suite.Equal(domain.RequestApproved, reviewed.Status)
	suite.Equal(suite.reviewerID, reviewed.ReviewedBy)
	suite.Require().NotNil(reviewed.ReviewedAt)
	suite.mockPosting.AssertExpectations(suite.T())
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApproveChangeRequest_AppliesCreateWithRequesterIdentity() {
	ctx := context.Background()
	patch := dto.CreateBankPaymentRequest{
		Date:        time.Now().UTC(),
		PayeeName:   "Bashir & Sons",
		BankAccount: "HBL Main",
		Lines:       []dto.PaymentLineRequest{{Description: "Cement supply", Amount: decimal.NewFromInt(100)}},
	}
	raw, err := json.Marshal(patch)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	cr := &domain.ChangeRequest{
		RequestID:   uuid.NewString(),
		Entity:      domain.EntityBankPayment,
		Op:          domain.OpCreate,
		Patch:       raw,
		Status:      domain.RequestPending,
		RequestedBy: suite.requesterID,
		AuditFields: domain.AuditFields{CreatedAt: now},
	}

	suite.mockRequestRepo.On("FindChangeRequestByID", ctx, cr.RequestID).Return(cr, nil).Once()
	// The created document is attributed to the requester, not the reviewer.
	suite.mockPosting.On("CreateBankPayment", ctx, mock.AnythingOfType("dto.CreateBankPaymentRequest"), suite.requesterID).
		Return(&domain.BankPayment{PaymentID: uuid.NewString()}, nil).Once()
	suite.mockRequestRepo.On("MarkReviewed", ctx, cr.RequestID, domain.RequestApproved,
		suite.reviewerID, "", mock.AnythingOfType("time.Time")).Return(nil).Once()

	reviewed, err := suite.service.ApproveChangeRequest(ctx, cr.RequestID, suite.reviewerID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.RequestApproved, reviewed.Status)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApproveChangeRequest_AlreadyReviewed() {
	ctx := context.Background()
	cr := suite.pendingVoidRequest(uuid.NewString())
	cr.Status = domain.RequestRejected

	suite.mockRequestRepo.On("FindChangeRequestByID", ctx, cr.RequestID).Return(cr, nil).Once()

	_, err := suite.service.ApproveChangeRequest(ctx, cr.RequestID, suite.reviewerID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPosting.AssertNotCalled(suite.T(), "VoidPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApproveChangeRequest_ApplyFailureLeavesRequestPending() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	cr := suite.pendingVoidRequest(purchaseID)

	suite.mockRequestRepo.On("FindChangeRequestByID", ctx, cr.RequestID).Return(cr, nil).Once()
	suite.mockPosting.On("VoidPurchase", ctx, purchaseID, suite.reviewerID).Return(errors.New("db unavailable")).Once()

	_, err := suite.service.ApproveChangeRequest(ctx, cr.RequestID, suite.reviewerID, "")

	suite.Require().Error(err)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "MarkReviewed",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestRejectChangeRequest_DoesNotApply() {
	ctx := context.Background()
	cr := suite.pendingVoidRequest(uuid.NewString())

	suite.mockRequestRepo.On("FindChangeRequestByID", ctx, cr.RequestID).Return(cr, nil).Once()
	suite.mockRequestRepo.On("MarkReviewed", ctx, cr.RequestID, domain.RequestRejected,
		suite.reviewerID, "duplicate entry", mock.AnythingOfType("time.Time")).Return(nil).Once()

	reviewed, err := suite.service.RejectChangeRequest(ctx, cr.RequestID, suite.reviewerID, "duplicate entry")

	suite.Require().NoError(err)
	suite.Equal(domain.RequestRejected, reviewed.Status)
	suite.Equal("duplicate entry", reviewed.ReviewNote)
	suite.mockPosting.AssertNotCalled(suite.T(), "VoidPurchase", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
