package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
)

// masterDataService manages the reference records the transaction log points
// at: suppliers, customers, projects and items.
type masterDataService struct {
	BaseService
	supplierRepo portsrepo.SupplierRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	projectRepo  portsrepo.ProjectRepositoryFacade
	itemRepo     portsrepo.ItemRepositoryFacade
}

// NewMasterDataService creates a new MasterDataService.
func NewMasterDataService(repos portsrepo.RepositoryProvider) portssvc.MasterDataSvcFacade {
	return &masterDataService{
		supplierRepo: repos.SupplierRepo,
		customerRepo: repos.CustomerRepo,
		projectRepo:  repos.ProjectRepo,
		itemRepo:     repos.ItemRepo,
	}
}

var _ portssvc.MasterDataSvcFacade = (*masterDataService)(nil)

func auditFor(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// CreateSupplier registers a supplier under a unique business code.
func (s *masterDataService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	if _, err := s.supplierRepo.FindSupplierByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: supplier code %s already exists", apperrors.ErrDuplicate, req.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check supplier code %s: %w", req.Code, err)
	}

	supplier := domain.Supplier{
		SupplierID:  uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		Company:     req.Company,
		Category:    req.Category,
		IsActive:    true,
		AuditFields: auditFor(creatorUserID, time.Now().UTC()),
	}
	if err := s.supplierRepo.CreateSupplier(ctx, supplier); err != nil {
		s.LogError(ctx, err, "Failed to save supplier", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}
	s.LogInfo(ctx, "Supplier registered", slog.String("supplier_id", supplier.SupplierID), slog.String("code", req.Code))
	return &supplier, nil
}

// GetSupplierByCode retrieves a supplier by business code.
func (s *masterDataService) GetSupplierByCode(ctx context.Context, code string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", code, err)
	}
	return supplier, nil
}

// ListSuppliers retrieves all suppliers.
func (s *masterDataService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.supplierRepo.ListSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateCustomer registers a customer.
func (s *masterDataService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        req.Name,
		Company:     req.Company,
		Phone:       req.Phone,
		IsActive:    true,
		AuditFields: auditFor(creatorUserID, time.Now().UTC()),
	}
	if err := s.customerRepo.CreateCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	s.LogInfo(ctx, "Customer registered", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// GetCustomerByID retrieves a customer.
func (s *masterDataService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomers retrieves all customers.
func (s *masterDataService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// CreateProject registers a project. Status defaults to Active.
func (s *masterDataService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	status := domain.ProjectStatus(req.Status)
	if status == "" {
		status = domain.ProjectActive
	}

	now := time.Now().UTC()
	project := domain.Project{
		ProjectID:     uuid.NewString(),
		Code:          req.Code,
		Name:          req.Name,
		Client:        req.Client,
		Status:        status,
		ValueOfJob:    req.ValueOfJob,
		EstimatedCost: req.EstimatedCost,
		StartDate:     &now,
		AuditFields:   auditFor(creatorUserID, now),
	}
	if err := s.projectRepo.CreateProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	s.LogInfo(ctx, "Project registered", slog.String("project_id", project.ProjectID), slog.String("code", req.Code))
	return &project, nil
}

// GetProjectByID retrieves a project.
func (s *masterDataService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}
	return project, nil
}

// ListProjects retrieves all projects.
func (s *masterDataService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateItem registers an inventory item. The stock counter starts at the
// opening stock.
func (s *masterDataService) CreateItem(ctx context.Context, req dto.CreateItemRequest, creatorUserID string) (*domain.Item, error) {
	if _, err := s.itemRepo.FindItemByCode(ctx, req.ItemCode); err == nil {
		return nil, fmt.Errorf("%w: item code %s already exists", apperrors.ErrDuplicate, req.ItemCode)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check item code %s: %w", req.ItemCode, err)
	}

	item := domain.Item{
		ItemID:        uuid.NewString(),
		ItemCode:      req.ItemCode,
		Name:          req.Name,
		Category:      req.Category,
		Unit:          req.Unit,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		OpeningStock:  req.OpeningStock,
		CurrentStock:  req.OpeningStock,
		MinStockLevel: req.MinStockLevel,
		IsActive:      true,
		AuditFields:   auditFor(creatorUserID, time.Now().UTC()),
	}
	if err := s.itemRepo.CreateItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save item", slog.String("item_code", req.ItemCode))
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	s.LogInfo(ctx, "Item registered", slog.String("item_id", item.ItemID), slog.String("item_code", req.ItemCode))
	return &item, nil
}

// GetItemByCode retrieves an item by business code.
func (s *masterDataService) GetItemByCode(ctx context.Context, itemCode string) (*domain.Item, error) {
	item, err := s.itemRepo.FindItemByCode(ctx, itemCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", itemCode, err)
	}
	return item, nil
}

// ListItems retrieves all active items.
func (s *masterDataService) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}
