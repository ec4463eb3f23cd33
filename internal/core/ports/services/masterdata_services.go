package services

import (
	"context"

	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/dto"
)

// MasterDataSvcFacade defines operations over suppliers, customers, projects
// and items. These records change rarely and back the transaction log.
type MasterDataSvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)
	GetSupplierByCode(ctx context.Context, code string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)

	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)

	CreateItem(ctx context.Context, req dto.CreateItemRequest, creatorUserID string) (*domain.Item, error)
	GetItemByCode(ctx context.Context, itemCode string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
}
