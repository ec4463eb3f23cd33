package repositories

import (
	"context"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// SupplierRepositoryFacade defines operations over suppliers.
type SupplierRepositoryFacade interface {
	CreateSupplier(ctx context.Context, supplier domain.Supplier) error
	FindSupplierByCode(ctx context.Context, code string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
}

// CustomerRepositoryFacade defines operations over customers.
type CustomerRepositoryFacade interface {
	CreateCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// ProjectRepositoryFacade defines operations over projects.
type ProjectRepositoryFacade interface {
	CreateProject(ctx context.Context, project domain.Project) error
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// ListRecentProjects retrieves the most recently created projects, newest
	// first, capped at limit.
	ListRecentProjects(ctx context.Context, limit int) ([]domain.Project, error)

	// CountProjectsByStatus counts projects in the given status.
	CountProjectsByStatus(ctx context.Context, status domain.ProjectStatus) (int, error)
}
