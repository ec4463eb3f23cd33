package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	"github.com/sitebooks/site_books_app/internal/models"
	"github.com/sitebooks/site_books_app/internal/utils/mapping"
)

type PgxSupplierRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier data.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

const supplierColumns = `supplier_id, code, name, company, category, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanSupplier(row pgx.Row) (models.Supplier, error) {
	var m models.Supplier
	err := row.Scan(
		&m.SupplierID,
		&m.Code,
		&m.Name,
		&m.Company,
		&m.Category,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateSupplier inserts a new supplier.
func (r *PgxSupplierRepository) CreateSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.SupplierID,
		m.Code,
		m.Name,
		m.Company,
		m.Category,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: supplier with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save supplier %s: %w", m.Code, err)
	}
	return nil
}

// FindSupplierByCode retrieves a supplier by its business code.
func (r *PgxSupplierRepository) FindSupplierByCode(ctx context.Context, code string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE code = $1;`
	m, err := scanSupplier(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by code %s: %w", code, err)
	}
	d := mapping.ToDomainSupplier(m)
	return &d, nil
}

// ListSuppliers retrieves all active suppliers ordered by code.
func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE is_active = TRUE ORDER BY code;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		m, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		suppliers = append(suppliers, mapping.ToDomainSupplier(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier rows: %w", err)
	}
	return suppliers, nil
}

type PgxCustomerRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, company, phone, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Company,
		&m.Phone,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateCustomer inserts a new customer.
func (r *PgxCustomerRepository) CreateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Company,
		m.Phone,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: customer %s already exists", apperrors.ErrDuplicate, m.CustomerID)
		}
		return fmt.Errorf("failed to save customer %s: %w", m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	d := mapping.ToDomainCustomer(m)
	return &d, nil
}

// ListCustomers retrieves all active customers ordered by name.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE is_active = TRUE ORDER BY name;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

type PgxProjectRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectColumns = `project_id, code, name, client, status, value_of_job, estimated_cost, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

func scanProject(row pgx.Row) (models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.Code,
		&m.Name,
		&m.Client,
		&m.Status,
		&m.ValueOfJob,
		&m.EstimatedCost,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateProject inserts a new project.
func (r *PgxProjectRepository) CreateProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ProjectID,
		m.Code,
		m.Name,
		m.Client,
		m.Status,
		m.ValueOfJob,
		m.EstimatedCost,
		m.StartDate,
		m.EndDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: project with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save project %s: %w", m.ProjectID, err)
	}
	return nil
}

// FindProjectByID retrieves a project by ID.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	m, err := scanProject(r.pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	d := mapping.ToDomainProject(m)
	return &d, nil
}

func (r *PgxProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return mapping.ToDomainProjectSlice(projects), nil
}

// ListProjects retrieves all projects ordered by code.
func (r *PgxProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY code;`
	return r.queryProjects(ctx, query)
}

// ListRecentProjects retrieves the most recently created projects, newest first.
func (r *PgxProjectRepository) ListRecentProjects(ctx context.Context, limit int) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC LIMIT $1;`
	return r.queryProjects(ctx, query, limit)
}

// CountProjectsByStatus counts projects in the given status.
func (r *PgxProjectRepository) CountProjectsByStatus(ctx context.Context, status domain.ProjectStatus) (int, error) {
	query := `SELECT COUNT(*) FROM projects WHERE status = $1;`
	var count int
	if err := r.pool.QueryRow(ctx, query, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects by status %s: %w", status, err)
	}
	return count, nil
}
