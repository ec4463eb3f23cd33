package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	"github.com/sitebooks/site_books_app/internal/models"
	"github.com/sitebooks/site_books_app/internal/utils/mapping"
)

const plotSaleColumns = `plot_sale_id, reference_no, doc_date, plot_number, project_id, customer_id, plot_size, unit, final_price, amount_received, balance, status, cancelled, version, created_at, created_by, last_updated_at, last_updated_by`

type PgxPlotSaleRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxPlotSaleRepository creates a new repository for plot sale records.
func newPgxPlotSaleRepository(pool *pgxpool.Pool) portsrepo.PlotSaleRepositoryFacade {
	return &PgxPlotSaleRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PlotSaleRepositoryFacade = (*PgxPlotSaleRepository)(nil)

func scanPlotSale(row pgx.Row) (models.PlotSale, error) {
	var m models.PlotSale
	err := row.Scan(
		&m.PlotSaleID,
		&m.ReferenceNo,
		&m.Date,
		&m.PlotNumber,
		&m.ProjectID,
		&m.CustomerID,
		&m.PlotSize,
		&m.Unit,
		&m.FinalPrice,
		&m.AmountReceived,
		&m.Balance,
		&m.Status,
		&m.Cancelled,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPlotSaleRepository) queryPlotSales(ctx context.Context, query string, args ...any) ([]domain.PlotSale, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plot sales: %w", err)
	}
	defer rows.Close()

	sales := []models.PlotSale{}
	for rows.Next() {
		m, err := scanPlotSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plot sale row: %w", err)
		}
		sales = append(sales, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plot sale rows: %w", err)
	}
	return mapping.ToDomainPlotSaleSlice(sales), nil
}

// CreatePlotSale inserts a new plot sale.
func (r *PgxPlotSaleRepository) CreatePlotSale(ctx context.Context, sale domain.PlotSale) error {
	m := mapping.ToModelPlotSale(sale)

	query := `
		INSERT INTO plot_sales (` + plotSaleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PlotSaleID,
		m.ReferenceNo,
		m.Date,
		m.PlotNumber,
		m.ProjectID,
		m.CustomerID,
		m.PlotSize,
		m.Unit,
		m.FinalPrice,
		m.AmountReceived,
		m.Balance,
		m.Status,
		m.Cancelled,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: plot sale with reference %s already exists", apperrors.ErrDuplicate, m.ReferenceNo)
		}
		return fmt.Errorf("failed to save plot sale %s: %w", m.PlotSaleID, err)
	}
	return nil
}

// FindPlotSaleByID retrieves a plot sale by its ID.
func (r *PgxPlotSaleRepository) FindPlotSaleByID(ctx context.Context, plotSaleID string) (*domain.PlotSale, error) {
	query := `SELECT ` + plotSaleColumns + ` FROM plot_sales WHERE plot_sale_id = $1;`
	m, err := scanPlotSale(r.pool.QueryRow(ctx, query, plotSaleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plot sale by ID %s: %w", plotSaleID, err)
	}
	d := mapping.ToDomainPlotSale(m)
	return &d, nil
}

// ListPlotSalesByCustomer retrieves non-cancelled plot sales for a customer.
func (r *PgxPlotSaleRepository) ListPlotSalesByCustomer(ctx context.Context, customerID string, rng domain.DateRange) ([]domain.PlotSale, error) {
	args := []any{customerID}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + plotSaleColumns + ` FROM plot_sales WHERE customer_id = $1 AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryPlotSales(ctx, query, args...)
}

// ListPlotSalesByProject retrieves non-cancelled plot sales for a project.
func (r *PgxPlotSaleRepository) ListPlotSalesByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.PlotSale, error) {
	args := []any{projectID}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + plotSaleColumns + ` FROM plot_sales WHERE project_id = $1 AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryPlotSales(ctx, query, args...)
}

// ApplyReceipt appends a receipt row and bumps the derived columns in one
// transaction, guarded by the expected version.
func (r *PgxPlotSaleRepository) ApplyReceipt(ctx context.Context, plotSaleID string, receipt domain.CustomerReceipt, newAmountReceived decimal.Decimal, newBalance decimal.Decimal, newStatus domain.PaymentStatus, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
		UPDATE plot_sales
		SET amount_received = $2, balance = $3, status = $4, version = version + 1, last_updated_at = $5, last_updated_by = $6
		WHERE plot_sale_id = $1 AND version = $7 AND cancelled = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		plotSaleID,
		newAmountReceived,
		newBalance,
		string(newStatus),
		receipt.CreatedAt,
		receipt.CreatedBy,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update plot sale %s settlement state: %w", plotSaleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: plot sale %s version %d is stale", apperrors.ErrConflict, plotSaleID, expectedVersion)
	}

	if err := insertCustomerReceipt(ctx, tx, receipt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// VoidPlotSale sets the cancelled flag.
func (r *PgxPlotSaleRepository) VoidPlotSale(ctx context.Context, plotSaleID string, userID string, now time.Time) error {
	query := `
		UPDATE plot_sales
		SET cancelled = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE plot_sale_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, plotSaleID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to void plot sale %s: %w", plotSaleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
