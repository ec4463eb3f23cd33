package pgsql

import (
	"context"
	"errors"
	"fmt"

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

const itemColumns = `item_id, item_code, name, category, unit, purchase_price, selling_price, opening_stock, current_stock, min_stock_level, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxItemRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxItemRepository creates a new repository for inventory items.
func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

func scanItem(row pgx.Row) (models.Item, error) {
	var m models.Item
	err := row.Scan(
		&m.ItemID,
		&m.ItemCode,
		&m.Name,
		&m.Category,
		&m.Unit,
		&m.PurchasePrice,
		&m.SellingPrice,
		&m.OpeningStock,
		&m.CurrentStock,
		&m.MinStockLevel,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateItem inserts a new item.
func (r *PgxItemRepository) CreateItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)

	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ItemID,
		m.ItemCode,
		m.Name,
		m.Category,
		m.Unit,
		m.PurchasePrice,
		m.SellingPrice,
		m.OpeningStock,
		m.CurrentStock,
		m.MinStockLevel,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: item with code %s already exists", apperrors.ErrDuplicate, m.ItemCode)
		}
		return fmt.Errorf("failed to save item %s: %w", m.ItemCode, err)
	}
	return nil
}

// FindItemByCode retrieves an item by its business code.
func (r *PgxItemRepository) FindItemByCode(ctx context.Context, itemCode string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_code = $1;`
	m, err := scanItem(r.pool.QueryRow(ctx, query, itemCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by code %s: %w", itemCode, err)
	}
	d := mapping.ToDomainItem(m)
	return &d, nil
}

// ListItems retrieves all active items ordered by code.
func (r *PgxItemRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE is_active = TRUE ORDER BY item_code;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return mapping.ToDomainItemSlice(items), nil
}

// AdjustStock applies a signed delta to the cached stock counter. The single
// UPDATE keeps concurrent adjustments from losing increments. The counter may
// go negative; reconciliation reports and repairs drift separately.
func (r *PgxItemRepository) AdjustStock(ctx context.Context, itemCode string, delta decimal.Decimal) error {
	query := `
		UPDATE items
		SET current_stock = current_stock + $2
		WHERE item_code = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, itemCode, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for item %s: %w", itemCode, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetStock overwrites the cached stock counter.
func (r *PgxItemRepository) SetStock(ctx context.Context, itemCode string, stock decimal.Decimal) error {
	query := `
		UPDATE items
		SET current_stock = $2
		WHERE item_code = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, itemCode, stock)
	if err != nil {
		return fmt.Errorf("failed to set stock for item %s: %w", itemCode, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
