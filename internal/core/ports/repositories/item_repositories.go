package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// ItemReader defines read operations for inventory items.
type ItemReader interface {
	// FindItemByCode retrieves an item by its business code.
	FindItemByCode(ctx context.Context, itemCode string) (*domain.Item, error)

	// ListItems retrieves all active items ordered by code.
	ListItems(ctx context.Context) ([]domain.Item, error)
}

// ItemWriter defines write operations for inventory items.
type ItemWriter interface {
	// CreateItem persists a new item.
	CreateItem(ctx context.Context, item domain.Item) error

	// AdjustStock applies a signed delta to the cached stock counter in a
	// single atomic update. Negative deltas may drive the counter below zero.
	AdjustStock(ctx context.Context, itemCode string, delta decimal.Decimal) error

	// SetStock overwrites the cached stock counter, used when reconciliation
	// corrects drift.
	SetStock(ctx context.Context, itemCode string, stock decimal.Decimal) error
}

// ItemRepositoryFacade combines reader and writer for inventory items.
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
}
