package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// PurchaseReader defines read operations over the purchase log.
type PurchaseReader interface {
	// FindPurchaseByID retrieves a purchase by its unique identifier.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// FindPurchaseByReference retrieves a purchase by its server-assigned reference number.
	FindPurchaseByReference(ctx context.Context, referenceNo string) (*domain.Purchase, error)

	// ListPurchasesBySupplier retrieves non-cancelled purchases for a supplier,
	// ordered by date then creation time, optionally bounded by the range.
	ListPurchasesBySupplier(ctx context.Context, supplierCode string, rng domain.DateRange) ([]domain.Purchase, error)

	// ListPurchasesByProject retrieves non-cancelled purchases attributed to a project.
	ListPurchasesByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.Purchase, error)

	// ListPurchases retrieves all non-cancelled purchases in the range.
	ListPurchases(ctx context.Context, rng domain.DateRange) ([]domain.Purchase, error)

	// ListPurchasesPaged retrieves purchases using token-based pagination.
	ListPurchasesPaged(ctx context.Context, limit int, nextToken *string) ([]domain.Purchase, *string, error)

	// SumPurchasedQuantityByItem replays the purchase log for one item and
	// returns the total non-cancelled quantity bought.
	SumPurchasedQuantityByItem(ctx context.Context, itemCode string) (decimal.Decimal, error)

	// ListPaymentsByPurchase retrieves the settlement history of one purchase,
	// oldest first.
	ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error)
}

// PurchaseWriter defines write operations on the purchase log.
type PurchaseWriter interface {
	// CreatePurchase persists a new purchase record.
	CreatePurchase(ctx context.Context, purchase domain.Purchase) error

	// ApplyPayment appends a settlement and updates the derived amountPaid and
	// status in one atomic step, guarded by the expected version. Returns
	// apperrors.ErrConflict when another writer got there first.
	ApplyPayment(ctx context.Context, purchaseID string, payment domain.PurchasePayment, newAmountPaid decimal.Decimal, newStatus domain.PaymentStatus, expectedVersion int64) error

	// VoidPurchase sets the cancelled flag, removing the purchase from all
	// future aggregation.
	VoidPurchase(ctx context.Context, purchaseID string, userID string, now time.Time) error
}

// PurchaseRepositoryFacade combines purchase reads and writes.
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}
