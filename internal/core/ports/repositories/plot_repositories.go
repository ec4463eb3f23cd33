package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// PlotSaleRepositoryFacade defines operations over the plot sale log.
type PlotSaleRepositoryFacade interface {
	// CreatePlotSale persists a new plot sale record.
	CreatePlotSale(ctx context.Context, sale domain.PlotSale) error

	// FindPlotSaleByID retrieves a plot sale by its unique identifier.
	FindPlotSaleByID(ctx context.Context, plotSaleID string) (*domain.PlotSale, error)

	// ListPlotSalesByCustomer retrieves non-cancelled plot sales for a customer,
	// ordered by date then creation time.
	ListPlotSalesByCustomer(ctx context.Context, customerID string, rng domain.DateRange) ([]domain.PlotSale, error)

	// ListPlotSalesByProject retrieves non-cancelled plot sales for a project.
	ListPlotSalesByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.PlotSale, error)

	// ApplyReceipt appends a customer receipt and updates the derived
	// amountReceived, balance and status atomically, guarded by the expected
	// version. Returns apperrors.ErrConflict when another writer got there first.
	ApplyReceipt(ctx context.Context, plotSaleID string, receipt domain.CustomerReceipt, newAmountReceived decimal.Decimal, newBalance decimal.Decimal, newStatus domain.PaymentStatus, expectedVersion int64) error

	// VoidPlotSale sets the cancelled flag.
	VoidPlotSale(ctx context.Context, plotSaleID string, userID string, now time.Time) error
}
