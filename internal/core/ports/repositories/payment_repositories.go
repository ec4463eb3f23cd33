package repositories

import (
	"context"
	"time"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// BankPaymentReader defines read operations over the bank payment log.
type BankPaymentReader interface {
	// FindBankPaymentByID retrieves a bank payment by its unique identifier.
	FindBankPaymentByID(ctx context.Context, paymentID string) (*domain.BankPayment, error)

	// ListBankPayments retrieves non-cancelled bank payments in the range,
	// ordered by date then creation time.
	ListBankPayments(ctx context.Context, rng domain.DateRange) ([]domain.BankPayment, error)

	// ListBankPaymentsBySupplier retrieves non-cancelled payments referencing
	// the supplier by code.
	ListBankPaymentsBySupplier(ctx context.Context, supplierCode string, rng domain.DateRange) ([]domain.BankPayment, error)

	// ListUnreferencedBankPayments retrieves non-cancelled payments carrying
	// no supplier code. They are matched by payee name through the
	// legacynames adapter, never inside core ledger logic.
	ListUnreferencedBankPayments(ctx context.Context, rng domain.DateRange) ([]domain.BankPayment, error)

	// ListBankPaymentsByProject retrieves non-cancelled payments attributed to a project.
	ListBankPaymentsByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.BankPayment, error)
}

// BankPaymentWriter defines write operations on the bank payment log.
type BankPaymentWriter interface {
	// CreateBankPayment persists a new bank payment with its lines.
	CreateBankPayment(ctx context.Context, payment domain.BankPayment) error

	// VoidBankPayment sets the cancelled flag.
	VoidBankPayment(ctx context.Context, paymentID string, userID string, now time.Time) error
}

// BankPaymentRepositoryFacade combines bank payment reads and writes.
type BankPaymentRepositoryFacade interface {
	BankPaymentReader
	BankPaymentWriter
}

// CashPaymentRepositoryFacade defines operations over the petty-cash log.
type CashPaymentRepositoryFacade interface {
	// CreateCashPayment persists a new cash payment with its lines.
	CreateCashPayment(ctx context.Context, payment domain.CashPayment) error

	// FindCashPaymentByID retrieves a cash payment by its unique identifier.
	FindCashPaymentByID(ctx context.Context, paymentID string) (*domain.CashPayment, error)

	// ListCashPaymentsByProject retrieves non-cancelled cash payments for a project.
	ListCashPaymentsByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.CashPayment, error)

	// VoidCashPayment sets the cancelled flag.
	VoidCashPayment(ctx context.Context, paymentID string, userID string, now time.Time) error
}
