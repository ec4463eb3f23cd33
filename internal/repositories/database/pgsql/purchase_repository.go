package pgsql

import (
	"context"
	"database/sql"
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
	"github.com/sitebooks/site_books_app/internal/utils/pagination"
)

const purchaseColumns = `purchase_id, reference_no, doc_date, supplier_code, supplier_name, project_id, item_code, description, quantity, unit, rate, gross_amount, discount, net_amount, amount_paid, payment_status, cancelled, version, created_at, created_by, last_updated_at, last_updated_by`

type PgxPurchaseRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

// rangeClause appends doc_date bounds to a WHERE fragment, continuing the
// placeholder numbering from args.
func rangeClause(rng domain.DateRange, args []any) (string, []any) {
	clause := ""
	if rng.From != nil {
		args = append(args, *rng.From)
		clause += fmt.Sprintf(" AND doc_date >= $%d", len(args))
	}
	if rng.To != nil {
		args = append(args, *rng.To)
		clause += fmt.Sprintf(" AND doc_date <= $%d", len(args))
	}
	return clause, args
}

func scanPurchase(row pgx.Row) (models.Purchase, error) {
	var m models.Purchase
	var projectID sql.NullString
	err := row.Scan(
		&m.PurchaseID,
		&m.ReferenceNo,
		&m.Date,
		&m.SupplierCode,
		&m.SupplierName,
		&projectID,
		&m.ItemCode,
		&m.Description,
		&m.Quantity,
		&m.Unit,
		&m.Rate,
		&m.GrossAmount,
		&m.Discount,
		&m.NetAmount,
		&m.AmountPaid,
		&m.PaymentStatus,
		&m.Cancelled,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Purchase{}, err
	}
	if projectID.Valid {
		m.ProjectID = projectID.String
	}
	return m, nil
}

func (r *PgxPurchaseRepository) queryPurchases(ctx context.Context, query string, args ...any) ([]domain.Purchase, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	purchases := []models.Purchase{}
	for rows.Next() {
		m, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		purchases = append(purchases, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase rows: %w", err)
	}
	return mapping.ToDomainPurchaseSlice(purchases), nil
}

// CreatePurchase inserts a new purchase.
func (r *PgxPurchaseRepository) CreatePurchase(ctx context.Context, purchase domain.Purchase) error {
	m := mapping.ToModelPurchase(purchase)

	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	var projectID sql.NullString
	if m.ProjectID != "" {
		projectID = sql.NullString{String: m.ProjectID, Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		m.PurchaseID,
		m.ReferenceNo,
		m.Date,
		m.SupplierCode,
		m.SupplierName,
		projectID,
		m.ItemCode,
		m.Description,
		m.Quantity,
		m.Unit,
		m.Rate,
		m.GrossAmount,
		m.Discount,
		m.NetAmount,
		m.AmountPaid,
		m.PaymentStatus,
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
			return fmt.Errorf("%w: purchase with reference %s already exists", apperrors.ErrDuplicate, m.ReferenceNo)
		}
		return fmt.Errorf("failed to save purchase %s: %w", m.PurchaseID, err)
	}
	return nil
}

// FindPurchaseByID retrieves a purchase by its ID.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_id = $1;`
	m, err := scanPurchase(r.pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by ID %s: %w", purchaseID, err)
	}
	d := mapping.ToDomainPurchase(m)
	return &d, nil
}

// FindPurchaseByReference retrieves a purchase by its reference number.
func (r *PgxPurchaseRepository) FindPurchaseByReference(ctx context.Context, referenceNo string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE reference_no = $1;`
	m, err := scanPurchase(r.pool.QueryRow(ctx, query, referenceNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by reference %s: %w", referenceNo, err)
	}
	d := mapping.ToDomainPurchase(m)
	return &d, nil
}

// ListPurchasesBySupplier retrieves non-cancelled purchases for a supplier.
func (r *PgxPurchaseRepository) ListPurchasesBySupplier(ctx context.Context, supplierCode string, rng domain.DateRange) ([]domain.Purchase, error) {
	args := []any{supplierCode}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE supplier_code = $1 AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryPurchases(ctx, query, args...)
}

// ListPurchasesByProject retrieves non-cancelled purchases attributed to a project.
func (r *PgxPurchaseRepository) ListPurchasesByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.Purchase, error) {
	args := []any{projectID}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE project_id = $1 AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryPurchases(ctx, query, args...)
}

// ListPurchases retrieves all non-cancelled purchases in the range.
func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, rng domain.DateRange) ([]domain.Purchase, error) {
	args := []any{}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryPurchases(ctx, query, args...)
}

// ListPurchasesPaged retrieves purchases newest-first using token pagination.
// The token encodes the (doc_date, created_at) pair of the last returned row.
func (r *PgxPurchaseRepository) ListPurchasesPaged(ctx context.Context, limit int, nextToken *string) ([]domain.Purchase, *string, error) {
	args := []any{}
	cursor := ""
	if nextToken != nil && *nextToken != "" {
		docDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, docDate, createdAt)
		cursor = fmt.Sprintf(" AND (doc_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, limit+1)
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE cancelled = FALSE` + cursor +
		fmt.Sprintf(` ORDER BY doc_date DESC, created_at DESC LIMIT $%d;`, len(args))

	purchases, err := r.queryPurchases(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	// Fetch one extra row to decide whether another page exists.
	var token *string
	if len(purchases) > limit {
		purchases = purchases[:limit]
		last := purchases[len(purchases)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return purchases, token, nil
}

// SumPurchasedQuantityByItem replays the purchase log for one item.
func (r *PgxPurchaseRepository) SumPurchasedQuantityByItem(ctx context.Context, itemCode string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM purchases WHERE item_code = $1 AND cancelled = FALSE;`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, itemCode).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum purchased quantity for item %s: %w", itemCode, err)
	}
	return total, nil
}

// ListPaymentsByPurchase retrieves the settlement history of one purchase.
func (r *PgxPurchaseRepository) ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error) {
	query := `
		SELECT payment_id, purchase_id, amount, doc_date, description, created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_payments
		WHERE purchase_id = $1
		ORDER BY doc_date, created_at;
	`
	rows, err := r.pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for purchase %s: %w", purchaseID, err)
	}
	defer rows.Close()

	payments := []domain.PurchasePayment{}
	for rows.Next() {
		var m models.PurchasePayment
		err := rows.Scan(
			&m.PaymentID,
			&m.PurchaseID,
			&m.Amount,
			&m.Date,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPurchasePayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase payment rows: %w", err)
	}
	return payments, nil
}

// ApplyPayment appends a settlement row and bumps the derived columns in one
// transaction. The version guard makes the whole step conditional: losing a
// race affects zero rows and surfaces as ErrConflict for the caller to retry.
func (r *PgxPurchaseRepository) ApplyPayment(ctx context.Context, purchaseID string, payment domain.PurchasePayment, newAmountPaid decimal.Decimal, newStatus domain.PaymentStatus, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
		UPDATE purchases
		SET amount_paid = $2, payment_status = $3, version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE purchase_id = $1 AND version = $6 AND cancelled = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		purchaseID,
		newAmountPaid,
		string(newStatus),
		payment.CreatedAt,
		payment.CreatedBy,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update purchase %s settlement state: %w", purchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase %s version %d is stale", apperrors.ErrConflict, purchaseID, expectedVersion)
	}

	m := mapping.ToModelPurchasePayment(payment)
	insertQuery := `
		INSERT INTO purchase_payments (payment_id, purchase_id, amount, doc_date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.PaymentID,
		m.PurchaseID,
		m.Amount,
		m.Date,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to record payment %s for purchase %s: %w", m.PaymentID, purchaseID, err)
	}

	return r.Commit(ctx, tx)
}

// VoidPurchase sets the cancelled flag.
func (r *PgxPurchaseRepository) VoidPurchase(ctx context.Context, purchaseID string, userID string, now time.Time) error {
	query := `
		UPDATE purchases
		SET cancelled = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE purchase_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, purchaseID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to void purchase %s: %w", purchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
