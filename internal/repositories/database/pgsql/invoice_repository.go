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
)

const invoiceColumns = `invoice_id, reference_no, doc_date, customer_id, project_id, gross_total, discount, net_total, amount_received, status, cancelled, version, created_at, created_by, last_updated_at, last_updated_by`

const receiptColumns = `receipt_id, customer_id, source, document_id, amount, doc_date, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for sales invoices and
// the shared customer receipt log.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanSalesInvoice(row pgx.Row) (models.SalesInvoice, error) {
	var m models.SalesInvoice
	var projectID sql.NullString
	err := row.Scan(
		&m.InvoiceID,
		&m.ReferenceNo,
		&m.Date,
		&m.CustomerID,
		&projectID,
		&m.GrossTotal,
		&m.Discount,
		&m.NetTotal,
		&m.AmountReceived,
		&m.Status,
		&m.Cancelled,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.SalesInvoice{}, err
	}
	if projectID.Valid {
		m.ProjectID = projectID.String
	}
	return m, nil
}

func (r *PgxInvoiceRepository) fetchInvoiceLines(ctx context.Context, invoiceIDs []string) (map[string][]models.SalesInvoiceLine, error) {
	if len(invoiceIDs) == 0 {
		return map[string][]models.SalesInvoiceLine{}, nil
	}
	query := `
		SELECT invoice_id, line_no, item_code, description, quantity, rate, amount
		FROM sales_invoice_lines
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, line_no;
	`
	rows, err := r.pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice lines: %w", err)
	}
	defer rows.Close()

	linesByID := map[string][]models.SalesInvoiceLine{}
	for rows.Next() {
		var l models.SalesInvoiceLine
		if err := rows.Scan(&l.InvoiceID, &l.LineNo, &l.ItemCode, &l.Description, &l.Quantity, &l.Rate, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan invoice line row: %w", err)
		}
		linesByID[l.InvoiceID] = append(linesByID[l.InvoiceID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice line rows: %w", err)
	}
	return linesByID, nil
}

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.SalesInvoice, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	headers := []models.SalesInvoice{}
	ids := []string{}
	for rows.Next() {
		m, err := scanSalesInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		headers = append(headers, m)
		ids = append(ids, m.InvoiceID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}

	linesByID, err := r.fetchInvoiceLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	invoices := make([]domain.SalesInvoice, len(headers))
	for i, m := range headers {
		invoices[i] = mapping.ToDomainSalesInvoice(m, linesByID[m.InvoiceID])
	}
	return invoices, nil
}

// CreateSalesInvoice inserts an invoice header and its lines atomically.
func (r *PgxInvoiceRepository) CreateSalesInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	m := mapping.ToModelSalesInvoice(invoice)
	lines := mapping.ToModelSalesInvoiceLines(m.InvoiceID, invoice.Lines)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var projectID sql.NullString
	if m.ProjectID != "" {
		projectID = sql.NullString{String: m.ProjectID, Valid: true}
	}

	query := `
		INSERT INTO sales_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.ReferenceNo,
		m.Date,
		m.CustomerID,
		projectID,
		m.GrossTotal,
		m.Discount,
		m.NetTotal,
		m.AmountReceived,
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
			return fmt.Errorf("%w: invoice with reference %s already exists", apperrors.ErrDuplicate, m.ReferenceNo)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}

	lineQuery := `
		INSERT INTO sales_invoice_lines (invoice_id, line_no, item_code, description, quantity, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(lineQuery, l.InvoiceID, l.LineNo, l.ItemCode, l.Description, l.Quantity, l.Rate, l.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert invoice line for %s: %w", m.InvoiceID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close invoice line batch: %w", err)
	}
	return r.Commit(ctx, tx)
}

// FindSalesInvoiceByID retrieves an invoice with its lines.
func (r *PgxInvoiceRepository) FindSalesInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE invoice_id = $1;`
	return r.findOne(ctx, query, invoiceID)
}

// FindSalesInvoiceByReference retrieves an invoice by its reference number.
func (r *PgxInvoiceRepository) FindSalesInvoiceByReference(ctx context.Context, referenceNo string) (*domain.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE reference_no = $1;`
	return r.findOne(ctx, query, referenceNo)
}

func (r *PgxInvoiceRepository) findOne(ctx context.Context, query string, arg string) (*domain.SalesInvoice, error) {
	m, err := scanSalesInvoice(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", arg, err)
	}
	linesByID, err := r.fetchInvoiceLines(ctx, []string{m.InvoiceID})
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainSalesInvoice(m, linesByID[m.InvoiceID])
	return &d, nil
}

// ListSalesInvoices retrieves non-cancelled invoices in the range.
func (r *PgxInvoiceRepository) ListSalesInvoices(ctx context.Context, rng domain.DateRange) ([]domain.SalesInvoice, error) {
	args := []any{}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryInvoices(ctx, query, args...)
}

// ListSalesInvoicesByCustomer retrieves non-cancelled invoices for a customer.
func (r *PgxInvoiceRepository) ListSalesInvoicesByCustomer(ctx context.Context, customerID string, rng domain.DateRange) ([]domain.SalesInvoice, error) {
	args := []any{customerID}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE customer_id = $1 AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryInvoices(ctx, query, args...)
}

// ListSalesInvoicesByProject retrieves non-cancelled invoices for a project.
func (r *PgxInvoiceRepository) ListSalesInvoicesByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.SalesInvoice, error) {
	args := []any{projectID}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE project_id = $1 AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryInvoices(ctx, query, args...)
}

// SumSoldQuantityByItem replays invoice lines for one item, skipping lines of
// cancelled invoices.
func (r *PgxInvoiceRepository) SumSoldQuantityByItem(ctx context.Context, itemCode string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.quantity), 0)
		FROM sales_invoice_lines l
		JOIN sales_invoices i ON i.invoice_id = l.invoice_id
		WHERE l.item_code = $1 AND i.cancelled = FALSE;
	`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, itemCode).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum sold quantity for item %s: %w", itemCode, err)
	}
	return total, nil
}

// ListReceiptsByCustomer retrieves the shared receipt log for one customer.
// Receipts settling a cancelled invoice or plot sale are excluded, so voiding
// a settled document removes its credits from the ledger along with it.
func (r *PgxInvoiceRepository) ListReceiptsByCustomer(ctx context.Context, customerID string, rng domain.DateRange) ([]domain.CustomerReceipt, error) {
	args := []any{customerID}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + receiptColumns + ` FROM customer_receipts
		WHERE customer_id = $1
		AND NOT EXISTS (
			SELECT 1 FROM sales_invoices i
			WHERE customer_receipts.source = 'invoice'
			  AND i.invoice_id = customer_receipts.document_id
			  AND i.cancelled
		)
		AND NOT EXISTS (
			SELECT 1 FROM plot_sales p
			WHERE customer_receipts.source = 'plot_sale'
			  AND p.plot_sale_id = customer_receipts.document_id
			  AND p.cancelled
		)` + clause + ` ORDER BY doc_date, created_at;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	receipts := []domain.CustomerReceipt{}
	for rows.Next() {
		var m models.CustomerReceipt
		err := rows.Scan(
			&m.ReceiptID,
			&m.CustomerID,
			&m.Source,
			&m.DocumentID,
			&m.Amount,
			&m.Date,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		receipts = append(receipts, mapping.ToDomainCustomerReceipt(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receipt rows: %w", err)
	}
	return receipts, nil
}

// insertCustomerReceipt appends one row to the shared receipt log inside tx.
func insertCustomerReceipt(ctx context.Context, tx pgx.Tx, receipt domain.CustomerReceipt) error {
	m := mapping.ToModelCustomerReceipt(receipt)
	query := `
		INSERT INTO customer_receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.ReceiptID,
		m.CustomerID,
		m.Source,
		m.DocumentID,
		m.Amount,
		m.Date,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to record receipt %s: %w", m.ReceiptID, err)
	}
	return nil
}

// ApplyReceipt appends a receipt row and bumps the derived columns in one
// transaction, guarded by the expected version.
func (r *PgxInvoiceRepository) ApplyReceipt(ctx context.Context, invoiceID string, receipt domain.CustomerReceipt, newAmountReceived decimal.Decimal, newStatus domain.PaymentStatus, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
		UPDATE sales_invoices
		SET amount_received = $2, status = $3, version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1 AND version = $6 AND cancelled = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		invoiceID,
		newAmountReceived,
		string(newStatus),
		receipt.CreatedAt,
		receipt.CreatedBy,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s settlement state: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s version %d is stale", apperrors.ErrConflict, invoiceID, expectedVersion)
	}

	if err := insertCustomerReceipt(ctx, tx, receipt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// VoidSalesInvoice sets the cancelled flag.
func (r *PgxInvoiceRepository) VoidSalesInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	query := `
		UPDATE sales_invoices
		SET cancelled = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, invoiceID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to void invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
