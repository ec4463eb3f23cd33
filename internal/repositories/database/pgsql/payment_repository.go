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
	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	"github.com/sitebooks/site_books_app/internal/models"
	"github.com/sitebooks/site_books_app/internal/utils/mapping"
)

const bankPaymentColumns = `payment_id, reference_no, doc_date, supplier_code, payee_name, project_id, bank_account, bank_account_no, cheque_no, cheque_date, description, total_amount, cancelled, created_at, created_by, last_updated_at, last_updated_by`

type PgxBankPaymentRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxBankPaymentRepository creates a new repository for bank payment vouchers.
func newPgxBankPaymentRepository(pool *pgxpool.Pool) portsrepo.BankPaymentRepositoryFacade {
	return &PgxBankPaymentRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankPaymentRepositoryFacade = (*PgxBankPaymentRepository)(nil)

func scanBankPayment(row pgx.Row) (models.BankPayment, error) {
	var m models.BankPayment
	var supplierCode, projectID sql.NullString
	err := row.Scan(
		&m.PaymentID,
		&m.ReferenceNo,
		&m.Date,
		&supplierCode,
		&m.PayeeName,
		&projectID,
		&m.BankAccount,
		&m.BankAccountNo,
		&m.ChequeNo,
		&m.ChequeDate,
		&m.Description,
		&m.TotalAmount,
		&m.Cancelled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.BankPayment{}, err
	}
	if supplierCode.Valid {
		m.SupplierCode = supplierCode.String
	}
	if projectID.Valid {
		m.ProjectID = projectID.String
	}
	return m, nil
}

// insertPaymentLines writes voucher lines into the given table inside tx.
func insertPaymentLines(ctx context.Context, tx pgx.Tx, table string, lines []models.PaymentLine) error {
	query := `
		INSERT INTO ` + table + ` (payment_id, line_no, account_code, account_name, description, amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query, line.PaymentID, line.LineNo, line.AccountCode, line.AccountName, line.Description, line.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert %s row: %w", table, err)
		}
	}
	return br.Close()
}

// fetchPaymentLines reads voucher lines for one payment from the given table.
func fetchPaymentLines(ctx context.Context, pool *pgxpool.Pool, table string, paymentID string) ([]models.PaymentLine, error) {
	query := `
		SELECT payment_id, line_no, account_code, account_name, description, amount
		FROM ` + table + `
		WHERE payment_id = $1
		ORDER BY line_no;
	`
	rows, err := pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s for payment %s: %w", table, paymentID, err)
	}
	defer rows.Close()

	lines := []models.PaymentLine{}
	for rows.Next() {
		var l models.PaymentLine
		if err := rows.Scan(&l.PaymentID, &l.LineNo, &l.AccountCode, &l.AccountName, &l.Description, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, err)
	}
	return lines, nil
}

// fetchPaymentLinesByIDs reads voucher lines for many payments in one query,
// keyed by payment ID.
func fetchPaymentLinesByIDs(ctx context.Context, pool *pgxpool.Pool, table string, paymentIDs []string) (map[string][]models.PaymentLine, error) {
	if len(paymentIDs) == 0 {
		return map[string][]models.PaymentLine{}, nil
	}
	query := `
		SELECT payment_id, line_no, account_code, account_name, description, amount
		FROM ` + table + `
		WHERE payment_id = ANY($1)
		ORDER BY payment_id, line_no;
	`
	rows, err := pool.Query(ctx, query, paymentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s batch: %w", table, err)
	}
	defer rows.Close()

	linesByID := map[string][]models.PaymentLine{}
	for rows.Next() {
		var l models.PaymentLine
		if err := rows.Scan(&l.PaymentID, &l.LineNo, &l.AccountCode, &l.AccountName, &l.Description, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan %s row during batch fetch: %w", table, err)
		}
		linesByID[l.PaymentID] = append(linesByID[l.PaymentID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows during batch fetch: %w", table, err)
	}
	return linesByID, nil
}

// CreateBankPayment inserts a bank payment header and its lines atomically.
func (r *PgxBankPaymentRepository) CreateBankPayment(ctx context.Context, payment domain.BankPayment) error {
	m := mapping.ToModelBankPayment(payment)
	lines := mapping.ToModelPaymentLines(m.PaymentID, payment.Lines)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var supplierCode, projectID sql.NullString
	if m.SupplierCode != "" {
		supplierCode = sql.NullString{String: m.SupplierCode, Valid: true}
	}
	if m.ProjectID != "" {
		projectID = sql.NullString{String: m.ProjectID, Valid: true}
	}

	query := `
		INSERT INTO bank_payments (` + bankPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.ReferenceNo,
		m.Date,
		supplierCode,
		m.PayeeName,
		projectID,
		m.BankAccount,
		m.BankAccountNo,
		m.ChequeNo,
		m.ChequeDate,
		m.Description,
		m.TotalAmount,
		m.Cancelled,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: bank payment with reference %s already exists", apperrors.ErrDuplicate, m.ReferenceNo)
		}
		return fmt.Errorf("failed to save bank payment %s: %w", m.PaymentID, err)
	}

	if err := insertPaymentLines(ctx, tx, "bank_payment_lines", lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindBankPaymentByID retrieves a bank payment with its lines.
func (r *PgxBankPaymentRepository) FindBankPaymentByID(ctx context.Context, paymentID string) (*domain.BankPayment, error) {
	query := `SELECT ` + bankPaymentColumns + ` FROM bank_payments WHERE payment_id = $1;`
	m, err := scanBankPayment(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank payment by ID %s: %w", paymentID, err)
	}
	lines, err := fetchPaymentLines(ctx, r.pool, "bank_payment_lines", paymentID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainBankPayment(m, lines)
	return &d, nil
}

func (r *PgxBankPaymentRepository) queryBankPayments(ctx context.Context, query string, args ...any) ([]domain.BankPayment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank payments: %w", err)
	}
	defer rows.Close()

	headers := []models.BankPayment{}
	ids := []string{}
	for rows.Next() {
		m, err := scanBankPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank payment row: %w", err)
		}
		headers = append(headers, m)
		ids = append(ids, m.PaymentID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank payment rows: %w", err)
	}

	linesByID, err := fetchPaymentLinesByIDs(ctx, r.pool, "bank_payment_lines", ids)
	if err != nil {
		return nil, err
	}
	payments := make([]domain.BankPayment, len(headers))
	for i, m := range headers {
		payments[i] = mapping.ToDomainBankPayment(m, linesByID[m.PaymentID])
	}
	return payments, nil
}

// ListBankPayments retrieves non-cancelled bank payments in the range.
func (r *PgxBankPaymentRepository) ListBankPayments(ctx context.Context, rng domain.DateRange) ([]domain.BankPayment, error) {
	args := []any{}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + bankPaymentColumns + ` FROM bank_payments WHERE cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryBankPayments(ctx, query, args...)
}

// ListBankPaymentsBySupplier retrieves non-cancelled payments referencing the supplier by code.
func (r *PgxBankPaymentRepository) ListBankPaymentsBySupplier(ctx context.Context, supplierCode string, rng domain.DateRange) ([]domain.BankPayment, error) {
	args := []any{supplierCode}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + bankPaymentColumns + ` FROM bank_payments WHERE supplier_code = $1 AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryBankPayments(ctx, query, args...)
}

// ListUnreferencedBankPayments retrieves non-cancelled payments carrying no supplier code.
func (r *PgxBankPaymentRepository) ListUnreferencedBankPayments(ctx context.Context, rng domain.DateRange) ([]domain.BankPayment, error) {
	args := []any{}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + bankPaymentColumns + ` FROM bank_payments WHERE (supplier_code IS NULL OR supplier_code = '') AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryBankPayments(ctx, query, args...)
}

// ListBankPaymentsByProject retrieves non-cancelled payments attributed to a project.
func (r *PgxBankPaymentRepository) ListBankPaymentsByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.BankPayment, error) {
	args := []any{projectID}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + bankPaymentColumns + ` FROM bank_payments WHERE project_id = $1 AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryBankPayments(ctx, query, args...)
}

// VoidBankPayment sets the cancelled flag.
func (r *PgxBankPaymentRepository) VoidBankPayment(ctx context.Context, paymentID string, userID string, now time.Time) error {
	query := `
		UPDATE bank_payments
		SET cancelled = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, paymentID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to void bank payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const cashPaymentColumns = `payment_id, reference_no, doc_date, project_id, description, total_amount, remarks, cancelled, created_at, created_by, last_updated_at, last_updated_by`

type PgxCashPaymentRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxCashPaymentRepository creates a new repository for petty-cash vouchers.
func newPgxCashPaymentRepository(pool *pgxpool.Pool) portsrepo.CashPaymentRepositoryFacade {
	return &PgxCashPaymentRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashPaymentRepositoryFacade = (*PgxCashPaymentRepository)(nil)

func scanCashPayment(row pgx.Row) (models.CashPayment, error) {
	var m models.CashPayment
	var projectID sql.NullString
	err := row.Scan(
		&m.PaymentID,
		&m.ReferenceNo,
		&m.Date,
		&projectID,
		&m.Description,
		&m.TotalAmount,
		&m.Remarks,
		&m.Cancelled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.CashPayment{}, err
	}
	if projectID.Valid {
		m.ProjectID = projectID.String
	}
	return m, nil
}

// CreateCashPayment inserts a cash payment header and its lines atomically.
func (r *PgxCashPaymentRepository) CreateCashPayment(ctx context.Context, payment domain.CashPayment) error {
	m := mapping.ToModelCashPayment(payment)
	lines := mapping.ToModelPaymentLines(m.PaymentID, payment.Lines)

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
		INSERT INTO cash_payments (` + cashPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.ReferenceNo,
		m.Date,
		projectID,
		m.Description,
		m.TotalAmount,
		m.Remarks,
		m.Cancelled,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: cash payment with reference %s already exists", apperrors.ErrDuplicate, m.ReferenceNo)
		}
		return fmt.Errorf("failed to save cash payment %s: %w", m.PaymentID, err)
	}

	if err := insertPaymentLines(ctx, tx, "cash_payment_lines", lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindCashPaymentByID retrieves a cash payment with its lines.
func (r *PgxCashPaymentRepository) FindCashPaymentByID(ctx context.Context, paymentID string) (*domain.CashPayment, error) {
	query := `SELECT ` + cashPaymentColumns + ` FROM cash_payments WHERE payment_id = $1;`
	m, err := scanCashPayment(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash payment by ID %s: %w", paymentID, err)
	}
	lines, err := fetchPaymentLines(ctx, r.pool, "cash_payment_lines", paymentID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainCashPayment(m, lines)
	return &d, nil
}

func (r *PgxCashPaymentRepository) queryCashPayments(ctx context.Context, query string, args ...any) ([]domain.CashPayment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash payments: %w", err)
	}
	defer rows.Close()

	headers := []models.CashPayment{}
	ids := []string{}
	for rows.Next() {
		m, err := scanCashPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash payment row: %w", err)
		}
		headers = append(headers, m)
		ids = append(ids, m.PaymentID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash payment rows: %w", err)
	}

	linesByID, err := fetchPaymentLinesByIDs(ctx, r.pool, "cash_payment_lines", ids)
	if err != nil {
		return nil, err
	}
	payments := make([]domain.CashPayment, len(headers))
	for i, m := range headers {
		payments[i] = mapping.ToDomainCashPayment(m, linesByID[m.PaymentID])
	}
	return payments, nil
}

// ListCashPaymentsByProject retrieves non-cancelled cash payments for a project.
func (r *PgxCashPaymentRepository) ListCashPaymentsByProject(ctx context.Context, projectID string, rng domain.DateRange) ([]domain.CashPayment, error) {
	args := []any{projectID}
	clause, args := rangeClause(rng, args)
	query := `SELECT ` + cashPaymentColumns + ` FROM cash_payments WHERE project_id = $1 AND cancelled = FALSE` + clause + ` ORDER BY doc_date, created_at;`
	return r.queryCashPayments(ctx, query, args...)
}

// VoidCashPayment sets the cancelled flag.
func (r *PgxCashPaymentRepository) VoidCashPayment(ctx context.Context, paymentID string, userID string, now time.Time) error {
	query := `
		UPDATE cash_payments
		SET cancelled = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, paymentID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to void cash payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
