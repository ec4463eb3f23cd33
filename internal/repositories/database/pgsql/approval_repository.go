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
	"github.com/sitebooks/site_books_app/internal/utils/pagination"
)

const changeRequestColumns = `request_id, entity, op, entity_id, patch, status, requested_by, reviewed_by, review_note, reviewed_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxChangeRequestRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxChangeRequestRepository creates a new repository for the approval queue.
func newPgxChangeRequestRepository(pool *pgxpool.Pool) portsrepo.ChangeRequestRepositoryFacade {
	return &PgxChangeRequestRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChangeRequestRepositoryFacade = (*PgxChangeRequestRepository)(nil)

func scanChangeRequest(row pgx.Row) (models.ChangeRequest, error) {
	var m models.ChangeRequest
	var entityID, reviewedBy sql.NullString
	err := row.Scan(
		&m.RequestID,
		&m.Entity,
		&m.Op,
		&entityID,
		&m.Patch,
		&m.Status,
		&m.RequestedBy,
		&reviewedBy,
		&m.ReviewNote,
		&m.ReviewedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.ChangeRequest{}, err
	}
	if entityID.Valid {
		m.EntityID = entityID.String
	}
	if reviewedBy.Valid {
		m.ReviewedBy = reviewedBy.String
	}
	return m, nil
}

// CreateChangeRequest persists a new pending change request.
func (r *PgxChangeRequestRepository) CreateChangeRequest(ctx context.Context, request domain.ChangeRequest) error {
	m := mapping.ToModelChangeRequest(request)

	var entityID sql.NullString
	if m.EntityID != "" {
		entityID = sql.NullString{String: m.EntityID, Valid: true}
	}

	query := `
		INSERT INTO change_requests (` + changeRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		m.RequestID,
		m.Entity,
		m.Op,
		entityID,
		m.Patch,
		m.Status,
		m.RequestedBy,
		m.ReviewNote,
		m.ReviewedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: change request %s already exists", apperrors.ErrDuplicate, m.RequestID)
		}
		return fmt.Errorf("failed to save change request %s: %w", m.RequestID, err)
	}
	return nil
}

// FindChangeRequestByID retrieves a change request by ID.
func (r *PgxChangeRequestRepository) FindChangeRequestByID(ctx context.Context, requestID string) (*domain.ChangeRequest, error) {
	query := `SELECT ` + changeRequestColumns + ` FROM change_requests WHERE request_id = $1;`
	m, err := scanChangeRequest(r.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find change request by ID %s: %w", requestID, err)
	}
	d := mapping.ToDomainChangeRequest(m)
	return &d, nil
}

// ListChangeRequests retrieves requests newest first with token pagination.
// The cursor rides on created_at, which also serves as the request date.
func (r *PgxChangeRequestRepository) ListChangeRequests(ctx context.Context, status domain.RequestStatus, limit int, nextToken string) ([]domain.ChangeRequest, string, error) {
	args := []any{}
	where := ""
	if status != "" {
		args = append(args, string(status))
		where = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if nextToken != "" {
		_, createdAt, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, createdAt)
		if where == "" {
			where = fmt.Sprintf(" WHERE created_at < $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND created_at < $%d", len(args))
		}
	}
	args = append(args, limit+1)
	query := `SELECT ` + changeRequestColumns + ` FROM change_requests` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query change requests: %w", err)
	}
	defer rows.Close()

	requests := []models.ChangeRequest{}
	for rows.Next() {
		m, err := scanChangeRequest(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan change request row: %w", err)
		}
		requests = append(requests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating change request rows: %w", err)
	}

	token := ""
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[len(requests)-1]
		token = pagination.EncodeToken(last.CreatedAt, last.CreatedAt)
	}
	return mapping.ToDomainChangeRequestSlice(requests), token, nil
}

// MarkReviewed transitions a request out of pending. The status guard in the
// WHERE clause means a request reviewed by someone else affects zero rows.
func (r *PgxChangeRequestRepository) MarkReviewed(ctx context.Context, requestID string, status domain.RequestStatus, reviewerID string, note string, reviewedAt time.Time) error {
	query := `
		UPDATE change_requests
		SET status = $2, reviewed_by = $3, review_note = $4, reviewed_at = $5, last_updated_at = $5, last_updated_by = $3
		WHERE request_id = $1 AND status = 'pending';
	`
	cmdTag, err := r.pool.Exec(ctx, query, requestID, string(status), reviewerID, note, reviewedAt)
	if err != nil {
		return fmt.Errorf("failed to mark change request %s reviewed: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindChangeRequestByID(ctx, requestID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check change request %s after review attempt: %w", requestID, findErr)
		}
		return fmt.Errorf("%w: change request %s is not pending", apperrors.ErrConflict, requestID)
	}
	return nil
}
