package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	pool *pgxpool.Pool
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for reference number allocation.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{pool: pool, BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextReference allocates the next number for a prefix. The upsert makes the
// allocation atomic: concurrent callers each see a distinct last_value.
func (r *PgxSequenceRepository) NextReference(ctx context.Context, prefix string) (string, error) {
	query := `
		INSERT INTO reference_sequences (prefix, last_value)
		VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last_value = reference_sequences.last_value + 1
		RETURNING last_value;
	`
	var lastValue int64
	if err := r.pool.QueryRow(ctx, query, prefix).Scan(&lastValue); err != nil {
		return "", fmt.Errorf("failed to allocate reference for prefix %s: %w", prefix, err)
	}
	return fmt.Sprintf("%s%06d", prefix, lastValue), nil
}
