package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tallerhq/facturas/internal/domain/sequence"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
)

type sequenceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSequenceRepository(db *postgres.DB, logger *logger.Logger) sequence.Repository {
	return &sequenceRepository{db: db, logger: logger}
}

// GetForUpdate locks the counter row for the prefix until the surrounding
// transaction commits. Concurrent allocators for the same prefix block
// here, which is what makes allocation order equal commit order.
func (r *sequenceRepository) GetForUpdate(ctx context.Context, prefix string) (*sequence.Counter, error) {
	query := `
	SELECT prefix, last_value, created_at, updated_at
	FROM document_sequences
	WHERE prefix = $1
	FOR UPDATE`

	var c sequence.Counter
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &c, query, prefix); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("No counter exists for prefix %s", prefix).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to lock document counter").
			Mark(ierr.ErrDatabase)
	}

	return &c, nil
}

func (r *sequenceRepository) Create(ctx context.Context, counter *sequence.Counter) error {
	query := `
	INSERT INTO document_sequences (prefix, last_value, created_at, updated_at)
	VALUES ($1, $2, $3, $4)`

	now := time.Now().UTC()
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, query, counter.Prefix, counter.LastValue, now, now)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			// Another allocator created the row first; the caller
			// retries the whole allocation.
			return ierr.WithError(err).
				WithHintf("Counter for prefix %s already exists", counter.Prefix).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create document counter").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Debugw("created document counter",
		"prefix", counter.Prefix,
		"last_value", counter.LastValue,
	)
	return nil
}

func (r *sequenceRepository) UpdateValue(ctx context.Context, prefix string, value int64) error {
	query := `
	UPDATE document_sequences
	SET last_value = $2, updated_at = $3
	WHERE prefix = $1`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, prefix, value, time.Now().UTC())
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update document counter").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("document counter disappeared during allocation").
			WithHintf("No counter exists for prefix %s", prefix).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
