package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/tallerhq/facturas/internal/domain/lock"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
)

type lockRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewLockRepository(db *postgres.DB, logger *logger.Logger) lock.Repository {
	return &lockRepository{db: db, logger: logger}
}

func (r *lockRepository) Get(ctx context.Context, invoiceID int64) (*lock.EditLock, error) {
	query := `SELECT invoice_id, user_id, acquired_at FROM invoice_locks WHERE invoice_id = $1`

	var l lock.EditLock
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &l, query, invoiceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Invoice %d is not locked", invoiceID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get edit lock").
			Mark(ierr.ErrDatabase)
	}
	return &l, nil
}

func (r *lockRepository) Create(ctx context.Context, l *lock.EditLock) error {
	query := `
	INSERT INTO invoice_locks (invoice_id, user_id, acquired_at)
	VALUES ($1, $2, $3)`

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, query, l.InvoiceID, l.UserID, l.AcquiredAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			// Lost the acquisition race; the service re-reads the
			// holder and reports the conflict.
			return ierr.WithError(err).
				WithHintf("Invoice %d is already locked", l.InvoiceID).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create edit lock").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Debugw("created edit lock",
		"invoice_id", l.InvoiceID,
		"user_id", l.UserID,
	)
	return nil
}

func (r *lockRepository) Refresh(ctx context.Context, invoiceID, userID int64, acquiredAt time.Time) error {
	query := `
	UPDATE invoice_locks
	SET acquired_at = $3
	WHERE invoice_id = $1 AND user_id = $2`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, invoiceID, userID, acquiredAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to refresh edit lock").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("lock no longer held").
			WithHintf("Invoice %d is no longer locked by user %d", invoiceID, userID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// Delete removes the lock only when (invoice_id, user_id) matches, so a
// stale client can never release someone else's lock.
func (r *lockRepository) Delete(ctx context.Context, invoiceID, userID int64) error {
	query := `DELETE FROM invoice_locks WHERE invoice_id = $1 AND user_id = $2`

	q := r.db.GetQuerier(ctx)
	if _, err := q.ExecContext(ctx, query, invoiceID, userID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to release edit lock").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *lockRepository) DeleteByUsers(ctx context.Context, userIDs []int64) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	query := `DELETE FROM invoice_locks WHERE user_id = ANY($1)`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to release locks of inactive users").
			Mark(ierr.ErrDatabase)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *lockRepository) DeleteByInvoice(ctx context.Context, invoiceID int64) (int64, error) {
	query := `DELETE FROM invoice_locks WHERE invoice_id = $1`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, invoiceID)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to release invoice lock").
			Mark(ierr.ErrDatabase)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *lockRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM invoice_locks WHERE acquired_at < $1`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, before)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to delete stale edit locks").
			Mark(ierr.ErrDatabase)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
