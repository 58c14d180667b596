package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/tallerhq/facturas/internal/domain/draft"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
)

type draftRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewDraftRepository(db *postgres.DB, logger *logger.Logger) draft.Repository {
	return &draftRepository{db: db, logger: logger}
}

func (r *draftRepository) Upsert(ctx context.Context, d *draft.Draft) error {
	query := `
	INSERT INTO invoice_drafts (user_id, client_name, started_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id) DO UPDATE
	SET client_name = EXCLUDED.client_name,
		started_at = EXCLUDED.started_at`

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, query, d.UserID, d.ClientName, d.StartedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to register draft").
			WithReportableDetails(map[string]any{
				"user_id": d.UserID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *draftRepository) List(ctx context.Context) ([]*draft.Draft, error) {
	query := `
	SELECT user_id, client_name, started_at
	FROM invoice_drafts
	ORDER BY started_at ASC`

	var drafts []*draft.Draft
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &drafts, query); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list drafts").
			Mark(ierr.ErrDatabase)
	}
	return drafts, nil
}

func (r *draftRepository) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM invoice_drafts WHERE user_id = $1`

	q := r.db.GetQuerier(ctx)
	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to clear draft").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *draftRepository) DeleteByUsers(ctx context.Context, userIDs []int64) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	query := `DELETE FROM invoice_drafts WHERE user_id = ANY($1)`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to clear drafts of inactive users").
			Mark(ierr.ErrDatabase)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *draftRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM invoice_drafts WHERE started_at < $1`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, before)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to delete stale drafts").
			Mark(ierr.ErrDatabase)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
