package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tallerhq/facturas/internal/domain/presence"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
)

type presenceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPresenceRepository(db *postgres.DB, logger *logger.Logger) presence.Repository {
	return &presenceRepository{db: db, logger: logger}
}

func (r *presenceRepository) Upsert(ctx context.Context, p *presence.Presence) error {
	query := `
	INSERT INTO user_presence (user_id, display_name, last_seen)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id) DO UPDATE
	SET display_name = EXCLUDED.display_name,
		last_seen = EXCLUDED.last_seen`

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, query, p.UserID, p.DisplayName, p.LastSeen)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record heartbeat").
			WithReportableDetails(map[string]any{
				"user_id": p.UserID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *presenceRepository) Get(ctx context.Context, userID int64) (*presence.Presence, error) {
	query := `SELECT user_id, display_name, last_seen FROM user_presence WHERE user_id = $1`

	var p presence.Presence
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("No presence record for user %d", userID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get presence record").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *presenceRepository) ListActive(ctx context.Context, since time.Time) ([]*presence.Presence, error) {
	query := `
	SELECT user_id, display_name, last_seen
	FROM user_presence
	WHERE last_seen >= $1
	ORDER BY display_name ASC`

	var records []*presence.Presence
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &records, query, since); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list active users").
			Mark(ierr.ErrDatabase)
	}
	return records, nil
}

func (r *presenceRepository) DeleteStale(ctx context.Context, before time.Time) ([]int64, error) {
	query := `DELETE FROM user_presence WHERE last_seen < $1 RETURNING user_id`

	q := r.db.GetQuerier(ctx)
	rows, err := q.QueryContext(ctx, query, before)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to delete stale presence records").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to delete stale presence records").
				Mark(ierr.ErrDatabase)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to delete stale presence records").
			Mark(ierr.ErrDatabase)
	}
	return userIDs, nil
}
