package draft

import (
	"context"
	"time"
)

// Repository defines the interface for draft announcement persistence
type Repository interface {
	Upsert(ctx context.Context, d *Draft) error
	List(ctx context.Context) ([]*Draft, error)
	// Delete removes the user's announcement; absent rows are a no-op.
	Delete(ctx context.Context, userID int64) error
	// DeleteByUsers removes all announcements of the given users.
	DeleteByUsers(ctx context.Context, userIDs []int64) (int64, error)
	// DeleteStale removes announcements started before the cutoff and
	// returns how many were removed.
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
