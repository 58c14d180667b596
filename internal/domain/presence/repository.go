package presence

import (
	"context"
	"time"
)

// Repository defines the interface for presence persistence
type Repository interface {
	// Upsert creates the record on first contact and refreshes
	// display_name and last_seen on every subsequent heartbeat.
	Upsert(ctx context.Context, p *Presence) error
	Get(ctx context.Context, userID int64) (*Presence, error)
	// ListActive returns records with last_seen at or after the cutoff.
	ListActive(ctx context.Context, since time.Time) ([]*Presence, error)
	// DeleteStale removes records with last_seen before the cutoff and
	// returns the IDs of the users removed, so the caller can release
	// whatever they still held.
	DeleteStale(ctx context.Context, before time.Time) ([]int64, error)
}
