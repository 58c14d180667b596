package lock

import (
	"context"
	"time"
)

// Repository defines the interface for edit lock persistence
type Repository interface {
	Get(ctx context.Context, invoiceID int64) (*EditLock, error)
	Create(ctx context.Context, l *EditLock) error
	// Refresh updates acquired_at for the holder's lock.
	Refresh(ctx context.Context, invoiceID, userID int64, acquiredAt time.Time) error
	// Delete removes the lock only when held by userID; removing a lock
	// held by someone else is a no-op.
	Delete(ctx context.Context, invoiceID, userID int64) error
	// DeleteByUsers removes all locks held by the given users.
	DeleteByUsers(ctx context.Context, userIDs []int64) (int64, error)
	// DeleteByInvoice removes the lock regardless of holder, for use
	// when the invoice itself is deleted.
	DeleteByInvoice(ctx context.Context, invoiceID int64) (int64, error)
	// DeleteStale removes locks acquired before the cutoff and returns
	// how many were removed.
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
