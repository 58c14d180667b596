package sequence

import (
	"context"
)

// Repository defines the interface for counter persistence. GetForUpdate
// must take a row-level exclusive lock so that concurrent allocators for
// the same prefix serialize behind the caller's transaction.
type Repository interface {
	GetForUpdate(ctx context.Context, prefix string) (*Counter, error)
	Create(ctx context.Context, counter *Counter) error
	UpdateValue(ctx context.Context, prefix string, value int64) error
}
