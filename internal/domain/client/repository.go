package client

import (
	"context"

	"github.com/tallerhq/facturas/internal/types"
)

// Repository defines the interface for client persistence
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id int64) (*Client, error)
	List(ctx context.Context, filter *types.ClientFilter) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) error
}
