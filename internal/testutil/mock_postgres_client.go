package testutil

import (
	"context"

	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient is a mock implementation of postgres client for
// testing. Transactions are passthrough: the function runs against the
// same in-memory stores with no rollback semantics.
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{logger: logger}
}

// WithTx executes the given function within a pretend transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
