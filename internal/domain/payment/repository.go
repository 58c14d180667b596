package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for payment persistence
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id int64) (*Payment, error)
	ListByInvoice(ctx context.Context, invoiceID int64) ([]*Payment, error)
	Delete(ctx context.Context, id int64) error
	// TotalPaid sums committed payments against the invoice.
	TotalPaid(ctx context.Context, invoiceID int64) (decimal.Decimal, error)
}
