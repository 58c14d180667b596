package invoice

import (
	"context"

	"github.com/tallerhq/facturas/internal/types"
)

// Repository defines the interface for invoice persistence
type Repository interface {
	// CreateWithLineItems inserts the invoice and its line items. The
	// caller is expected to run it inside a transaction together with
	// number allocation.
	CreateWithLineItems(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id int64) (*Invoice, error)
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)
	Update(ctx context.Context, inv *Invoice) error
	UpdateStatus(ctx context.Context, id int64, patch *StatusPatch) error
	Delete(ctx context.Context, id int64) error
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// StatusPatch carries the patchable status fields; nil fields are left
// untouched.
type StatusPatch struct {
	DocumentType  *types.DocumentType
	FabricStatus  *types.WorkStatus
	MoldingStatus *types.WorkStatus
	UpdatedBy     *int64
}
