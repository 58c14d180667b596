package product

import (
	"github.com/shopspring/decimal"
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// Product is a catalog entry. IDs are strings because part of the catalog
// is keyed manually (e.g. MAN_123 for molding stock).
type Product struct {
	ID          string          `db:"id" json:"id"`
	Description string          `db:"description" json:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Category    string          `db:"category" json:"category"`
	Size        string          `db:"size" json:"size"`
	Variant     string          `db:"variant" json:"variant"`
	ListPrice   decimal.Decimal `db:"list_price" json:"list_price"`
}

func (p *Product) Validate() error {
	if p.Description == "" {
		return ierr.NewError("product description is required").
			WithHint("Product description is required").
			Mark(ierr.ErrValidation)
	}
	if p.UnitPrice.IsNegative() {
		return ierr.NewError("unit price cannot be negative").
			WithHint("Unit price cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
