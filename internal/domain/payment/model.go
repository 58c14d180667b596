package payment

import (
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/types"
)

// Payment is money received against an invoice
type Payment struct {
	ID        int64               `db:"id" json:"id"`
	InvoiceID int64               `db:"invoice_id" json:"invoice_id"`
	Amount    decimal.Decimal     `db:"amount" json:"amount"`
	Method    types.PaymentMethod `db:"method" json:"method"`
	Notes     string              `db:"notes" json:"notes"`
	PaidAt    time.Time           `db:"paid_at" json:"paid_at"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
}

// Validate validates the payment
func (p *Payment) Validate() error {
	if p.Amount.IsZero() || p.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if p.InvoiceID == 0 {
		return ierr.NewError("invalid invoice id").
			WithHint("Invoice id is required").
			Mark(ierr.ErrValidation)
	}
	if err := p.Method.Validate(); err != nil {
		return err
	}
	return nil
}
