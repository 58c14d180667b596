package types

import (
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// PaymentMethod is how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodOther    PaymentMethod = "other"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCard, PaymentMethodOther:
		return nil
	}
	return ierr.NewError("invalid payment method").
		WithHint("Payment method must be one of cash, transfer, card, other").
		Mark(ierr.ErrValidation)
}
