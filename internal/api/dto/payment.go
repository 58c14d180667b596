package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerhq/facturas/internal/domain/payment"
	"github.com/tallerhq/facturas/internal/types"
	"github.com/tallerhq/facturas/internal/validator"
)

// CreatePaymentRequest records money received against an invoice
type CreatePaymentRequest struct {
	Amount decimal.Decimal     `json:"amount" validate:"required"`
	Method types.PaymentMethod `json:"method" validate:"required"`
	Notes  string              `json:"notes"`
	PaidAt time.Time           `json:"paid_at"`
}

func (r *CreatePaymentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreatePaymentRequest) ToPayment(invoiceID int64) *payment.Payment {
	paidAt := r.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	return &payment.Payment{
		InvoiceID: invoiceID,
		Amount:    r.Amount,
		Method:    r.Method,
		Notes:     r.Notes,
		PaidAt:    paidAt,
	}
}

// PaymentResponse is the API shape of a payment
type PaymentResponse struct {
	*payment.Payment
}

// ListPaymentsResponse lists an invoice's payments with totals
type ListPaymentsResponse struct {
	Items           []*PaymentResponse `json:"items"`
	TotalPaid       decimal.Decimal    `json:"total_paid"`
	AmountRemaining decimal.Decimal    `json:"amount_remaining"`
}
