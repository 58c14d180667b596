package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/payment"
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// PaymentService records money received against invoices
type PaymentService interface {
	RecordPayment(ctx context.Context, invoiceID int64, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, invoiceID int64) (*dto.ListPaymentsResponse, error)
	DeletePayment(ctx context.Context, invoiceID, paymentID int64) error
}

type paymentService struct {
	ServiceParams
}

// NewPaymentService creates a new payment service
func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

func (s *paymentService) RecordPayment(ctx context.Context, invoiceID int64, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	p := req.ToPayment(invoiceID)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	paid, err := s.PaymentRepo.TotalPaid(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if paid.Add(p.Amount).GreaterThan(inv.Total) {
		return nil, ierr.NewError("payment exceeds amount due").
			WithHintf("Only %s remains unpaid on invoice %s", inv.Total.Sub(paid), inv.InvoiceNumber).
			WithReportableDetails(map[string]any{
				"invoice_id": invoiceID,
				"total":      inv.Total,
				"paid":       paid,
				"amount":     p.Amount,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded payment",
		"invoice_id", invoiceID,
		"payment_id", p.ID,
		"amount", p.Amount,
	)
	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) ListPayments(ctx context.Context, invoiceID int64) (*dto.ListPaymentsResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	paid, err := s.PaymentRepo.TotalPaid(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	return &dto.ListPaymentsResponse{
		Items: lo.Map(payments, func(p *payment.Payment, _ int) *dto.PaymentResponse {
			return &dto.PaymentResponse{Payment: p}
		}),
		TotalPaid:       paid,
		AmountRemaining: inv.Total.Sub(paid),
	}, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, invoiceID, paymentID int64) error {
	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return err
	}
	if p.InvoiceID != invoiceID {
		return ierr.NewError("payment does not belong to invoice").
			WithHintf("Payment %d is not attached to invoice %d", paymentID, invoiceID).
			Mark(ierr.ErrValidation)
	}
	return s.PaymentRepo.Delete(ctx, paymentID)
}
