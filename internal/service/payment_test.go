package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tallerhq/facturas/internal/api/dto"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/testutil"
	"github.com/tallerhq/facturas/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PaymentService
	invoices InvoiceService
	invoice  *dto.InvoiceResponse
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		SequenceRepo: s.GetStores().SequenceRepo,
		PresenceRepo: s.GetStores().PresenceRepo,
		LockRepo:     s.GetStores().LockRepo,
		DraftRepo:    s.GetStores().DraftRepo,
		InvoiceRepo:  s.GetStores().InvoiceRepo,
		PaymentRepo:  s.GetStores().PaymentRepo,
	}

	s.service = NewPaymentService(params)
	s.invoices = NewInvoiceService(params, NewNumberingService(params), NewLockService(params))

	created, err := s.invoices.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientName: "Taller Norte",
		UserID:     1,
		LineItems: []dto.CreateLineItemRequest{
			{Quantity: decimal.NewFromInt(2), Description: "Marco 40x50", UnitPrice: decimal.NewFromInt(150)},
		},
	})
	s.NoError(err)
	s.invoice = created
}

func (s *PaymentServiceSuite) TestRecordPayment() {
	resp, err := s.service.RecordPayment(s.GetContext(), s.invoice.ID, &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: types.PaymentMethodCash,
	})
	s.NoError(err)
	s.True(resp.Amount.Equal(decimal.NewFromInt(100)))
	s.NotZero(resp.ID)
}

func (s *PaymentServiceSuite) TestRecordPaymentRejectsOverpayment() {
	_, err := s.service.RecordPayment(s.GetContext(), s.invoice.ID, &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(250),
		Method: types.PaymentMethodCash,
	})
	s.NoError(err)

	_, err = s.service.RecordPayment(s.GetContext(), s.invoice.ID, &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: types.PaymentMethodCash,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestRecordPaymentMissingInvoice() {
	_, err := s.service.RecordPayment(s.GetContext(), 42, &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(50),
		Method: types.PaymentMethodCash,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentServiceSuite) TestListPaymentsWithTotals() {
	for _, amount := range []int64{100, 50} {
		_, err := s.service.RecordPayment(s.GetContext(), s.invoice.ID, &dto.CreatePaymentRequest{
			Amount: decimal.NewFromInt(amount),
			Method: types.PaymentMethodTransfer,
		})
		s.NoError(err)
	}

	resp, err := s.service.ListPayments(s.GetContext(), s.invoice.ID)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.True(resp.TotalPaid.Equal(decimal.NewFromInt(150)))
	s.True(resp.AmountRemaining.Equal(decimal.NewFromInt(150)))
}

func (s *PaymentServiceSuite) TestDeletePayment() {
	created, err := s.service.RecordPayment(s.GetContext(), s.invoice.ID, &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: types.PaymentMethodCash,
	})
	s.NoError(err)

	s.NoError(s.service.DeletePayment(s.GetContext(), s.invoice.ID, created.ID))

	resp, err := s.service.ListPayments(s.GetContext(), s.invoice.ID)
	s.NoError(err)
	s.Empty(resp.Items)
}

func (s *PaymentServiceSuite) TestDeletePaymentOfOtherInvoice() {
	created, err := s.service.RecordPayment(s.GetContext(), s.invoice.ID, &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: types.PaymentMethodCash,
	})
	s.NoError(err)

	err = s.service.DeletePayment(s.GetContext(), s.invoice.ID+1, created.ID)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
