package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/presence"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/testutil"
	"github.com/tallerhq/facturas/internal/types"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
	locks   LockService
	drafts  DraftService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
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
		ClientRepo:   s.GetStores().ClientRepo,
		ProductRepo:  s.GetStores().ProductRepo,
		PaymentRepo:  s.GetStores().PaymentRepo,
	}

	numbering := NewNumberingService(params)
	s.locks = NewLockService(params)
	s.drafts = NewDraftService(params)
	s.service = NewInvoiceService(params, numbering, s.locks)

	for _, u := range []struct {
		id   int64
		name string
	}{{1, "Ana"}, {2, "Luis"}} {
		err := s.GetStores().PresenceRepo.Upsert(s.GetContext(), &presence.Presence{
			UserID:      u.id,
			DisplayName: u.name,
			LastSeen:    s.GetNow(),
		})
		s.NoError(err)
	}
}

func (s *InvoiceServiceSuite) createRequest() *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		ClientName: "Taller Norte",
		UserID:     1,
		LineItems: []dto.CreateLineItemRequest{
			{
				Quantity:    decimal.NewFromInt(2),
				Description: "Marco 40x50",
				UnitPrice:   decimal.NewFromInt(150),
			},
		},
	}
}

func (s *InvoiceServiceSuite) TestCreateAllocatesNumber() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.Equal("F-10000", resp.InvoiceNumber)
	s.Equal(types.DocumentTypeQuote, resp.DocumentType)
	s.True(resp.Total.Equal(decimal.NewFromInt(300)))

	second, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.Equal("F-10001", second.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateWithExplicitNumber() {
	req := s.createRequest()
	req.InvoiceNumber = "F-99999"

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.Equal("F-99999", resp.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateRejectsDuplicateNumber() {
	req := s.createRequest()
	req.InvoiceNumber = "F-99999"
	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)

	_, err = s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *InvoiceServiceSuite) TestCreateClearsCreatorDraft() {
	_, err := s.drafts.Register(s.GetContext(), &dto.RegisterDraftRequest{UserID: 1, ClientName: "Taller Norte"})
	s.NoError(err)

	_, err = s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)

	drafts, err := s.drafts.List(s.GetContext())
	s.NoError(err)
	s.Empty(drafts)
}

func (s *InvoiceServiceSuite) TestCreateComputesLineAmounts() {
	req := s.createRequest()
	req.Shipping = decimal.NewFromInt(20)
	req.LineItems = append(req.LineItems, dto.CreateLineItemRequest{
		Quantity:    decimal.NewFromInt(1),
		Description: "Vidrio",
		UnitPrice:   decimal.NewFromInt(80),
		Amount:      decimal.NewFromInt(75), // explicit amount wins
	})

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.True(resp.Total.Equal(decimal.NewFromInt(395)), "total was %s", resp.Total)
	s.True(resp.LineItems[1].Amount.Equal(decimal.NewFromInt(75)))
}

func (s *InvoiceServiceSuite) TestGetIncludesPaymentTotals() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)

	resp, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotNil(resp.AmountPaid)
	s.True(resp.AmountPaid.IsZero())
	s.True(resp.AmountRemaining.Equal(decimal.NewFromInt(300)))
}

func (s *InvoiceServiceSuite) TestGetMissingInvoice() {
	_, err := s.service.GetInvoice(s.GetContext(), 42)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListFiltersByDocumentType() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)

	req := s.createRequest()
	req.DocumentType = types.DocumentTypeInvoice
	_, err = s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)

	resp, err := s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		DocumentType: types.DocumentTypeInvoice,
	})
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Len(resp.Items, 1)
	s.Equal(types.DocumentTypeInvoice, resp.Items[0].DocumentType)
}

func (s *InvoiceServiceSuite) TestUpdateBlockedByForeignLock() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.locks.Acquire(s.GetContext(), created.ID, &dto.AcquireLockRequest{UserID: 2})
	s.NoError(err)

	update := &dto.UpdateInvoiceRequest{
		ClientName: "Taller Sur",
		UserID:     1,
		LineItems: []dto.CreateLineItemRequest{
			{Quantity: decimal.NewFromInt(1), Description: "Marco", UnitPrice: decimal.NewFromInt(100)},
		},
	}
	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, update)
	s.Error(err)
	s.True(ierr.IsConflict(err))
}

func (s *InvoiceServiceSuite) TestUpdateAllowedForLockHolder() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.locks.Acquire(s.GetContext(), created.ID, &dto.AcquireLockRequest{UserID: 1})
	s.NoError(err)

	update := &dto.UpdateInvoiceRequest{
		ClientName: "Taller Sur",
		UserID:     1,
		LineItems: []dto.CreateLineItemRequest{
			{Quantity: decimal.NewFromInt(1), Description: "Marco", UnitPrice: decimal.NewFromInt(100)},
		},
	}
	resp, err := s.service.UpdateInvoice(s.GetContext(), created.ID, update)
	s.NoError(err)
	s.Equal("Taller Sur", resp.ClientName)
	s.True(resp.Total.Equal(decimal.NewFromInt(100)))
	s.Equal(int64(1), *resp.UpdatedBy)
}

func (s *InvoiceServiceSuite) TestUpdateStatusPatchesOnlyGivenFields() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)

	ordered := types.WorkStatusOrdered
	resp, err := s.service.UpdateInvoiceStatus(s.GetContext(), created.ID, &dto.UpdateInvoiceStatusRequest{
		FabricStatus: &ordered,
		UserID:       1,
	})
	s.NoError(err)
	s.Equal(types.WorkStatusOrdered, resp.FabricStatus)
	s.Equal(types.WorkStatusPending, resp.MoldingStatus)
	s.Equal(created.DocumentType, resp.DocumentType)
}

func (s *InvoiceServiceSuite) TestUpdateStatusRejectsInvalidStatus() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)

	bad := types.WorkStatus("BOGUS")
	_, err = s.service.UpdateInvoiceStatus(s.GetContext(), created.ID, &dto.UpdateInvoiceStatusRequest{
		FabricStatus: &bad,
		UserID:       1,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestDeleteReleasesLock() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.locks.Acquire(s.GetContext(), created.ID, &dto.AcquireLockRequest{UserID: 1})
	s.NoError(err)

	s.NoError(s.service.DeleteInvoice(s.GetContext(), created.ID, 1))

	status, err := s.locks.Status(s.GetContext(), created.ID)
	s.NoError(err)
	s.False(status.Locked)

	_, err = s.service.GetInvoice(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestDeleteBlockedByForeignLock() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.locks.Acquire(s.GetContext(), created.ID, &dto.AcquireLockRequest{UserID: 2})
	s.NoError(err)

	err = s.service.DeleteInvoice(s.GetContext(), created.ID, 1)
	s.Error(err)
	s.True(ierr.IsConflict(err))
}

func (s *InvoiceServiceSuite) TestCreateRejectsMissingLineItems() {
	req := s.createRequest()
	req.LineItems = nil

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
