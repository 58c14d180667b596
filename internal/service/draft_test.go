package service

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/presence"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/testutil"
)

type DraftServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DraftService
}

func TestDraftService(t *testing.T) {
	suite.Run(t, new(DraftServiceSuite))
}

func (s *DraftServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewDraftService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		DraftRepo:    s.GetStores().DraftRepo,
		PresenceRepo: s.GetStores().PresenceRepo,
	})

	err := s.GetStores().PresenceRepo.Upsert(s.GetContext(), &presence.Presence{
		UserID:      1,
		DisplayName: "Ana",
		LastSeen:    s.GetNow(),
	})
	s.NoError(err)
}

func (s *DraftServiceSuite) TestRegisterAndList() {
	resp, err := s.service.Register(s.GetContext(), &dto.RegisterDraftRequest{
		UserID:     1,
		ClientName: "Taller Norte",
	})
	s.NoError(err)
	s.Equal("Taller Norte", resp.ClientName)
	s.Equal("Ana", resp.UserName)

	drafts, err := s.service.List(s.GetContext())
	s.NoError(err)
	s.Len(drafts, 1)
	s.Equal(int64(1), drafts[0].UserID)
}

func (s *DraftServiceSuite) TestRegisterSupersedesPrevious() {
	_, err := s.service.Register(s.GetContext(), &dto.RegisterDraftRequest{UserID: 1, ClientName: "First"})
	s.NoError(err)
	_, err = s.service.Register(s.GetContext(), &dto.RegisterDraftRequest{UserID: 1, ClientName: "Second"})
	s.NoError(err)

	drafts, err := s.service.List(s.GetContext())
	s.NoError(err)
	s.Len(drafts, 1)
	s.Equal("Second", drafts[0].ClientName)
}

func (s *DraftServiceSuite) TestListResolvesUnknownUserToEmptyName() {
	_, err := s.service.Register(s.GetContext(), &dto.RegisterDraftRequest{UserID: 42, ClientName: "Anon"})
	s.NoError(err)

	drafts, err := s.service.List(s.GetContext())
	s.NoError(err)
	s.Len(drafts, 1)
	s.Empty(drafts[0].UserName)
}

func (s *DraftServiceSuite) TestClear() {
	_, err := s.service.Register(s.GetContext(), &dto.RegisterDraftRequest{UserID: 1, ClientName: "Taller Norte"})
	s.NoError(err)

	s.NoError(s.service.Clear(s.GetContext(), 1))

	drafts, err := s.service.List(s.GetContext())
	s.NoError(err)
	s.Empty(drafts)
}

func (s *DraftServiceSuite) TestClearAbsentIsNoOp() {
	s.NoError(s.service.Clear(s.GetContext(), 99))
}

func (s *DraftServiceSuite) TestRegisterRejectsInvalidRequest() {
	_, err := s.service.Register(s.GetContext(), &dto.RegisterDraftRequest{UserID: 1})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
