package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/presence"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/testutil"
)

type PresenceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PresenceService
}

func TestPresenceService(t *testing.T) {
	suite.Run(t, new(PresenceServiceSuite))
}

func (s *PresenceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPresenceService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		PresenceRepo: s.GetStores().PresenceRepo,
	})
}

func (s *PresenceServiceSuite) TestHeartbeatRegistersUser() {
	resp, err := s.service.Heartbeat(s.GetContext(), &dto.HeartbeatRequest{
		UserID:      1,
		DisplayName: "Ana",
	})
	s.NoError(err)
	s.True(resp.Online)

	active, err := s.service.ListActive(s.GetContext())
	s.NoError(err)
	s.Len(active, 1)
	s.Equal("Ana", active[0].DisplayName)
}

func (s *PresenceServiceSuite) TestHeartbeatUpdatesDisplayName() {
	_, err := s.service.Heartbeat(s.GetContext(), &dto.HeartbeatRequest{UserID: 1, DisplayName: "Ana"})
	s.NoError(err)
	_, err = s.service.Heartbeat(s.GetContext(), &dto.HeartbeatRequest{UserID: 1, DisplayName: "Ana Maria"})
	s.NoError(err)

	active, err := s.service.ListActive(s.GetContext())
	s.NoError(err)
	s.Len(active, 1)
	s.Equal("Ana Maria", active[0].DisplayName)
}

func (s *PresenceServiceSuite) TestStaleUserLeavesActiveRoster() {
	stale := s.GetNow().Add(-s.GetConfig().Coordination.ActiveWindow - time.Second)
	err := s.GetStores().PresenceRepo.Upsert(s.GetContext(), &presence.Presence{
		UserID:      2,
		DisplayName: "Luis",
		LastSeen:    stale,
	})
	s.NoError(err)

	_, err = s.service.Heartbeat(s.GetContext(), &dto.HeartbeatRequest{UserID: 1, DisplayName: "Ana"})
	s.NoError(err)

	active, err := s.service.ListActive(s.GetContext())
	s.NoError(err)
	s.Len(active, 1)
	s.Equal(int64(1), active[0].UserID)
}

func (s *PresenceServiceSuite) TestActiveRosterSortedByName() {
	for _, u := range []struct {
		id   int64
		name string
	}{{1, "Zoe"}, {2, "Ana"}, {3, "Luis"}} {
		_, err := s.service.Heartbeat(s.GetContext(), &dto.HeartbeatRequest{UserID: u.id, DisplayName: u.name})
		s.NoError(err)
	}

	active, err := s.service.ListActive(s.GetContext())
	s.NoError(err)
	s.Len(active, 3)
	s.Equal("Ana", active[0].DisplayName)
	s.Equal("Luis", active[1].DisplayName)
	s.Equal("Zoe", active[2].DisplayName)
}

func (s *PresenceServiceSuite) TestHeartbeatRejectsInvalidRequest() {
	_, err := s.service.Heartbeat(s.GetContext(), &dto.HeartbeatRequest{UserID: 0, DisplayName: "Ana"})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.Heartbeat(s.GetContext(), &dto.HeartbeatRequest{UserID: 1})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
