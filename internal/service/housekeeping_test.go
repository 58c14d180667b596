package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tallerhq/facturas/internal/domain/draft"
	"github.com/tallerhq/facturas/internal/domain/lock"
	"github.com/tallerhq/facturas/internal/domain/presence"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/testutil"
)

type HousekeeperSuite struct {
	testutil.BaseServiceTestSuite
	housekeeper *Housekeeper
}

func TestHousekeeper(t *testing.T) {
	suite.Run(t, new(HousekeeperSuite))
}

func (s *HousekeeperSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.housekeeper = NewHousekeeper(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		PresenceRepo: s.GetStores().PresenceRepo,
		LockRepo:     s.GetStores().LockRepo,
		DraftRepo:    s.GetStores().DraftRepo,
	})
}

func (s *HousekeeperSuite) addPresence(userID int64, lastSeen time.Time) {
	err := s.GetStores().PresenceRepo.Upsert(s.GetContext(), &presence.Presence{
		UserID:      userID,
		DisplayName: "user",
		LastSeen:    lastSeen,
	})
	s.NoError(err)
}

func (s *HousekeeperSuite) addLock(invoiceID, userID int64, acquiredAt time.Time) {
	err := s.GetStores().LockRepo.Create(s.GetContext(), &lock.EditLock{
		InvoiceID:  invoiceID,
		UserID:     userID,
		AcquiredAt: acquiredAt,
	})
	s.NoError(err)
}

func (s *HousekeeperSuite) addDraft(userID int64, startedAt time.Time) {
	err := s.GetStores().DraftRepo.Upsert(s.GetContext(), &draft.Draft{
		UserID:     userID,
		ClientName: "client",
		StartedAt:  startedAt,
	})
	s.NoError(err)
}

func (s *HousekeeperSuite) TestSweepRemovesStaleLocks() {
	cfg := s.GetConfig().Coordination
	now := s.GetNow()

	s.addLock(1, 10, now.Add(-cfg.LockTTL-time.Second))
	s.addLock(2, 11, now)

	s.housekeeper.Sweep(s.GetContext(), now)

	_, err := s.GetStores().LockRepo.Get(s.GetContext(), 1)
	s.True(ierr.IsNotFound(err))

	held, err := s.GetStores().LockRepo.Get(s.GetContext(), 2)
	s.NoError(err)
	s.Equal(int64(11), held.UserID)
}

func (s *HousekeeperSuite) TestSweepRemovesStaleDrafts() {
	cfg := s.GetConfig().Coordination
	now := s.GetNow()

	s.addDraft(10, now.Add(-cfg.DraftTTL-time.Second))
	s.addDraft(11, now)

	s.housekeeper.Sweep(s.GetContext(), now)

	drafts, err := s.GetStores().DraftRepo.List(s.GetContext())
	s.NoError(err)
	s.Len(drafts, 1)
	s.Equal(int64(11), drafts[0].UserID)
}

func (s *HousekeeperSuite) TestSweepReleasesEverythingOfDepartedUsers() {
	cfg := s.GetConfig().Coordination
	now := s.GetNow()

	// Departed: silent for more than two active windows. Their lock and
	// draft are fresh but go with them.
	s.addPresence(10, now.Add(-2*cfg.ActiveWindow-time.Second))
	s.addLock(1, 10, now)
	s.addDraft(10, now)

	// Active user keeps everything.
	s.addPresence(11, now)
	s.addLock(2, 11, now)
	s.addDraft(11, now)

	s.housekeeper.Sweep(s.GetContext(), now)

	_, err := s.GetStores().LockRepo.Get(s.GetContext(), 1)
	s.True(ierr.IsNotFound(err))

	_, err = s.GetStores().PresenceRepo.Get(s.GetContext(), 10)
	s.True(ierr.IsNotFound(err))

	drafts, err := s.GetStores().DraftRepo.List(s.GetContext())
	s.NoError(err)
	s.Len(drafts, 1)
	s.Equal(int64(11), drafts[0].UserID)

	_, err = s.GetStores().LockRepo.Get(s.GetContext(), 2)
	s.NoError(err)
}

func (s *HousekeeperSuite) TestSweepIsIdempotent() {
	cfg := s.GetConfig().Coordination
	now := s.GetNow()

	s.addLock(1, 10, now.Add(-cfg.LockTTL-time.Second))

	s.housekeeper.Sweep(s.GetContext(), now)
	s.housekeeper.Sweep(s.GetContext(), now)

	_, err := s.GetStores().LockRepo.Get(s.GetContext(), 1)
	s.True(ierr.IsNotFound(err))
}

func (s *HousekeeperSuite) TestStartAndStop() {
	s.housekeeper.Start()
	s.housekeeper.Start() // second start is a no-op
	s.housekeeper.Stop()
	s.housekeeper.Stop() // second stop is a no-op
}
