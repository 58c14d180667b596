package service

import (
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/suite"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/presence"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/testutil"
)

type LockServiceSuite struct {
	testutil.BaseServiceTestSuite
	service LockService
}

func TestLockService(t *testing.T) {
	suite.Run(t, new(LockServiceSuite))
}

func (s *LockServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewLockService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		LockRepo:     s.GetStores().LockRepo,
		PresenceRepo: s.GetStores().PresenceRepo,
	})

	s.registerUser(1, "Ana")
	s.registerUser(2, "Luis")
}

func (s *LockServiceSuite) registerUser(id int64, name string) {
	err := s.GetStores().PresenceRepo.Upsert(s.GetContext(), &presence.Presence{
		UserID:      id,
		DisplayName: name,
		LastSeen:    s.GetNow(),
	})
	s.NoError(err)
}

func (s *LockServiceSuite) TestAcquireFreshLock() {
	resp, err := s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 1})
	s.NoError(err)
	s.Equal(dto.LockStatusAcquired, resp.Status)
	s.Equal(int64(7), resp.InvoiceID)
	s.Equal(int64(1), resp.UserID)
}

func (s *LockServiceSuite) TestReacquireRefreshesLock() {
	first, err := s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 1})
	s.NoError(err)

	time.Sleep(5 * time.Millisecond)

	second, err := s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 1})
	s.NoError(err)
	s.Equal(dto.LockStatusRefreshed, second.Status)
	s.True(second.AcquiredAt.After(first.AcquiredAt))
}

func (s *LockServiceSuite) TestAcquireHeldLockNamesHolder() {
	_, err := s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 1})
	s.NoError(err)

	_, err = s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 2})
	s.Error(err)
	s.True(ierr.IsConflict(err))
	s.Contains(strings.Join(errors.GetAllHints(err), " "), "Ana")
}

func (s *LockServiceSuite) TestAcquireNamesUnknownHolderWithoutPresence() {
	_, err := s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 99})
	s.NoError(err)

	_, err = s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 1})
	s.Error(err)
	s.True(ierr.IsConflict(err))
	s.Contains(strings.Join(errors.GetAllHints(err), " "), "unknown")
}

func (s *LockServiceSuite) TestReleaseByHolder() {
	_, err := s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 1})
	s.NoError(err)

	resp, err := s.service.Release(s.GetContext(), 7, &dto.ReleaseLockRequest{UserID: 1})
	s.NoError(err)
	s.Equal(dto.LockStatusReleased, resp.Status)

	status, err := s.service.Status(s.GetContext(), 7)
	s.NoError(err)
	s.False(status.Locked)
}

func (s *LockServiceSuite) TestReleaseByNonHolderIsNoOp() {
	_, err := s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 1})
	s.NoError(err)

	_, err = s.service.Release(s.GetContext(), 7, &dto.ReleaseLockRequest{UserID: 2})
	s.NoError(err)

	status, err := s.service.Status(s.GetContext(), 7)
	s.NoError(err)
	s.True(status.Locked)
	s.Equal(int64(1), *status.HolderID)
}

func (s *LockServiceSuite) TestReleaseUnlockedIsNoOp() {
	_, err := s.service.Release(s.GetContext(), 7, &dto.ReleaseLockRequest{UserID: 1})
	s.NoError(err)
}

func (s *LockServiceSuite) TestStatusOfHeldLock() {
	_, err := s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 2})
	s.NoError(err)

	status, err := s.service.Status(s.GetContext(), 7)
	s.NoError(err)
	s.True(status.Locked)
	s.Equal(int64(2), *status.HolderID)
	s.Equal("Luis", status.HolderName)
	s.NotNil(status.AcquiredAt)
}

func (s *LockServiceSuite) TestStatusOfUnlockedInvoice() {
	status, err := s.service.Status(s.GetContext(), 42)
	s.NoError(err)
	s.False(status.Locked)
	s.Nil(status.HolderID)
}

func (s *LockServiceSuite) TestAcquireRejectsInvalidRequest() {
	_, err := s.service.Acquire(s.GetContext(), 7, &dto.AcquireLockRequest{UserID: 0})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
