package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/tallerhq/facturas/internal/domain/lock"
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// InMemoryLockStore emulates the invoice_locks table
type InMemoryLockStore struct {
	mu    sync.Mutex
	locks map[int64]*lock.EditLock
}

func NewInMemoryLockStore() *InMemoryLockStore {
	return &InMemoryLockStore{
		locks: make(map[int64]*lock.EditLock),
	}
}

func (s *InMemoryLockStore) Get(ctx context.Context, invoiceID int64) (*lock.EditLock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[invoiceID]
	if !ok {
		return nil, ierr.NewError("lock not found").
			WithHintf("Invoice %d is not locked", invoiceID).
			Mark(ierr.ErrNotFound)
	}
	copied := *l
	return &copied, nil
}

func (s *InMemoryLockStore) Create(ctx context.Context, l *lock.EditLock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locks[l.InvoiceID]; ok {
		return ierr.NewError("lock already exists").
			WithHintf("Invoice %d is already locked", l.InvoiceID).
			Mark(ierr.ErrAlreadyExists)
	}
	copied := *l
	s.locks[l.InvoiceID] = &copied
	return nil
}

func (s *InMemoryLockStore) Refresh(ctx context.Context, invoiceID, userID int64, acquiredAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[invoiceID]
	if !ok || l.UserID != userID {
		return ierr.NewError("lock no longer held").
			WithHintf("Invoice %d is no longer locked by user %d", invoiceID, userID).
			Mark(ierr.ErrNotFound)
	}
	l.AcquiredAt = acquiredAt
	return nil
}

func (s *InMemoryLockStore) Delete(ctx context.Context, invoiceID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.locks[invoiceID]; ok && l.UserID == userID {
		delete(s.locks, invoiceID)
	}
	return nil
}

func (s *InMemoryLockStore) DeleteByUsers(ctx context.Context, userIDs []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		users[id] = struct{}{}
	}

	var n int64
	for invoiceID, l := range s.locks {
		if _, ok := users[l.UserID]; ok {
			delete(s.locks, invoiceID)
			n++
		}
	}
	return n, nil
}

func (s *InMemoryLockStore) DeleteByInvoice(ctx context.Context, invoiceID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locks[invoiceID]; ok {
		delete(s.locks, invoiceID)
		return 1, nil
	}
	return 0, nil
}

func (s *InMemoryLockStore) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for invoiceID, l := range s.locks {
		if l.AcquiredAt.Before(before) {
			delete(s.locks, invoiceID)
			n++
		}
	}
	return n, nil
}

func (s *InMemoryLockStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks = make(map[int64]*lock.EditLock)
}
