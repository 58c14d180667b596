package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/tallerhq/facturas/internal/domain/sequence"
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// InMemorySequenceStore emulates the counter table. The mutex is taken
// in GetForUpdate and held across the rest of the allocation, mirroring
// the row lock that serializes concurrent allocators in postgres. It is
// released by UpdateValue, or by Create when creation fails; a Create
// that succeeds keeps it held for the UpdateValue that follows.
type InMemorySequenceStore struct {
	mu       sync.Mutex
	counters map[string]*sequence.Counter

	// FailCreates makes the next N Create calls return AlreadyExists
	// while installing the counter anyway, simulating a concurrent
	// creator winning the race.
	FailCreates int
}

func NewInMemorySequenceStore() *InMemorySequenceStore {
	return &InMemorySequenceStore{
		counters: make(map[string]*sequence.Counter),
	}
}

func (s *InMemorySequenceStore) GetForUpdate(ctx context.Context, prefix string) (*sequence.Counter, error) {
	s.mu.Lock()

	c, ok := s.counters[prefix]
	if !ok {
		// Lock stays held; the caller follows up with Create.
		return nil, ierr.NewError("counter not found").
			WithHintf("No counter for prefix %s", prefix).
			Mark(ierr.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (s *InMemorySequenceStore) Create(ctx context.Context, counter *sequence.Counter) error {
	if s.FailCreates > 0 {
		s.FailCreates--
		if _, ok := s.counters[counter.Prefix]; !ok {
			copied := *counter
			s.counters[counter.Prefix] = &copied
		}
		s.mu.Unlock()
		return ierr.NewError("counter already exists").
			WithHintf("Counter for prefix %s already exists", counter.Prefix).
			Mark(ierr.ErrAlreadyExists)
	}

	if _, ok := s.counters[counter.Prefix]; ok {
		s.mu.Unlock()
		return ierr.NewError("counter already exists").
			WithHintf("Counter for prefix %s already exists", counter.Prefix).
			Mark(ierr.ErrAlreadyExists)
	}

	now := time.Now().UTC()
	copied := *counter
	copied.CreatedAt = now
	copied.UpdatedAt = now
	s.counters[counter.Prefix] = &copied

	// Lock stays held; the caller finishes the allocation with UpdateValue.
	return nil
}

func (s *InMemorySequenceStore) UpdateValue(ctx context.Context, prefix string, value int64) error {
	defer s.mu.Unlock()

	c, ok := s.counters[prefix]
	if !ok {
		return ierr.NewError("counter not found").
			WithHintf("No counter for prefix %s", prefix).
			Mark(ierr.ErrNotFound)
	}
	c.LastValue = value
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Seed installs a counter directly, bypassing the lock protocol
func (s *InMemorySequenceStore) Seed(prefix string, lastValue int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[prefix] = &sequence.Counter{Prefix: prefix, LastValue: lastValue}
}

func (s *InMemorySequenceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = make(map[string]*sequence.Counter)
	s.FailCreates = 0
}
