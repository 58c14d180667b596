package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tallerhq/facturas/internal/domain/presence"
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// InMemoryPresenceStore emulates the user_presence table
type InMemoryPresenceStore struct {
	mu      sync.RWMutex
	records map[int64]*presence.Presence
}

func NewInMemoryPresenceStore() *InMemoryPresenceStore {
	return &InMemoryPresenceStore{
		records: make(map[int64]*presence.Presence),
	}
}

func (s *InMemoryPresenceStore) Upsert(ctx context.Context, p *presence.Presence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *p
	s.records[p.UserID] = &copied
	return nil
}

func (s *InMemoryPresenceStore) Get(ctx context.Context, userID int64) (*presence.Presence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.records[userID]
	if !ok {
		return nil, ierr.NewError("presence not found").
			WithHintf("User %d has never sent a heartbeat", userID).
			Mark(ierr.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (s *InMemoryPresenceStore) ListActive(ctx context.Context, since time.Time) ([]*presence.Presence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []*presence.Presence
	for _, p := range s.records {
		if !p.LastSeen.Before(since) {
			copied := *p
			active = append(active, &copied)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].DisplayName < active[j].DisplayName
	})
	return active, nil
}

func (s *InMemoryPresenceStore) DeleteStale(ctx context.Context, before time.Time) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []int64
	for id, p := range s.records {
		if p.LastSeen.Before(before) {
			removed = append(removed, id)
			delete(s.records, id)
		}
	}
	return removed, nil
}

func (s *InMemoryPresenceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[int64]*presence.Presence)
}
