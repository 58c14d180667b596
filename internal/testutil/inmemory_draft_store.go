package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tallerhq/facturas/internal/domain/draft"
)

// InMemoryDraftStore emulates the invoice_drafts table
type InMemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[int64]*draft.Draft
}

func NewInMemoryDraftStore() *InMemoryDraftStore {
	return &InMemoryDraftStore{
		drafts: make(map[int64]*draft.Draft),
	}
}

func (s *InMemoryDraftStore) Upsert(ctx context.Context, d *draft.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *d
	s.drafts[d.UserID] = &copied
	return nil
}

func (s *InMemoryDraftStore) List(ctx context.Context) ([]*draft.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*draft.Draft
	for _, d := range s.drafts {
		copied := *d
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}

func (s *InMemoryDraftStore) Delete(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return nil
}

func (s *InMemoryDraftStore) DeleteByUsers(ctx context.Context, userIDs []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, id := range userIDs {
		if _, ok := s.drafts[id]; ok {
			delete(s.drafts, id)
			n++
		}
	}
	return n, nil
}

func (s *InMemoryDraftStore) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, d := range s.drafts {
		if d.StartedAt.Before(before) {
			delete(s.drafts, id)
			n++
		}
	}
	return n, nil
}

func (s *InMemoryDraftStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = make(map[int64]*draft.Draft)
}
