package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tallerhq/facturas/internal/domain/client"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/types"
)

// InMemoryClientStore emulates the clients table
type InMemoryClientStore struct {
	mu      sync.Mutex
	clients map[int64]*client.Client
	nextID  int64
}

func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		clients: make(map[int64]*client.Client),
		nextID:  1,
	}
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID
	s.nextID++
	copied := *c
	s.clients[c.ID] = &copied
	return nil
}

func (s *InMemoryClientStore) Get(ctx context.Context, id int64) (*client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, ierr.NewError("client not found").
			WithHintf("Client %d does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (s *InMemoryClientStore) List(ctx context.Context, filter *types.ClientFilter) ([]*client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*client.Client
	for _, c := range s.clients {
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c.ID]; !ok {
		return ierr.NewError("client not found").
			WithHintf("Client %d does not exist", c.ID).
			Mark(ierr.ErrNotFound)
	}
	copied := *c
	s.clients[c.ID] = &copied
	return nil
}

func (s *InMemoryClientStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return ierr.NewError("client not found").
			WithHintf("Client %d does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	delete(s.clients, id)
	return nil
}

func (s *InMemoryClientStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = make(map[int64]*client.Client)
	s.nextID = 1
}
