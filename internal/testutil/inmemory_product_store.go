package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tallerhq/facturas/internal/domain/product"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/types"
)

// InMemoryProductStore emulates the products table
type InMemoryProductStore struct {
	mu       sync.Mutex
	products map[string]*product.Product
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		products: make(map[string]*product.Product),
	}
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; ok {
		return ierr.NewError("product already exists").
			WithHintf("Product %s already exists", p.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	copied := *p
	s.products[p.ID] = &copied
	return nil
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ierr.NewError("product not found").
			WithHintf("Product %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (s *InMemoryProductStore) List(ctx context.Context, filter *types.ProductFilter) ([]*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*product.Product
	for _, p := range s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Description), strings.ToLower(filter.Search)) {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return ierr.NewError("product not found").
			WithHintf("Product %s does not exist", p.ID).
			Mark(ierr.ErrNotFound)
	}
	copied := *p
	s.products[p.ID] = &copied
	return nil
}

func (s *InMemoryProductStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ierr.NewError("product not found").
			WithHintf("Product %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	delete(s.products, id)
	return nil
}

func (s *InMemoryProductStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]*product.Product)
}
