package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerhq/facturas/internal/domain/payment"
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// InMemoryPaymentStore emulates the payments table
type InMemoryPaymentStore struct {
	mu       sync.Mutex
	payments map[int64]*payment.Payment
	nextID   int64
}

func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		payments: make(map[int64]*payment.Payment),
		nextID:   1,
	}
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	p.CreatedAt = time.Now().UTC()
	copied := *p
	s.payments[p.ID] = &copied
	return nil
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id int64) (*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, ierr.NewError("payment not found").
			WithHintf("Payment %d does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (s *InMemoryPaymentStore) ListByInvoice(ctx context.Context, invoiceID int64) ([]*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*payment.Payment
	for _, p := range s.payments {
		if p.InvoiceID == invoiceID {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.Before(out[j].PaidAt) })
	return out, nil
}

func (s *InMemoryPaymentStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[id]; !ok {
		return ierr.NewError("payment not found").
			WithHintf("Payment %d does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	delete(s.payments, id)
	return nil
}

func (s *InMemoryPaymentStore) TotalPaid(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, p := range s.payments {
		if p.InvoiceID == invoiceID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (s *InMemoryPaymentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = make(map[int64]*payment.Payment)
	s.nextID = 1
}
