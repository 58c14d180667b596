package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tallerhq/facturas/internal/domain/invoice"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/types"
)

// InMemoryInvoiceStore emulates the invoices and invoice_line_items
// tables
type InMemoryInvoiceStore struct {
	mu       sync.Mutex
	invoices map[int64]*invoice.Invoice
	nextID   int64
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[int64]*invoice.Invoice),
		nextID:   1,
	}
}

func (s *InMemoryInvoiceStore) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return ierr.NewError("invoice number already exists").
				WithHintf("An invoice with number %s already exists", inv.InvoiceNumber).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	inv.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	for i, item := range inv.LineItems {
		item.ID = int64(i + 1)
		item.InvoiceID = inv.ID
	}

	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id int64) (*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %d does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.match(filter)
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	offset := filter.GetOffset()
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + filter.GetLimit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.match(filter)), nil
}

func (s *InMemoryInvoiceStore) match(filter *types.InvoiceFilter) []*invoice.Invoice {
	var out []*invoice.Invoice
	for _, inv := range s.invoices {
		if filter.DocumentType != "" && inv.DocumentType != filter.DocumentType {
			continue
		}
		if filter.ClientID != nil && (inv.ClientID == nil || *inv.ClientID != *filter.ClientID) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(inv.ClientName), needle) &&
				!strings.Contains(strings.ToLower(inv.InvoiceNumber), needle) {
				continue
			}
		}
		out = append(out, copyInvoice(inv))
	}
	return out
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[inv.ID]; !ok {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %d does not exist", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	inv.UpdatedAt = time.Now().UTC()
	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (s *InMemoryInvoiceStore) UpdateStatus(ctx context.Context, id int64, patch *invoice.StatusPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %d does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	if patch.DocumentType != nil {
		inv.DocumentType = *patch.DocumentType
	}
	if patch.FabricStatus != nil {
		inv.FabricStatus = *patch.FabricStatus
	}
	if patch.MoldingStatus != nil {
		inv.MoldingStatus = *patch.MoldingStatus
	}
	inv.UpdatedBy = patch.UpdatedBy
	inv.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[id]; !ok {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %d does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	delete(s.invoices, id)
	return nil
}

func (s *InMemoryInvoiceStore) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices {
		if inv.InvoiceNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryInvoiceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = make(map[int64]*invoice.Invoice)
	s.nextID = 1
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	copied := *inv
	copied.LineItems = make([]*invoice.LineItem, len(inv.LineItems))
	for i, item := range inv.LineItems {
		itemCopy := *item
		copied.LineItems[i] = &itemCopy
	}
	return &copied
}
