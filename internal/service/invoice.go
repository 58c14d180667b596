package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/invoice"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/types"
)

// InvoiceService owns the document lifecycle. Creation allocates the
// document number and clears the creator's draft announcement inside one
// transaction; mutations respect the edit lock held by other users.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id int64, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	UpdateInvoiceStatus(ctx context.Context, id int64, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id int64, userID int64) error
}

type invoiceService struct {
	ServiceParams
	numbering NumberingService
	locks     LockService
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(params ServiceParams, numbering NumberingService, locks LockService) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
		numbering:     numbering,
		locks:         locks,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv := req.ToInvoice()
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if inv.InvoiceNumber == "" {
			number, err := s.numbering.NextNumber(txCtx, "")
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
		} else {
			exists, err := s.InvoiceRepo.ExistsByNumber(txCtx, inv.InvoiceNumber)
			if err != nil {
				return err
			}
			if exists {
				return ierr.NewError("invoice number already in use").
					WithHintf("An invoice with number %s already exists", inv.InvoiceNumber).
					Mark(ierr.ErrAlreadyExists)
			}
		}

		if err := s.InvoiceRepo.CreateWithLineItems(txCtx, inv); err != nil {
			return err
		}

		// The creator's draft announcement is fulfilled by this insert;
		// clear it in the same transaction so observers never see both.
		return s.DraftRepo.Delete(txCtx, req.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"user_id", req.UserID,
	)
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	paid, err := s.PaymentRepo.TotalPaid(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv).WithPayments(paid), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	if filter.DocumentType != "" {
		if err := filter.DocumentType.Validate(); err != nil {
			return nil, err
		}
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return dto.NewInvoiceResponse(inv)
		}),
		Total: total,
	}, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id int64, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureEditable(ctx, id, req.UserID); err != nil {
		return nil, err
	}

	existing, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inv := s.applyUpdate(existing, req)
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.InvoiceRepo.Update(txCtx, inv)
	}); err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, id)
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id int64, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureEditable(ctx, id, req.UserID); err != nil {
		return nil, err
	}

	userID := req.UserID
	patch := &invoice.StatusPatch{
		DocumentType:  req.DocumentType,
		FabricStatus:  req.FabricStatus,
		MoldingStatus: req.MoldingStatus,
		UpdatedBy:     &userID,
	}
	if err := s.InvoiceRepo.UpdateStatus(ctx, id, patch); err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, id)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id int64, userID int64) error {
	if err := s.ensureEditable(ctx, id, userID); err != nil {
		return err
	}

	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.InvoiceRepo.Delete(txCtx, id); err != nil {
			return err
		}
		// The delete moots any lock on the document.
		_, err := s.LockRepo.DeleteByInvoice(txCtx, id)
		return err
	})
}

// ensureEditable rejects mutations while another user holds the edit
// lock. The requester holding the lock, or no lock at all, both pass.
func (s *invoiceService) ensureEditable(ctx context.Context, invoiceID int64, userID int64) error {
	status, err := s.locks.Status(ctx, invoiceID)
	if err != nil {
		return err
	}
	if status.Locked && *status.HolderID != userID {
		return ierr.NewError("invoice is locked by another user").
			WithHintf("Currently being edited by %s", status.HolderName).
			WithReportableDetails(map[string]any{
				"invoice_id":  invoiceID,
				"holder_id":   *status.HolderID,
				"holder_name": status.HolderName,
			}).
			Mark(ierr.ErrConflict)
	}
	return nil
}

func (s *invoiceService) applyUpdate(existing *invoice.Invoice, req *dto.UpdateInvoiceRequest) *invoice.Invoice {
	updated := *existing
	updated.QuoteNumber = req.QuoteNumber
	if !req.IssueDate.IsZero() {
		updated.IssueDate = req.IssueDate
	}
	updated.ClientID = req.ClientID
	updated.ClientName = req.ClientName
	updated.ClientAddress = req.ClientAddress
	updated.ClientPhone = req.ClientPhone
	if req.DocumentType != "" {
		updated.DocumentType = req.DocumentType
	}
	updated.Shipping = req.Shipping

	items := make([]*invoice.LineItem, 0, len(req.LineItems))
	total := updated.Shipping
	for _, li := range req.LineItems {
		amount := li.Amount
		if amount.IsZero() {
			amount = li.Quantity.Mul(li.UnitPrice)
		}
		total = total.Add(amount)
		items = append(items, &invoice.LineItem{
			InvoiceID:   existing.ID,
			Quantity:    li.Quantity,
			Description: li.Description,
			UnitPrice:   li.UnitPrice,
			Amount:      amount,
		})
	}
	updated.LineItems = items
	updated.Total = total

	userID := req.UserID
	updated.UpdatedBy = &userID
	updated.UpdatedAt = time.Now().UTC()
	return &updated
}
