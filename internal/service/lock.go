package service

import (
	"context"
	"time"

	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/lock"
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// LockService hands out the exclusive editing lock on an invoice. A
// holder keeps its lock alive by re-acquiring; anyone else gets a
// conflict naming the current holder. Stale locks are only reclaimed by
// the housekeeper, so a conflict may name a user who already left.
type LockService interface {
	Acquire(ctx context.Context, invoiceID int64, req *dto.AcquireLockRequest) (*dto.LockResponse, error)
	Release(ctx context.Context, invoiceID int64, req *dto.ReleaseLockRequest) (*dto.LockResponse, error)
	Status(ctx context.Context, invoiceID int64) (*dto.LockStatusResponse, error)
}

type lockService struct {
	ServiceParams
}

// NewLockService creates a new lock service
func NewLockService(params ServiceParams) LockService {
	return &lockService{ServiceParams: params}
}

func (s *lockService) Acquire(ctx context.Context, invoiceID int64, req *dto.AcquireLockRequest) (*dto.LockResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	existing, err := s.LockRepo.Get(ctx, invoiceID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	if existing != nil {
		if existing.UserID == req.UserID {
			// The holder keeps editing; refresh the timestamp so the
			// housekeeper leaves the lock alone.
			if err := s.LockRepo.Refresh(ctx, invoiceID, req.UserID, now); err != nil {
				return nil, err
			}
			return &dto.LockResponse{
				Status:     dto.LockStatusRefreshed,
				InvoiceID:  invoiceID,
				UserID:     req.UserID,
				AcquiredAt: now,
			}, nil
		}
		return nil, s.conflictError(ctx, invoiceID, existing)
	}

	newLock := &lock.EditLock{
		InvoiceID:  invoiceID,
		UserID:     req.UserID,
		AcquiredAt: now,
	}
	if err := s.LockRepo.Create(ctx, newLock); err != nil {
		if ierr.IsAlreadyExists(err) {
			// Lost the acquisition race: someone else committed first.
			winner, getErr := s.LockRepo.Get(ctx, invoiceID)
			if getErr == nil {
				return nil, s.conflictError(ctx, invoiceID, winner)
			}
		}
		return nil, err
	}

	return &dto.LockResponse{
		Status:     dto.LockStatusAcquired,
		InvoiceID:  invoiceID,
		UserID:     req.UserID,
		AcquiredAt: now,
	}, nil
}

// Release deletes the lock only when held by the requester. A release
// from a non-holder is a no-op rather than an error, so a stale client
// cannot steal cleanup rights.
func (s *lockService) Release(ctx context.Context, invoiceID int64, req *dto.ReleaseLockRequest) (*dto.LockResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.LockRepo.Delete(ctx, invoiceID, req.UserID); err != nil {
		return nil, err
	}

	return &dto.LockResponse{
		Status:    dto.LockStatusReleased,
		InvoiceID: invoiceID,
		UserID:    req.UserID,
	}, nil
}

func (s *lockService) Status(ctx context.Context, invoiceID int64) (*dto.LockStatusResponse, error) {
	existing, err := s.LockRepo.Get(ctx, invoiceID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return &dto.LockStatusResponse{InvoiceID: invoiceID, Locked: false}, nil
		}
		return nil, err
	}

	return &dto.LockStatusResponse{
		InvoiceID:  invoiceID,
		Locked:     true,
		HolderID:   &existing.UserID,
		HolderName: s.holderName(ctx, existing.UserID),
		AcquiredAt: &existing.AcquiredAt,
	}, nil
}

func (s *lockService) conflictError(ctx context.Context, invoiceID int64, holder *lock.EditLock) error {
	name := s.holderName(ctx, holder.UserID)
	return ierr.NewError("invoice is locked by another user").
		WithHintf("Currently being edited by %s", name).
		WithReportableDetails(map[string]any{
			"invoice_id":  invoiceID,
			"holder_id":   holder.UserID,
			"holder_name": name,
		}).
		Mark(ierr.ErrConflict)
}

func (s *lockService) holderName(ctx context.Context, userID int64) string {
	p, err := s.PresenceRepo.Get(ctx, userID)
	if err != nil {
		return "unknown"
	}
	return p.DisplayName
}
