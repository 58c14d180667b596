package dto

import (
	"time"

	"github.com/tallerhq/facturas/internal/validator"
)

// AcquireLockRequest asks for the exclusive editing lock on an invoice
type AcquireLockRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

func (r *AcquireLockRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ReleaseLockRequest gives the editing lock back
type ReleaseLockRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

func (r *ReleaseLockRequest) Validate() error {
	return validator.ValidateRequest(r)
}

const (
	LockStatusAcquired  = "acquired"
	LockStatusRefreshed = "refreshed"
	LockStatusReleased  = "released"
)

// LockResponse reports the outcome of an acquire or release call
type LockResponse struct {
	Status     string    `json:"status"`
	InvoiceID  int64     `json:"invoice_id"`
	UserID     int64     `json:"user_id"`
	AcquiredAt time.Time `json:"acquired_at,omitempty"`
}

// LockStatusResponse describes who, if anyone, holds the lock
type LockStatusResponse struct {
	InvoiceID  int64      `json:"invoice_id"`
	Locked     bool       `json:"locked"`
	HolderID   *int64     `json:"holder_id,omitempty"`
	HolderName string     `json:"holder_name,omitempty"`
	AcquiredAt *time.Time `json:"acquired_at,omitempty"`
}
