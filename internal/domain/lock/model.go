package lock

import (
	"time"
)

// EditLock is an exclusive, single-owner editing lock on an invoice.
// Key uniqueness on InvoiceID guarantees at most one lock per invoice.
type EditLock struct {
	InvoiceID  int64     `db:"invoice_id" json:"invoice_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	AcquiredAt time.Time `db:"acquired_at" json:"acquired_at"`
}
