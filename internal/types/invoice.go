package types

import (
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// DocumentType distinguishes a quote from a finalized invoice
type DocumentType string

const (
	DocumentTypeQuote   DocumentType = "QUOTE"
	DocumentTypeInvoice DocumentType = "INVOICE"
)

func (t DocumentType) Validate() error {
	switch t {
	case DocumentTypeQuote, DocumentTypeInvoice:
		return nil
	}
	return ierr.NewError("invalid document type").
		WithHintf("Document type must be one of %s, %s", DocumentTypeQuote, DocumentTypeInvoice).
		Mark(ierr.ErrValidation)
}

// WorkStatus tracks the progress of a workshop job attached to an invoice,
// e.g. the fabric order or the molding cut.
type WorkStatus string

const (
	WorkStatusPending WorkStatus = "PENDING"
	WorkStatusOrdered WorkStatus = "ORDERED"
	WorkStatusReady   WorkStatus = "READY"
)

func (s WorkStatus) Validate() error {
	switch s {
	case WorkStatusPending, WorkStatusOrdered, WorkStatusReady:
		return nil
	}
	return ierr.NewError("invalid work status").
		WithHintf("Work status must be one of %s, %s, %s", WorkStatusPending, WorkStatusOrdered, WorkStatusReady).
		Mark(ierr.ErrValidation)
}
