package invoice

import (
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/types"
)

// Invoice is a quote or invoice issued by the workshop. Client fields are
// snapshotted at creation time so later client edits don't rewrite
// issued documents.
type Invoice struct {
	ID            int64              `db:"id" json:"id"`
	QuoteNumber   *string            `db:"quote_number" json:"quote_number,omitempty"`
	InvoiceNumber string             `db:"invoice_number" json:"invoice_number"`
	IssueDate     time.Time          `db:"issue_date" json:"issue_date"`
	ClientID      *int64             `db:"client_id" json:"client_id,omitempty"`
	ClientName    string             `db:"client_name" json:"client_name"`
	ClientAddress string             `db:"client_address" json:"client_address"`
	ClientPhone   string             `db:"client_phone" json:"client_phone"`
	Total         decimal.Decimal    `db:"total" json:"total"`
	Shipping      decimal.Decimal    `db:"shipping" json:"shipping"`
	DocumentType  types.DocumentType `db:"document_type" json:"document_type"`
	FabricStatus  types.WorkStatus   `db:"fabric_status" json:"fabric_status"`
	MoldingStatus types.WorkStatus   `db:"molding_status" json:"molding_status"`
	CreatedBy     *int64             `db:"created_by" json:"created_by,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
	UpdatedBy     *int64             `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt     time.Time          `db:"updated_at" json:"updated_at"`

	LineItems []*LineItem `db:"-" json:"line_items,omitempty"`
}

// LineItem is a single priced row on an invoice
type LineItem struct {
	ID          int64           `db:"id" json:"id"`
	InvoiceID   int64           `db:"invoice_id" json:"invoice_id"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	Description string          `db:"description" json:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
}

// Validate checks invariants before persisting
func (i *Invoice) Validate() error {
	if i.ClientName == "" {
		return ierr.NewError("client name is required").
			WithHint("Client name is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.DocumentType.Validate(); err != nil {
		return err
	}
	if err := i.FabricStatus.Validate(); err != nil {
		return err
	}
	if err := i.MoldingStatus.Validate(); err != nil {
		return err
	}
	if i.Total.IsNegative() {
		return ierr.NewError("total cannot be negative").
			WithHint("Total cannot be negative").
			Mark(ierr.ErrValidation)
	}
	for _, item := range i.LineItems {
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
			return ierr.NewError("line item quantity and unit price cannot be negative").
				WithHint("Line item quantity and unit price cannot be negative").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
