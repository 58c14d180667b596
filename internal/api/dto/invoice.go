package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerhq/facturas/internal/domain/invoice"
	"github.com/tallerhq/facturas/internal/types"
	"github.com/tallerhq/facturas/internal/validator"
)

// CreateInvoiceRequest creates a quote or invoice with its line items.
// InvoiceNumber is optional; when empty the server allocates the next
// number in the configured series.
type CreateInvoiceRequest struct {
	QuoteNumber   *string                  `json:"quote_number,omitempty"`
	InvoiceNumber string                   `json:"invoice_number,omitempty"`
	IssueDate     time.Time                `json:"issue_date"`
	ClientID      *int64                   `json:"client_id,omitempty"`
	ClientName    string                   `json:"client_name" validate:"required"`
	ClientAddress string                   `json:"client_address"`
	ClientPhone   string                   `json:"client_phone"`
	Shipping      decimal.Decimal          `json:"shipping"`
	DocumentType  types.DocumentType       `json:"document_type"`
	LineItems     []CreateLineItemRequest  `json:"line_items" validate:"required,min=1,dive"`
	UserID        int64                    `json:"user_id" validate:"required,gt=0"`
}

// CreateLineItemRequest is one priced row of the new document
type CreateLineItemRequest struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToInvoice builds the domain invoice. Line item amounts default to
// quantity x unit price; the total is the item sum plus shipping.
func (r *CreateInvoiceRequest) ToInvoice() *invoice.Invoice {
	docType := r.DocumentType
	if docType == "" {
		docType = types.DocumentTypeQuote
	}
	issueDate := r.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now().UTC()
	}

	items := make([]*invoice.LineItem, 0, len(r.LineItems))
	total := decimal.Zero
	for _, li := range r.LineItems {
		amount := li.Amount
		if amount.IsZero() {
			amount = li.Quantity.Mul(li.UnitPrice)
		}
		total = total.Add(amount)
		items = append(items, &invoice.LineItem{
			Quantity:    li.Quantity,
			Description: li.Description,
			UnitPrice:   li.UnitPrice,
			Amount:      amount,
		})
	}

	userID := r.UserID
	return &invoice.Invoice{
		QuoteNumber:   r.QuoteNumber,
		InvoiceNumber: r.InvoiceNumber,
		IssueDate:     issueDate,
		ClientID:      r.ClientID,
		ClientName:    r.ClientName,
		ClientAddress: r.ClientAddress,
		ClientPhone:   r.ClientPhone,
		Total:         total.Add(r.Shipping),
		Shipping:      r.Shipping,
		DocumentType:  docType,
		FabricStatus:  types.WorkStatusPending,
		MoldingStatus: types.WorkStatusPending,
		CreatedBy:     &userID,
		LineItems:     items,
	}
}

// UpdateInvoiceRequest replaces the editable fields of a document
type UpdateInvoiceRequest struct {
	QuoteNumber   *string                 `json:"quote_number,omitempty"`
	IssueDate     time.Time               `json:"issue_date"`
	ClientID      *int64                  `json:"client_id,omitempty"`
	ClientName    string                  `json:"client_name" validate:"required"`
	ClientAddress string                  `json:"client_address"`
	ClientPhone   string                  `json:"client_phone"`
	Shipping      decimal.Decimal         `json:"shipping"`
	DocumentType  types.DocumentType      `json:"document_type"`
	LineItems     []CreateLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
	UserID        int64                   `json:"user_id" validate:"required,gt=0"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// UpdateInvoiceStatusRequest patches the workflow status fields; nil
// fields are left untouched
type UpdateInvoiceStatusRequest struct {
	DocumentType  *types.DocumentType `json:"document_type,omitempty"`
	FabricStatus  *types.WorkStatus   `json:"fabric_status,omitempty"`
	MoldingStatus *types.WorkStatus   `json:"molding_status,omitempty"`
	UserID        int64               `json:"user_id" validate:"required,gt=0"`
}

func (r *UpdateInvoiceStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.DocumentType != nil {
		if err := r.DocumentType.Validate(); err != nil {
			return err
		}
	}
	if r.FabricStatus != nil {
		if err := r.FabricStatus.Validate(); err != nil {
			return err
		}
	}
	if r.MoldingStatus != nil {
		if err := r.MoldingStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InvoiceResponse is the API shape of an invoice
type InvoiceResponse struct {
	*invoice.Invoice
	AmountPaid      *decimal.Decimal `json:"amount_paid,omitempty"`
	AmountRemaining *decimal.Decimal `json:"amount_remaining,omitempty"`
}

// NewInvoiceResponse wraps a domain invoice
func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv}
}

// WithPayments attaches payment totals to the response
func (r *InvoiceResponse) WithPayments(paid decimal.Decimal) *InvoiceResponse {
	remaining := r.Total.Sub(paid)
	r.AmountPaid = &paid
	r.AmountRemaining = &remaining
	return r
}

// ListInvoicesResponse is a paginated invoice listing
type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}
