package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tallerhq/facturas/internal/domain/product"
	"github.com/tallerhq/facturas/internal/validator"
)

// CreateProductRequest creates a catalog entry. ID is optional; when
// empty a short manual-style ID is generated.
type CreateProductRequest struct {
	ID          string          `json:"id"`
	Description string          `json:"description" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	Variant     string          `json:"variant"`
	ListPrice   decimal.Decimal `json:"list_price"`
}

func (r *CreateProductRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateProductRequest) ToProduct() *product.Product {
	return &product.Product{
		ID:          r.ID,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
		Category:    r.Category,
		Size:        r.Size,
		Variant:     r.Variant,
		ListPrice:   r.ListPrice,
	}
}

// UpdateProductRequest replaces a product's editable fields
type UpdateProductRequest struct {
	Description string          `json:"description" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	Variant     string          `json:"variant"`
	ListPrice   decimal.Decimal `json:"list_price"`
}

func (r *UpdateProductRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ProductResponse is the API shape of a product
type ProductResponse struct {
	*product.Product
}

// ListProductsResponse is a product listing
type ListProductsResponse struct {
	Items []*ProductResponse `json:"items"`
}
