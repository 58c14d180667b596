package types

const (
	FilterDefaultLimit = 50
	FilterMaxLimit     = 200
)

// Filter is the common pagination filter embedded by entity filters
type Filter struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// GetLimit returns the effective page size
func (f Filter) GetLimit() int {
	if f.Limit <= 0 {
		return FilterDefaultLimit
	}
	if f.Limit > FilterMaxLimit {
		return FilterMaxLimit
	}
	return f.Limit
}

// GetOffset returns the effective offset
func (f Filter) GetOffset() int {
	if f.Offset < 0 {
		return 0
	}
	return f.Offset
}

// ClientFilter filters client listings
type ClientFilter struct {
	Filter
	Search string `form:"search"`
}

// ProductFilter filters product listings
type ProductFilter struct {
	Filter
	Search   string `form:"search"`
	Category string `form:"category"`
}

// InvoiceFilter filters invoice listings
type InvoiceFilter struct {
	Filter
	DocumentType DocumentType `form:"document_type"`
	ClientID     *int64       `form:"client_id"`
	Search       string       `form:"search"`
}
