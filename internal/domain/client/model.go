package client

import (
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// Client is a customer of the workshop. Workshop and Student carry the
// art-school affiliation used for discounts and pickup routing.
type Client struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Address  string `db:"address" json:"address"`
	Phone    string `db:"phone" json:"phone"`
	Workshop string `db:"workshop" json:"workshop"`
	Student  string `db:"student" json:"student"`
}

func (c *Client) Validate() error {
	if c.Name == "" {
		return ierr.NewError("client name is required").
			WithHint("Client name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
