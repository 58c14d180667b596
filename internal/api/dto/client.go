package dto

import (
	"github.com/tallerhq/facturas/internal/domain/client"
	"github.com/tallerhq/facturas/internal/validator"
)

// CreateClientRequest creates a client record
type CreateClientRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Workshop string `json:"workshop"`
	Student  string `json:"student"`
}

func (r *CreateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateClientRequest) ToClient() *client.Client {
	return &client.Client{
		Name:     r.Name,
		Address:  r.Address,
		Phone:    r.Phone,
		Workshop: r.Workshop,
		Student:  r.Student,
	}
}

// UpdateClientRequest replaces a client's editable fields
type UpdateClientRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Workshop string `json:"workshop"`
	Student  string `json:"student"`
}

func (r *UpdateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ClientResponse is the API shape of a client
type ClientResponse struct {
	*client.Client
}

// ListClientsResponse is a client listing
type ListClientsResponse struct {
	Items []*ClientResponse `json:"items"`
}
