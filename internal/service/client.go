package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/client"
	"github.com/tallerhq/facturas/internal/types"
)

// ClientService manages the customer directory
type ClientService interface {
	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id int64) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, filter *types.ClientFilter) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, id int64, req *dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id int64) error
}

type clientService struct {
	ServiceParams
}

// NewClientService creates a new client service
func NewClientService(params ServiceParams) ClientService {
	return &clientService{ServiceParams: params}
}

func (s *clientService) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClient()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.ClientRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) GetClient(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) ListClients(ctx context.Context, filter *types.ClientFilter) (*dto.ListClientsResponse, error) {
	if filter == nil {
		filter = &types.ClientFilter{}
	}

	clients, err := s.ClientRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListClientsResponse{
		Items: lo.Map(clients, func(c *client.Client, _ int) *dto.ClientResponse {
			return &dto.ClientResponse{Client: c}
		}),
	}, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id int64, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = req.Name
	c.Address = req.Address
	c.Phone = req.Phone
	c.Workshop = req.Workshop
	c.Student = req.Student
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.ClientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) DeleteClient(ctx context.Context, id int64) error {
	if _, err := s.ClientRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.ClientRepo.Delete(ctx, id)
}
