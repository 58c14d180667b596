package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/product"
	"github.com/tallerhq/facturas/internal/types"
)

// ProductService manages the product catalog
type ProductService interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter *types.ProductFilter) (*dto.ListProductsResponse, error)
	UpdateProduct(ctx context.Context, id string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	ServiceParams
}

// NewProductService creates a new product service
func NewProductService(params ServiceParams) ProductService {
	return &productService{ServiceParams: params}
}

func (s *productService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToProduct()
	if p.ID == "" {
		p.ID = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PRODUCT)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProductRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &dto.ProductResponse{Product: p}, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{Product: p}, nil
}

func (s *productService) ListProducts(ctx context.Context, filter *types.ProductFilter) (*dto.ListProductsResponse, error) {
	if filter == nil {
		filter = &types.ProductFilter{}
	}

	products, err := s.ProductRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListProductsResponse{
		Items: lo.Map(products, func(p *product.Product, _ int) *dto.ProductResponse {
			return &dto.ProductResponse{Product: p}
		}),
	}, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Description = req.Description
	p.UnitPrice = req.UnitPrice
	p.Category = req.Category
	p.Size = req.Size
	p.Variant = req.Variant
	p.ListPrice = req.ListPrice
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProductRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return &dto.ProductResponse{Product: p}, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.ProductRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.ProductRepo.Delete(ctx, id)
}
