package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domainProduct "github.com/tallerhq/facturas/internal/domain/product"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
	"github.com/tallerhq/facturas/internal/types"
)

type productRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewProductRepository(db *postgres.DB, logger *logger.Logger) domainProduct.Repository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) Create(ctx context.Context, p *domainProduct.Product) error {
	query := `
	INSERT INTO products (id, description, unit_price, category, size, variant, list_price)
	VALUES (:id, :description, :unit_price, :category, :size, :variant, :list_price)`

	_, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return ierr.WithError(err).
				WithHintf("Product %s already exists", p.ID).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*domainProduct.Product, error) {
	query := `SELECT * FROM products WHERE id = $1`

	var p domainProduct.Product
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Product %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get product").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, filter *types.ProductFilter) ([]*domainProduct.Product, error) {
	query := `SELECT * FROM products WHERE 1=1`
	args := []interface{}{}
	argc := 0

	if filter != nil && filter.Search != "" {
		argc++
		query += fmt.Sprintf(" AND description ILIKE '%%' || $%d || '%%'", argc)
		args = append(args, filter.Search)
	}
	if filter != nil && filter.Category != "" {
		argc++
		query += fmt.Sprintf(" AND category = $%d", argc)
		args = append(args, filter.Category)
	}

	query += " ORDER BY description ASC"
	if filter != nil {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argc+1, argc+2)
		args = append(args, filter.GetLimit(), filter.GetOffset())
	}

	var products []*domainProduct.Product
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list products").
			Mark(ierr.ErrDatabase)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, p *domainProduct.Product) error {
	query := `
	UPDATE products
	SET description = :description,
		unit_price = :unit_price,
		category = :category,
		size = :size,
		variant = :variant,
		list_price = :list_price
	WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update product").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("product not found").
			WithHintf("Product %s was not found", p.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete product").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("product not found").
			WithHintf("Product %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
