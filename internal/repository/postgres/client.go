package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domainClient "github.com/tallerhq/facturas/internal/domain/client"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
	"github.com/tallerhq/facturas/internal/types"
)

type clientRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) domainClient.Repository {
	return &clientRepository{db: db, logger: logger}
}

func (r *clientRepository) Create(ctx context.Context, c *domainClient.Client) error {
	query := `
	INSERT INTO clients (name, address, phone, workshop, student)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

	q := r.db.GetQuerier(ctx)
	err := q.QueryRowContext(ctx, query, c.Name, c.Address, c.Phone, c.Workshop, c.Student).Scan(&c.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id int64) (*domainClient.Client, error) {
	query := `SELECT * FROM clients WHERE id = $1`

	var c domainClient.Client
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Client %d was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get client").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context, filter *types.ClientFilter) ([]*domainClient.Client, error) {
	query := `SELECT * FROM clients WHERE 1=1`
	args := []interface{}{}
	argc := 0

	if filter != nil && filter.Search != "" {
		argc++
		query += fmt.Sprintf(" AND name ILIKE '%%' || $%d || '%%'", argc)
		args = append(args, filter.Search)
	}

	query += " ORDER BY name ASC"
	if filter != nil {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argc+1, argc+2)
		args = append(args, filter.GetLimit(), filter.GetOffset())
	}

	var clients []*domainClient.Client
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list clients").
			Mark(ierr.ErrDatabase)
	}
	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domainClient.Client) error {
	query := `
	UPDATE clients
	SET name = $2, address = $3, phone = $4, workshop = $5, student = $6
	WHERE id = $1`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, c.ID, c.Name, c.Address, c.Phone, c.Workshop, c.Student)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update client").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("client not found").
			WithHintf("Client %d was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete client").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("client not found").
			WithHintf("Client %d was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
