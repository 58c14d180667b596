package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domainInvoice "github.com/tallerhq/facturas/internal/domain/invoice"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
	"github.com/tallerhq/facturas/internal/types"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) domainInvoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *domainInvoice.Invoice) error {
	query := `
	INSERT INTO invoices (
		quote_number, invoice_number, issue_date, client_id, client_name,
		client_address, client_phone, total, shipping, document_type,
		fabric_status, molding_status, created_by, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING id`

	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	q := r.db.GetQuerier(ctx)
	err := q.QueryRowContext(ctx, query,
		inv.QuoteNumber,
		inv.InvoiceNumber,
		inv.IssueDate,
		inv.ClientID,
		inv.ClientName,
		inv.ClientAddress,
		inv.ClientPhone,
		inv.Total,
		inv.Shipping,
		inv.DocumentType,
		inv.FabricStatus,
		inv.MoldingStatus,
		inv.CreatedBy,
		inv.CreatedAt,
		inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return ierr.WithError(err).
				WithHint("Invoice with same invoice number already exists").
				WithReportableDetails(map[string]any{
					"invoice_number": inv.InvoiceNumber,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}

	itemQuery := `
	INSERT INTO invoice_line_items (invoice_id, quantity, description, unit_price, amount)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

	for _, item := range inv.LineItems {
		item.InvoiceID = inv.ID
		if err := q.QueryRowContext(ctx, itemQuery,
			item.InvoiceID,
			item.Quantity,
			item.Description,
			item.UnitPrice,
			item.Amount,
		).Scan(&item.ID); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice line item").
				Mark(ierr.ErrDatabase)
		}
	}

	r.logger.Debugw("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"line_items", len(inv.LineItems),
	)
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id int64) (*domainInvoice.Invoice, error) {
	query := `SELECT * FROM invoices WHERE id = $1`

	var inv domainInvoice.Invoice
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &inv, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Invoice %d was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}

	itemQuery := `
	SELECT id, invoice_id, quantity, description, unit_price, amount
	FROM invoice_line_items
	WHERE invoice_id = $1
	ORDER BY id ASC`

	if err := q.SelectContext(ctx, &inv.LineItems, itemQuery, id); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice line items").
			Mark(ierr.ErrDatabase)
	}

	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*domainInvoice.Invoice, error) {
	query := `SELECT * FROM invoices WHERE 1=1`
	args := []interface{}{}
	argc := 0

	query, args, argc = applyInvoiceFilter(query, args, argc, filter)

	query += " ORDER BY id DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argc+1, argc+2)
	args = append(args, filter.GetLimit(), filter.GetOffset())

	var invoices []*domainInvoice.Invoice
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE 1=1`
	args := []interface{}{}

	query, args, _ = applyInvoiceFilter(query, args, 0, filter)

	var count int
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func applyInvoiceFilter(query string, args []interface{}, argc int, filter *types.InvoiceFilter) (string, []interface{}, int) {
	if filter == nil {
		return query, args, argc
	}
	if filter.DocumentType != "" {
		argc++
		query += fmt.Sprintf(" AND document_type = $%d", argc)
		args = append(args, filter.DocumentType)
	}
	if filter.ClientID != nil {
		argc++
		query += fmt.Sprintf(" AND client_id = $%d", argc)
		args = append(args, *filter.ClientID)
	}
	if filter.Search != "" {
		argc++
		query += fmt.Sprintf(" AND (client_name ILIKE '%%' || $%d || '%%' OR invoice_number ILIKE '%%' || $%d || '%%')", argc, argc)
		args = append(args, filter.Search)
	}
	return query, args, argc
}

func (r *invoiceRepository) Update(ctx context.Context, inv *domainInvoice.Invoice) error {
	query := `
	UPDATE invoices SET
		quote_number = $2,
		issue_date = $3,
		client_id = $4,
		client_name = $5,
		client_address = $6,
		client_phone = $7,
		total = $8,
		shipping = $9,
		document_type = $10,
		updated_by = $11,
		updated_at = $12
	WHERE id = $1`

	inv.UpdatedAt = time.Now().UTC()

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query,
		inv.ID,
		inv.QuoteNumber,
		inv.IssueDate,
		inv.ClientID,
		inv.ClientName,
		inv.ClientAddress,
		inv.ClientPhone,
		inv.Total,
		inv.Shipping,
		inv.DocumentType,
		inv.UpdatedBy,
		inv.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %d was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}

	// Line items are replaced wholesale on update.
	if inv.LineItems != nil {
		if _, err := q.ExecContext(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to replace invoice line items").
				Mark(ierr.ErrDatabase)
		}

		itemQuery := `
		INSERT INTO invoice_line_items (invoice_id, quantity, description, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

		for _, item := range inv.LineItems {
			item.InvoiceID = inv.ID
			if err := q.QueryRowContext(ctx, itemQuery,
				item.InvoiceID,
				item.Quantity,
				item.Description,
				item.UnitPrice,
				item.Amount,
			).Scan(&item.ID); err != nil {
				return ierr.WithError(err).
					WithHint("Failed to replace invoice line items").
					Mark(ierr.ErrDatabase)
			}
		}
	}

	return nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id int64, patch *domainInvoice.StatusPatch) error {
	query := `UPDATE invoices SET updated_at = $1`
	args := []interface{}{time.Now().UTC()}
	argc := 1

	if patch.DocumentType != nil {
		argc++
		query += fmt.Sprintf(", document_type = $%d", argc)
		args = append(args, *patch.DocumentType)
	}
	if patch.FabricStatus != nil {
		argc++
		query += fmt.Sprintf(", fabric_status = $%d", argc)
		args = append(args, *patch.FabricStatus)
	}
	if patch.MoldingStatus != nil {
		argc++
		query += fmt.Sprintf(", molding_status = $%d", argc)
		args = append(args, *patch.MoldingStatus)
	}
	if patch.UpdatedBy != nil {
		argc++
		query += fmt.Sprintf(", updated_by = $%d", argc)
		args = append(args, *patch.UpdatedBy)
	}

	argc++
	query += fmt.Sprintf(" WHERE id = $%d", argc)
	args = append(args, id)

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice status").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %d was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM invoices WHERE id = $1`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %d was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *invoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_number = $1)`

	var exists bool
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &exists, query, number); err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check invoice number").
			Mark(ierr.ErrDatabase)
	}
	return exists, nil
}
