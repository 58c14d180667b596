package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	domainPayment "github.com/tallerhq/facturas/internal/domain/payment"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) domainPayment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, p *domainPayment.Payment) error {
	query := `
	INSERT INTO payments (invoice_id, amount, method, notes, paid_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`

	p.CreatedAt = time.Now().UTC()

	q := r.db.GetQuerier(ctx)
	err := q.QueryRowContext(ctx, query,
		p.InvoiceID,
		p.Amount,
		p.Method,
		p.Notes,
		p.PaidAt,
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record payment").
			WithReportableDetails(map[string]any{
				"invoice_id": p.InvoiceID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id int64) (*domainPayment.Payment, error) {
	query := `SELECT * FROM payments WHERE id = $1`

	var p domainPayment.Payment
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Payment %d was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID int64) ([]*domainPayment.Payment, error) {
	query := `SELECT * FROM payments WHERE invoice_id = $1 ORDER BY paid_at ASC`

	var payments []*domainPayment.Payment
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &payments, query, invoiceID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}
	return payments, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM payments WHERE id = $1`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete payment").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("payment not found").
			WithHintf("Payment %d was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *paymentRepository) TotalPaid(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`

	var total decimal.Decimal
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &total, query, invoiceID); err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to sum payments").
			Mark(ierr.ErrDatabase)
	}
	return total, nil
}
