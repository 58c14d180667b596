package repository

import (
	"github.com/tallerhq/facturas/internal/domain/client"
	"github.com/tallerhq/facturas/internal/domain/draft"
	"github.com/tallerhq/facturas/internal/domain/invoice"
	"github.com/tallerhq/facturas/internal/domain/lock"
	"github.com/tallerhq/facturas/internal/domain/payment"
	"github.com/tallerhq/facturas/internal/domain/presence"
	"github.com/tallerhq/facturas/internal/domain/product"
	"github.com/tallerhq/facturas/internal/domain/sequence"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
	postgresRepo "github.com/tallerhq/facturas/internal/repository/postgres"
)

func NewSequenceRepository(db *postgres.DB, logger *logger.Logger) sequence.Repository {
	return postgresRepo.NewSequenceRepository(db, logger)
}

func NewPresenceRepository(db *postgres.DB, logger *logger.Logger) presence.Repository {
	return postgresRepo.NewPresenceRepository(db, logger)
}

func NewLockRepository(db *postgres.DB, logger *logger.Logger) lock.Repository {
	return postgresRepo.NewLockRepository(db, logger)
}

func NewDraftRepository(db *postgres.DB, logger *logger.Logger) draft.Repository {
	return postgresRepo.NewDraftRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, logger)
}

func NewProductRepository(db *postgres.DB, logger *logger.Logger) product.Repository {
	return postgresRepo.NewProductRepository(db, logger)
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}
