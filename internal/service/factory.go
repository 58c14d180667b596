package service

import (
	"github.com/tallerhq/facturas/internal/config"
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
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	SequenceRepo sequence.Repository
	PresenceRepo presence.Repository
	LockRepo     lock.Repository
	DraftRepo    draft.Repository
	InvoiceRepo  invoice.Repository
	ClientRepo   client.Repository
	ProductRepo  product.Repository
	PaymentRepo  payment.Repository
}

// NewServiceParams collects the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db *postgres.DB,
	sequenceRepo sequence.Repository,
	presenceRepo presence.Repository,
	lockRepo lock.Repository,
	draftRepo draft.Repository,
	invoiceRepo invoice.Repository,
	clientRepo client.Repository,
	productRepo product.Repository,
	paymentRepo payment.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		SequenceRepo: sequenceRepo,
		PresenceRepo: presenceRepo,
		LockRepo:     lockRepo,
		DraftRepo:    draftRepo,
		InvoiceRepo:  invoiceRepo,
		ClientRepo:   clientRepo,
		ProductRepo:  productRepo,
		PaymentRepo:  paymentRepo,
	}
}
