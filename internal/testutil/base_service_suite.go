package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"
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
	"github.com/tallerhq/facturas/internal/types"
	"github.com/tallerhq/facturas/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	SequenceRepo sequence.Repository
	PresenceRepo presence.Repository
	LockRepo     lock.Repository
	DraftRepo    draft.Repository
	InvoiceRepo  invoice.Repository
	ClientRepo   client.Repository
	ProductRepo  product.Repository
	PaymentRepo  payment.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		SequenceRepo: NewInMemorySequenceStore(),
		PresenceRepo: NewInMemoryPresenceStore(),
		LockRepo:     NewInMemoryLockStore(),
		DraftRepo:    NewInMemoryDraftStore(),
		InvoiceRepo:  NewInMemoryInvoiceStore(),
		ClientRepo:   NewInMemoryClientStore(),
		ProductRepo:  NewInMemoryProductStore(),
		PaymentRepo:  NewInMemoryPaymentStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.SequenceRepo.(*InMemorySequenceStore).Clear()
	s.stores.PresenceRepo.(*InMemoryPresenceStore).Clear()
	s.stores.LockRepo.(*InMemoryLockStore).Clear()
	s.stores.DraftRepo.(*InMemoryDraftStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
	s.stores.ProductRepo.(*InMemoryProductStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}
