package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tallerhq/facturas/internal/api"
	v1 "github.com/tallerhq/facturas/internal/api/v1"
	"github.com/tallerhq/facturas/internal/config"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/postgres"
	"github.com/tallerhq/facturas/internal/repository"
	"github.com/tallerhq/facturas/internal/service"
	"github.com/tallerhq/facturas/internal/validator"
	"go.uber.org/fx"
)

// @title Facturas API
// @version 1.0
// @description Invoicing and quoting backend for the workshop
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewSequenceRepository,
			repository.NewPresenceRepository,
			repository.NewLockRepository,
			repository.NewDraftRepository,
			repository.NewInvoiceRepository,
			repository.NewClientRepository,
			repository.NewProductRepository,
			repository.NewPaymentRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewNumberingService,
			service.NewPresenceService,
			service.NewLockService,
			service.NewDraftService,
			service.NewInvoiceService,
			service.NewClientService,
			service.NewProductService,
			service.NewPaymentService,
			service.NewHousekeeper,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startHousekeeper,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	presenceService service.PresenceService,
	lockService service.LockService,
	draftService service.DraftService,
	invoiceService service.InvoiceService,
	clientService service.ClientService,
	productService service.ProductService,
	paymentService service.PaymentService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(logger),
		Presence: v1.NewPresenceHandler(presenceService, logger),
		Lock:     v1.NewLockHandler(lockService, logger),
		Draft:    v1.NewDraftHandler(draftService, logger),
		Invoice:  v1.NewInvoiceHandler(invoiceService, logger),
		Client:   v1.NewClientHandler(clientService, logger),
		Product:  v1.NewProductHandler(productService, logger),
		Payment:  v1.NewPaymentHandler(paymentService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startHousekeeper(
	lc fx.Lifecycle,
	housekeeper *service.Housekeeper,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			housekeeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			housekeeper.Stop()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
