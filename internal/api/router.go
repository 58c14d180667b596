package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/tallerhq/facturas/internal/api/v1"
	"github.com/tallerhq/facturas/internal/config"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/rest/middleware"
	"github.com/tallerhq/facturas/internal/types"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Presence *v1.PresenceHandler
	Lock     *v1.LockHandler
	Draft    *v1.DraftHandler
	Invoice  *v1.InvoiceHandler
	Client   *v1.ClientHandler
	Product  *v1.ProductHandler
	Payment  *v1.PaymentHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Presence routes
	presence := router.Group("/presence")
	{
		presence.POST("/heartbeat", handlers.Presence.Heartbeat)
		presence.GET("/active", handlers.Presence.ListActive)
	}

	// Draft routes
	drafts := router.Group("/drafts")
	{
		drafts.POST("", handlers.Draft.Register)
		drafts.GET("", handlers.Draft.List)
		drafts.DELETE("/:user_id", handlers.Draft.Clear)
	}

	// Invoice routes, including per-invoice locks and payments
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.PATCH("/:id/status", handlers.Invoice.UpdateInvoiceStatus)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)

		invoices.GET("/:id/lock", handlers.Lock.Status)
		invoices.POST("/:id/lock", handlers.Lock.Acquire)
		invoices.DELETE("/:id/lock", handlers.Lock.Release)

		invoices.POST("/:id/payments", handlers.Payment.RecordPayment)
		invoices.GET("/:id/payments", handlers.Payment.ListPayments)
		invoices.DELETE("/:id/payments/:payment_id", handlers.Payment.DeletePayment)
	}

	// Client routes
	clients := router.Group("/clients")
	{
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("", handlers.Client.ListClients)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.PUT("/:id", handlers.Client.UpdateClient)
		clients.DELETE("/:id", handlers.Client.DeleteClient)
	}

	// Product routes
	products := router.Group("/products")
	{
		products.POST("", handlers.Product.CreateProduct)
		products.GET("", handlers.Product.ListProducts)
		products.GET("/:id", handlers.Product.GetProduct)
		products.PUT("/:id", handlers.Product.UpdateProduct)
		products.DELETE("/:id", handlers.Product.DeleteProduct)
	}
}
