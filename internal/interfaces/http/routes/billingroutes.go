package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/interfaces/http/handlers"
	"github.com/fitmo-inc/fitmo/internal/interfaces/http/middleware"
)

// BillingRouteConfig holds dependencies for invoice, booking commission and
// webhook routes.
type BillingRouteConfig struct {
	BillingHandler    *handlers.BillingHandler
	CommissionHandler *handlers.CommissionHandler
	WebhookHandler    *handlers.WebhookHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupBillingRoutes configures invoice and webhook routes. The webhook
// endpoint is authenticated by signature, not by JWT.
func SetupBillingRoutes(engine *gin.Engine, cfg *BillingRouteConfig) {
	invoices := engine.Group("/invoices")
	invoices.Use(cfg.AuthMiddleware.RequireAuth())
	{
		invoices.GET("", cfg.BillingHandler.ListMyInvoices)
		invoices.GET("/:sid", cfg.BillingHandler.GetInvoice)
	}

	bookings := engine.Group("/bookings")
	bookings.Use(cfg.AuthMiddleware.RequireAuth())
	{
		bookings.POST("/:sid/commission", cfg.CommissionHandler.ApplyCommission)
	}

	webhooks := engine.Group("/webhooks")
	{
		webhooks.POST("/stripe", cfg.WebhookHandler.HandleStripeWebhook)
	}
}
