package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/interfaces/http/handlers"
	"github.com/fitmo-inc/fitmo/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig holds dependencies for trainer subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	CommissionHandler   *handlers.CommissionHandler
	BillingHandler      *handlers.BillingHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// SetupSubscriptionRoutes configures subscription, earnings and checkout
// routes for the authenticated trainer.
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subscriptions := engine.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		subscriptions.GET("/me", cfg.SubscriptionHandler.GetMySubscription)
		subscriptions.POST("", cfg.SubscriptionHandler.StartSubscription)
		subscriptions.POST("/upgrade", cfg.SubscriptionHandler.UpgradePlan)
		subscriptions.GET("/upgrade-preview", cfg.SubscriptionHandler.PreviewUpgrade)
		subscriptions.POST("/cancel", cfg.SubscriptionHandler.CancelSubscription)
	}

	earnings := engine.Group("/earnings")
	earnings.Use(cfg.AuthMiddleware.RequireAuth())
	{
		earnings.GET("", cfg.CommissionHandler.GetEarnings)
	}

	checkout := engine.Group("/checkout")
	checkout.Use(cfg.AuthMiddleware.RequireAuth())
	{
		checkout.POST("", cfg.BillingHandler.CreateCheckout)
	}
}
