package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/interfaces/http/handlers"
)

// PlanRouteConfig holds dependencies for plan catalog routes.
type PlanRouteConfig struct {
	PlanHandler *handlers.PlanHandler
}

// SetupPlanRoutes configures the public plan catalog.
func SetupPlanRoutes(engine *gin.Engine, cfg *PlanRouteConfig) {
	plans := engine.Group("/plans")
	{
		plans.GET("", cfg.PlanHandler.ListPlans)
		plans.GET("/:key", cfg.PlanHandler.GetPlan)
	}
}
