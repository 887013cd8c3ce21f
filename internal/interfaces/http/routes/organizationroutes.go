package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/interfaces/http/handlers"
	"github.com/fitmo-inc/fitmo/internal/interfaces/http/middleware"
)

// OrganizationRouteConfig holds dependencies for organization routes.
type OrganizationRouteConfig struct {
	OrganizationHandler *handlers.OrganizationHandler
	InvitationHandler   *handlers.InvitationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// SetupOrganizationRoutes configures organization and invitation routes.
func SetupOrganizationRoutes(engine *gin.Engine, cfg *OrganizationRouteConfig) {
	organizations := engine.Group("/organizations")
	organizations.Use(cfg.AuthMiddleware.RequireAuth())
	{
		organizations.POST("", cfg.OrganizationHandler.CreateOrganization)
		organizations.GET("/:sid", cfg.OrganizationHandler.GetOrganization)
		organizations.GET("/:sid/trainers", cfg.OrganizationHandler.ListTrainers)
		organizations.POST("/:sid/trainers", cfg.OrganizationHandler.AddTrainer)
		organizations.DELETE("/:sid/trainers/:trainer_id", cfg.OrganizationHandler.RemoveTrainer)
		organizations.POST("/:sid/invitations", cfg.OrganizationHandler.InviteTrainer)
		organizations.POST("/:sid/seats", cfg.OrganizationHandler.PurchaseSeats)
		organizations.PUT("/:sid/plan", cfg.OrganizationHandler.ChangePlan)
	}

	invitations := engine.Group("/invitations")
	invitations.Use(cfg.AuthMiddleware.RequireAuth())
	{
		invitations.GET("/mine", cfg.InvitationHandler.ListMyInvitations)
		invitations.POST("/accept", cfg.InvitationHandler.AcceptInvitation)
	}
}
