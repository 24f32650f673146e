package routes

import (
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/handlers"
	"markbook_backend/internal/middleware"
	"markbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every HTTP route under /api/v1. The billing webhook is
// the only unauthenticated route besides auth itself; everything else goes
// through the auth middleware, with the admin and export groups adding their
// own gates on top.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, sc *services.ServiceContainer) {
	authRequired := middleware.AuthMiddleware(sc.Tokens, sc.Users)
	adminRequired := middleware.RequireAdmin()
	exportRequired := middleware.RequireFeature(sc.Guard, entitlement.FeatureExportReports)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authRequired)
		appHandlers.BillingHandler.RegisterRoutes(api, authRequired)
		appHandlers.AdminHandler.RegisterRoutes(api, authRequired, adminRequired)

		protected := api.Group("")
		protected.Use(authRequired)
		{
			appHandlers.StudentHandler.RegisterRoutes(protected)
			appHandlers.RegisterHandler.RegisterRoutes(protected)
			appHandlers.AssessmentHandler.RegisterRoutes(protected)
			appHandlers.ClassHandler.RegisterRoutes(protected)
			appHandlers.EvidenceHandler.RegisterRoutes(protected)
			appHandlers.ExportHandler.RegisterRoutes(protected, exportRequired)
		}
	}

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
