package app

import (
	"muni_assess_backend/docs"
	"muni_assess_backend/internal/config"
	"muni_assess_backend/internal/middleware"
	"muni_assess_backend/internal/model"
	"muni_assess_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Municipality routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.GET("/sections", c.catalog.ListSections)
		authGroup.GET("/sections/:id", c.catalog.GetSection)
		authGroup.POST("/sections/:id/complete", c.assessment.CompleteSection)

		authGroup.GET("/assessment", c.assessment.GetAssessment)
		authGroup.PUT("/assessment/answers", c.assessment.SaveAnswer)
		authGroup.POST("/assessment/finalize", c.assessment.Finalize)
		authGroup.GET("/assessment/result", c.assessment.GetResult)
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/submissions", c.admin.ListSubmissions)
		admin.GET("/summary", c.admin.GetSummary)
		admin.GET("/export", c.admin.ExportCSV)
	}
}
