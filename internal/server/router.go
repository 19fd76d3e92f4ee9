package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/medaccred/accreditation-backend/internal/handlers"
	"github.com/medaccred/accreditation-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	CatalogHandler      *handlers.CatalogHandler
	OrgHandler          *handlers.OrgHandler
	AssignmentHandler   *handlers.AssignmentHandler
	ItemStatusHandler   *handlers.ItemStatusHandler
	PGComplianceHandler *handlers.PGComplianceHandler
	EvidenceHandler     *handlers.EvidenceHandler
	SummaryHandler      *handlers.SummaryHandler
	AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)

	// Catalog
	protected.GET("/modules", cfg.CatalogHandler.ListModules)
	protected.GET("/modules/:id", cfg.CatalogHandler.GetModule)
	protected.GET("/templates", cfg.CatalogHandler.ListTemplates)
	protected.GET("/templates/:id", cfg.CatalogHandler.GetTemplate)
	protected.DELETE("/templates/:id", cfg.CatalogHandler.DeleteTemplate)

	// Institutions and programs
	protected.GET("/institutions", cfg.OrgHandler.ListInstitutions)
	protected.GET("/institutions/:id", cfg.OrgHandler.GetInstitution)
	protected.POST("/institutions", cfg.OrgHandler.CreateInstitution)
	protected.DELETE("/institutions/:id", cfg.OrgHandler.DeleteInstitution)
	protected.GET("/programs", cfg.OrgHandler.ListPrograms)
	protected.GET("/programs/:id", cfg.OrgHandler.GetProgram)
	protected.POST("/programs", cfg.OrgHandler.CreateProgram)
	protected.DELETE("/programs/:id", cfg.OrgHandler.DeleteProgram)

	// Assignments
	protected.POST("/assignments", cfg.AssignmentHandler.Create)
	protected.GET("/assignments", cfg.AssignmentHandler.List)
	protected.GET("/assignments/:id", cfg.AssignmentHandler.Get)
	protected.PATCH("/assignments/:id", cfg.AssignmentHandler.Update)
	protected.DELETE("/assignments/:id", cfg.AssignmentHandler.Delete)
	protected.POST("/assignments/:id/item-statuses", cfg.AssignmentHandler.EnsureItemStatuses)
	protected.GET("/assignments/:id/rollup", cfg.AssignmentHandler.Rollup)

	// Item statuses
	protected.POST("/item-statuses", cfg.ItemStatusHandler.Create)
	protected.GET("/item-statuses", cfg.ItemStatusHandler.List)
	protected.GET("/item-statuses/:id", cfg.ItemStatusHandler.Get)
	protected.PATCH("/item-statuses/:id", cfg.ItemStatusHandler.Update)
	protected.DELETE("/item-statuses/:id", cfg.ItemStatusHandler.Delete)

	// Institution-scoped compliance
	protected.POST("/compliance", cfg.PGComplianceHandler.Create)
	protected.GET("/compliance", cfg.PGComplianceHandler.List)
	protected.GET("/compliance/:id", cfg.PGComplianceHandler.Get)
	protected.PATCH("/compliance/:id", cfg.PGComplianceHandler.Update)
	protected.DELETE("/compliance/:id", cfg.PGComplianceHandler.Delete)

	// Evidence
	protected.POST("/evidence", cfg.EvidenceHandler.Create)
	protected.GET("/evidence", cfg.EvidenceHandler.List)
	protected.GET("/evidence/:id", cfg.EvidenceHandler.Get)
	protected.PATCH("/evidence/:id", cfg.EvidenceHandler.Update)
	protected.DELETE("/evidence/:id", cfg.EvidenceHandler.Delete)

	// Summary
	protected.GET("/summary", cfg.SummaryHandler.Get)

	return router
}
