package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/medaccred/accreditation-backend/internal/clients/redis"
	"github.com/medaccred/accreditation-backend/internal/db"
	"github.com/medaccred/accreditation-backend/internal/handlers"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/middleware"
	"github.com/medaccred/accreditation-backend/internal/repos"
	"github.com/medaccred/accreditation-backend/internal/server"
	"github.com/medaccred/accreditation-backend/internal/services"
	"github.com/medaccred/accreditation-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	summaryCacheTTL := utils.GetEnvAsInt("SUMMARY_CACHE_TTL", 15, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	moduleRepo := repos.NewModuleRepo(thePG, log)
	templateRepo := repos.NewTemplateRepo(thePG, log)
	itemRepo := repos.NewItemRepo(thePG, log)
	institutionRepo := repos.NewInstitutionRepo(thePG, log)
	programRepo := repos.NewProgramRepo(thePG, log)
	assignmentRepo := repos.NewAssignmentRepo(thePG, log)
	itemStatusRepo := repos.NewItemStatusRepo(thePG, log)
	pgComplianceRepo := repos.NewPGComplianceRepo(thePG, log)
	evidenceRepo := repos.NewEvidenceRepo(thePG, log)

	// Redis cache is optional; without it the summary endpoint counts on
	// every call.
	cache, err := redis.NewCache(log)
	if err != nil {
		log.Warn("Could not init redis cache, summary counts will not be cached", "error", err)
		cache = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Error("Could not init BucketService", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	catalogService := services.NewCatalogService(thePG, log, moduleRepo, templateRepo)
	orgService := services.NewOrgService(thePG, log, institutionRepo, programRepo)
	assignmentService := services.NewAssignmentService(thePG, log, templateRepo, programRepo, assignmentRepo, itemRepo, itemStatusRepo)
	itemStatusService := services.NewItemStatusService(thePG, log, itemRepo, assignmentRepo, itemStatusRepo)
	pgComplianceService := services.NewPGComplianceService(thePG, log, itemRepo, institutionRepo, pgComplianceRepo)
	evidenceService := services.NewEvidenceService(thePG, log, bucketService, assignmentRepo, itemStatusRepo, evidenceRepo)
	summaryService := services.NewSummaryService(thePG, log, cache, time.Duration(summaryCacheTTL)*time.Second, moduleRepo, templateRepo, assignmentRepo, programRepo, evidenceRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orgHandler := handlers.NewOrgHandler(orgService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	itemStatusHandler := handlers.NewItemStatusHandler(itemStatusService)
	pgComplianceHandler := handlers.NewPGComplianceHandler(pgComplianceService)
	evidenceHandler := handlers.NewEvidenceHandler(evidenceService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	var allowOrigins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		allowOrigins = strings.Split(raw, ",")
	}
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:         authHandler,
		AuthMiddleware:      authMiddleware,
		CatalogHandler:      catalogHandler,
		OrgHandler:          orgHandler,
		AssignmentHandler:   assignmentHandler,
		ItemStatusHandler:   itemStatusHandler,
		PGComplianceHandler: pgComplianceHandler,
		EvidenceHandler:     evidenceHandler,
		SummaryHandler:      summaryHandler,
		AllowOrigins:        allowOrigins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
