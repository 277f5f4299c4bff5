package app

import (
	"fmt"

	"beatbattle_backend/internal/config"
	"beatbattle_backend/internal/handlers"
	"beatbattle_backend/internal/logger"
	"beatbattle_backend/internal/middleware"
	"beatbattle_backend/internal/models"
	"beatbattle_backend/internal/repositories"
	"beatbattle_backend/internal/routes"
	"beatbattle_backend/internal/services"
	"beatbattle_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.Notification{},
		&models.Battle{},
		&models.ArchivedBattle{},
		&models.Profile{},
	); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter, sessionService := SetupRouter(cfg, gormDB)
	defer sessionService.Shutdown()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, the session service and handlers into a gin
// engine. Returned separately so tests can build the router without Run.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.SessionService) {
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	battleRepo := repositories.NewBattleRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)

	sessionService := services.NewSessionService(
		notificationRepo,
		battleRepo,
		profileRepo,
		cfg.PollInterval(),
	)

	appHandlers := initializeHandlers(sessionService)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, sessionService
}

func initializeHandlers(sessionService *services.SessionService) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, sessionService),
		ModalHandler:        handlers.NewModalHandler(baseHandler, sessionService),
		SessionHandler:      handlers.NewSessionHandler(baseHandler, sessionService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
