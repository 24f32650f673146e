package app

import (
	"fmt"

	"markbook_backend/database"
	"markbook_backend/internal/auth"
	"markbook_backend/internal/config"
	"markbook_backend/internal/email"
	"markbook_backend/internal/handlers"
	"markbook_backend/internal/logger"
	"markbook_backend/internal/middleware"
	"markbook_backend/internal/models"
	"markbook_backend/internal/routes"
	"markbook_backend/internal/services"
	"markbook_backend/internal/storage"
	"markbook_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
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

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	stripe.Key = cfg.Stripe.SecretKey

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	emailProvider := newEmailProvider(cfg)

	serviceContainer := services.NewServiceContainer(gormDB, cfg, storageInstance, emailProvider)
	appHandlers := handlers.NewAppHandlers(serviceContainer, cfg, validator.New())

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, serviceContainer)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())
	ginRouter.Use(gin.Recovery())

	return ginRouter
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP not configured, emails will be logged only")
		return email.NewConsoleProvider()
	}
	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromEmail,
		FromName: cfg.Email.FromName,
		UseTLS:   cfg.Email.UseTLS,
	})
}

// seedFirstAdmin guarantees one ADMIN account exists so the admin override
// and dashboard are reachable on a fresh install.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("First admin credentials not configured, skipping seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.FirstAdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		FullName:           "Administrator",
		Email:              cfg.FirstAdminEmail,
		PasswordHash:       hash,
		Role:               models.UserRoleAdmin,
		SubscriptionPlan:   models.PlanFree,
		SubscriptionStatus: models.SubscriptionStatusInactive,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded first admin user", "email", cfg.FirstAdminEmail)
	return nil
}
