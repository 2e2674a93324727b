package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/finsight-hq/finsight_backend/internal/adapters/ai"
	"github.com/finsight-hq/finsight_backend/internal/core/accounting"
	"github.com/finsight-hq/finsight_backend/internal/core/services"
	"github.com/finsight-hq/finsight_backend/internal/handlers"
	"github.com/finsight-hq/finsight_backend/internal/middleware"
	"github.com/finsight-hq/finsight_backend/internal/platform/config"
	"github.com/finsight-hq/finsight_backend/internal/repositories/database/pgsql"
	"github.com/finsight-hq/finsight_backend/internal/utils"
	"github.com/finsight-hq/finsight_backend/pkg/database"
)

// @title FinSight Backend API
// @version 1.0
// @description Transaction classification and financial statement API.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Classifier config: file when provided, built-in defaults otherwise.
	classifierCfg := accounting.DefaultConfig()
	if cfg.ClassifierConfigPath != "" {
		classifierCfg, err = accounting.LoadConfig(cfg.ClassifierConfigPath)
		if err != nil {
			logger.Error("Failed to load classifier config", slog.String("error", err.Error()), slog.String("path", cfg.ClassifierConfigPath))
			os.Exit(1)
		}
		logger.Info("Classifier config loaded", slog.String("path", cfg.ClassifierConfigPath))
	}
	classifier := accounting.NewClassifier(classifierCfg)

	repos := pgsql.NewRepositoryProvider(dbPool)

	var containerOpts []services.ContainerOption
	if cfg.OpenAIAPIKey != "" {
		aiClient := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		containerOpts = append(containerOpts, services.WithExtractor(aiClient), services.WithInsight(aiClient))
		logger.Info("OpenAI integration enabled", slog.String("model", cfg.OpenAIModel))
	}
	serviceContainer := services.NewServiceContainer(cfg, repos, classifier, containerOpts...)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending up migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
