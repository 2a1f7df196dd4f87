package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/defectdesk/defectdesk-engine/pkg/auth"
	"github.com/defectdesk/defectdesk-engine/pkg/config"
	"github.com/defectdesk/defectdesk-engine/pkg/database"
	"github.com/defectdesk/defectdesk-engine/pkg/handlers"
	"github.com/defectdesk/defectdesk-engine/pkg/logging"
	"github.com/defectdesk/defectdesk-engine/pkg/middleware"
	"github.com/defectdesk/defectdesk-engine/pkg/repositories"
	"github.com/defectdesk/defectdesk-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification))

	ctx := context.Background()

	// Migrations run over database/sql; the application itself uses pgx
	// natively through the pool.
	sqlDB, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.Migrate(sqlDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.Connect(ctx, cfg.Database.URL(), cfg.Database.MaxConnections)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	defectRepo := repositories.NewDefectRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	defectService := services.NewDefectService(defectRepo, commentRepo, logger)
	projectService := services.NewProjectService(projectRepo, logger)
	userService := services.NewUserService(userRepo, logger)

	// Authentication
	authService := auth.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.EnableVerification, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewDefectsHandler(defectService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewProjectsHandler(projectService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewUsersHandler(userService, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.Recovery(logger)(middleware.RequestLogger(logger)(mux))

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting defectdesk-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
