package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sequoiacare/config"
	deliveryHttp "sequoiacare/internal/delivery/http"
	"sequoiacare/internal/delivery/http/handler"
	"sequoiacare/internal/delivery/http/middleware"
	"sequoiacare/internal/infrastructure/cache"
	"sequoiacare/internal/infrastructure/database"
	"sequoiacare/internal/repository"
	"sequoiacare/internal/service"
	"sequoiacare/internal/usecase"
	"sequoiacare/pkg/jwt"
	"sequoiacare/pkg/password"
	"sequoiacare/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	log := NewLogger(cfg.App)
	app := &App{Config: cfg, Log: log}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, log, !cfg.App.IsProduction())
	if err != nil {
		return nil, err
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(cfg.DB, log); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Redis is optional; without it revocations live in process memory
	var tokenStore service.TokenStore
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis, log)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.RedisClient = redisClient
		tokenStore = service.NewRedisTokenStore(redisClient)
	} else {
		log.Warn("REDIS_HOST not set, using in-memory token store")
		tokenStore = service.NewMemoryTokenStore()
	}

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           NewHTTPHandler(cfg, db, tokenStore, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// NewLogger configures the logrus logger
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// NewHTTPHandler wires repositories, usecases and handlers into the router
func NewHTTPHandler(cfg *config.Config, db *gorm.DB, tokenStore service.TokenStore, log *logrus.Logger) http.Handler {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	gateway := database.NewSessionGateway(db)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	providerRepo := repository.NewProviderRepository()
	subespecialidadeRepo := repository.NewSubespecialidadeRepository()
	idiomaRepo := repository.NewIdiomaRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize usecases
	authUsecase := NewAuthUsecase(cfg, db, tokenStore, jwtService, log)
	providerUsecase := usecase.NewProviderUsecase(gateway, log, userRepo, providerRepo)
	catalogUsecase := usecase.NewCatalogUsecase(gateway, log, subespecialidadeRepo, idiomaRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(gateway, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	providerHandler := handler.NewProviderHandler(authUsecase, providerUsecase, customValidator)
	catalogHandler := handler.NewCatalogHandler(catalogUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	router := deliveryHttp.NewRouter(authHandler, providerHandler, catalogHandler, auditLogHandler, authMiddleware, corsMiddleware, loggingMiddleware)
	return router.Setup()
}

// NewAuthUsecase wires the account usecase on its own so the CLI can
// provision admins without starting the HTTP stack.
func NewAuthUsecase(cfg *config.Config, db *gorm.DB, tokenStore service.TokenStore, jwtService *jwt.JWTService, log *logrus.Logger) usecase.AuthUsecase {
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())
	return usecase.NewAuthUsecase(
		database.NewSessionGateway(db),
		log,
		repository.NewUserRepository(),
		repository.NewProviderRepository(),
		repository.NewSubespecialidadeRepository(),
		repository.NewIdiomaRepository(),
		auditService,
		tokenStore,
		password.NewHasher(cfg.Bcrypt.Cost),
		jwtService,
	)
}

// Run starts the HTTP server and blocks until shutdown completes
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
