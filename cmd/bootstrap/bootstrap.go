package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	deliveryHttp "medibook/internal/delivery/http"
	"medibook/internal/delivery/http/handler"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/infrastructure/cache"
	"medibook/internal/infrastructure/database"
	"medibook/internal/repository"
	"medibook/internal/service"
	"medibook/internal/session"
	"medibook/internal/usecase"
	"medibook/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, err
	}

	// Initialize Redis (session store)
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	log := logrus.StandardLogger()

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	doctorProfileRepo := repository.NewDoctorProfileRepository(db)
	hospitalRepo := repository.NewHospitalRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize session layer
	sessionStore := session.NewRedisStore(redisClient, cfg.Session.TTL)
	sessionManager := session.NewManager(sessionStore, userRepo, log, cfg.Store.Timeout)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	dispatcher := service.NewSMTPDispatcher(cfg.Mail, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, doctorProfileRepo, auditService, cfg.Store.Timeout)
	schedulingUsecase := usecase.NewSchedulingUsecase(log, appointmentRepo, doctorProfileRepo, userRepo, dispatcher, auditService, cfg.Store.Timeout)
	directoryUsecase := usecase.NewDirectoryUsecase(log, userRepo, doctorProfileRepo, hospitalRepo, auditService, cfg.Store.Timeout)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, sessionManager, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(schedulingUsecase, customValidator)
	directoryHandler := handler.NewDirectoryHandler(directoryUsecase)
	adminHandler := handler.NewAdminHandler(authUsecase, schedulingUsecase, directoryUsecase, sessionManager, auditService, customValidator)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionManager, cfg.Session.CookieName, cfg.Session.TTL)
	gateMiddleware := middleware.NewGateMiddleware(sessionManager)
	corsMiddleware := middleware.NewCORSMiddleware("")

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, appointmentHandler, directoryHandler, adminHandler, sessionMiddleware, gateMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
