package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-admin-dashboard/config"
	"doctor-admin-dashboard/internal/dashboard"
	deliveryHttp "doctor-admin-dashboard/internal/delivery/http"
	"doctor-admin-dashboard/internal/delivery/http/handler"
	"doctor-admin-dashboard/internal/delivery/http/middleware"
	"doctor-admin-dashboard/internal/infrastructure/backend"
	"doctor-admin-dashboard/internal/infrastructure/cache"
	"doctor-admin-dashboard/internal/infrastructure/database"
	"doctor-admin-dashboard/internal/repository"
	"doctor-admin-dashboard/internal/service"
	"doctor-admin-dashboard/internal/usecase"
	"doctor-admin-dashboard/pkg/jwt"
	"doctor-admin-dashboard/pkg/validator"

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
	Sessions    *service.SessionService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Notices live in Redis when configured so every replica sees them
	var notices dashboard.NoticeBoard
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis, log)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		notices = service.NewRedisNoticeBoard(redisClient)
	} else {
		log.Info("Redis not configured, keeping notices in memory")
		notices = service.NewMemoryNoticeBoard(time.Now)
	}

	doctorClient, err := backend.NewDoctorClient(cfg.Backend)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	app.Sessions = service.NewSessionService(func(sessionID string) *dashboard.Dashboard {
		return dashboard.New(doctorClient, notices, log, dashboard.Options{
			PageSize:       cfg.Dashboard.PageSize,
			NoticeDuration: cfg.Dashboard.NoticeDuration,
			NoticeKey:      sessionID,
		})
	}, log, cfg.Session.IdleTimeout)

	app.Server = initializeServer(cfg, log, db, app.Sessions)

	return app, nil
}

// NewLogger builds the JSON logrus logger used by every component
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, sessions *service.SessionService) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.Session)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	doctorAdminUsecase := usecase.NewDoctorAdminUsecase(db, log, doctorProfileRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo, doctorProfileRepo)

	// Initialize handlers
	doctorAdminHandler := handler.NewDoctorAdminHandler(doctorAdminUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	dashboardHandler := handler.NewDashboardHandler(sessions, log)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(jwtService, log, cfg.App.Env == "production")
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(doctorAdminHandler, auditLogHandler, dashboardHandler, sessionMiddleware, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	}

	app.shutdown()
	return nil
}

func (app *App) shutdown() {
	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close unmounts every dashboard and closes connections (database, redis)
func (app *App) Close() {
	if app.Sessions != nil {
		app.Sessions.Stop()
	}

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
