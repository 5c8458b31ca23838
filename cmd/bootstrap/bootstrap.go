package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hospital-scheduling/config"
	deliveryHttp "go-hospital-scheduling/internal/delivery/http"
	"go-hospital-scheduling/internal/delivery/http/handler"
	"go-hospital-scheduling/internal/delivery/http/middleware"
	"go-hospital-scheduling/internal/domain/pricing"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/internal/infrastructure/cache"
	"go-hospital-scheduling/internal/infrastructure/database"
	"go-hospital-scheduling/internal/infrastructure/storage"
	"go-hospital-scheduling/internal/observability/metrics"
	"go-hospital-scheduling/internal/repository"
	"go-hospital-scheduling/internal/service"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/clock"
	"go-hospital-scheduling/pkg/jwt"
	"go-hospital-scheduling/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
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
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	app.Log = setupLogger(cfg.App.LogLevel)
	app.Log.Info("Configuration loaded successfully")

	store, err := app.openStore(cfg)
	if err != nil {
		return nil, err
	}
	app.Log.Infof("Using %s record store", cfg.Store.Driver)

	server, err := initializeServer(cfg, app.Log, store)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// openStore connects the configured record store backend.
func (app *App) openStore(cfg *config.Config) (domainRepo.RecordStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		if cfg.DB.Migrate {
			if err := database.RunMigrations(database.DSN(cfg.DB), app.Log); err != nil {
				return nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}
		db, err := database.NewPostgresConnection(cfg.DB, app.Log)
		if err != nil {
			return nil, err
		}
		app.DB = db
		return database.NewCollectionStore(db), nil

	case config.StoreDriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := cache.NewRedisClient(ctx, cfg.Redis, app.Log)
		if err != nil {
			return nil, err
		}
		app.RedisClient = client
		return cache.NewCollectionStore(client, cfg.Redis.KeyPrefix), nil

	default:
		store, err := storage.NewOSFileStore(cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open data directory: %w", err)
		}
		return store, nil
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, store domainRepo.RecordStore) (*http.Server, error) {
	therapy, err := pricing.ParseTherapyFormula(cfg.Pricing.TherapyFormula)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	calc := pricing.NewCalculator(therapy)
	if !cfg.Pricing.BaseFee.IsZero() {
		calc.BaseFee = cfg.Pricing.BaseFee
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository(store)
	patientRepo := repository.NewPatientRepository(store)
	appointmentRepo := repository.NewAppointmentRepository(store)
	treatmentRepo := repository.NewTreatmentRepository(store)
	assignmentRepo := repository.NewTreatmentAssignmentRepository(store)
	auditLogRepo := repository.NewAuditLogRepository(store)

	// Initialize services
	clk := clock.System()
	locks := service.NewCollectionLocks()
	schedulerMetrics := metrics.NewSchedulerMetrics(prometheus.DefaultRegisterer)
	auditService := service.NewAuditService(log, locks, clk, auditLogRepo)

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(log, locks, auditService, schedulerMetrics, doctorRepo, cfg.Scheduler.DefaultSlotMinutes)
	patientUsecase := usecase.NewPatientUsecase(log, locks, auditService, schedulerMetrics, patientRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, locks, auditService, schedulerMetrics, appointmentRepo, doctorRepo, patientRepo, cfg.Scheduler.SyncOccupancy)
	treatmentUsecase := usecase.NewTreatmentUsecase(log, locks, schedulerMetrics, calc, treatmentRepo)
	assignmentUsecase := usecase.NewTreatmentAssignmentUsecase(log, locks, schedulerMetrics, clk, calc, assignmentRepo, patientRepo, treatmentRepo)
	reportUsecase := usecase.NewReportUsecase(log, clk, calc, appointmentRepo, doctorRepo, patientRepo, treatmentRepo, assignmentRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:        handler.NewAuthHandler(log, jwtService, cfg.Auth, customValidator),
		Doctor:      handler.NewDoctorHandler(doctorUsecase, customValidator),
		Patient:     handler.NewPatientHandler(patientUsecase, customValidator),
		Appointment: handler.NewAppointmentHandler(appointmentUsecase),
		Treatment:   handler.NewTreatmentHandler(treatmentUsecase, customValidator),
		Assignment:  handler.NewTreatmentAssignmentHandler(assignmentUsecase, customValidator),
		Report:      handler.NewReportHandler(reportUsecase),
		AuditLog:    handler.NewAuditLogHandler(log, auditService),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, cfg.Auth.Enabled)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	if !cfg.Auth.Enabled {
		log.Warn("Authentication disabled, every request runs with the admin role")
	}

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, prometheus.DefaultGatherer, authMiddleware, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
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

// Close closes the database and redis connections, when open
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		_ = app.RedisClient.Close()
	}
}
