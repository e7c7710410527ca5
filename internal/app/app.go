package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clubnautico/club_service/internal/adapter/cloudinary"
	"github.com/clubnautico/club_service/internal/adapter/handler/http"
	"github.com/clubnautico/club_service/internal/adapter/localstore"
	"github.com/clubnautico/club_service/internal/adapter/logger"
	"github.com/clubnautico/club_service/internal/adapter/mailer"
	"github.com/clubnautico/club_service/internal/adapter/postgres"
	"github.com/clubnautico/club_service/internal/adapter/prometheus"
	"github.com/clubnautico/club_service/internal/adapter/redis"
	"github.com/clubnautico/club_service/internal/config"
	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"
	"github.com/clubnautico/club_service/internal/core/services"

	"github.com/go-playground/validator/v10"
	"github.com/pressly/goose"
	redisClient "github.com/redis/go-redis/v9"
)

const migrationsDir = "./internal/adapter/postgres/migrations"

type App struct {
	Config       *config.Container
	Logger       ports.LoggerPort
	DB           *sql.DB
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	HTTPRouter   *http.Router
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app":                cfg.App.Name,
		"env":                cfg.App.Env,
		"reservation_policy": cfg.Reservation.Policy,
		"legacy_headers":     cfg.Auth.LegacyHeaders,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		redisConn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Connect DB
	db, err := sql.Open("postgres", cfg.DB.DSN())
	if err != nil {
		redisConn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeAll := func() {
		db.Close()
		redisConn.Close()
	}

	if err := db.PingContext(ctx); err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Migrate DB
	if err := goose.Up(db, migrationsDir); err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	gormDB, err := postgres.Open(db)
	if err != nil {
		closeAll()
		return nil, err
	}

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Storage
	objectStorage, err := cloudinary.NewCloudinaryAdapter(cfg.Storage.CloudName, cfg.Storage.APIKey, cfg.Storage.APISecret, cfg.Storage.Folder)
	if err != nil {
		closeAll()
		return nil, err
	}
	if !objectStorage.Configured() {
		loggerAdapter.Warn("Cloudinary not configured, report photos will be rejected", nil)
	}

	fileStore, err := localstore.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		closeAll()
		return nil, err
	}

	smtpMailer := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	})
	if !smtpMailer.Enabled() {
		loggerAdapter.Warn("SMTP not configured, reset tokens are returned in responses", nil)
	}

	// Repositories
	boatRepo := postgres.NewBoatRepository(gormDB)
	usageRepo := postgres.NewUsageRepository(gormDB)
	reportRepo := postgres.NewReportRepository(gormDB)
	studentRepo := postgres.NewStudentRepository(gormDB)
	sheetRepo := postgres.NewSheetRepository(gormDB)
	userRepo := postgres.NewUserRepository(gormDB)
	announcementRepo := postgres.NewAnnouncementRepository(gormDB)
	eventRepo := postgres.NewEventRepository(gormDB)

	// Services
	boatService := services.NewBoatService(boatRepo, loggerAdapter, validate, cacheAdapter)
	usageService := services.NewUsageService(usageRepo, boatService, loggerAdapter, validate, cacheAdapter, domain.ReservationPolicy(cfg.Reservation.Policy))
	reportService := services.NewReportService(reportRepo, boatService, objectStorage, loggerAdapter, validate)
	userService := services.NewUserService(userRepo, smtpMailer, loggerAdapter, validate, cfg.HTTP.PublicBaseURL)
	studentService := services.NewStudentService(studentRepo, loggerAdapter, validate)
	sheetService := services.NewSheetService(sheetRepo, studentRepo, userRepo, loggerAdapter, validate)
	announcementService := services.NewAnnouncementService(announcementRepo, loggerAdapter, validate)
	eventService := services.NewEventService(eventRepo, fileStore, loggerAdapter, validate)

	// HTTP Handlers
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, cfg.Token.TTL(), loggerAdapter)
	handlers := http.Handlers{
		Boat:    http.NewBoatHandler(boatService, usageService, loggerAdapter, metrics),
		Usage:   http.NewUsageHandler(usageService, loggerAdapter, metrics),
		Report:  http.NewReportHandler(reportService, loggerAdapter, metrics),
		User:    http.NewUserHandler(userService, tokenService, loggerAdapter, metrics, cfg.App.IsProduction()),
		Student: http.NewStudentHandler(studentService, sheetService, loggerAdapter, metrics),
		News:    http.NewNewsHandler(announcementService, eventService, loggerAdapter, metrics),
	}

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		cfg.Auth,
		tokenService,
		metrics.Handler(),
		fileStore.Dir(),
		handlers,
	)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       loggerAdapter,
		DB:           db,
		RedisClient:  redisConn,
		RedisAdapter: cacheAdapter,
		HTTPRouter:   router,
	}, nil
}

// Runs all services
func (a *App) Run() error {
	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	if err := a.HTTPRouter.Shutdown(ctx); err != nil {
		a.Logger.Error("HTTP server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Close database
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Database close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Close Redis
	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	return nil
}
