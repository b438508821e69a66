package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tndevelopers2024/scribe-api/internal/config"
	"github.com/tndevelopers2024/scribe-api/internal/database"
	"github.com/tndevelopers2024/scribe-api/internal/handler"
	"github.com/tndevelopers2024/scribe-api/internal/middleware"
	"github.com/tndevelopers2024/scribe-api/internal/models"
	"github.com/tndevelopers2024/scribe-api/internal/repository"
	"github.com/tndevelopers2024/scribe-api/internal/router"
	"github.com/tndevelopers2024/scribe-api/internal/service"
	cloud "github.com/tndevelopers2024/scribe-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Student{}, &models.Faculty{}, &models.SubmissionItem{}, &models.Notification{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, pending-count caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, notification fanout disabled")
	}

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		uploader, err = cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
	} else {
		logger.Warn().Msg("cloudinary not configured, evidence uploads disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	scopeService := service.NewScopeService(studentRepo, facultyRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, redisClient, natsConn, cfg.EventChannelBase, validate, logger)
	portfolioService := service.NewPortfolioService(submissionRepo, studentRepo, scopeService, validate, logger)
	reviewService := service.NewReviewService(submissionRepo, scopeService, notificationService, redisClient, validate, logger)
	facultyService := service.NewFacultyService(studentRepo, facultyRepo, submissionRepo, scopeService, redisClient, cfg.PendingCacheTTL, logger)
	authService := service.NewAuthService(studentRepo, facultyRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)

	deps := router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		PortfolioHandler:    handler.NewPortfolioHandler(portfolioService, logger),
		FacultyHandler:      handler.NewFacultyHandler(facultyService, logger),
		ReviewHandler:       handler.NewReviewHandler(reviewService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	}

	if uploader != nil {
		uploadService := service.NewUploadService(uploader, logger)
		deps.UploadHandler = handler.NewUploadHandler(uploadService, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
