package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/auth"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/cache"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/config"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/database"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/db"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/handlers"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/health"
	h "github.com/estroop3-gif/second-watch-network-sub012/internal/http"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/logging"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/mail"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/ocr"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/storage"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/ws"
)

// newOCREngine picks the extraction engine. The runtime setting overrides the
// config value so an admin can switch engines without redeploying; the change
// takes effect on the next restart.
func newOCREngine(cfg *config.Config, settings *repositories.SystemSettingRepository, logger *zap.Logger) ocr.Engine {
	name := settings.GetString(context.Background(), models.SettingOCREngine, cfg.OCR.Engine)

	if name == "openai" {
		if cfg.OCR.OpenAIKey != "" {
			return ocr.NewVisionEngine(cfg.OCR.OpenAIKey, cfg.OCR.OpenAIModel, logger)
		}
		logger.Warn("openai OCR engine selected but OPENAI_API_KEY is not set, falling back to text engine")
	}
	return ocr.NewTextEngine()
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		logger.Info("redis cache connected")
	}

	// Run database migrations on startup so a fresh binary brings up its own schema
	migrator := database.NewMigrator(pool, logger)
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	// Object storage for receipts, avatars, continuity and listing photos
	store, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}

	// Mailer: real gateway when configured, log-only otherwise
	var mailer mail.Mailer
	if apiKey := os.Getenv("MAIL_API_KEY"); apiKey != "" {
		mailer = mail.NewAPIMailer(apiKey, os.Getenv("MAIL_API_ENDPOINT"), os.Getenv("MAIL_FROM"))
	} else {
		logger.Warn("MAIL_API_KEY not set, confirmation codes will only appear in logs")
		mailer = mail.NewLogMailer(logger)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Websocket hub for live notification pushes
	hub := ws.NewHub(logger)
	go hub.Run()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	profileRepo := repositories.NewProfileRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)
	productionRepo := repositories.NewProductionRepository(pool)
	receiptRepo := repositories.NewReceiptRepository(pool)
	takeRepo := repositories.NewTakeRepository(pool)
	continuityRepo := repositories.NewContinuityRepository(pool)
	greenroomRepo := repositories.NewGreenroomRepository(pool)
	postRepo := repositories.NewPostRepository(pool)
	jobRepo := repositories.NewJobRepository(pool)
	rentalRepo := repositories.NewRentalRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	systemSettingRepo := repositories.NewSystemSettingRepository(pool)
	actionLogRepo := repositories.NewActionLogRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)
	requestLogging := middleware.NewRequestLogging(logger)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo, hub, logger)
	totpService := services.NewTOTPService(userRepo, totpRepo)
	userService := services.NewUserService(userRepo, profileRepo, loginLogRepo, totpService, jwtManager, mailer, logger)
	profileService := services.NewProfileService(profileRepo, store, logger)
	productionService := services.NewProductionService(productionRepo)
	systemSettingService := services.NewSystemSettingService(systemSettingRepo, actionLogRepo, int(cfg.Uploads.MaxSizeMB), logger)
	receiptService := services.NewReceiptService(receiptRepo, productionRepo, systemSettingRepo, store, notificationService, logger)
	takeService := services.NewTakeService(takeRepo, productionRepo)
	continuityService := services.NewContinuityService(continuityRepo, productionRepo, store, logger)
	greenroomService := services.NewGreenroomService(greenroomRepo, systemSettingRepo, actionLogRepo, notificationService, logger)
	postService := services.NewPostService(postRepo, store, logger)
	jobService := services.NewJobService(jobRepo, notificationService, logger)
	rentalService := services.NewRentalService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		rentalRepo,
		systemSettingRepo,
		store,
		notificationService,
		logger,
	)
	reportService := services.NewReportService(productionRepo, receiptRepo, takeRepo)

	// OCR pipeline: background worker polls for uploaded receipts
	workerCfg := ocr.DefaultReceiptWorkerConfig()
	if cfg.OCR.PollSeconds > 0 {
		workerCfg.PollInterval = time.Duration(cfg.OCR.PollSeconds) * time.Second
	}
	if cfg.OCR.BatchSize > 0 {
		workerCfg.BatchSize = cfg.OCR.BatchSize
	}
	if cfg.OCR.ItemTimeoutSecs > 0 {
		workerCfg.ProcessTimeout = time.Duration(cfg.OCR.ItemTimeoutSecs) * time.Second
	}
	receiptWorker := ocr.NewReceiptWorker(workerCfg, receiptRepo, store, newOCREngine(cfg, systemSettingRepo, logger), logger)

	workerManager := ocr.NewManager(logger)
	workerManager.Register(receiptWorker)
	if err := workerManager.StartAll(context.Background()); err != nil {
		logger.Fatal("failed to start workers", zap.Error(err))
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	userHandler := handlers.NewUserHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService, systemSettingService)
	productionHandler := handlers.NewProductionHandler(productionService)
	receiptHandler := handlers.NewReceiptHandler(receiptService, systemSettingService)
	takeHandler := handlers.NewTakeHandler(takeService)
	continuityHandler := handlers.NewContinuityHandler(continuityService, systemSettingService)
	greenroomHandler := handlers.NewGreenroomHandler(greenroomService)
	postHandler := handlers.NewPostHandler(postService, systemSettingService)
	jobHandler := handlers.NewJobHandler(jobService)
	rentalHandler := handlers.NewRentalHandler(rentalService, systemSettingService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, hub, authMiddleware, logger)
	exportHandler := handlers.NewExportHandler(receiptService, takeService, greenroomService)
	reportHandler := handlers.NewReportHandler(reportService)
	systemSettingHandler := handlers.NewSystemSettingHandler(systemSettingService)
	actionLogHandler := handlers.NewActionLogHandler(actionLogRepo, loginLogRepo)
	statsHandler := handlers.NewStatsHandler(pool, hub, receiptWorker)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		cfg,
		authHandler,
		totpHandler,
		userHandler,
		profileHandler,
		productionHandler,
		receiptHandler,
		takeHandler,
		continuityHandler,
		greenroomHandler,
		postHandler,
		jobHandler,
		rentalHandler,
		notificationHandler,
		exportHandler,
		reportHandler,
		systemSettingHandler,
		actionLogHandler,
		statsHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery, request logging and CORS
	handler := middleware.PanicRecovery(logger)(requestLogging.Handler(corsMiddleware(router)))

	// No write timeout: it would sever open websockets, and the long report
	// downloads already run under per-route contexts.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shut down", zap.Error(err))
	}

	// Stop the OCR worker after the listener drains so in-flight uploads
	// still get their rows enqueued.
	if err := workerManager.StopAll(); err != nil {
		logger.Error("worker shutdown failed", zap.Error(err))
	}

	logger.Info("server exited")
}
