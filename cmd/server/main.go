package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "docintake-backend/internal/api/http"
	"docintake-backend/internal/config"
	"docintake-backend/internal/jobs"
	"docintake-backend/internal/logger"
	"docintake-backend/internal/repository/postgres"
	"docintake-backend/internal/scheduler"
	"docintake-backend/internal/security"
	"docintake-backend/internal/service"
	"docintake-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting docintake backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Repositories
	store := postgres.NewStore(db)

	// Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// File storage
	var storageService storage.StorageInterface
	if cfg.Storage.Type == "firebase" {
		logger.Info("Using firebase storage", "bucket", cfg.Storage.Bucket)
		firebaseStorage, err := storage.NewFirebaseStorageService(context.Background(), cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize firebase storage", "error", err)
			log.Fatalf("Failed to initialize firebase storage: %v", err)
		}
		storageService = firebaseStorage
	} else {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err := storage.NewMockStorageService(cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	}

	// Services
	catalogService, err := service.NewCatalogService()
	if err != nil {
		logger.Error("Failed to load document catalogs", "error", err)
		log.Fatalf("Failed to load document catalogs: %v", err)
	}

	emailService := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	eventPublisher := service.NewEventPublisher(store.EventRepository)
	crmService := service.NewCRMService(cfg.CRM.BaseURL, cfg.CRM.APIKey, time.Duration(cfg.CRM.Timeout)*time.Second)

	authService := service.NewAuthService(store.TenantRepository, tokenManager)
	intakeService := service.NewIntakeService(store.RequestRepository, store.CustomerRepository, emailService, eventPublisher, cfg)
	submissionService := service.NewSubmissionService(store.RequestRepository, store.TenantRepository, catalogService, eventPublisher, storageService, crmService)

	// Scheduler runs alongside request handling in the same process.
	jobRunner := jobs.NewJobRunner(store, eventPublisher, cfg)
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		logger.Error("Failed to initialize scheduler", "error", err)
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	cronScheduler.Start()

	// HTTP API
	publicHandler := httpapi.NewPublicHandler(submissionService, cfg.Storage.MaxFileSizeMB)
	tenantHandler := httpapi.NewTenantHandler(authService, intakeService, cronScheduler)
	router := httpapi.NewRouter(publicHandler, tenantHandler, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cronScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
