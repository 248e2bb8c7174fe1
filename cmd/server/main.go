package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	httpapi "kayakbay-backend/internal/api/http"
	"kayakbay-backend/internal/config"
	"kayakbay-backend/internal/lock"
	"kayakbay-backend/internal/logger"
	"kayakbay-backend/internal/payment"
	"kayakbay-backend/internal/repository/postgres"
	"kayakbay-backend/internal/security"
	"kayakbay-backend/internal/service"
	"kayakbay-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting KayakBay Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Image Storage
	var imageStore storage.ImageStore
	switch cfg.Storage.Type {
	case "", "local":
		logger.Info("Using local photo storage", "upload_dir", cfg.Storage.UploadDir)
		localStore, err := storage.NewLocalStore(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize local storage", "error", err)
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		imageStore = localStore
	case "cloudinary":
		logger.Info("Using Cloudinary photo storage", "cloud_name", cfg.Storage.Cloudinary.CloudName)
		imageStore = storage.NewCloudinaryStore(cfg.Storage.Cloudinary)
	default:
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not supported", cfg.Storage.Type)
	}

	// Initialize Smart-Lock Client
	lockClient := lock.NewTTLockClient(cfg.TTLock)
	authCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := lockClient.Authenticate(authCtx); err != nil {
		// Rentals keep working on fallback passcodes, so this is not fatal.
		logger.Warn("Smart-lock platform unreachable at startup, passcodes will fall back", "error", err)
	}
	cancel()

	// Initialize Payment Authority
	stripeAuthority := payment.NewStripeAuthority(cfg.Stripe.SecretKey)

	// Initialize Notification Services
	emailSvc := service.NewEmailService(cfg.SMTP)
	smsSvc := service.NewSMSService(cfg.Twilio)

	// Initialize Services
	authSvc := service.NewAuthService(store.Users, tokenManager, emailSvc, cfg.Server.FrontendURL)
	waiverSvc := service.NewWaiverService(store.Waivers, store.Users)
	paymentSvc := service.NewPaymentService(store.Users, stripeAuthority)
	rentalSvc := service.NewRentalService(store.Rentals, store.Kayaks, store.Users, lockClient, stripeAuthority, imageStore, emailSvc, smsSvc)
	adminSvc := service.NewAdminService(store.Users, store.Kayaks, store.Rentals, stripeAuthority)

	// Initialize HTTP Router
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Tokens:     tokenManager,
		AuthSvc:    authSvc,
		WaiverSvc:  waiverSvc,
		RentalSvc:  rentalSvc,
		PaymentSvc: paymentSvc,
		AdminSvc:   adminSvc,
		Images:     imageStore,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
