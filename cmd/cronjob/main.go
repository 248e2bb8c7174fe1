package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"kayakbay-backend/internal/config"
	"kayakbay-backend/internal/jobs"
	"kayakbay-backend/internal/logger"
	"kayakbay-backend/internal/repository/postgres"
	"kayakbay-backend/internal/scheduler"
	"kayakbay-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a single job and exit (send-return-reminders, purge-reset-tokens, all)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting KayakBay Cronjob Runner...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Repositories and Services
	store := postgres.NewStore(db)
	smsSvc := service.NewSMSService(cfg.Twilio)

	jobRunner := jobs.NewJobRunner(store, &jobs.Services{SMS: smsSvc}, cfg)

	// Run-once mode for manual or container-cron execution
	if *runOnce != "" {
		switch *runOnce {
		case "send-return-reminders":
			jobRunner.SendReturnReminders()
		case "purge-reset-tokens":
			jobRunner.PurgeExpiredResetTokens()
		case "all":
			jobRunner.RunAllJobs()
		default:
			log.Fatalf("Unknown job name: %s", *runOnce)
		}
		logger.Info("Run-once execution finished", "job", *runOnce)
		return
	}

	// Scheduler mode
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	logger.Info("Cronjob runner started",
		"send_return_reminders", cfg.Scheduler.SendReturnReminders,
		"purge_reset_tokens", cfg.Scheduler.PurgeResetTokens,
	)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("Shutdown signal received", "signal", sig.String())
	sched.Stop()
	logger.Info("Cronjob runner stopped")
}
