package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pressure-health-platform/internal/config"
	"pressure-health-platform/internal/repository"
	"pressure-health-platform/internal/scheduler"
	"pressure-health-platform/internal/services"
	"pressure-health-platform/internal/weatherapi"
	"pressure-health-platform/pkg/database"
	"pressure-health-platform/pkg/logging"
	"pressure-health-platform/pkg/metrics"
)

func main() {
	// Parse command-line flags
	runOnce := flag.Bool("once", false, "Run a single monitoring cycle and exit")
	interval := flag.Duration("interval", 0, "Override the configured fetch interval")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *interval > 0 {
		cfg.Monitor.FetchInterval = *interval
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logLevel := logging.InfoLevel
	if cfg.Logging.Level == "debug" {
		logLevel = logging.DebugLevel
	}

	logger := logging.NewStructuredLogger("pressure-monitor", "1.0.0", logLevel)

	ctx := context.Background()
	logger.Info(ctx, "[MONITOR_START] Starting pressure monitoring daemon", logging.Fields{
		"version":   "1.0.0",
		"locations": len(cfg.Monitor.Locations),
		"interval":  cfg.Monitor.FetchInterval.String(),
		"run_once":  *runOnce,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("pressure_monitor")

	// Initialize database
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	db, err := database.NewPostgresDB(dbConfig, logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[MONITOR_ERROR] Failed to connect to database", logging.Fields{}, err)
	}
	defer db.Close()

	// Initialize repository and services
	pressureRepo := repository.NewPressureRepository(db, logger, metricsCollector)

	weatherClient := weatherapi.NewClient(weatherapi.Config{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
		Timeout: cfg.Weather.Timeout,
	}, logger, metricsCollector)

	pressureService := services.NewPressureService(weatherClient, pressureRepo, cfg.Analysis, logger, metricsCollector)

	if *runOnce {
		runSingleCycle(ctx, cfg, pressureService, logger)
		return
	}

	// Start the scheduled pipeline
	sched := scheduler.New(cfg.Monitor.Locations, cfg.Monitor.FetchInterval, pressureService, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal(ctx, "[MONITOR_ERROR] Failed to start scheduler", logging.Fields{}, err)
	}
	defer sched.Stop()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "[MONITOR_SHUTDOWN] Stopping pressure monitoring daemon", logging.Fields{})
}

// runSingleCycle analyzes every tracked location once and prints a summary.
func runSingleCycle(ctx context.Context, cfg *config.Config, svc *services.PressureService, logger *logging.StructuredLogger) {
	for _, loc := range cfg.Monitor.Locations {
		runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		report, err := svc.AnalyzeLocation(runCtx, loc.Latitude, loc.Longitude)
		cancel()

		if err != nil {
			logger.Error(ctx, "[MONITOR_RUN_ERROR] Pipeline run failed", logging.Fields{
				"latitude":  loc.Latitude,
				"longitude": loc.Longitude,
			}, err)
			continue
		}

		fmt.Printf("%s (%.4f, %.4f): %.1f hPa, trend %s, %d alert(s), %d recommendation(s)\n",
			report.Observation.CityName,
			loc.Latitude, loc.Longitude,
			report.Observation.PressureHPa,
			report.Change.Trend,
			len(report.Alerts),
			len(report.Recommendations),
		)

		for _, rec := range report.Recommendations {
			fmt.Printf("  - %s\n", rec.Condition)
		}
	}
}
