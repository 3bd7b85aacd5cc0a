package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/amirhossein-jamali/countdown-timer/internal/domain/usecase/countdown"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLoggerWithLevel(
		cfg.Environment == config.Production || cfg.Logger.Format == "json",
		coreport.ParseLogLevel(cfg.Logger.Level),
	)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database and bring the schema up to date
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(context.Background()); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.Migrate(context.Background()); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// The event loop owns every countdown engine
	loopCtx, stopLoop := context.WithCancel(context.Background())
	loop := timeProvider.NewEventLoop(appLogger, cfg.Countdown.EventQueueSize)
	go loop.Run(loopCtx)

	countdownRepo := repository.NewCountdownRepository(dbManager.DB(), appLogger)

	serviceConfig := countdown.DefaultConfig()
	serviceConfig.DefaultGranularity = coreport.Milliseconds(cfg.Countdown.DefaultGranularityMs)
	serviceConfig.MaxActive = cfg.Countdown.MaxActive
	serviceConfig.PersistTicks = cfg.Countdown.PersistTicks
	serviceConfig.PersistTimeout = coreport.Duration(cfg.Database.QueryTimeout)
	serviceConfig.SubscriberBuffer = cfg.Countdown.SubscriberBuffer
	if cfg.Countdown.EmitZeroTick {
		serviceConfig.Boundary = countdown.BoundaryInclusive
	}

	countdownService := countdown.NewCountdownService(loop, countdownRepo, tp, appLogger, serviceConfig)

	// Settle runs a previous process left idle or running
	if err := countdownService.Reconcile(context.Background()); err != nil {
		appLogger.Error("Failed to reconcile stored countdowns", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	countdownHandler := handler.NewCountdownHandler(countdownService, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, countdownHandler)

	// WriteTimeout stays configurable; zero keeps event streams open
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Event streams end when the service closes subscriber channels,
	// so the service goes first and the HTTP server can drain
	if err := countdownService.Shutdown(ctx); err != nil {
		appLogger.Error("Countdown service did not drain", map[string]any{
			"error": err.Error(),
		})
	}

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	stopLoop()
	<-loop.Done()

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Database credentials usually arrive through CT_DATABASE_* variables
	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or CT_DATABASE_HOST)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or CT_DATABASE_USERNAME)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or CT_DATABASE_DATABASE)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Countdown.DefaultGranularityMs <= 0 {
		missingConfigs = append(missingConfigs, "countdown.defaultGranularityMs")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Database.Password == "" {
			warnings = append(warnings, "database.password is empty")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
