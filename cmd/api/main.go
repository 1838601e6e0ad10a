// File: cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/zml18x/SMS-Backend-sub000/docs"
	"github.com/zml18x/SMS-Backend-sub000/internal/auth"
	"github.com/zml18x/SMS-Backend-sub000/internal/cache"
	"github.com/zml18x/SMS-Backend-sub000/internal/config"
	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/database"
	"github.com/zml18x/SMS-Backend-sub000/internal/handlers"
	"github.com/zml18x/SMS-Backend-sub000/internal/repository"
	"github.com/zml18x/SMS-Backend-sub000/internal/router"
	"github.com/zml18x/SMS-Backend-sub000/internal/service"
	"github.com/zml18x/SMS-Backend-sub000/internal/telemetry"
)

var (
	// Version information (set during build)
	version   = "1.0.0"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// @title           Salon Management System API
// @version         1.0.0
// @description     Multi-tenant backend for salons: accounts, staff, catalog, bookings and payments.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	// Initialize logger first
	logger := initLogger()

	logger.Info().
		Str("version", version).
		Str("build_time", buildTime).
		Str("git_commit", gitCommit).
		Str("go_version", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Msg("Starting API server")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	// Production readiness checks
	if cfg.IsProduction() && len(cfg.App_Secret) < 32 {
		logger.Fatal().Msg("Refusing to start in production with an insecure APP_SECRET")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = logger

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db := connectDatabase(cfg, logger)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	tp, err := telemetry.InitTracerProvider(ctx, telemetry.Options{
		Endpoint:       otelEndpoint(cfg),
		ServiceName:    "sms-backend",
		ServiceVersion: version,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize TracerProvider")
	}

	redisClient := connectRedis(cfg, logger)
	defer redisClient.Close()

	app := &config.Application{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		Redis:          redisClient,
		TracerProvider: tp,
	}

	tokens := auth.NewTokenManager(cfg.App_Secret, cfg.JWTIssuer, cfg.GetJWTExpiration(), cfg.GetRefreshTokenExpiration())
	repos := repository.NewRepositories(db)

	database.SeedDefaultAdmin(ctx, cfg, repos.Users, logger)
	database.StartConnectionMonitoring(ctx, db)
	go purgeExpiredTokens(ctx, repos.Tokens, logger)

	salons := service.NewSalonService(repos.Salons, repos.Users, cache.NewRedisCache(redisClient), cfg.GetCacheTTL())
	services := handlers.Services{
		Auth:         service.NewAuthService(repos.Users, repos.Tokens, tokens),
		Users:        service.NewUserService(repos.Users),
		Salons:       salons,
		Employees:    service.NewEmployeeService(salons, repos.Employees),
		Catalog:      service.NewCatalogService(salons, repos.Services, repos.Products),
		Appointments: service.NewAppointmentService(salons, repos.Services, repos.Employees, repos.Appointments, cfg.GetBookingHorizon()),
		Payments:     service.NewPaymentService(salons, repos.Appointments, repos.Payments),
	}
	handlers.Version = version

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.Setup(app, services, tokens),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.GetRequestTimeout() + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().
			Int("port", cfg.Port).
			Str("env", cfg.App_Env).
			Msg("Starting HTTP server")

		serverErrors <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	case sig := <-quit:
		logger.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal, starting graceful shutdown...")

		stop()
		gracefulShutdown(srv, app, logger)
	}

	logger.Info().Msg("Server stopped gracefully")
}

// initLogger initializes the global logger
func initLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return log.With().
		Timestamp().
		Caller().
		Logger()
}

func otelEndpoint(cfg config.Config) string {
	if !cfg.OtelEnabled {
		return ""
	}
	return cfg.OtelExporterEndpoint
}

// connectDatabase opens the pool, retrying while Postgres starts up.
func connectDatabase(cfg config.Config, logger zerolog.Logger) *pgxpool.Pool {
	var lastErr error
	for attempts := 0; attempts < 5; attempts++ {
		db, err := database.ConnectDB(cfg)
		if err == nil {
			return db
		}
		lastErr = err
		logger.Warn().
			Err(err).
			Int("attempt", attempts+1).
			Msg("Database connection failed, retrying...")
		time.Sleep(time.Duration(attempts+1) * 2 * time.Second)
	}
	logger.Fatal().Err(lastErr).Msg("Database connection failed after all retries")
	return nil
}

// connectRedis builds the traced Redis client and waits until it answers PING.
func connectRedis(cfg config.Config, logger zerolog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           0,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	client.AddHook(redisotel.NewTracingHook())

	var lastErr error
	for attempts := 0; attempts < 5; attempts++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			logger.Info().Msg("Redis client initialized")
			return client
		}
		logger.Warn().
			Err(lastErr).
			Int("attempt", attempts+1).
			Msg("Redis connection failed, retrying...")
		time.Sleep(time.Duration(attempts+1) * 2 * time.Second)
	}
	logger.Fatal().Err(lastErr).Msg("Redis connection failed after all retries")
	return nil
}

// purgeExpiredTokens deletes expired refresh tokens every hour until ctx is done.
func purgeExpiredTokens(ctx context.Context, tokens core.TokenRepository, logger zerolog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		deleted, err := tokens.DeleteExpired(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to purge expired refresh tokens")
			continue
		}
		if deleted > 0 {
			logger.Info().Int64("deleted", deleted).Msg("Purged expired refresh tokens")
		}
	}
}

// gracefulShutdown handles the graceful shutdown process
func gracefulShutdown(srv *http.Server, app *config.Application, logger zerolog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Disable keep-alives to force existing connections to close
	srv.SetKeepAlivesEnabled(false)

	logger.Info().Msg("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete")
	}

	logger.Info().Msg("Shutting down OpenTelemetry TracerProvider...")
	if err := app.TracerProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("TracerProvider shutdown error")
	} else {
		logger.Info().Msg("TracerProvider shutdown complete")
	}

	logger.Info().Msg("Graceful shutdown completed")
}
