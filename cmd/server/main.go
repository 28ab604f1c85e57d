package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-comments-api/internal/api"
	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/ratelimit"
	"github.com/blog-comments-api/internal/repository"
	"github.com/blog-comments-api/internal/service"
	"github.com/blog-comments-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting blog comments API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize rate limiter
	limiter, routerOpts, closeLimiter := newLimiter(cfg, log)
	defer closeLimiter()

	// Initialize repositories and services
	repos := repository.New(db)
	services := service.NewServices(repos, limiter, cfg, log)

	// Initialize router
	routerOpts = append(routerOpts, api.WithHealthCheck(db))
	router := api.NewRouter(services, cfg, log, routerOpts...)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// newLimiter builds the configured rate limiter. A zero window disables it.
func newLimiter(cfg *config.Config, log zerolog.Logger) (ratelimit.Limiter, []api.Option, func()) {
	noop := func() {}
	window := cfg.RateLimit.Window

	if window <= 0 {
		log.Warn().Msg("Comment rate limiting disabled")
		return nil, nil, noop
	}

	if cfg.RateLimit.Backend == config.BackendRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		log.Info().
			Str("backend", config.BackendRedis).
			Str("addr", cfg.RateLimit.RedisAddr).
			Dur("window", window).
			Msg("Rate limiter initialized")
		return ratelimit.NewRedis(rdb, window), nil, func() { rdb.Close() }
	}

	mem := ratelimit.NewMemory(window)
	log.Info().Str("backend", config.BackendMemory).Dur("window", window).Msg("Rate limiter initialized")
	return mem, []api.Option{api.WithLimiterStats(mem)}, noop
}
