package api

import (
	"context"
	"net/http"
	"time"

	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HealthChecker reports whether the comments store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// LimiterStats exposes the number of keys tracked by a limiter
type LimiterStats interface {
	Len() int
}

// Option customizes the router
type Option func(*routerDeps)

type routerDeps struct {
	health  HealthChecker
	limiter LimiterStats
}

// WithHealthCheck makes /health ping the store
func WithHealthCheck(h HealthChecker) Option {
	return func(d *routerDeps) { d.health = h }
}

// WithLimiterStats adds limiter occupancy to /metrics
func WithLimiterStats(l LimiterStats) Option {
	return func(d *routerDeps) { d.limiter = l }
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, opts ...Option) *gin.Engine {
	deps := &routerDeps{}
	for _, opt := range opts {
		opt(deps)
	}

	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.CORSAllowedOrigin))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// Handlers
	commentHandler := NewCommentHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(deps.health))
	router.GET("/metrics", metricsHandler(services, deps.limiter))

	// Comments: one route, dispatched by method
	comments := router.Group("/api/comments")
	{
		comments.GET("", commentHandler.List)
		comments.POST("", commentHandler.Create)
		comments.DELETE("", commentHandler.Delete)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(h HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "blog-comments-api",
		}

		if h != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := h.HealthCheck(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "unhealthy"
				body["database"] = "unreachable"
			}
		}

		c.JSON(status, body)
	}
}

// metricsHandler returns comment and rate limiter metrics
func metricsHandler(services *service.Services, limiter LimiterStats) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		commentsCount, _ := services.Comment.Count(ctx)

		body := gin.H{
			"database": gin.H{
				"comments": commentsCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if limiter != nil {
			body["rate_limiter"] = gin.H{"tracked_clients": limiter.Len()}
		}

		c.JSON(http.StatusOK, body)
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": service.MsgInternal,
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
