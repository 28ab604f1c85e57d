package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Comment validation and moderation
	Comments CommentsConfig

	// Rate limiting for comment submission
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
	CORSAllowedOrigin string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL            string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	QueryTimeout   time.Duration
	MigrationsPath string

	// ConnectTimeout bounds each startup ping; ConnectRetries extra pings
	// are attempted ConnectRetryDelay apart before giving up.
	ConnectTimeout    time.Duration
	ConnectRetries    int
	ConnectRetryDelay time.Duration
}

// CommentsConfig holds limits and the admin secret
type CommentsConfig struct {
	MaxContentLength  int
	MinContentLength  int
	MaxAuthorLength   int
	MaxPostSlugLength int
	DefaultAuthor     string

	AdminCode string
	// RequireAdminCode rejects DELETE requests that omit adminCode.
	// When false, deletes without a code are accepted.
	RequireAdminCode bool
}

// RateLimitConfig holds rate limiter settings
type RateLimitConfig struct {
	Window        time.Duration
	Backend       string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Rate limiter backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// source resolves keys from the environment first, then the optional YAML file.
// Keys whose value cannot be parsed are collected in invalid.
type source struct {
	file    map[string]string
	invalid []string
}

// Load reads configuration from an optional .env file, an optional YAML file
// named by CONFIG_FILE, and environment variables (highest precedence)
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	src := &source{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		values, err := readYAMLFile(path)
		if err != nil {
			return nil, err
		}
		src.file = values
	}

	cfg := src.build()
	if len(src.invalid) > 0 {
		return nil, fmt.Errorf("invalid value for %s", strings.Join(src.invalid, ", "))
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (s *source) build() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              s.getEnv("PORT", "8080"),
			ReadTimeout:       s.getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      s.getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout:   s.getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			CORSAllowedOrigin: s.getEnv("CORS_ALLOWED_ORIGIN", "*"),
		},
		Database: DatabaseConfig{
			URL:            s.getEnv("DATABASE_URL", ""),
			Host:           s.getEnv("DB_HOST", "localhost"),
			Port:           s.getEnv("DB_PORT", "5432"),
			User:           s.getEnv("DB_USER", "postgres"),
			Password:       s.getEnv("DB_PASSWORD", "postgres"),
			Name:           s.getEnv("DB_NAME", "blog_comments"),
			SSLMode:        s.getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   s.getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:   s.getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:    s.getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			QueryTimeout:   s.getDurationEnv("DB_QUERY_TIMEOUT", 10*time.Second),
			MigrationsPath: s.getEnv("MIGRATIONS_PATH", "./migrations"),

			ConnectTimeout:    s.getDurationEnv("DB_CONNECT_TIMEOUT", 5*time.Second),
			ConnectRetries:    s.getIntEnv("DB_CONNECT_RETRIES", 3),
			ConnectRetryDelay: s.getDurationEnv("DB_CONNECT_RETRY_DELAY", 2*time.Second),
		},
		Comments: CommentsConfig{
			MaxContentLength:  s.getIntEnv("COMMENT_MAX_CONTENT", 1000),
			MinContentLength:  s.getIntEnv("COMMENT_MIN_CONTENT", 3),
			MaxAuthorLength:   s.getIntEnv("COMMENT_MAX_AUTHOR", 50),
			MaxPostSlugLength: s.getIntEnv("COMMENT_MAX_SLUG", 200),
			DefaultAuthor:     s.getEnv("COMMENT_DEFAULT_AUTHOR", "Anonymous"),
			AdminCode:         s.getEnv("ADMIN_CODE", ""),
			RequireAdminCode:  s.getBoolEnv("REQUIRE_ADMIN_CODE", false),
		},
		RateLimit: RateLimitConfig{
			Window:        s.getDurationEnv("RATE_LIMIT_WINDOW", 30*time.Second),
			Backend:       strings.ToLower(s.getEnv("RATE_LIMIT_BACKEND", BackendMemory)),
			RedisAddr:     s.getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: s.getEnv("REDIS_PASSWORD", ""),
			RedisDB:       s.getIntEnv("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level:  s.getEnv("LOG_LEVEL", "info"),
			Format: s.getEnv("LOG_FORMAT", "json"),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	}
	if c.Comments.RequireAdminCode && c.Comments.AdminCode == "" {
		return fmt.Errorf("ADMIN_CODE is required when REQUIRE_ADMIN_CODE is enabled")
	}
	if c.Comments.MinContentLength <= 0 || c.Comments.MaxContentLength <= 0 {
		return fmt.Errorf("comment content limits must be positive")
	}
	if c.Comments.MinContentLength > c.Comments.MaxContentLength {
		return fmt.Errorf("COMMENT_MIN_CONTENT (%d) exceeds COMMENT_MAX_CONTENT (%d)",
			c.Comments.MinContentLength, c.Comments.MaxContentLength)
	}
	if c.Comments.MaxAuthorLength <= 0 || c.Comments.MaxPostSlugLength <= 0 {
		return fmt.Errorf("author and slug limits must be positive")
	}
	if c.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be positive")
	}
	if c.Database.ConnectRetries < 0 || c.Database.ConnectRetryDelay < 0 {
		return fmt.Errorf("DB_CONNECT_RETRIES and DB_CONNECT_RETRY_DELAY must not be negative")
	}
	if c.RateLimit.Window < 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must not be negative")
	}
	switch c.RateLimit.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q (memory, redis)", c.RateLimit.Backend)
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// readYAMLFile parses a flat YAML mapping of configuration keys,
// e.g. "PORT: 8080" or "RATE_LIMIT_WINDOW: 30s"
func readYAMLFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		values[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return values, nil
}

// Helper functions for environment variable parsing

func (s *source) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return s.file[key]
}

func (s *source) getEnv(key, defaultValue string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	return defaultValue
}

func (s *source) getIntEnv(key string, defaultValue int) int {
	value := s.lookup(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		s.invalid = append(s.invalid, key)
		return defaultValue
	}
	return intVal
}

// getDurationEnv expects a Go duration such as "30s"; a bare number is rejected
func (s *source) getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := s.lookup(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		s.invalid = append(s.invalid, key)
		return defaultValue
	}
	return duration
}

func (s *source) getBoolEnv(key string, defaultValue bool) bool {
	value := s.lookup(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		s.invalid = append(s.invalid, key)
		return defaultValue
	}
	return boolVal
}
