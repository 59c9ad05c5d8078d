package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server settings
	ServerPort   string        `json:"server_port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
	Debug        bool          `json:"debug"`

	// Logging
	LogDir    string `json:"log_dir"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	Middleware MiddlewareConfig `json:"middleware"`
	CORS       CORSConfig       `json:"cors"`
	RateLimit  RateLimitConfig  `json:"rate_limit"`
	Database   DatabaseConfig   `json:"database"`
	Subtitles  SubtitleConfig   `json:"subtitles"`
	Spaces     SpacesConfig     `json:"spaces"`

	Version string `json:"version"`

	// Request and shutdown timeouts
	RequestTimeout  time.Duration `json:"request_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type MiddlewareConfig struct {
	EnableRecover   bool `json:"enable_recover"`
	EnableRequestID bool `json:"enable_request_id"`
	EnableLogger    bool `json:"enable_logger"`
	EnableTimeout   bool `json:"enable_timeout"`
	EnableCORS      bool `json:"enable_cors"`
	EnableRateLimit bool `json:"enable_rate_limit"`
}

type DatabaseConfig struct {
	Path               string        `json:"path"`
	MaxConnections     int           `json:"max_connections"`
	MaxIdleConnections int           `json:"max_idle_connections"`
	ConnMaxLifetime    time.Duration `json:"conn_max_lifetime"`
}

type SubtitleConfig struct {
	// DefaultLanguage is used when a request names no language. "auto"
	// selects by Priority.
	DefaultLanguage string   `json:"default_language"`
	Priority        []string `json:"priority"`
	MaxCandidates   int      `json:"max_candidates"`
	MaxBodyBytes    int64    `json:"max_body_bytes"`
}

type SpacesConfig struct {
	Enabled   bool   `json:"enabled"`
	AccessKey string `json:"-"`
	SecretKey string `json:"-"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
}

type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerMinute int  `json:"requests_per_minute"`
	BurstSize         int  `json:"burst_size"`
}

func defaultDevConfig() MiddlewareConfig {
	return MiddlewareConfig{
		EnableRecover:   true,
		EnableRequestID: true,
		EnableLogger:    true,
		EnableTimeout:   false, // Disabled for easier debugging
		EnableCORS:      true,
		EnableRateLimit: false,
	}
}

func defaultProdConfig() MiddlewareConfig {
	return MiddlewareConfig{
		EnableRecover:   true,
		EnableRequestID: true,
		EnableLogger:    true,
		EnableTimeout:   true,
		EnableCORS:      true,
		EnableRateLimit: true,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		Debug:        getEnvAsBool("DEBUG", false),

		LogDir:    getEnv("LOG_DIR", "/var/log/yt-transcript"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		Version: getEnv("VERSION", "development"),

		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		CORS: CORSConfig{
			Enabled:        getEnvAsBool("CORS_ENABLED", true),
			AllowedOrigins: getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsStringSlice(
				"CORS_ALLOWED_METHODS",
				[]string{"GET", "POST", "OPTIONS"},
			),
			AllowedHeaders:   getEnvAsStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
			ExposedHeaders:   getEnvAsStringSlice("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},

		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},

		Database: DatabaseConfig{
			Path:               getEnv("DB_PATH", "/var/lib/yt-transcript/data.db"),
			MaxConnections:     getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},

		Subtitles: SubtitleConfig{
			DefaultLanguage: getEnv("SUBTITLE_DEFAULT_LANGUAGE", "auto"),
			Priority:        getEnvAsStringSlice("SUBTITLE_PRIORITY", []string{"fr", "en", "es", "de", "it"}),
			MaxCandidates:   getEnvAsInt("SUBTITLE_MAX_CANDIDATES", 32),
			MaxBodyBytes:    getEnvAsInt64("SUBTITLE_MAX_BODY_BYTES", 5*1024*1024),
		},

		Spaces: SpacesConfig{
			Enabled:   getEnvAsBool("SPACES_ENABLED", false),
			AccessKey: getEnv("SPACES_ACCESS_KEY", ""),
			SecretKey: getEnv("SPACES_SECRET_KEY", ""),
			Region:    getEnv("SPACES_REGION", "us-east-1"),
			Endpoint:  getEnv("SPACES_ENDPOINT", ""),
			Bucket:    getEnv("SPACES_BUCKET", ""),
		},

		Middleware: defaultDevConfig(),
	}

	if os.Getenv("ENV") == "production" {
		cfg.Middleware = defaultProdConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validateServer(c); err != nil {
		return err
	}

	if err := validateTimeouts(c); err != nil {
		return err
	}

	if err := validateServices(c); err != nil {
		return err
	}

	return nil
}

func validateServer(c *Config) error {
	if c.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.LogDir == "" {
		return fmt.Errorf("log directory is required")
	}
	return nil
}

func validateTimeouts(c *Config) error {
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

func validateServices(c *Config) error {
	if c.Subtitles.DefaultLanguage == "" {
		return fmt.Errorf("default subtitle language is required")
	}
	if c.Subtitles.MaxCandidates <= 0 {
		return fmt.Errorf("max subtitle candidates must be positive")
	}
	if c.Subtitles.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body size must be positive")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit requests per minute must be positive")
	}
	if c.Spaces.Enabled {
		if c.Spaces.Bucket == "" || c.Spaces.Endpoint == "" {
			return fmt.Errorf("spaces bucket and endpoint are required when spaces is enabled")
		}
	}
	return nil
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		warnInvalid(key, value, defaultValue, "Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
		warnInvalid(key, value, defaultValue, "Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		warnInvalid(key, value, defaultValue, "Invalid boolean, using default")
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		warnInvalid(key, value, defaultValue, "Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			parts := strings.Split(value, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out
		}
	}
	return defaultValue
}

func warnInvalid(key, value string, defaultValue interface{}, msg string) {
	logrus.WithFields(logrus.Fields{
		"key":          key,
		"value":        value,
		"defaultValue": defaultValue,
	}).Warn(msg)
}
