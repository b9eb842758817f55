// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Telemetry exporters accepted by OTEL_EXPORTER.
const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPHTTP = "otlp-http"
	ExporterOTLPGRPC = "otlp-grpc"
)

const (
	defaultHTTPAddr    = ":8080"
	defaultTimezone    = "Asia/Kolkata"
	defaultServiceName = "fintrack"
	defaultHistoryDays = 30
	maxHistoryDays     = 3650
	minHashSaltLength  = 32
)

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL        string
	JWTSecret          string
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	LogHashSalt        string
	Timezone           string
	GeminiAPIKey       string
	OTelExporter       string
	OTelServiceName    string
	HistoryDefaultDays int
	AllowedOrigins     []string

	location *time.Location
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		HTTPAddr:        envOr("HTTP_ADDR", defaultHTTPAddr),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogFormat:       strings.ToLower(envOr("LOG_FORMAT", "console")),
		LogHashSalt:     os.Getenv("LOG_HASH_SALT"),
		Timezone:        envOr("TIMEZONE", defaultTimezone),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		OTelExporter:    strings.ToLower(envOr("OTEL_EXPORTER", ExporterNone)),
		OTelServiceName: envOr("OTEL_SERVICE_NAME", defaultServiceName),
	}

	cfg.HistoryDefaultDays = defaultHistoryDays
	if daysStr := os.Getenv("HISTORY_DEFAULT_DAYS"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d >= 1 && d <= maxHistoryDays {
			cfg.HistoryDefaultDays = d
		}
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for origin := range strings.SplitSeq(origins, ",") {
			origin = strings.TrimSpace(origin)
			if origin == "" {
				continue
			}
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimSuffix(origin, "/"))
		}
	}

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// validate checks that all required configuration is present and well formed.
func (c *Config) validate() error {
	var errs []string

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	if len(c.LogHashSalt) < minHashSaltLength {
		errs = append(errs, fmt.Sprintf("LOG_HASH_SALT must be at least %d characters", minHashSaltLength))
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		errs = append(errs, fmt.Sprintf("TIMEZONE %q is not a known location", c.Timezone))
	}
	c.location = loc

	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, "LOG_FORMAT must be console or json")
	}

	exporters := []string{ExporterNone, ExporterStdout, ExporterOTLPHTTP, ExporterOTLPGRPC}
	if !slices.Contains(exporters, c.OTelExporter) {
		errs = append(errs, "OTEL_EXPORTER must be one of "+strings.Join(exporters, ", "))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Location returns the time zone used for day and month boundaries.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// GeminiEnabled reports whether category suggestions are available.
func (c *Config) GeminiEnabled() bool {
	return c.GeminiAPIKey != ""
}

// IsOriginAllowed checks if a browser origin may call the API.
// An empty allow-list permits every origin.
func (c *Config) IsOriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	origin = strings.TrimSuffix(origin, "/")
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
