// Package config provides configuration loading and validation for the sync job.
// Configuration is layered: defaults -> optional YAML file -> environment.
package config

import "time"

// Config holds all configuration for the sync job.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Catalog   ClientConfig    `koanf:"catalog"`
	Sync      SyncConfig      `koanf:"sync"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ClientConfig holds catalog HTTP client settings.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	APIKey         string               `koanf:"api_key"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side rate limiting. Zero RequestsPerSecond
// disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// SyncConfig holds the reconciliation settings.
type SyncConfig struct {
	// ConnectionQualifiedName restricts the project search to one SMUS
	// connection. "NONE" or empty disables the filter.
	ConnectionQualifiedName string `koanf:"connection_qualified_name"`
	BatchSize               int    `koanf:"batch_size"`
	PageSize                int    `koanf:"page_size"`
	DryRun                  bool   `koanf:"dry_run"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
