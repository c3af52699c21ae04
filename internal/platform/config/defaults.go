package config

const (
	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultBatchSize = 50
	defaultPageSize  = 100
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by the config file and env vars.
func defaults() map[string]any {
	return map[string]any{
		"log.level":  "info",
		"log.format": "text",

		"catalog.base_url":                        "",
		"catalog.api_key":                         "",
		"catalog.timeout":                         "60s",
		"catalog.retry.max_attempts":              defaultRetryMaxAttempts,
		"catalog.retry.initial_interval":          "500ms",
		"catalog.retry.max_interval":              "10s",
		"catalog.retry.multiplier":                defaultRetryMultiplier,
		"catalog.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"catalog.circuit_breaker.timeout":         "30s",
		"catalog.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"catalog.rate_limit.requests_per_second":  0,
		"catalog.rate_limit.burst_size":           1,

		"sync.connection_qualified_name": "NONE",
		"sync.batch_size":                defaultBatchSize,
		"sync.page_size":                 defaultPageSize,
		"sync.dry_run":                   false,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "smus-domain-sync",
	}
}
