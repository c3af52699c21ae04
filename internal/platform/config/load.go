package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "APP_"

// Well-known environment variables read without the APP_ prefix.
const (
	EnvBaseURL                 = "ATLAN_BASE_URL"
	EnvAPIKey                  = "ATLAN_API_KEY"
	EnvConnectionQualifiedName = "SMUS_CONNECTION_QUALIFIED_NAME"
)

// wellKnownEnv maps the unprefixed variables to their koanf keys.
var wellKnownEnv = map[string]string{
	EnvBaseURL:                 "catalog.base_url",
	EnvAPIKey:                  "catalog.api_key",
	EnvConnectionQualifiedName: "sync.connection_qualified_name",
}

// Option configures the Load function.
type Option func(*loadOptions)

type loadOptions struct {
	file    string
	environ func() []string
}

// WithFile layers a YAML config file between defaults and the environment.
// An empty path is ignored.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithEnviron replaces os.Environ as the source of environment variables.
func WithEnviron(fn func() []string) Option {
	return func(o *loadOptions) {
		o.environ = fn
	}
}

// Load reads configuration using a 3-layer hierarchy (highest precedence last):
//
//  1. Built-in defaults
//  2. Optional YAML file (WithFile)
//  3. Environment variables
//
// The catalog connection comes from ATLAN_BASE_URL, ATLAN_API_KEY and
// SMUS_CONNECTION_QUALIFIED_NAME. Every other key can be overridden with an
// APP_ variable, matched against the known keys so that underscores inside a
// key name are not mistaken for nesting:
//
//	APP_SYNC_BATCH_SIZE                -> sync.batch_size
//	APP_LOG_LEVEL                      -> log.level
//	APP_CATALOG_RETRY_MAX_ATTEMPTS     -> catalog.retry.max_attempts
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	// Layer 1: defaults.
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// Layer 2: optional file.
	if o.file != "" {
		if err := k.Load(file.Provider(o.file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", o.file, err)
		}
	}

	// Layer 3: environment.
	envLookup := buildEnvLookup(k.Keys())

	if err := k.Load(env.Provider(".", env.Opt{
		EnvironFunc: o.environ,
		TransformFunc: func(key, value string) (string, any) {
			if koanfKey, ok := wellKnownEnv[key]; ok {
				return koanfKey, value
			}
			if !strings.HasPrefix(key, envPrefix) {
				return "", nil
			}
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			if koanfKey, ok := envLookup[key]; ok {
				return koanfKey, value
			}
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// buildEnvLookup creates a reverse mapping from env-style keys to koanf dotted keys.
// For each koanf key like "sync.batch_size", the env form "sync_batch_size"
// is computed by replacing dots with underscores.
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		envKey := strings.ReplaceAll(key, ".", "_")
		lookup[envKey] = key
	}
	return lookup
}
