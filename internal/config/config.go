// Package config loads the host's runtime configuration from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file in the working directory. Variables already set in the
// environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read-only after Load.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `envconfig:"PORT" default:"8080"`
	// Realms lists the realms every extension is mounted under, as /realms/{realm}/{extension}.
	Realms []string `envconfig:"REALMS" default:"master"`
	// LogLevel is a zap level name.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// DocsPath serves the OpenAPI UI. Empty disables it.
	DocsPath string `envconfig:"DOCS_PATH" default:"/api-docs"`
	// MetricsEnabled mounts the Prometheus handler at /metrics.
	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	// MaxRequestBytes caps request bodies.
	MaxRequestBytes int64 `envconfig:"MAX_REQUEST_BYTES" default:"1048576"`
}

// Load reads envFile (when it exists) and then the environment.
// Pass an empty envFile to skip the file entirely.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	cfg.Realms = normalizeRealms(cfg.Realms)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if len(c.Realms) == 0 {
		return errors.New("REALMS must name at least one realm")
	}
	for _, realm := range c.Realms {
		if strings.ContainsAny(realm, "/{}?#*") {
			return fmt.Errorf("REALMS entry %q contains a reserved path character", realm)
		}
	}
	if c.DocsPath != "" && !strings.HasPrefix(c.DocsPath, "/") {
		return fmt.Errorf("DOCS_PATH must start with '/', got %q", c.DocsPath)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("MAX_REQUEST_BYTES must be positive, got %d", c.MaxRequestBytes)
	}
	return nil
}

// Addr is the listen address for http.Server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// normalizeRealms trims entries, drops empty ones and removes duplicates while
// keeping first-seen order.
func normalizeRealms(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, r := range in {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
