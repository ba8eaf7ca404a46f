package config

import (
	"strings"
	"time"
)

// defaultSettings returns the flat key space registered with viper so that
// QUESTFORGE_* environment variables resolve without a config file. Secrets
// default to empty strings; their absence is caught by validation.
func defaultSettings() map[string]any {
	return map[string]any{
		"environment":                    "development",
		"shutdown_timeout":               "30s",
		"logging.level":                  "INFO",
		"logging.format":                 "text",
		"logging.output":                 "stdout",
		"store.access_key_id":            "",
		"store.secret_access_key":        "",
		"store.bucket":                   "",
		"store.endpoint":                 "",
		"store.region":                   "",
		"store.force_path_style":         false,
		"server.port":                    8080,
		"server.read_timeout":            "15s",
		"server.write_timeout":           "15s",
		"server.idle_timeout":            "60s",
		"server.cors_origins":            "",
		"server.rate_limit.window":       "1m",
		"server.rate_limit.max_requests": 300,
		"server.public_url":              "",
		"health.max_retries":             3,
		"health.retry_delay":             "5s",
		"metrics.enabled":                false,
		"metrics.port":                   9090,
		"security.jwt_secret":            "",
		"security.ai_api_key":            "",
	}
}

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Zero values are replaced with defaults; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	cfg.Environment = strings.ToLower(cfg.Environment)

	applyLoggingDefaults(&cfg.Logging)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	applyHealthDefaults(&cfg.Health)
	applyMetricsDefaults(&cfg.Metrics)
	applyServerDefaults(cfg)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyHealthDefaults sets the startup gate retry schedule defaults.
func applyHealthDefaults(cfg *HealthConfig) {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 5 * time.Second
	}
}

// applyMetricsDefaults sets metrics server defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	// Enabled defaults to false (opt-in)
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
}

// applyServerDefaults delegates to the API config and trims origin entries.
func applyServerDefaults(cfg *Config) {
	origins := cfg.Server.CORSOrigins[:0]
	for _, o := range cfg.Server.CORSOrigins {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	cfg.Server.CORSOrigins = origins

	cfg.Server.ApplyDefaults()
}
