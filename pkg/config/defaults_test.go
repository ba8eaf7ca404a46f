package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Environment != "development" {
		t.Errorf("Expected environment development, got %s", cfg.Environment)
	}
	if cfg.Logging.Level != "INFO" || cfg.Logging.Format != "text" || cfg.Logging.Output != "stdout" {
		t.Errorf("Unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected shutdown timeout 30s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Health.MaxRetries != 3 || cfg.Health.RetryDelay != 5*time.Second {
		t.Errorf("Unexpected health defaults: %+v", cfg.Health)
	}
	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}
	if cfg.Metrics.Port != 9090 {
		t.Errorf("Expected metrics port 9090, got %d", cfg.Metrics.Port)
	}
	if cfg.Server.RateLimit.Window != time.Minute || cfg.Server.RateLimit.MaxRequests != 300 {
		t.Errorf("Unexpected rate limit defaults: %+v", cfg.Server.RateLimit)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{Environment: "PRODUCTION"}
	cfg.Server.Port = 8443
	cfg.Health.MaxRetries = 7
	ApplyDefaults(cfg)

	if cfg.Environment != "production" {
		t.Errorf("Expected environment normalized to lowercase, got %s", cfg.Environment)
	}
	if cfg.Server.Port != 8443 {
		t.Errorf("Expected explicit port preserved, got %d", cfg.Server.Port)
	}
	if cfg.Health.MaxRetries != 7 {
		t.Errorf("Expected explicit retries preserved, got %d", cfg.Health.MaxRetries)
	}
}

func TestApplyDefaults_TrimsCORSOrigins(t *testing.T) {
	cfg := &Config{}
	cfg.Server.CORSOrigins = []string{" https://a.example.com ", "", "https://b.example.com"}
	ApplyDefaults(cfg)

	if len(cfg.Server.CORSOrigins) != 2 {
		t.Fatalf("Expected empty entries dropped, got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Server.CORSOrigins[0] != "https://a.example.com" {
		t.Errorf("Expected trimmed origin, got %q", cfg.Server.CORSOrigins[0])
	}
}
