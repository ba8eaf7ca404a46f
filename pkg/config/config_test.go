package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/questforge/questforge/pkg/docstore"
)

// setStoreEnv sets the full credential bundle so validation passes.
func setStoreEnv(t *testing.T) {
	t.Helper()
	t.Setenv("QUESTFORGE_STORE_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("QUESTFORGE_STORE_SECRET_ACCESS_KEY", "secret")
	t.Setenv("QUESTFORGE_STORE_BUCKET", "questforge-test")
	t.Setenv("QUESTFORGE_STORE_ENDPOINT", "https://store.example.com")
}

// isolateConfigDir points the default config location at an empty temp dir.
func isolateConfigDir(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoad_EnvOnly(t *testing.T) {
	isolateConfigDir(t)
	setStoreEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected default environment development, got %s", cfg.Environment)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Store.Bucket != "questforge-test" {
		t.Errorf("Expected bucket from environment, got %s", cfg.Store.Bucket)
	}
	if cfg.Health.MaxRetries != 3 || cfg.Health.RetryDelay != 5*time.Second {
		t.Errorf("Expected default retry schedule 3x5s, got %dx%s", cfg.Health.MaxRetries, cfg.Health.RetryDelay)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateConfigDir(t)
	setStoreEnv(t)
	t.Setenv("QUESTFORGE_ENVIRONMENT", "production")
	t.Setenv("QUESTFORGE_SERVER_PORT", "9000")
	t.Setenv("QUESTFORGE_SHUTDOWN_TIMEOUT", "45s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Expected environment production, got %s", cfg.Environment)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.ShutdownTimeout != 45*time.Second {
		t.Errorf("Expected shutdown timeout 45s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CORSOriginsFromCommaList(t *testing.T) {
	isolateConfigDir(t)
	setStoreEnv(t)
	t.Setenv("QUESTFORGE_SERVER_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Server.CORSOrigins) != 2 {
		t.Fatalf("Expected 2 origins, got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Server.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("Expected trimmed origin, got %q", cfg.Server.CORSOrigins[1])
	}
}

func TestLoad_MissingStoreCredentialsFails(t *testing.T) {
	isolateConfigDir(t)

	_, err := Load("")
	if err == nil {
		t.Fatal("Expected validation failure without store credentials")
	}
}

func TestLoad_FromFile(t *testing.T) {
	isolateConfigDir(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `environment: staging
store:
  access_key_id: AKIAFILE
  secret_access_key: filesecret
  bucket: questforge-staging
  endpoint: https://store.example.com
server:
  port: 8443
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("Expected environment staging, got %s", cfg.Environment)
	}
	if cfg.Server.Port != 8443 {
		t.Errorf("Expected port 8443, got %d", cfg.Server.Port)
	}
	if cfg.Store.Bucket != "questforge-staging" {
		t.Errorf("Expected bucket from file, got %s", cfg.Store.Bucket)
	}
}

func TestMustLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing explicit config file")
	}
}

func TestSaveConfig_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := validConfig()
	cfg.Environment = "staging"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Config file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load of saved config failed: %v", err)
	}
	if loaded.Environment != "staging" {
		t.Errorf("Expected environment staging after roundtrip, got %s", loaded.Environment)
	}
}

func validConfig() *Config {
	cfg := &Config{
		Store: docstore.Config{
			AccessKeyID:     "AKIAEXAMPLE",
			SecretAccessKey: "secret",
			Bucket:          "questforge-test",
			Endpoint:        "https://store.example.com",
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
