package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidEnvironment(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "chaos"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for unknown environment")
	}
	if !strings.Contains(err.Error(), "environment") {
		t.Errorf("Expected error to name environment, got: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "LOUD"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_PortOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_CollectsEveryInvalidField(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "chaos"
	cfg.Server.Port = 70000
	cfg.Store.Bucket = ""
	cfg.Store.Endpoint = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	if len(verr.Fields) < 4 {
		t.Errorf("Expected all invalid fields reported in one pass, got %v", verr.Fields)
	}
	for _, want := range []string{"environment", "server.port", "store.bucket", "store.endpoint"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to name %q, got: %v", want, err)
		}
	}
}

func TestMissingRequired_CompleteConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Security.JWTSecret = "sufficiently-long-test-secret"

	if missing := MissingRequired(cfg); len(missing) != 0 {
		t.Errorf("Expected nothing missing, got %v", missing)
	}
}

func TestMissingRequired_ReportsStoreAndSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Bucket = ""
	cfg.Security.JWTSecret = ""

	missing := MissingRequired(cfg)

	found := map[string]bool{}
	for _, m := range missing {
		found[m] = true
	}
	if !found["store.bucket"] {
		t.Errorf("Expected store.bucket reported, got %v", missing)
	}
	if !found["security.jwt_secret"] {
		t.Errorf("Expected security.jwt_secret reported, got %v", missing)
	}
}
