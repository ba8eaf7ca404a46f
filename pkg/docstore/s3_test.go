package docstore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func validTestConfig() Config {
	return Config{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		Bucket:          "questforge-dev",
		Endpoint:        "https://store.example.com",
	}
}

func TestConfigValidate_Valid(t *testing.T) {
	if err := validTestConfig().Validate(); err != nil {
		t.Errorf("Expected valid config to pass, got: %v", err)
	}
}

func TestConfigValidate_AllMissing(t *testing.T) {
	err := Config{}.Validate()
	if err == nil {
		t.Fatal("Expected error for empty credential bundle")
	}

	var credErr *CredentialsError
	if !errors.As(err, &credErr) {
		t.Fatalf("Expected *CredentialsError, got %T", err)
	}
	if len(credErr.Missing) != 4 {
		t.Errorf("Expected all 4 fields reported missing, got %v", credErr.Missing)
	}
	for _, field := range []string{"access_key_id", "secret_access_key", "bucket", "endpoint"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Expected error to name %q, got: %v", field, err)
		}
	}
}

func TestConfigValidate_PartialMissing(t *testing.T) {
	cfg := validTestConfig()
	cfg.Bucket = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error for missing bucket")
	}

	var credErr *CredentialsError
	if !errors.As(err, &credErr) {
		t.Fatalf("Expected *CredentialsError, got %T", err)
	}
	if len(credErr.Missing) != 1 || credErr.Missing[0] != "bucket" {
		t.Errorf("Expected only bucket missing, got %v", credErr.Missing)
	}
}

func TestNewS3Store_MissingCredentialsFailsBeforeNetwork(t *testing.T) {
	// No endpoint is reachable here; validation must reject the bundle
	// before any client is constructed.
	_, err := NewS3Store(context.Background(), Config{})
	if err == nil {
		t.Fatal("Expected credential error")
	}

	var credErr *CredentialsError
	if !errors.As(err, &credErr) {
		t.Fatalf("Expected *CredentialsError, got %T: %v", err, err)
	}
}

func TestNormalizeSecret(t *testing.T) {
	in := `line1\nline2`
	out := normalizeSecret(in)
	if out != "line1\nline2" {
		t.Errorf("Expected literal \\n escapes replaced, got %q", out)
	}

	plain := "no-escapes"
	if normalizeSecret(plain) != plain {
		t.Errorf("Expected plain secret unchanged")
	}
}

func TestKey(t *testing.T) {
	if got := key("status", "api_status"); got != "status/api_status" {
		t.Errorf("Expected status/api_status, got %q", got)
	}
}
