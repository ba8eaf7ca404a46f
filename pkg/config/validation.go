package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError aggregates every invalid or missing configuration field so
// misconfiguration is reported in a single pass rather than one field at a
// time.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Fields, "; "))
}

// Validate checks cfg against the struct validate tags plus the store
// credential bundle. It returns a *ValidationError listing every offending
// field, or nil.
func Validate(cfg *Config) error {
	var fields []string

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fieldPath(fe), fe.Tag()))
			}
		} else {
			return err
		}
	}

	for _, missing := range cfg.Store.MissingFields() {
		fields = append(fields, fmt.Sprintf("store.%s (required)", missing))
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// MissingRequired returns the settings from the fixed required list that are
// absent. This is the static precondition checked by the startup health gate
// before any store traffic: retrying cannot fix a missing setting.
func MissingRequired(cfg *Config) []string {
	var missing []string

	for _, field := range cfg.Store.MissingFields() {
		missing = append(missing, "store."+field)
	}
	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Security.JWTSecret == "" {
		missing = append(missing, "security.jwt_secret")
	}

	return missing
}

// fieldPath renders a validator namespace like "Config.Server.Port" as the
// config-file key "server.port".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return strings.ToLower(ns)
}
