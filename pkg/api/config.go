package api

import (
	"time"
)

// RateLimitConfig configures the fixed-window per-client rate limiter.
type RateLimitConfig struct {
	// Window is the length of one counting window.
	Window time.Duration `mapstructure:"window" yaml:"window"`

	// MaxRequests is the number of requests allowed per client per window.
	MaxRequests int `mapstructure:"max_requests" validate:"omitempty,min=1" yaml:"max_requests"`
}

// APIConfig configures the HTTP API server.
type APIConfig struct {
	// Port is the HTTP listen port.
	Port int `mapstructure:"port" validate:"required,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Accepts a comma-separated string from the environment.
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`

	// RateLimit bounds request rates per client IP.
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`

	// PublicURL overrides the externally-visible base URL published to the
	// document store. When empty the URL is derived from the bind address.
	PublicURL string `mapstructure:"public_url" yaml:"public_url"`
}

// ApplyDefaults fills in zero values with server defaults.
func (c *APIConfig) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.RateLimit.MaxRequests == 0 {
		c.RateLimit.MaxRequests = 300
	}
}
