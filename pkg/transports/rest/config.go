package rest

import (
	"fmt"
	"time"
)

// Config holds connection configuration for the device's HTTP API.
type Config struct {
	// Host is the device hostname or IP address.
	Host string `yaml:"host" validate:"required"`

	// Port is the HTTP(S) port (default: 443 for https, 80 for http).
	Port int `yaml:"port" validate:"gte=0,lte=65535"`

	// Scheme is "http" or "https" (default: https).
	Scheme string `yaml:"scheme" validate:"omitempty,oneof=http https"`

	// Username authenticates the management session.
	Username string `yaml:"username" validate:"required"`

	// Password authenticates the management session.
	Password string `yaml:"password" validate:"required"`

	// APIPrefix is the URL prefix configuration paths are appended to.
	APIPrefix string `yaml:"api_prefix"`

	// LoginPath is the session login endpoint.
	LoginPath string `yaml:"login_path"`

	// RequestTimeout bounds each individual request. There are no
	// transport-level retries; a timeout surfaces as a failed operation.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// InsecureSkipVerify disables TLS certificate verification. Intended
	// for lab devices with self-signed certificates.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// DefaultConfig returns a Config with sensible defaults for host.
func DefaultConfig(host, username, password string) *Config {
	return &Config{
		Host:           host,
		Scheme:         "https",
		Username:       username,
		Password:       password,
		APIPrefix:      "/api/v1",
		LoginPath:      "/api/v1/session",
		RequestTimeout: 30 * time.Second,
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	if c.Scheme == "" {
		c.Scheme = "https"
	}
	if c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("invalid scheme: %s", c.Scheme)
	}
	if c.Port == 0 {
		if c.Scheme == "https" {
			c.Port = 443
		} else {
			c.Port = 80
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.APIPrefix == "" {
		c.APIPrefix = "/api/v1"
	}
	if c.LoginPath == "" {
		c.LoginPath = "/api/v1/session"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	return nil
}

// baseURL returns the scheme://host:port prefix for requests.
func (c *Config) baseURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Scheme, c.Host, c.Port)
}
