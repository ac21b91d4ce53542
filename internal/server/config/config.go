// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the paintmap server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the dispatch endpoint.
//   - CORSAllowedOrigins: origins allowed by the CORS middleware ("*" for any).
//   - IDGenerator: "microtime" (numeric ids) or "uuid".
//   - ImageStore: "none" discards uploaded images, "s3" writes them to S3.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     settings of the S3-compatible backend, required only for ImageStore "s3".
//   - LogLevel: debug, info, warn or error.
//   - MetricsEnabled: serve Prometheus metrics on /metrics.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP   string        `validate:"required"`
	CORSAllowedOrigins []string      `validate:"min=1,dive,required"`
	IDGenerator        string        `validate:"oneof=microtime uuid"`
	ImageStore         string        `validate:"oneof=none s3"`
	S3RootUser         string        `validate:"required_if=ImageStore s3"`
	S3RootPassword     string        `validate:"required_if=ImageStore s3"`
	S3Bucket           string        `validate:"required_if=ImageStore s3"`
	S3Region           string        `validate:"required_if=ImageStore s3"`
	S3BaseEndpoint     string        `validate:"omitempty,url"`
	LogLevel           string        `validate:"oneof=debug info warn error"`
	MetricsEnabled     bool
	ShutdownTimeout    time.Duration `validate:"gt=0"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the S3 credentials match a local MinIO and must be overridden in
// production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.CORSAllowedOrigins = []string{"*"}
	c.IDGenerator = "microtime"
	c.ImageStore = "none"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "maps"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
	c.MetricsEnabled = true
	c.ShutdownTimeout = 5 * time.Second
}

// Validate checks the combined configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
