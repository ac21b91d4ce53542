package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/paintmap/internal/flagx"
)

// duration reads either a Go duration string ("5s") or a number of
// seconds.
type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = duration(v)
		return nil
	}

	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return err
	}
	*d = duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// JsonConfig is the on-disk shape of the configuration. Fields left out of
// the file stay nil and do not override earlier values.
type JsonConfig struct {
	EndpointAddrHTTP   *string   `json:"endpoint_addr_http"`
	CORSAllowedOrigins []string  `json:"cors_allowed_origins"`
	IDGenerator        *string   `json:"id_generator"`
	ImageStore         *string   `json:"image_store"`
	S3RootUser         *string   `json:"s3_root_user"`
	S3RootPassword     *string   `json:"s3_root_password"`
	S3Bucket           *string   `json:"s3_bucket"`
	S3Region           *string   `json:"s3_region"`
	S3BaseEndpoint     *string   `json:"s3_base_endpoint"`
	LogLevel           *string   `json:"log_level"`
	MetricsEnabled     *bool     `json:"metrics_enabled"`
	ShutdownTimeout    *duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c/-config onto config. Without the
// flag it does nothing.
func parseJson(config *Config) error {
	path := flagx.ConfigFilePath()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.IDGenerator, c.IDGenerator)
	setString(&config.ImageStore, c.ImageStore)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.MetricsEnabled != nil {
		config.MetricsEnabled = *c.MetricsEnabled
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = time.Duration(*c.ShutdownTimeout)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
