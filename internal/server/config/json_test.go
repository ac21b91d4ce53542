package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_http":   "www.example:9000",
		"cors_allowed_origins": []string{"https://paint.example"},
		"id_generator":         "uuid",
		"image_store":          "s3",
		"s3_root_user":         "user",
		"s3_root_password":     "password",
		"s3_bucket":            "bucket",
		"s3_region":            "region",
		"s3_base_endpoint":     "http://minio:9000",
		"log_level":            "warn",
		"metrics_enabled":      false,
		"shutdown_timeout":     "1500ms",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", full}

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, []string{"https://paint.example"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, "uuid", cfg.IDGenerator)
		assert.Equal(t, "s3", cfg.ImageStore)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "http://minio:9000", cfg.S3BaseEndpoint)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.False(t, cfg.MetricsEnabled)
		assert.Equal(t, 1500*time.Millisecond, cfg.ShutdownTimeout)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"log_level":        "debug",
			"shutdown_timeout": 2,
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, ":3000", cfg.EndpointAddrHTTP)
		assert.True(t, cfg.MetricsEnabled)
	})

	t.Run("flags override json", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", full, "-l", "error"}

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "uuid", cfg.IDGenerator)
		assert.Equal(t, 1500*time.Millisecond, cfg.ShutdownTimeout)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "defaults:1234", LogLevel: "info"}
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		assert.Error(t, parseJson(&Config{}))
	})

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "absent.json")}
		assert.Error(t, parseJson(&Config{}))
	})

	t.Run("bad duration", func(t *testing.T) {
		p := writeTempJSON(t, dir, "dur.json", map[string]any{"shutdown_timeout": "forever"})
		os.Args = []string{"testbin", "-c", p}
		assert.Error(t, parseJson(&Config{}))
	})
}
