package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8081"
  request_timeout: 5s
app:
  max_upload_size: 2048
  max_dimension: 4000
auth:
  api_key: "from-file"
cache:
  size: 16
`)

	v, err := LoadConfig(dir)
	require.NoError(t, err)

	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(2048), cfg.App.MaxUploadSize)
	assert.Equal(t, 4000, cfg.App.MaxDimension)
	assert.Equal(t, "from-file", cfg.Auth.APIKey)
	assert.Equal(t, 16, cfg.Cache.Size)

	// defaults
	assert.Equal(t, "x-api-key", cfg.Auth.Header)
	assert.Equal(t, 90, cfg.App.JPEGQuality)
	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	dir := writeConfig(t, `
auth:
  api_key: "from-file"
`)
	t.Setenv("API_KEY", "from-env")

	v, err := LoadConfig(dir)
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.APIKey)
}

func TestMissingConfigFileUsesDefaults(t *testing.T) {
	t.Setenv("API_KEY", "only-env")

	v, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.App.MaxUploadSize)
	assert.Equal(t, 10000, cfg.App.MaxDimension)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: "3000"},
			App:    AppConfig{MaxUploadSize: 1024, JPEGQuality: 90},
			Auth:   AuthConfig{APIKey: "key"},
			Cache:  CacheConfig{Enabled: true, Size: 8},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty api key", mutate: func(c *Config) { c.Auth.APIKey = "  " }, wantErr: true},
		{name: "no port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "zero upload size", mutate: func(c *Config) { c.App.MaxUploadSize = 0 }, wantErr: true},
		{name: "negative max dimension", mutate: func(c *Config) { c.App.MaxDimension = -1 }, wantErr: true},
		{name: "unbounded max dimension", mutate: func(c *Config) { c.App.MaxDimension = 0 }},
		{name: "jpeg quality too high", mutate: func(c *Config) { c.App.JPEGQuality = 101 }, wantErr: true},
		{name: "cache without size", mutate: func(c *Config) { c.Cache.Size = 0 }, wantErr: true},
		{name: "disabled cache without size", mutate: func(c *Config) { c.Cache = CacheConfig{} }},
		{name: "rate limit without window", mutate: func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true, Limit: 5} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("IMAGE_RESIZER_TEST_VAR", "set")

	assert.Equal(t, "set", GetEnv("IMAGE_RESIZER_TEST_VAR", "default"))
	assert.Equal(t, "default", GetEnv("IMAGE_RESIZER_TEST_UNSET", "default"))
}
