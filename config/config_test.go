package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/polyclient/polygon"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv unsets the token variables for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"POLYCLIENT_POLYGON_TOKEN", "POLYGON_API_KEY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
polygon:
  token: file-token
  timeout: 5s
  max_pages: 3
output:
  format: csv
filters:
  movers: "TodaysChangePerc > 5"
logging:
  level: debug
  format: json
  color: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Polygon.Token)
	assert.Equal(t, polygon.DefaultBaseURL, cfg.Polygon.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Polygon.Timeout)
	assert.Equal(t, 3, cfg.Polygon.MaxPages)
	assert.Equal(t, polygon.DefaultUserAgent, cfg.Polygon.UserAgent)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "TodaysChangePerc > 5", cfg.Filters["movers"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Logging.Color)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "polygon:\n  token: abc\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, polygon.DefaultTimeout, cfg.Polygon.Timeout)
	assert.Zero(t, cfg.Polygon.MaxPages)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoad_Environment(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "prefixed variable",
			env:  map[string]string{"POLYCLIENT_POLYGON_TOKEN": "env-token"},
			want: "env-token",
		},
		{
			name: "polygon api key",
			env:  map[string]string{"POLYGON_API_KEY": "api-key"},
			want: "api-key",
		},
		{
			name: "prefixed variable wins",
			env:  map[string]string{"POLYCLIENT_POLYGON_TOKEN": "env-token", "POLYGON_API_KEY": "api-key"},
			want: "env-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, "polygon:\n  token: file-token\n")

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Polygon.Token)
		})
	}

	t.Run("nested keys", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POLYCLIENT_LOGGING_LEVEL", "warn")
		t.Setenv("POLYCLIENT_POLYGON_MAX_PAGES", "7")
		path := writeConfig(t, "polygon:\n  token: abc\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, 7, cfg.Polygon.MaxPages)
	})
}

func TestLoad_NoConfigFile(t *testing.T) {
	clearEnv(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv("POLYGON_API_KEY", "env-only")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.Polygon.Token)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLYGON_API_KEY", "abc")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Polygon: PolygonConfig{
				Token:   "abc",
				BaseURL: polygon.DefaultBaseURL,
				Timeout: time.Second,
			},
			Output:  OutputConfig{Format: "json"},
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Polygon.Token = "" }, errContains: "polygon.token"},
		{name: "placeholder token", mutate: func(c *Config) { c.Polygon.Token = "your-api-key-here" }, errContains: "polygon.token"},
		{name: "relative base url", mutate: func(c *Config) { c.Polygon.BaseURL = "api.polygon.io" }, errContains: "polygon.base_url"},
		{name: "zero timeout", mutate: func(c *Config) { c.Polygon.Timeout = 0 }, errContains: "polygon.timeout"},
		{name: "negative max pages", mutate: func(c *Config) { c.Polygon.MaxPages = -1 }, errContains: "polygon.max_pages"},
		{name: "unknown output format", mutate: func(c *Config) { c.Output.Format = "xml" }, errContains: "output.format"},
		{name: "empty filter", mutate: func(c *Config) { c.Filters = FilterConfig{"broken": " "} }, errContains: `filter "broken"`},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }, errContains: "invalid logging level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, errContains: "invalid logging format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
