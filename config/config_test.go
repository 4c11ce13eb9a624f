package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "vi", cfg.App.Locale)
	assert.Equal(t, "₫", cfg.App.Currency)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:3001", cfg.Service.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Service.Timeout)
	assert.Equal(t, ":3001", cfg.Store.Addr)
	assert.Equal(t, "sqlite://catalog.db", cfg.Store.DatabaseURL)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `app:
  env: dev
  timezone: Asia/Ho_Chi_Minh
service:
  base_url: http://catalog.internal:9000
  timeout: 2s
metrics:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, "http://catalog.internal:9000", cfg.Service.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Service.Timeout)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "vi", cfg.App.Locale, "unset keys keep their defaults")

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Ho_Chi_Minh", loc.String())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_SERVICE_BASE_URL", "https://api.example.com")
	t.Setenv("CATALOG_HTTP_ADDR", ":9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Service.BaseURL)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_STORE_ADDR=:4000\n"), 0o644))
	t.Setenv("CATALOG_STORE_ADDR", "")
	require.NoError(t, os.Unsetenv("CATALOG_STORE_ADDR"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.Store.Addr)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "Relative base URL", env: map[string]string{"CATALOG_SERVICE_BASE_URL": "localhost:3001"}, want: "service.base_url"},
		{name: "Unsupported scheme", env: map[string]string{"CATALOG_SERVICE_BASE_URL": "ftp://host"}, want: "service.base_url"},
		{name: "Bad locale", env: map[string]string{"CATALOG_APP_LOCALE": "!!"}, want: "app.locale"},
		{name: "Unknown timezone", env: map[string]string{"CATALOG_APP_TIMEZONE": "Mars/Olympus"}, want: "app.timezone"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}
