package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Run("Should provide runnable defaults", func(t *testing.T) {
		cfg := Default()
		assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, "auto", cfg.CLI.Format)
		assert.NotEmpty(t, cfg.CLI.StateDir)
		require.NoError(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	t.Run("Should overlay environment variables on defaults", func(t *testing.T) {
		t.Setenv("BLOGCTL_API_BASE_URL", "https://blog.example.com/api")
		t.Setenv("BLOGCTL_API_TIMEOUT", "10s")
		t.Setenv("BLOGCTL_CLI_FORMAT", "json")
		t.Setenv("BLOGCTL_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://blog.example.com/api", cfg.API.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.API.Timeout)
		assert.Equal(t, "json", cfg.CLI.Format)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Should reject an invalid format from the environment", func(t *testing.T) {
		t.Setenv("BLOGCTL_CLI_FORMAT", "yaml")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Should reject an empty base URL", func(t *testing.T) {
		cfg := Default()
		cfg.API.BaseURL = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("Should reject a non-http base URL", func(t *testing.T) {
		cfg := Default()
		cfg.API.BaseURL = "ftp://example.com"
		require.Error(t, cfg.Validate())
	})

	t.Run("Should reject a negative timeout", func(t *testing.T) {
		cfg := Default()
		cfg.API.Timeout = -time.Second
		require.Error(t, cfg.Validate())
	})

	t.Run("Should accept every documented format", func(t *testing.T) {
		for _, format := range []string{"auto", "json", "tui"} {
			cfg := Default()
			cfg.CLI.Format = format
			assert.NoError(t, cfg.Validate())
		}
	})
}

func TestTransformEnvKey(t *testing.T) {
	t.Run("Should split section from field name", func(t *testing.T) {
		assert.Equal(t, "api.base_url", transformEnvKey("API_BASE_URL"))
		assert.Equal(t, "cli.no_color", transformEnvKey("CLI_NO_COLOR"))
		assert.Equal(t, "log.level", transformEnvKey("LOG_LEVEL"))
	})

	t.Run("Should pass single-part keys through", func(t *testing.T) {
		assert.Equal(t, "debug", transformEnvKey("DEBUG"))
	})
}
