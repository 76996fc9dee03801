package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Success(t *testing.T) {
	t.Setenv("HOMESTYLE_SESSION_SECRET", "secret")
	t.Setenv("HOMESTYLE_APP_ENV", "prod")
	t.Setenv("HOMESTYLE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("HOMESTYLE_SESSION_TTL", "48h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 48*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "hf_session", cfg.Session.CookieName)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
	assert.True(t, cfg.Redis.Configured())
	assert.False(t, cfg.GCS.Configured())
	assert.False(t, cfg.PubSub.Configured())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("HOMESTYLE_SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestUploadsAllowsExtension(t *testing.T) {
	uploads := UploadsConfig{AllowedExtensions: []string{"png", "jpg", "jpeg", "gif"}}

	for _, ext := range []string{"png", ".png", "JPG", "jpeg", "gif"} {
		assert.True(t, uploads.AllowsExtension(ext), "expected %q to be allowed", ext)
	}
	for _, ext := range []string{"exe", ".exe", "svg", ""} {
		assert.False(t, uploads.AllowsExtension(ext), "expected %q to be rejected", ext)
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	assert.True(t, devConfig.IsDev())
	assert.False(t, devConfig.IsProd())

	prodConfig := AppConfig{Env: "prod"}
	assert.True(t, prodConfig.IsProd())
}
