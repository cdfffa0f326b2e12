package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinwin/internal/utils"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMongoDB, cfg.App.Store)
	assert.Equal(t, "INR", cfg.App.Currency)
	assert.Equal(t, "login", cfg.Database.LoginCollection)
	assert.Equal(t, "spinResults", cfg.Database.SpinCollection)
	assert.Equal(t, 5, cfg.Security.MaxLoginAttempts)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.UTC.String(), cfg.Location().String())
	assert.Equal(t, utils.AppName, cfg.App.Name)
	assert.Equal(t, utils.AppVersion, cfg.App.Version)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_STORE", "Memory")
	t.Setenv("APP_CURRENCY", "usd")
	t.Setenv("APP_TIMEZONE", "Asia/Kolkata")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOGIN_LOCKOUT_TIME", "90s")
	t.Setenv("REDIS_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.App.Store)
	assert.Equal(t, "USD", cfg.App.Currency)
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.Security.LoginLockoutTime)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, cfg.Redis.KeyPrefix, cfg.RedisCacheConfig().KeyPrefix)
	assert.Equal(t, cfg.Database.URI, cfg.MongoConfig().URI)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"APP_STORE": "postgres"}},
		{"bad timezone", map[string]string{"APP_TIMEZONE": "Mars/Olympus"}},
		{"default secret in production", map[string]string{"APP_ENV": "production"}},
		{"no login attempts", map[string]string{"MAX_LOGIN_ATTEMPTS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
