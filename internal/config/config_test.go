package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.App.Port)
		assert.True(t, cfg.DB.Migrate)
		assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, "http://localhost:8000", cfg.Vanna.BaseURL)
		assert.Equal(t, 20*time.Second, cfg.Vanna.Timeout)
		assert.Empty(t, cfg.Auth.JWTSecret)
		assert.Equal(t, 25, cfg.Pool().MaxOpenConns)
		assert.Equal(t, 5*time.Minute, cfg.Pool().ConnMaxLifetime)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DB_NAME", "invoices")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
		t.Setenv("VANNA_TIMEOUT", "5s")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.App.Port)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, 5*time.Second, cfg.Vanna.Timeout)
		assert.Equal(t, "postgres://postgres:@localhost:5432/invoices?sslmode=disable", cfg.ConnectionString())
	})

	t.Run("InvalidValue", func(t *testing.T) {
		t.Setenv("PORT", "not-a-port")

		_, err := config.Load()
		require.Error(t, err)
	})
}
