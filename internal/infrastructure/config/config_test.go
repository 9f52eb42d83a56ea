package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shop-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHOP_APP_PORT", "9090")
	t.Setenv("SHOP_DATABASE_HOST", "db.internal")
	t.Setenv("SHOP_JWT_EXPIRATION", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
}

func TestValidate_ProductionSecret(t *testing.T) {
	t.Run("missing secret is rejected", func(t *testing.T) {
		cfg := &Config{App: AppConfig{Env: "production"}}
		assert.Error(t, cfg.validate())
	})

	t.Run("short secret is rejected", func(t *testing.T) {
		cfg := &Config{
			App: AppConfig{Env: "production"},
			JWT: JWTConfig{Secret: "too-short"},
		}
		assert.Error(t, cfg.validate())
	})

	t.Run("long secret passes", func(t *testing.T) {
		cfg := &Config{
			App: AppConfig{Env: "production"},
			JWT: JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		}
		assert.NoError(t, cfg.validate())
	})

	t.Run("development falls back to an insecure secret", func(t *testing.T) {
		cfg := &Config{App: AppConfig{Env: "development"}}
		require.NoError(t, cfg.validate())
		assert.NotEmpty(t, cfg.JWT.Secret)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "shop",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=shop sslmode=disable",
		d.DSN())
}
