package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "bizgrid-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 4, cfg.Mail.MaxConcurrentSends)
	assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiration)
	assert.Equal(t, "text-embedding-3-small", cfg.AI.EmbeddingModel)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("accepts defaults", func(t *testing.T) {
		require.NoError(t, valid().validate())
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		cfg := valid()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects non-positive send gate capacity", func(t *testing.T) {
		cfg := valid()
		cfg.Mail.MaxConcurrentSends = -1
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires password and ssl", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate())

		cfg.Database.Password = "secret"
		assert.Error(t, cfg.validate(), "sslmode disable still rejected")

		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "bizgrid",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}
