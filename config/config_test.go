package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("DB_NAME", "bdl_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, "* * * * *", cfg.CloseScrutinsSpec)
	assert.Equal(t, []byte("s3cret"), JWTSecret)
	assert.Equal(t, 2*time.Hour, JWTExpiration)
	assert.Contains(t, cfg.DSN(), "dbname=bdl_test")
	assert.False(t, cfg.IsProduction())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "Europe/Paris"}
	assert.Equal(t, "Europe/Paris", cfg.Location().String())

	cfg.Timezone = "Nowhere/Special"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestNewLogger(t *testing.T) {
	log := NewLogger(&Config{Env: "production", LogLevel: "debug"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLogger(&Config{LogLevel: "loud"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
