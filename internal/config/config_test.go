package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_TTL", "not-a-duration")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SEED_DEMO_ACCOUNT", "false")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.RedisTTL)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.SeedDemo)
}

func TestLocation(t *testing.T) {
	cfg := Config{Timezone: "Asia/Jakarta"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())

	cfg.Timezone = "Local"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}

func TestLoadConfigDatabasePool(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_CONN_TTL", "5m")
	t.Setenv("DB_SLOW_QUERY", "oops")

	cfg := LoadConfig()

	assert.Equal(t, 25, cfg.DBMaxConns)
	assert.Equal(t, 5*time.Minute, cfg.DBConnTTL)
	assert.Equal(t, 200*time.Millisecond, cfg.DBSlowQuery)
}
