package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./timekit.db", cfg.DatabasePath)
	assert.Zero(t, cfg.SessionTTLHours, "sessions do not expire unless configured")
	assert.Equal(t, "0 * * * *", cfg.SessionSweepCron)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("SESSION_TTL_HOURS", "72")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, 72, cfg.SessionTTLHours)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
