package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/overtime")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "LKR", cfg.DefaultCurrency)
	assert.Equal(t, 60*time.Second, cfg.AutoPilotInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/overtime")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("AUTOPILOT_INTERVAL", "30s")
	t.Setenv("SUPER_ADMIN_EMAIL", "owner@overtime.lk")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.AutoPilotInterval)
	assert.Equal(t, "owner@overtime.lk", cfg.SuperAdminEmail)
}

func TestLoadDurationAsSeconds(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/overtime")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AUTOPILOT_INTERVAL", "90")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.AutoPilotInterval)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/overtime")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}
