package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tempushq/timesheet_backend/pkg/config"
)

func TestLoadConfig_ShutdownTimeoutFromEnv(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := config.LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_InvalidShutdownTimeoutFallsBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := config.LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestConfig_LocationResolvesConfiguredZone(t *testing.T) {
	cfg := &config.Config{Timezone: "Asia/Kolkata"}

	loc := cfg.Location()

	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestConfig_LocationFallsBackToLocalZone(t *testing.T) {
	assert.Equal(t, time.Local, (&config.Config{}).Location())
	assert.Equal(t, time.Local, (&config.Config{Timezone: "Not/AZone"}).Location())
}
