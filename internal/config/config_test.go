package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schtekar/wells-fug/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8090", cfg.Server.Address)
	assert.Equal(t, 50.0, cfg.Tracking.StationaryThresholdM)
	assert.Equal(t, 100.0, cfg.Tracking.OnsiteThresholdM)
	assert.Equal(t, models.Horizon12h, cfg.Tracking.ReferenceHorizon)
	assert.Equal(t, 12, cfg.Tracking.MaxHistoryLength)
	assert.Equal(t, 12*time.Hour, cfg.Tracking.MaxHistoryAge)
	assert.Equal(t, 100, cfg.Sodir.LookbackDays)
	assert.False(t, cfg.Offline)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STATIONARY_THRESHOLD_M", "75.5")
	t.Setenv("REFERENCE_HORIZON", "1d")
	t.Setenv("MAX_HISTORY_AGE", "6h")
	t.Setenv("OFFLINE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 75.5, cfg.Tracking.StationaryThresholdM)
	assert.Equal(t, models.Horizon1d, cfg.Tracking.ReferenceHorizon)
	assert.Equal(t, 6*time.Hour, cfg.Tracking.MaxHistoryAge)
	assert.True(t, cfg.Offline)
}

func TestLoad_InvalidReferenceHorizonFallsBack(t *testing.T) {
	t.Setenv("REFERENCE_HORIZON", "fortnight")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, models.Horizon12h, cfg.Tracking.ReferenceHorizon)
}

func TestLoad_MalformedNumbersKeepDefaults(t *testing.T) {
	t.Setenv("MAX_HISTORY_LENGTH", "a dozen")
	t.Setenv("SODIR_RATE_PER_SEC", "fast")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Tracking.MaxHistoryLength)
	assert.Equal(t, 2.0, cfg.Sodir.RatePerSec)
}
