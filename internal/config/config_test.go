package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "pressure_health", cfg.Database.Database)
	assert.Equal(t, time.Hour, cfg.Monitor.FetchInterval)
	assert.Empty(t, cfg.Monitor.Locations)

	assert.Equal(t, 5.0, cfg.Analysis.RapidDropVelocity)
	assert.Equal(t, 6.0, cfg.Analysis.RapidRiseVelocity)
	assert.Equal(t, 975.0, cfg.Analysis.ExtremeLowHPa)
	assert.Equal(t, 1030.0, cfg.Analysis.ExtremeHighHPa)
	assert.Equal(t, 1.0, cfg.Analysis.StableBandHPa)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_TrackedLocations(t *testing.T) {
	t.Setenv("TRACKED_LOCATIONS", "57.70:11.97, 40.71:-74.00")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Len(t, cfg.Monitor.Locations, 2)
	assert.Equal(t, 57.70, cfg.Monitor.Locations[0].Latitude)
	assert.Equal(t, 11.97, cfg.Monitor.Locations[0].Longitude)
	assert.Equal(t, -74.00, cfg.Monitor.Locations[1].Longitude)
}

func TestLoadConfig_MalformedLocations(t *testing.T) {
	t.Setenv("TRACKED_LOCATIONS", "not-a-pair")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ThresholdOverrides(t *testing.T) {
	t.Setenv("THRESHOLD_EXTREME_LOW", "960")
	t.Setenv("THRESHOLD_EXTREME_HIGH", "1040")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 960.0, cfg.Analysis.ExtremeLowHPa)
	assert.Equal(t, 1040.0, cfg.Analysis.ExtremeHighHPa)
}

func TestValidate_Rejections(t *testing.T) {
	base := func(t *testing.T) *Config {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	t.Run("bad port", func(t *testing.T) {
		cfg := base(t)
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("interval too short", func(t *testing.T) {
		cfg := base(t)
		cfg.Monitor.FetchInterval = 10 * time.Second
		assert.Error(t, cfg.Validate())
	})

	t.Run("inverted extreme thresholds", func(t *testing.T) {
		cfg := base(t)
		cfg.Analysis.ExtremeLowHPa = 1050
		assert.Error(t, cfg.Validate())
	})

	t.Run("out of range location", func(t *testing.T) {
		cfg := base(t)
		cfg.Monitor.Locations = []Location{{Latitude: 999, Longitude: 999}}
		assert.Error(t, cfg.Validate())
	})
}
