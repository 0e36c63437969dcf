package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressure-health-platform/internal/analysis"
	"pressure-health-platform/internal/models"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func historyPoint(pressure float64, age time.Duration) models.PressureHistoryPoint {
	return models.PressureHistoryPoint{
		PressureHPa: pressure,
		ObservedAt:  testNow.Add(-age),
	}
}

func TestCalculatePressureChange_EmptyHistory(t *testing.T) {
	change := analysis.CalculatePressureChange(1013.2, testNow, nil, analysis.DefaultThresholds())

	assert.Equal(t, 1013.2, change.CurrentHPa)
	assert.Nil(t, change.Change1h)
	assert.Zero(t, change.VelocityHPa)
	assert.Equal(t, models.TrendStable, change.Trend)
}

func TestCalculatePressureChange_OneHourReference(t *testing.T) {
	history := []models.PressureHistoryPoint{
		historyPoint(1010, time.Hour),
		historyPoint(1015, 3*time.Hour),
		historyPoint(1020, 24*time.Hour),
	}

	change := analysis.CalculatePressureChange(1000, testNow, history, analysis.DefaultThresholds())

	require.NotNil(t, change.Change1h)
	assert.Equal(t, -10.0, *change.Change1h)
	assert.Equal(t, -10.0, change.VelocityHPa)
	assert.Equal(t, models.TrendFalling, change.Trend)
}

func TestCalculatePressureChange_UnsortedHistory(t *testing.T) {
	// Oldest-first input must produce the same result as recency order.
	history := []models.PressureHistoryPoint{
		historyPoint(1020, 24*time.Hour),
		historyPoint(1015, 3*time.Hour),
		historyPoint(1010, time.Hour),
	}

	change := analysis.CalculatePressureChange(1000, testNow, history, analysis.DefaultThresholds())

	require.NotNil(t, change.Change1h)
	assert.Equal(t, -10.0, *change.Change1h)
	assert.Equal(t, models.TrendFalling, change.Trend)
}

func TestCalculatePressureChange_PrefersPointClosestToOneHour(t *testing.T) {
	history := []models.PressureHistoryPoint{
		historyPoint(1002, 10*time.Minute),
		historyPoint(1006, 55*time.Minute),
		historyPoint(1012, 3*time.Hour),
	}

	change := analysis.CalculatePressureChange(1000, testNow, history, analysis.DefaultThresholds())

	require.NotNil(t, change.Change1h)
	assert.Equal(t, -6.0, *change.Change1h)
	assert.InDelta(t, -6.0/(55.0/60.0), change.VelocityHPa, 1e-9)
	assert.Equal(t, models.TrendFalling, change.Trend)
}

func TestCalculatePressureChange_NoHourPointFallsBackToNearest(t *testing.T) {
	history := []models.PressureHistoryPoint{
		historyPoint(1008, 4*time.Hour),
		historyPoint(1012, 12*time.Hour),
	}

	change := analysis.CalculatePressureChange(1000, testNow, history, analysis.DefaultThresholds())

	assert.Nil(t, change.Change1h, "no point inside the 1-hour window")
	assert.Equal(t, -2.0, change.VelocityHPa)
	assert.Equal(t, models.TrendFalling, change.Trend)
}

func TestCalculatePressureChange_IgnoresFuturePoints(t *testing.T) {
	history := []models.PressureHistoryPoint{
		historyPoint(990, -30*time.Minute), // clock skew artifact
	}

	change := analysis.CalculatePressureChange(1000, testNow, history, analysis.DefaultThresholds())

	assert.Nil(t, change.Change1h)
	assert.Zero(t, change.VelocityHPa)
	assert.Equal(t, models.TrendStable, change.Trend)
}

func TestCalculatePressureChange_TrendBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		delta1h  float64
		expected models.Trend
	}{
		{"strong fall", -10, models.TrendFalling},
		{"exactly minus one", -1, models.TrendFalling},
		{"just inside stable low", -0.9, models.TrendStable},
		{"flat", 0, models.TrendStable},
		{"just inside stable high", 0.9, models.TrendStable},
		{"exactly plus one", 1, models.TrendRising},
		{"strong rise", 10, models.TrendRising},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := 1000.0
			history := []models.PressureHistoryPoint{
				historyPoint(current-tt.delta1h, time.Hour),
			}

			change := analysis.CalculatePressureChange(current, testNow, history, analysis.DefaultThresholds())

			assert.InDelta(t, tt.delta1h, change.VelocityHPa, 1e-9)
			assert.Equal(t, tt.expected, change.Trend)
		})
	}
}

func TestCalculatePressureChange_TrendMonotonicInVelocity(t *testing.T) {
	// falling < stable < rising as velocity sweeps upward.
	rank := map[models.Trend]int{
		models.TrendFalling: 0,
		models.TrendStable:  1,
		models.TrendRising:  2,
	}

	previous := -1
	for delta := -15.0; delta <= 15.0; delta += 0.5 {
		history := []models.PressureHistoryPoint{historyPoint(1000-delta, time.Hour)}
		change := analysis.CalculatePressureChange(1000, testNow, history, analysis.DefaultThresholds())

		require.GreaterOrEqual(t, rank[change.Trend], previous,
			"trend regressed at velocity %.1f", delta)
		previous = rank[change.Trend]
	}
}
