package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressure-health-platform/internal/analysis"
	"pressure-health-platform/internal/models"
)

func alertTypes(alerts []models.PressureAlert) []models.AlertType {
	types := make([]models.AlertType, 0, len(alerts))
	for _, a := range alerts {
		types = append(types, a.Type)
	}
	return types
}

func findAlert(t *testing.T, alerts []models.PressureAlert, alertType models.AlertType) models.PressureAlert {
	t.Helper()
	for _, a := range alerts {
		if a.Type == alertType {
			return a
		}
	}
	t.Fatalf("alert %s not found in %v", alertType, alerts)
	return models.PressureAlert{}
}

func TestDetectPressureAlerts_NoFalseAlerts(t *testing.T) {
	th := analysis.DefaultThresholds()

	// Sweep the entire unremarkable envelope: velocity inside the stable
	// band, pressure inside the normal band.
	for current := 976.0; current <= 1029.0; current += 1.0 {
		for velocity := -0.9; velocity <= 0.9; velocity += 0.3 {
			change := models.PressureChange{
				CurrentHPa:  current,
				VelocityHPa: velocity,
				Trend:       models.TrendStable,
			}
			alerts := analysis.DetectPressureAlerts(change, th)
			require.Empty(t, alerts, "false alert at current=%.1f velocity=%.1f", current, velocity)
		}
	}
}

func TestDetectPressureAlerts_RapidDrop(t *testing.T) {
	th := analysis.DefaultThresholds()

	change := models.PressureChange{CurrentHPa: 1005, VelocityHPa: -5, Trend: models.TrendFalling}
	alerts := analysis.DetectPressureAlerts(change, th)

	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertRapidDrop, alerts[0].Type)
	assert.Equal(t, models.SeverityHigh, alerts[0].Severity)
}

func TestDetectPressureAlerts_RapidRiseSeverityScales(t *testing.T) {
	th := analysis.DefaultThresholds()

	moderate := analysis.DetectPressureAlerts(models.PressureChange{
		CurrentHPa: 1010, VelocityHPa: 6, Trend: models.TrendRising,
	}, th)
	require.Len(t, moderate, 1)
	assert.Equal(t, models.AlertRapidRise, moderate[0].Type)
	assert.Equal(t, models.SeverityMedium, moderate[0].Severity)

	strong := analysis.DetectPressureAlerts(models.PressureChange{
		CurrentHPa: 1010, VelocityHPa: 11, Trend: models.TrendRising,
	}, th)
	require.Len(t, strong, 1)
	assert.Equal(t, models.SeverityHigh, strong[0].Severity)
}

func TestDetectPressureAlerts_ExtremeLevels(t *testing.T) {
	th := analysis.DefaultThresholds()

	low := analysis.DetectPressureAlerts(models.PressureChange{
		CurrentHPa: 975, VelocityHPa: 0, Trend: models.TrendStable,
	}, th)
	require.Len(t, low, 1)
	assert.Equal(t, models.AlertExtremeLow, low[0].Type)
	assert.Equal(t, models.SeverityMedium, low[0].Severity)

	veryLow := analysis.DetectPressureAlerts(models.PressureChange{
		CurrentHPa: 958, VelocityHPa: 0, Trend: models.TrendStable,
	}, th)
	require.Len(t, veryLow, 1)
	assert.Equal(t, models.SeverityHigh, veryLow[0].Severity)

	high := analysis.DetectPressureAlerts(models.PressureChange{
		CurrentHPa: 1031, VelocityHPa: 0, Trend: models.TrendStable,
	}, th)
	require.Len(t, high, 1)
	assert.Equal(t, models.AlertExtremeHigh, high[0].Type)
	assert.Equal(t, models.SeverityMedium, high[0].Severity)
}

func TestDetectPressureAlerts_CoOccurringAlerts(t *testing.T) {
	th := analysis.DefaultThresholds()

	// A rapid drop into extreme-low territory fires both alerts.
	change := models.PressureChange{
		CurrentHPa:  970,
		VelocityHPa: -8,
		Trend:       models.TrendFalling,
	}

	alerts := analysis.DetectPressureAlerts(change, th)

	require.Len(t, alerts, 2)
	assert.ElementsMatch(t,
		[]models.AlertType{models.AlertRapidDrop, models.AlertExtremeLow},
		alertTypes(alerts))
	assert.Equal(t, models.SeverityHigh, findAlert(t, alerts, models.AlertRapidDrop).Severity)
}

func TestDetectPressureAlerts_Deterministic(t *testing.T) {
	th := analysis.DefaultThresholds()
	change := models.PressureChange{CurrentHPa: 970, VelocityHPa: -8, Trend: models.TrendFalling}

	first := analysis.DetectPressureAlerts(change, th)
	second := analysis.DetectPressureAlerts(change, th)

	assert.Equal(t, first, second)
}
