package analysis_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressure-health-platform/internal/analysis"
	"pressure-health-platform/internal/models"
)

func findRecommendation(recs []models.Recommendation, substring string) *models.Recommendation {
	for i := range recs {
		if strings.Contains(recs[i].Condition, substring) {
			return &recs[i]
		}
	}
	return nil
}

func TestConditionRecommendations_EmptyAlerts(t *testing.T) {
	recs := analysis.ConditionRecommendations(nil, analysis.DefaultConditionCatalog())
	assert.Empty(t, recs, "no recommendation for a normal reading")
}

func TestConditionRecommendations_RapidDropYieldsMigraine(t *testing.T) {
	alerts := []models.PressureAlert{
		{Type: models.AlertRapidDrop, Severity: models.SeverityHigh},
	}

	recs := analysis.ConditionRecommendations(alerts, analysis.DefaultConditionCatalog())

	migraine := findRecommendation(recs, "Migraine Headache")
	require.NotNil(t, migraine)
	assert.NotEmpty(t, migraine.Symptoms)
	assert.NotEmpty(t, migraine.PreventiveMeasures)
}

func TestConditionRecommendations_ExtremeLowYieldsJointPain(t *testing.T) {
	alerts := []models.PressureAlert{
		{Type: models.AlertExtremeLow, Severity: models.SeverityMedium},
	}

	recs := analysis.ConditionRecommendations(alerts, analysis.DefaultConditionCatalog())

	jointPain := findRecommendation(recs, "Joint Pain")
	require.NotNil(t, jointPain)
	assert.NotEmpty(t, jointPain.Symptoms)
	assert.NotEmpty(t, jointPain.PreventiveMeasures)
}

func TestConditionRecommendations_DeduplicatesByConditionName(t *testing.T) {
	// Migraine Headache is associated with both alert types; it must appear
	// exactly once.
	alerts := []models.PressureAlert{
		{Type: models.AlertRapidDrop, Severity: models.SeverityHigh},
		{Type: models.AlertExtremeLow, Severity: models.SeverityMedium},
	}

	recs := analysis.ConditionRecommendations(alerts, analysis.DefaultConditionCatalog())

	counts := make(map[string]int)
	for _, rec := range recs {
		counts[rec.Condition]++
	}
	for name, n := range counts {
		assert.Equal(t, 1, n, "condition %q recommended %d times", name, n)
	}
}

func TestConditionRecommendations_CatalogDriven(t *testing.T) {
	// The mapping is data-driven: a custom catalog entry is honored without
	// any code change.
	catalog := []models.PressureSensitiveCondition{
		{
			Name:                 "Altitude Fatigue",
			AssociatedAlertTypes: []models.AlertType{models.AlertExtremeHigh},
			Symptoms:             []string{"lethargy"},
			PreventiveMeasures:   []string{"pace physical activity"},
		},
	}

	recs := analysis.ConditionRecommendations([]models.PressureAlert{
		{Type: models.AlertExtremeHigh, Severity: models.SeverityMedium},
	}, catalog)

	require.Len(t, recs, 1)
	assert.Equal(t, "Altitude Fatigue", recs[0].Condition)
}

func TestPipeline_EndToEndExample(t *testing.T) {
	// Reference scenario: 1000 hPa now against 1010 one hour ago.
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	history := []models.PressureHistoryPoint{
		{PressureHPa: 1010, ObservedAt: now.Add(-time.Hour)},
		{PressureHPa: 1015, ObservedAt: now.Add(-3 * time.Hour)},
		{PressureHPa: 1020, ObservedAt: now.Add(-24 * time.Hour)},
	}
	th := analysis.DefaultThresholds()

	change := analysis.CalculatePressureChange(1000, now, history, th)
	require.NotNil(t, change.Change1h)
	assert.Equal(t, -10.0, *change.Change1h)
	assert.Equal(t, -10.0, change.VelocityHPa)
	assert.Equal(t, models.TrendFalling, change.Trend)

	alerts := analysis.DetectPressureAlerts(change, th)
	drop := findAlert(t, alerts, models.AlertRapidDrop)
	assert.Equal(t, models.SeverityHigh, drop.Severity)

	recs := analysis.ConditionRecommendations(alerts, analysis.DefaultConditionCatalog())
	require.NotEmpty(t, recs)
	migraine := findRecommendation(recs, "Migraine Headache")
	require.NotNil(t, migraine)
	assert.NotEmpty(t, migraine.Symptoms)
	assert.NotEmpty(t, migraine.PreventiveMeasures)
}
