package main

import (
	"fmt"
	"strings"
	"time"

	"pressure-health-platform/internal/analysis"
	"pressure-health-platform/internal/models"
)

// Demonstrates the pressure analysis pipeline on synthetic histories,
// without a database or weather provider.
func main() {
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println("PRESSURE HEALTH PLATFORM - ANALYSIS DEMONSTRATION")
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println()

	now := time.Now().UTC()
	thresholds := analysis.DefaultThresholds()
	catalog := analysis.DefaultConditionCatalog()

	scenarios := []struct {
		name    string
		current float64
		history []models.PressureHistoryPoint
	}{
		{
			name:    "Incoming storm front (rapid drop)",
			current: 1000,
			history: []models.PressureHistoryPoint{
				{PressureHPa: 1010, ObservedAt: now.Add(-time.Hour)},
				{PressureHPa: 1015, ObservedAt: now.Add(-3 * time.Hour)},
				{PressureHPa: 1020, ObservedAt: now.Add(-24 * time.Hour)},
			},
		},
		{
			name:    "Deep low-pressure system",
			current: 968,
			history: []models.PressureHistoryPoint{
				{PressureHPa: 974, ObservedAt: now.Add(-time.Hour)},
			},
		},
		{
			name:    "Strong high building in",
			current: 1032,
			history: []models.PressureHistoryPoint{
				{PressureHPa: 1025, ObservedAt: now.Add(-time.Hour)},
			},
		},
		{
			name:    "Calm conditions",
			current: 1013,
			history: []models.PressureHistoryPoint{
				{PressureHPa: 1013.4, ObservedAt: now.Add(-time.Hour)},
			},
		},
		{
			name:    "First reading for a location",
			current: 1013,
			history: nil,
		},
	}

	for _, sc := range scenarios {
		fmt.Printf("─────────────────────────────────────────────────────────────\n")
		fmt.Printf("Scenario: %s\n", sc.name)
		fmt.Printf("─────────────────────────────────────────────────────────────\n")

		change := analysis.CalculatePressureChange(sc.current, now, sc.history, thresholds)

		change1h := "undefined"
		if change.Change1h != nil {
			change1h = fmt.Sprintf("%+.1f hPa", *change.Change1h)
		}

		fmt.Printf("Current:   %.1f hPa\n", change.CurrentHPa)
		fmt.Printf("Change 1h: %s\n", change1h)
		fmt.Printf("Velocity:  %+.1f hPa/hr\n", change.VelocityHPa)
		fmt.Printf("Trend:     %s\n", change.Trend)

		alerts := analysis.DetectPressureAlerts(change, thresholds)
		if len(alerts) == 0 {
			fmt.Println("Alerts:    none")
		} else {
			for _, alert := range alerts {
				fmt.Printf("Alert:     %s (severity %s)\n", alert.Type, alert.Severity)
			}
		}

		recommendations := analysis.ConditionRecommendations(alerts, catalog)
		for _, rec := range recommendations {
			fmt.Printf("Condition: %s\n", rec.Condition)
			fmt.Printf("           watch for: %s\n", strings.Join(rec.Symptoms, "; "))
			fmt.Printf("           prevention: %s\n", strings.Join(rec.PreventiveMeasures, "; "))
		}

		fmt.Println()
	}
}
