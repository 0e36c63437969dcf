package analysis

import (
	"pressure-health-platform/internal/models"
)

// DefaultConditionCatalog returns the built-in pressure-sensitive condition
// catalog. Production deployments read the catalog from storage (it is
// seeded there by the schema migration); this copy backs the demo binary
// and serves as a fallback when the store is empty.
func DefaultConditionCatalog() []models.PressureSensitiveCondition {
	return []models.PressureSensitiveCondition{
		{
			Name:                 "Migraine Headache",
			AssociatedAlertTypes: []models.AlertType{models.AlertRapidDrop, models.AlertExtremeLow},
			Symptoms: []string{
				"throbbing unilateral head pain",
				"nausea",
				"photophobia",
				"visual aura",
			},
			PreventiveMeasures: []string{
				"take prescribed abortive medication at first warning sign",
				"stay hydrated and avoid known dietary triggers",
				"rest in a dark, quiet room",
				"maintain a regular sleep schedule around weather fronts",
			},
			Version: 1,
		},
		{
			Name:                 "Joint Pain Flare",
			AssociatedAlertTypes: []models.AlertType{models.AlertRapidDrop, models.AlertExtremeLow},
			Symptoms: []string{
				"aching joints",
				"morning stiffness",
				"reduced range of motion",
				"joint swelling",
			},
			PreventiveMeasures: []string{
				"keep affected joints warm",
				"perform gentle range-of-motion exercises",
				"apply heat therapy before pain peaks",
				"discuss anti-inflammatory timing with your clinician",
			},
			Version: 1,
		},
		{
			Name:                 "Sinus Pressure Headache",
			AssociatedAlertTypes: []models.AlertType{models.AlertRapidRise, models.AlertExtremeHigh},
			Symptoms: []string{
				"facial pressure and fullness",
				"frontal headache",
				"ear popping or fullness",
			},
			PreventiveMeasures: []string{
				"use saline nasal irrigation",
				"run a humidifier indoors",
				"avoid rapid altitude changes while symptomatic",
			},
			Version: 1,
		},
		{
			Name:                 "Tension Headache",
			AssociatedAlertTypes: []models.AlertType{models.AlertRapidRise},
			Symptoms: []string{
				"band-like bilateral head pain",
				"neck and shoulder tightness",
			},
			PreventiveMeasures: []string{
				"take regular screen breaks and stretch",
				"apply heat to neck and shoulders",
				"practice relaxation breathing",
			},
			Version: 1,
		},
	}
}
