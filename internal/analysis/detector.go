package analysis

import (
	"pressure-health-platform/internal/models"
)

// Margins applied on top of the base thresholds before an alert escalates
// to high severity.
const (
	rapidRiseHighMargin   = 4.0
	extremeLevelHighBonus = 15.0
)

// DetectPressureAlerts classifies a PressureChange into zero or more alerts.
// Multiple alert types can co-occur (a rapid drop into extreme-low territory
// yields both). A truly unremarkable reading, velocity inside the stable
// band and pressure inside the normal band, yields no alert of any kind.
// Pure and deterministic for identical input.
func DetectPressureAlerts(change models.PressureChange, th Thresholds) []models.PressureAlert {
	var alerts []models.PressureAlert

	if change.VelocityHPa <= -th.RapidDropVelocity {
		alerts = append(alerts, models.PressureAlert{
			Type:     models.AlertRapidDrop,
			Severity: models.SeverityHigh,
		})
	}

	if change.VelocityHPa >= th.RapidRiseVelocity {
		severity := models.SeverityMedium
		if change.VelocityHPa >= th.RapidRiseVelocity+rapidRiseHighMargin {
			severity = models.SeverityHigh
		}
		alerts = append(alerts, models.PressureAlert{
			Type:     models.AlertRapidRise,
			Severity: severity,
		})
	}

	if change.CurrentHPa <= th.ExtremeLowHPa {
		severity := models.SeverityMedium
		if change.CurrentHPa <= th.ExtremeLowHPa-extremeLevelHighBonus {
			severity = models.SeverityHigh
		}
		alerts = append(alerts, models.PressureAlert{
			Type:     models.AlertExtremeLow,
			Severity: severity,
		})
	}

	if change.CurrentHPa >= th.ExtremeHighHPa {
		severity := models.SeverityMedium
		if change.CurrentHPa >= th.ExtremeHighHPa+extremeLevelHighBonus {
			severity = models.SeverityHigh
		}
		alerts = append(alerts, models.PressureAlert{
			Type:     models.AlertExtremeHigh,
			Severity: severity,
		})
	}

	return alerts
}
