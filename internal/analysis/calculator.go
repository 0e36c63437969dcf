package analysis

import (
	"sort"
	"time"

	"pressure-health-platform/internal/models"
)

// Thresholds holds the named, overridable boundaries used to classify
// pressure dynamics. Defaults suit sea-level baselines; regional tuning
// (e.g. high-altitude deployments) overrides individual fields.
type Thresholds struct {
	// RapidDropVelocity is the fall rate in hPa/hr at or beyond which a
	// rapid_drop alert fires (velocity <= -RapidDropVelocity).
	RapidDropVelocity float64

	// RapidRiseVelocity is the rise rate in hPa/hr at or beyond which a
	// rapid_rise alert fires (velocity >= RapidRiseVelocity).
	RapidRiseVelocity float64

	// ExtremeLowHPa fires extreme_low when current pressure is at or below it.
	ExtremeLowHPa float64

	// ExtremeHighHPa fires extreme_high when current pressure is at or above
	// it. No clinical reference fixes this boundary exactly; 1030 hPa is the
	// symmetric counterpart to the extreme-low threshold.
	ExtremeHighHPa float64

	// StableBandHPa is the half-width of the open velocity interval treated
	// as a stable trend.
	StableBandHPa float64
}

// DefaultThresholds returns the reference classification boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RapidDropVelocity: 5.0,
		RapidRiseVelocity: 6.0,
		ExtremeLowHPa:     975.0,
		ExtremeHighHPa:    1030.0,
		StableBandHPa:     1.0,
	}
}

// change1hWindow bounds the lookback for the 1-hour delta. Points up to 75
// minutes old still count as "roughly one hour back" to tolerate fetch jitter.
const change1hWindow = 75 * time.Minute

// CalculatePressureChange derives trend, velocity, and the windowed 1-hour
// delta from the current reading and prior history for the same location.
//
// History is expected most-recent-first but is re-sorted defensively rather
// than trusted. Change1h comes from the point whose age is closest to exactly
// one hour, considering only points inside the lookback window; it is nil
// (undefined, not zero) when no such point exists. Velocity is the hourly
// rate of change against the 1-hour reference when present, otherwise
// against the most recent strictly-older point.
//
// Empty history is a defined degenerate case: velocity 0, stable trend,
// Change1h nil. Pure function, no side effects.
func CalculatePressureChange(currentPressure float64, observedAt time.Time, history []models.PressureHistoryPoint, th Thresholds) models.PressureChange {
	change := models.PressureChange{
		CurrentHPa: currentPressure,
		Trend:      models.TrendStable,
	}

	if len(history) == 0 {
		return change
	}

	points := make([]models.PressureHistoryPoint, len(history))
	copy(points, history)
	sort.Slice(points, func(i, j int) bool {
		return points[i].ObservedAt.After(points[j].ObservedAt)
	})

	// Points at or after the current reading cannot anchor a rate of change.
	var hourRef, nearestRef *models.PressureHistoryPoint
	bestDistance := time.Duration(1<<63 - 1)

	for i := range points {
		age := observedAt.Sub(points[i].ObservedAt)
		if age <= 0 {
			continue
		}

		if nearestRef == nil {
			nearestRef = &points[i]
		}

		if age <= change1hWindow {
			distance := age - time.Hour
			if distance < 0 {
				distance = -distance
			}
			if distance < bestDistance {
				bestDistance = distance
				hourRef = &points[i]
			}
		}
	}

	if nearestRef == nil {
		return change
	}

	if hourRef != nil {
		delta := currentPressure - hourRef.PressureHPa
		change.Change1h = &delta
		change.VelocityHPa = delta / observedAt.Sub(hourRef.ObservedAt).Hours()
	} else {
		change.VelocityHPa = (currentPressure - nearestRef.PressureHPa) / observedAt.Sub(nearestRef.ObservedAt).Hours()
	}

	change.Trend = classifyTrend(change.VelocityHPa, th.StableBandHPa)

	return change
}

// classifyTrend maps a velocity onto a trend. The stable band is the open
// interval (-band, band): exactly +-band already counts as rising/falling.
func classifyTrend(velocity, band float64) models.Trend {
	switch {
	case velocity <= -band:
		return models.TrendFalling
	case velocity >= band:
		return models.TrendRising
	default:
		return models.TrendStable
	}
}
