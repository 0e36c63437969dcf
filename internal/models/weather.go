package models

import (
	"fmt"
	"time"
)

// Earth-surface barometric pressure limits in hPa. Readings outside this
// range are physically implausible and rejected before storage.
const (
	MinValidPressureHPa = 900.0
	MaxValidPressureHPa = 1100.0
)

// Geographic coordinate limits.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// WeatherObservation is a single normalized reading for a geolocation.
// Immutable once stored; the canonical pressure unit is hectopascals.
type WeatherObservation struct {
	ID                 int64     `json:"id" db:"id"`
	Latitude           float64   `json:"latitude" db:"latitude"`
	Longitude          float64   `json:"longitude" db:"longitude"`
	CityName           string    `json:"city_name" db:"city_name"`
	CountryCode        string    `json:"country_code" db:"country_code"`
	PressureHPa        float64   `json:"pressure_hpa" db:"pressure_hpa"`
	TemperatureCelsius float64   `json:"temperature_celsius" db:"temperature_celsius"`
	HumidityPercent    float64   `json:"humidity_percent" db:"humidity_percent"`
	WeatherCondition   string    `json:"weather_condition" db:"weather_condition"`
	WindSpeedMS        float64   `json:"wind_speed_ms" db:"wind_speed_ms"`
	ObservedAt         time.Time `json:"observed_at" db:"observed_at"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// Validate checks that the observation carries physically possible values.
// Out-of-range readings are rejected at the storage boundary so trend
// calculations never see impossible data.
func (o *WeatherObservation) Validate() error {
	if o.Latitude < MinLatitude || o.Latitude > MaxLatitude {
		return &ValidationError{
			Field:   "latitude",
			Value:   fmt.Sprintf("%.4f", o.Latitude),
			Message: fmt.Sprintf("latitude must be between %.0f and %.0f", MinLatitude, MaxLatitude),
		}
	}

	if o.Longitude < MinLongitude || o.Longitude > MaxLongitude {
		return &ValidationError{
			Field:   "longitude",
			Value:   fmt.Sprintf("%.4f", o.Longitude),
			Message: fmt.Sprintf("longitude must be between %.0f and %.0f", MinLongitude, MaxLongitude),
		}
	}

	if o.PressureHPa < MinValidPressureHPa || o.PressureHPa > MaxValidPressureHPa {
		return &ValidationError{
			Field:   "pressure_hpa",
			Value:   fmt.Sprintf("%.1f", o.PressureHPa),
			Message: fmt.Sprintf("pressure must be between %.0f and %.0f hPa", MinValidPressureHPa, MaxValidPressureHPa),
		}
	}

	if o.ObservedAt.IsZero() {
		return &ValidationError{
			Field:   "observed_at",
			Value:   "zero",
			Message: "observation timestamp is required",
		}
	}

	return nil
}

// PressureHistoryPoint is a read-only projection of stored observations for
// one location. Histories are ordered most-recent-first.
type PressureHistoryPoint struct {
	PressureHPa float64   `json:"pressure_hpa" db:"pressure_hpa"`
	ObservedAt  time.Time `json:"observed_at" db:"observed_at"`
}

// ValidationError represents a data validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool {
	return false
}
