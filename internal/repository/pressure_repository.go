package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"pressure-health-platform/internal/models"
	"pressure-health-platform/pkg/database"
	"pressure-health-platform/pkg/logging"
	"pressure-health-platform/pkg/metrics"
)

// Coordinate tolerance when matching stored observations to a location.
// Provider-reported coordinates jitter in the 4th decimal place.
const coordinateEpsilon = 0.001

// PressureRepository provides data access for observations, the condition
// catalog, and per-patient sensitivity tracking.
type PressureRepository interface {
	// Observation operations
	InsertObservation(ctx context.Context, obs *models.WeatherObservation) error
	GetPressureHistory(ctx context.Context, latitude, longitude float64, hours int) ([]models.PressureHistoryPoint, error)

	// Condition catalog operations
	GetAllPressureSensitiveConditions(ctx context.Context) ([]models.PressureSensitiveCondition, error)

	// Patient sensitivity operations
	UpsertPatientSensitivity(ctx context.Context, input models.SensitivityInput) (*models.PatientPressureSensitivity, error)
	GetPatientSensitivity(ctx context.Context, userID string, sensitivityID int64) (*models.PatientPressureSensitivity, error)
	InsertSymptomEvent(ctx context.Context, input models.SymptomEventInput) (*models.PressureSymptomEvent, error)
	GetSymptomHistory(ctx context.Context, userID string, days int) ([]*models.PressureSymptomEvent, error)

	// Utility operations
	HealthCheck(ctx context.Context) error
}

// pressureRepository implements PressureRepository
type pressureRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewPressureRepository creates a new pressure repository
func NewPressureRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) PressureRepository {
	return &pressureRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// InsertObservation stores a new weather observation after validating it.
// Physically impossible readings are rejected here, never stored.
func (r *pressureRepository) InsertObservation(ctx context.Context, obs *models.WeatherObservation) error {
	if err := obs.Validate(); err != nil {
		r.metrics.RecordIngestError("validation_error")
		return fmt.Errorf("observation rejected for (%.4f, %.4f): %w", obs.Latitude, obs.Longitude, err)
	}

	query := `
		INSERT INTO weather_observations (
			latitude, longitude, city_name, country_code,
			pressure_hpa, temperature_celsius, humidity_percent,
			weather_condition, wind_speed_ms, observed_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	if obs.CreatedAt.IsZero() {
		obs.CreatedAt = time.Now().UTC()
	}

	err := r.db.DB().QueryRowContext(ctx, query,
		obs.Latitude,
		obs.Longitude,
		obs.CityName,
		obs.CountryCode,
		obs.PressureHPa,
		obs.TemperatureCelsius,
		obs.HumidityPercent,
		obs.WeatherCondition,
		obs.WindSpeedMS,
		obs.ObservedAt,
		obs.CreatedAt,
	).Scan(&obs.ID)

	if err != nil {
		return fmt.Errorf("failed to insert observation: %w", err)
	}

	r.logger.Debug(ctx, "[REPO_INSERT_OBSERVATION] Observation stored", logging.Fields{
		"observation_id": obs.ID,
		"latitude":       obs.Latitude,
		"longitude":      obs.Longitude,
		"pressure_hpa":   obs.PressureHPa,
	})

	return nil
}

// GetPressureHistory returns pressure readings for a location within the
// trailing window, most recent first.
func (r *pressureRepository) GetPressureHistory(ctx context.Context, latitude, longitude float64, hours int) ([]models.PressureHistoryPoint, error) {
	query := `
		SELECT pressure_hpa, observed_at
		FROM weather_observations
		WHERE latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
		  AND observed_at >= $5
		ORDER BY observed_at DESC
	`

	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	var history []models.PressureHistoryPoint
	err := r.db.SelectContext(ctx, "get_pressure_history", &history, query,
		latitude-coordinateEpsilon, latitude+coordinateEpsilon,
		longitude-coordinateEpsilon, longitude+coordinateEpsilon,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pressure history for (%.4f, %.4f): %w", latitude, longitude, err)
	}

	return history, nil
}

// conditionRow maps a catalog row with Postgres array columns.
type conditionRow struct {
	ID                   int64          `db:"id"`
	Name                 string         `db:"name"`
	AssociatedAlertTypes pq.StringArray `db:"associated_alert_types"`
	Symptoms             pq.StringArray `db:"symptoms"`
	PreventiveMeasures   pq.StringArray `db:"preventive_measures"`
	Version              int            `db:"version"`
}

// GetAllPressureSensitiveConditions returns the full condition catalog.
func (r *pressureRepository) GetAllPressureSensitiveConditions(ctx context.Context) ([]models.PressureSensitiveCondition, error) {
	query := `
		SELECT id, name, associated_alert_types, symptoms, preventive_measures, version
		FROM pressure_sensitive_conditions
		ORDER BY id
	`

	var rows []conditionRow
	err := r.db.SelectContext(ctx, "get_conditions", &rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get pressure sensitive conditions: %w", err)
	}

	conditions := make([]models.PressureSensitiveCondition, 0, len(rows))
	for _, row := range rows {
		alertTypes := make([]models.AlertType, 0, len(row.AssociatedAlertTypes))
		for _, raw := range row.AssociatedAlertTypes {
			alertTypes = append(alertTypes, models.AlertType(raw))
		}

		conditions = append(conditions, models.PressureSensitiveCondition{
			ID:                   row.ID,
			Name:                 row.Name,
			AssociatedAlertTypes: alertTypes,
			Symptoms:             row.Symptoms,
			PreventiveMeasures:   row.PreventiveMeasures,
			Version:              row.Version,
		})
	}

	return conditions, nil
}

// HealthCheck performs a repository health check
func (r *pressureRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) IsTransient() bool {
	return false
}
