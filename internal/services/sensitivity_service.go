package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"pressure-health-platform/internal/models"
	"pressure-health-platform/internal/repository"
	"pressure-health-platform/pkg/logging"
	"pressure-health-platform/pkg/metrics"
)

// SensitivityService maintains per-patient pressure sensitivity state and
// the append-only symptom event log.
//
// State machine per (userID, conditionID): unknown (no row) -> suspected
// (Confirmed=false, created on first correlated event) -> confirmed
// (Confirmed=true via corroborating upsert or clinical confirmation).
type SensitivityService struct {
	repo     repository.PressureRepository
	validate *validator.Validate
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector
}

// NewSensitivityService creates a new sensitivity tracking service
func NewSensitivityService(repo repository.PressureRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *SensitivityService {
	return &SensitivityService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
		metrics:  metricsCollector,
	}
}

// UpsertSensitivity creates or overwrites the sensitivity record for the
// input's (userID, conditionID) pair. Last write wins; repeated identical
// input is idempotent.
func (s *SensitivityService) UpsertSensitivity(ctx context.Context, input models.SensitivityInput) (*models.PatientPressureSensitivity, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid sensitivity input for user %s: %w", input.UserID, err)
	}

	row, err := s.repo.UpsertPatientSensitivity(ctx, input)
	if err != nil {
		return nil, err
	}

	s.metrics.SensitivityUpsertsTotal.Inc()
	s.logger.Info(ctx, "[SENSITIVITY_UPSERT] Patient sensitivity updated", logging.Fields{
		"user_id":      row.UserID,
		"condition_id": row.ConditionID,
		"confirmed":    row.Confirmed,
		"sensitivity":  string(row.Sensitivity),
	})

	return row, nil
}

// RecordSymptomEvent appends one symptom event tied to an existing
// sensitivity record. A missing sensitivity reference fails loudly; the
// tracker never creates a sensitivity row as a side effect of logging.
func (s *SensitivityService) RecordSymptomEvent(ctx context.Context, input models.SymptomEventInput) (*models.PressureSymptomEvent, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid symptom event for user %s: %w", input.UserID, err)
	}

	event, err := s.repo.InsertSymptomEvent(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "[SYMPTOM_EVENT] Symptom event recorded", logging.Fields{
		"user_id":        event.UserID,
		"sensitivity_id": event.SensitivityID,
		"severity":       event.Severity,
		"pressure_hpa":   event.PressureAtOnsetHPa,
	})

	return event, nil
}

// SymptomHistory returns the user's symptom events within the trailing
// window in days, most recent first. No events is an empty list, not an
// error.
func (s *SensitivityService) SymptomHistory(ctx context.Context, userID string, days int) ([]*models.PressureSymptomEvent, error) {
	if userID == "" {
		return nil, &models.ValidationError{
			Field:   "user_id",
			Value:   "",
			Message: "user id is required",
		}
	}
	if days <= 0 {
		return nil, &models.ValidationError{
			Field:   "days",
			Value:   fmt.Sprintf("%d", days),
			Message: "days must be positive",
		}
	}

	return s.repo.GetSymptomHistory(ctx, userID, days)
}
