package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"pressure-health-platform/internal/analysis"
	"pressure-health-platform/internal/models"
	"pressure-health-platform/internal/repository"
	"pressure-health-platform/pkg/logging"
	"pressure-health-platform/pkg/metrics"
)

// testCollector is shared across the package; promauto registers metrics
// globally and a second registration would panic.
var testCollector = metrics.NewCollector("services_test")

func testLogger() *logging.StructuredLogger {
	return logging.NewStructuredLogger("services-test", "test", logging.ErrorLevel)
}

// fakeRepository is an in-memory PressureRepository for service tests.
type fakeRepository struct {
	mu sync.Mutex

	observations  []*models.WeatherObservation
	catalog       []models.PressureSensitiveCondition
	sensitivities map[string]*models.PatientPressureSensitivity // key user:condition
	events        []*models.PressureSymptomEvent

	nextObservationID int64
	nextSensitivityID int64
	nextEventID       int64
}

var _ repository.PressureRepository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	catalog := analysis.DefaultConditionCatalog()
	for i := range catalog {
		catalog[i].ID = int64(i + 1)
	}
	return &fakeRepository{
		catalog:       catalog,
		sensitivities: make(map[string]*models.PatientPressureSensitivity),
	}
}

func sensitivityKey(userID string, conditionID int64) string {
	return fmt.Sprintf("%s:%d", userID, conditionID)
}

func (f *fakeRepository) InsertObservation(_ context.Context, obs *models.WeatherObservation) error {
	if err := obs.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextObservationID++
	obs.ID = f.nextObservationID
	stored := *obs
	f.observations = append(f.observations, &stored)
	return nil
}

func (f *fakeRepository) GetPressureHistory(_ context.Context, latitude, longitude float64, hours int) ([]models.PressureHistoryPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	var history []models.PressureHistoryPoint
	for _, obs := range f.observations {
		if obs.Latitude == latitude && obs.Longitude == longitude && obs.ObservedAt.After(cutoff) {
			history = append(history, models.PressureHistoryPoint{
				PressureHPa: obs.PressureHPa,
				ObservedAt:  obs.ObservedAt,
			})
		}
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].ObservedAt.After(history[j].ObservedAt)
	})
	return history, nil
}

func (f *fakeRepository) GetAllPressureSensitiveConditions(_ context.Context) ([]models.PressureSensitiveCondition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.catalog, nil
}

func (f *fakeRepository) UpsertPatientSensitivity(_ context.Context, input models.SensitivityInput) (*models.PatientPressureSensitivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := sensitivityKey(input.UserID, input.ConditionID)
	now := time.Now().UTC()

	if existing, ok := f.sensitivities[key]; ok {
		existing.Confirmed = input.Confirmed
		existing.Sensitivity = input.Sensitivity
		existing.TypicalDropTriggerHPa = input.TypicalDropTriggerHPa
		existing.Notes = input.Notes
		existing.UpdatedAt = now
		copied := *existing
		return &copied, nil
	}

	f.nextSensitivityID++
	row := &models.PatientPressureSensitivity{
		ID:                    f.nextSensitivityID,
		UserID:                input.UserID,
		ConditionID:           input.ConditionID,
		Confirmed:             input.Confirmed,
		Sensitivity:           input.Sensitivity,
		TypicalDropTriggerHPa: input.TypicalDropTriggerHPa,
		Notes:                 input.Notes,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	f.sensitivities[key] = row
	copied := *row
	return &copied, nil
}

func (f *fakeRepository) GetPatientSensitivity(_ context.Context, userID string, sensitivityID int64) (*models.PatientPressureSensitivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, row := range f.sensitivities {
		if row.ID == sensitivityID && row.UserID == userID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, &repository.NotFoundError{
		Resource: "patient_pressure_sensitivity",
		ID:       fmt.Sprintf("%s:%d", userID, sensitivityID),
	}
}

func (f *fakeRepository) InsertSymptomEvent(ctx context.Context, input models.SymptomEventInput) (*models.PressureSymptomEvent, error) {
	if _, err := f.GetPatientSensitivity(ctx, input.UserID, input.SensitivityID); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextEventID++
	event := &models.PressureSymptomEvent{
		ID:                        f.nextEventID,
		UserID:                    input.UserID,
		SensitivityID:             input.SensitivityID,
		SymptomOnset:              input.SymptomOnset,
		Severity:                  input.Severity,
		PressureAtOnsetHPa:        input.PressureAtOnsetHPa,
		PressureChange1h:          input.PressureChange1h,
		Symptoms:                  input.Symptoms,
		InterventionTaken:         input.InterventionTaken,
		InterventionEffectiveness: input.InterventionEffectiveness,
		CreatedAt:                 time.Now().UTC(),
	}
	f.events = append(f.events, event)
	copied := *event
	return &copied, nil
}

func (f *fakeRepository) GetSymptomHistory(_ context.Context, userID string, days int) ([]*models.PressureSymptomEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	events := make([]*models.PressureSymptomEvent, 0)
	for _, event := range f.events {
		if event.UserID == userID && event.SymptomOnset.After(cutoff) {
			copied := *event
			events = append(events, &copied)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].SymptomOnset.After(events[j].SymptomOnset)
	})
	return events, nil
}

func (f *fakeRepository) HealthCheck(context.Context) error {
	return nil
}
