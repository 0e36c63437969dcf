package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"pressure-health-platform/internal/models"
	"pressure-health-platform/pkg/logging"
)

// UpsertPatientSensitivity creates or overwrites the sensitivity record for
// (userID, conditionID). The unique constraint plus ON CONFLICT makes the
// read-modify-write atomic under concurrent upserts for the same key;
// last write wins. Idempotent under repeated identical input.
func (r *pressureRepository) UpsertPatientSensitivity(ctx context.Context, input models.SensitivityInput) (*models.PatientPressureSensitivity, error) {
	query := `
		INSERT INTO patient_pressure_sensitivities (
			user_id, condition_id, confirmed, sensitivity,
			typical_drop_trigger_hpa, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, condition_id) DO UPDATE SET
			confirmed = EXCLUDED.confirmed,
			sensitivity = EXCLUDED.sensitivity,
			typical_drop_trigger_hpa = EXCLUDED.typical_drop_trigger_hpa,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, condition_id, confirmed, sensitivity,
		          typical_drop_trigger_hpa, notes, created_at, updated_at
	`

	now := time.Now().UTC()

	var row models.PatientPressureSensitivity
	err := r.db.DB().QueryRowxContext(ctx, query,
		input.UserID,
		input.ConditionID,
		input.Confirmed,
		input.Sensitivity,
		input.TypicalDropTriggerHPa,
		input.Notes,
		now,
	).StructScan(&row)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert sensitivity for user %s condition %d: %w",
			input.UserID, input.ConditionID, err)
	}

	r.logger.Debug(ctx, "[REPO_UPSERT_SENSITIVITY] Sensitivity upserted", logging.Fields{
		"sensitivity_id": row.ID,
		"user_id":        row.UserID,
		"condition_id":   row.ConditionID,
		"confirmed":      row.Confirmed,
	})

	return &row, nil
}

// GetPatientSensitivity retrieves one sensitivity record scoped to a user.
func (r *pressureRepository) GetPatientSensitivity(ctx context.Context, userID string, sensitivityID int64) (*models.PatientPressureSensitivity, error) {
	query := `
		SELECT id, user_id, condition_id, confirmed, sensitivity,
		       typical_drop_trigger_hpa, notes, created_at, updated_at
		FROM patient_pressure_sensitivities
		WHERE id = $1 AND user_id = $2
	`

	var row models.PatientPressureSensitivity
	err := r.db.GetContext(ctx, "get_sensitivity", &row, query, sensitivityID, userID)

	if err == sql.ErrNoRows {
		return nil, &NotFoundError{
			Resource: "patient_pressure_sensitivity",
			ID:       fmt.Sprintf("%s:%d", userID, sensitivityID),
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get sensitivity %d for user %s: %w", sensitivityID, userID, err)
	}

	return &row, nil
}

// symptomEventRow maps an event row with its Postgres array column.
type symptomEventRow struct {
	ID                        int64          `db:"id"`
	UserID                    string         `db:"user_id"`
	SensitivityID             int64          `db:"sensitivity_id"`
	SymptomOnset              time.Time      `db:"symptom_onset"`
	Severity                  int            `db:"severity"`
	PressureAtOnsetHPa        float64        `db:"pressure_at_onset_hpa"`
	PressureChange1h          *float64       `db:"pressure_change_1h"`
	Symptoms                  pq.StringArray `db:"symptoms"`
	InterventionTaken         string         `db:"intervention_taken"`
	InterventionEffectiveness *int           `db:"intervention_effectiveness"`
	CreatedAt                 time.Time      `db:"created_at"`
}

func (row *symptomEventRow) toModel() *models.PressureSymptomEvent {
	return &models.PressureSymptomEvent{
		ID:                        row.ID,
		UserID:                    row.UserID,
		SensitivityID:             row.SensitivityID,
		SymptomOnset:              row.SymptomOnset,
		Severity:                  row.Severity,
		PressureAtOnsetHPa:        row.PressureAtOnsetHPa,
		PressureChange1h:          row.PressureChange1h,
		Symptoms:                  row.Symptoms,
		InterventionTaken:         row.InterventionTaken,
		InterventionEffectiveness: row.InterventionEffectiveness,
		CreatedAt:                 row.CreatedAt,
	}
}

// InsertSymptomEvent appends one symptom event to the audit trail. The
// referenced sensitivity must already exist for that user; a missing
// reference fails with NotFoundError and never creates a sensitivity row
// as a side effect.
func (r *pressureRepository) InsertSymptomEvent(ctx context.Context, input models.SymptomEventInput) (*models.PressureSymptomEvent, error) {
	if _, err := r.GetPatientSensitivity(ctx, input.UserID, input.SensitivityID); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO pressure_symptom_events (
			user_id, sensitivity_id, symptom_onset, severity,
			pressure_at_onset_hpa, pressure_change_1h, symptoms,
			intervention_taken, intervention_effectiveness, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, sensitivity_id, symptom_onset, severity,
		          pressure_at_onset_hpa, pressure_change_1h, symptoms,
		          intervention_taken, intervention_effectiveness, created_at
	`

	var row symptomEventRow
	err := r.db.DB().QueryRowxContext(ctx, query,
		input.UserID,
		input.SensitivityID,
		input.SymptomOnset,
		input.Severity,
		input.PressureAtOnsetHPa,
		input.PressureChange1h,
		pq.Array(input.Symptoms),
		input.InterventionTaken,
		input.InterventionEffectiveness,
		time.Now().UTC(),
	).StructScan(&row)

	if err != nil {
		return nil, fmt.Errorf("failed to insert symptom event for user %s sensitivity %d: %w",
			input.UserID, input.SensitivityID, err)
	}

	r.metrics.SymptomEventsTotal.Inc()
	r.logger.Debug(ctx, "[REPO_INSERT_SYMPTOM_EVENT] Symptom event recorded", logging.Fields{
		"event_id":       row.ID,
		"user_id":        row.UserID,
		"sensitivity_id": row.SensitivityID,
		"severity":       row.Severity,
	})

	return row.toModel(), nil
}

// GetSymptomHistory returns the user's symptom events within the trailing
// window in days, most recent first. An empty window yields an empty slice,
// not an error.
func (r *pressureRepository) GetSymptomHistory(ctx context.Context, userID string, days int) ([]*models.PressureSymptomEvent, error) {
	query := `
		SELECT id, user_id, sensitivity_id, symptom_onset, severity,
		       pressure_at_onset_hpa, pressure_change_1h, symptoms,
		       intervention_taken, intervention_effectiveness, created_at
		FROM pressure_symptom_events
		WHERE user_id = $1 AND symptom_onset >= $2
		ORDER BY symptom_onset DESC
	`

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	var rows []symptomEventRow
	err := r.db.SelectContext(ctx, "get_symptom_history", &rows, query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to get symptom history for user %s: %w", userID, err)
	}

	events := make([]*models.PressureSymptomEvent, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].toModel())
	}

	return events, nil
}
