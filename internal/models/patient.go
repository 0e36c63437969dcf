package models

import "time"

// SensitivityLevel grades how strongly a patient reacts to pressure changes.
type SensitivityLevel string

const (
	SensitivityLowLevel      SensitivityLevel = "low"
	SensitivityModerateLevel SensitivityLevel = "moderate"
	SensitivityHighLevel     SensitivityLevel = "high"
)

// PatientPressureSensitivity is the per-(user, condition) sensitivity record.
// Created suspected (Confirmed=false) on the first correlated event and
// upserted in place thereafter; rows are unique per (UserID, ConditionID).
// Confirmed escalates false to true on corroborating evidence and is never
// auto-demoted by this core.
type PatientPressureSensitivity struct {
	ID                    int64            `json:"id" db:"id"`
	UserID                string           `json:"user_id" db:"user_id"`
	ConditionID           int64            `json:"condition_id" db:"condition_id"`
	Confirmed             bool             `json:"confirmed" db:"confirmed"`
	Sensitivity           SensitivityLevel `json:"sensitivity" db:"sensitivity"`
	TypicalDropTriggerHPa float64          `json:"typical_drop_trigger_hpa" db:"typical_drop_trigger_hpa"`
	Notes                 string           `json:"notes" db:"notes"`
	CreatedAt             time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at" db:"updated_at"`
}

// SensitivityInput is the upsert payload for a patient sensitivity record.
type SensitivityInput struct {
	UserID                string           `json:"user_id" validate:"required"`
	ConditionID           int64            `json:"condition_id" validate:"required,gt=0"`
	Confirmed             bool             `json:"confirmed"`
	Sensitivity           SensitivityLevel `json:"sensitivity" validate:"required,oneof=low moderate high"`
	TypicalDropTriggerHPa float64          `json:"typical_drop_trigger_hpa" validate:"gte=0"`
	Notes                 string           `json:"notes"`
}

// PressureSymptomEvent is one append-only entry in the symptom audit trail.
// Never mutated or deleted; the raw material for longitudinal correlation.
type PressureSymptomEvent struct {
	ID                        int64     `json:"id" db:"id"`
	UserID                    string    `json:"user_id" db:"user_id"`
	SensitivityID             int64     `json:"sensitivity_id" db:"sensitivity_id"`
	SymptomOnset              time.Time `json:"symptom_onset" db:"symptom_onset"`
	Severity                  int       `json:"severity" db:"severity"`
	PressureAtOnsetHPa        float64   `json:"pressure_at_onset_hpa" db:"pressure_at_onset_hpa"`
	PressureChange1h          *float64  `json:"pressure_change_1h,omitempty" db:"pressure_change_1h"`
	Symptoms                  []string  `json:"symptoms"`
	InterventionTaken         string    `json:"intervention_taken" db:"intervention_taken"`
	InterventionEffectiveness *int      `json:"intervention_effectiveness,omitempty" db:"intervention_effectiveness"`
	CreatedAt                 time.Time `json:"created_at" db:"created_at"`
}

// SymptomEventInput is the payload for logging a symptom event against an
// existing sensitivity record.
type SymptomEventInput struct {
	UserID                    string    `json:"user_id" validate:"required"`
	SensitivityID             int64     `json:"sensitivity_id" validate:"required,gt=0"`
	SymptomOnset              time.Time `json:"symptom_onset" validate:"required"`
	Severity                  int       `json:"severity" validate:"required,min=1,max=10"`
	PressureAtOnsetHPa        float64   `json:"pressure_at_onset_hpa" validate:"required,gte=900,lte=1100"`
	PressureChange1h          *float64  `json:"pressure_change_1h,omitempty"`
	Symptoms                  []string  `json:"symptoms" validate:"required,min=1,dive,required"`
	InterventionTaken         string    `json:"intervention_taken"`
	InterventionEffectiveness *int      `json:"intervention_effectiveness,omitempty" validate:"omitempty,min=1,max=10"`
}
