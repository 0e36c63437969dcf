package models

// Trend classifies the direction of barometric movement.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// AlertType identifies a clinically meaningful pressure dynamic.
type AlertType string

const (
	AlertRapidDrop   AlertType = "rapid_drop"
	AlertRapidRise   AlertType = "rapid_rise"
	AlertExtremeLow  AlertType = "extreme_low"
	AlertExtremeHigh AlertType = "extreme_high"
)

// Severity grades how strongly an alert should be surfaced to patients.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// PressureChange is the derived view of current pressure against recent
// history. It is computed fresh on every pipeline run and never persisted.
// Change1h is nil when no history point exists in roughly the last hour;
// nil means "undefined", not zero.
type PressureChange struct {
	CurrentHPa  float64  `json:"current_hpa"`
	Change1h    *float64 `json:"change_1h,omitempty"`
	VelocityHPa float64  `json:"velocity_hpa_per_hour"`
	Trend       Trend    `json:"trend"`
}

// PressureAlert is a single classified alert condition. Zero or more may
// fire for one PressureChange; types can co-occur.
type PressureAlert struct {
	Type     AlertType `json:"type"`
	Severity Severity  `json:"severity"`
}

// PressureSensitiveCondition is a medical-knowledge catalog entry linking
// alert types to a condition with its symptoms and preventive measures.
// Read-mostly reference data, versioned in storage.
type PressureSensitiveCondition struct {
	ID                   int64       `json:"id"`
	Name                 string      `json:"name"`
	AssociatedAlertTypes []AlertType `json:"associated_alert_types"`
	Symptoms             []string    `json:"symptoms"`
	PreventiveMeasures   []string    `json:"preventive_measures"`
	Version              int         `json:"version"`
}

// Recommendation is the patient-facing guidance emitted for one matched
// condition.
type Recommendation struct {
	Condition          string   `json:"condition"`
	Symptoms           []string `json:"symptoms"`
	PreventiveMeasures []string `json:"preventive_measures"`
}
