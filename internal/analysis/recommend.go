package analysis

import (
	"pressure-health-platform/internal/models"
)

// ConditionRecommendations maps detected alerts onto the pressure-sensitive
// condition catalog: one recommendation per catalog entry whose associated
// alert types include a fired alert, deduplicated by condition name when
// multiple alerts match the same entry. Catalog order is preserved so the
// output is deterministic for identical input.
//
// The catalog is supplied by the caller; this function owns no state and
// performs no I/O. Empty alerts always yield an empty result.
func ConditionRecommendations(alerts []models.PressureAlert, catalog []models.PressureSensitiveCondition) []models.Recommendation {
	if len(alerts) == 0 {
		return nil
	}

	fired := make(map[models.AlertType]bool, len(alerts))
	for _, alert := range alerts {
		fired[alert.Type] = true
	}

	var recommendations []models.Recommendation
	seen := make(map[string]bool)

	for _, condition := range catalog {
		if seen[condition.Name] {
			continue
		}
		for _, alertType := range condition.AssociatedAlertTypes {
			if fired[alertType] {
				recommendations = append(recommendations, models.Recommendation{
					Condition:          condition.Name,
					Symptoms:           condition.Symptoms,
					PreventiveMeasures: condition.PreventiveMeasures,
				})
				seen[condition.Name] = true
				break
			}
		}
	}

	return recommendations
}
