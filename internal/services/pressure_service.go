package services

import (
	"context"
	"fmt"
	"time"

	"pressure-health-platform/internal/analysis"
	"pressure-health-platform/internal/models"
	"pressure-health-platform/internal/repository"
	"pressure-health-platform/internal/weatherapi"
	"pressure-health-platform/pkg/logging"
	"pressure-health-platform/pkg/metrics"
)

// historyWindowHours bounds how far back the pipeline reads stored history
// for trend analysis.
const historyWindowHours = 24

// PressureReport is the full output of one analysis pipeline run for a
// location.
type PressureReport struct {
	Observation     *models.WeatherObservation `json:"observation"`
	Change          models.PressureChange      `json:"change"`
	Alerts          []models.PressureAlert     `json:"alerts"`
	Recommendations []models.Recommendation    `json:"recommendations"`
}

// PressureService runs the fetch -> store -> analyze -> alert -> recommend
// pipeline. Each location's run is independent; runs hold no state between
// the analytical steps, so a caller may abandon a run freely.
type PressureService struct {
	fetcher    weatherapi.Fetcher
	repo       repository.PressureRepository
	thresholds analysis.Thresholds
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewPressureService creates a new pressure analysis service
func NewPressureService(
	fetcher weatherapi.Fetcher,
	repo repository.PressureRepository,
	thresholds analysis.Thresholds,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *PressureService {
	return &PressureService{
		fetcher:    fetcher,
		repo:       repo,
		thresholds: thresholds,
		logger:     logger,
		metrics:    metricsCollector,
	}
}

// AnalyzeLocation runs the full pipeline for one coordinate: fetch the
// current observation, store it, compute pressure dynamics against stored
// history, classify alerts, and map them to condition recommendations.
// Any failure abandons this cycle for the location; retries belong to the
// scheduler, not here.
func (s *PressureService) AnalyzeLocation(ctx context.Context, latitude, longitude float64) (*PressureReport, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.AnalysisDuration.Observe(time.Since(startTime).Seconds())
	}()

	obs, err := s.fetcher.FetchCurrentWeather(ctx, latitude, longitude)
	if err != nil {
		return nil, fmt.Errorf("pipeline abandoned for (%.4f, %.4f): %w", latitude, longitude, err)
	}

	// History is read before the insert so the current reading never
	// becomes its own 1-hour reference.
	history, err := s.repo.GetPressureHistory(ctx, latitude, longitude, historyWindowHours)
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertObservation(ctx, obs); err != nil {
		return nil, err
	}

	change := analysis.CalculatePressureChange(obs.PressureHPa, obs.ObservedAt, history, s.thresholds)
	alerts := analysis.DetectPressureAlerts(change, s.thresholds)

	for _, alert := range alerts {
		s.metrics.RecordAlert(string(alert.Type), string(alert.Severity))
	}

	catalog, err := s.repo.GetAllPressureSensitiveConditions(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		catalog = analysis.DefaultConditionCatalog()
	}

	recommendations := analysis.ConditionRecommendations(alerts, catalog)
	s.metrics.RecommendationsTotal.Add(float64(len(recommendations)))

	s.logger.Info(ctx, "[PRESSURE_ANALYSIS] Location analyzed", logging.Fields{
		"latitude":        latitude,
		"longitude":       longitude,
		"pressure_hpa":    obs.PressureHPa,
		"trend":           string(change.Trend),
		"velocity":        change.VelocityHPa,
		"alerts":          len(alerts),
		"recommendations": len(recommendations),
		"history_points":  len(history),
	})

	return &PressureReport{
		Observation:     obs,
		Change:          change,
		Alerts:          alerts,
		Recommendations: recommendations,
	}, nil
}

// GetPressureHistory exposes stored history for a location.
func (s *PressureService) GetPressureHistory(ctx context.Context, latitude, longitude float64, hours int) ([]models.PressureHistoryPoint, error) {
	if hours <= 0 || hours > 24*30 {
		return nil, &models.ValidationError{
			Field:   "hours",
			Value:   fmt.Sprintf("%d", hours),
			Message: "hours must be between 1 and 720",
		}
	}
	return s.repo.GetPressureHistory(ctx, latitude, longitude, hours)
}

// GetConditionCatalog returns the pressure-sensitive condition catalog.
func (s *PressureService) GetConditionCatalog(ctx context.Context) ([]models.PressureSensitiveCondition, error) {
	return s.repo.GetAllPressureSensitiveConditions(ctx)
}
