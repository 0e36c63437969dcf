package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"pressure-health-platform/internal/models"
	"pressure-health-platform/internal/repository"
	"pressure-health-platform/internal/services"
	"pressure-health-platform/pkg/logging"
	"pressure-health-platform/pkg/metrics"
)

// PressureHandler handles the pressure analysis and patient tracking API
type PressureHandler struct {
	pressureService    *services.PressureService
	sensitivityService *services.SensitivityService
	logger             *logging.StructuredLogger
	metrics            *metrics.Collector
}

// NewPressureHandler creates a new pressure handler
func NewPressureHandler(
	pressureService *services.PressureService,
	sensitivityService *services.SensitivityService,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *PressureHandler {
	return &PressureHandler{
		pressureService:    pressureService,
		sensitivityService: sensitivityService,
		logger:             logger,
		metrics:            metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// parseCoordinates extracts and validates latitude/longitude query params.
func parseCoordinates(r *http.Request) (float64, float64, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	if err != nil {
		return 0, 0, errors.New("latitude is required and must be a number")
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if err != nil {
		return 0, 0, errors.New("longitude is required and must be a number")
	}
	return lat, lon, nil
}

// AnalyzePressure handles GET /api/pressure/analysis
func (h *PressureHandler) AnalyzePressure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/api/pressure/analysis").Observe(time.Since(startTime).Seconds())
	}()

	lat, lon, err := parseCoordinates(r)
	if err != nil {
		h.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.pressureService.AnalyzeLocation(ctx, lat, lon)
	if err != nil {
		h.logger.Error(ctx, "[API_ANALYZE_ERROR] Pressure analysis failed", logging.Fields{
			"latitude":  lat,
			"longitude": lon,
		}, err)
		h.metrics.RecordAPIError("analysis_error", "/api/pressure/analysis")
		h.sendError(w, r, "pressure analysis failed", http.StatusBadGateway)
		return
	}

	h.metrics.RecordAPIRequest("/api/pressure/analysis", "GET", "200")
	h.sendJSON(w, report, http.StatusOK)
}

// GetPressureHistory handles GET /api/pressure/history
func (h *PressureHandler) GetPressureHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lat, lon, err := parseCoordinates(r)
	if err != nil {
		h.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	hours := 24
	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		if n, err := strconv.Atoi(hoursStr); err == nil {
			hours = n
		}
	}

	history, err := h.pressureService.GetPressureHistory(ctx, lat, lon, hours)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			h.sendError(w, r, validationErr.Message, http.StatusBadRequest)
			return
		}
		h.logger.Error(ctx, "[API_HISTORY_ERROR] Failed to get pressure history", logging.Fields{
			"latitude":  lat,
			"longitude": lon,
			"hours":     hours,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/pressure/history")
		h.sendError(w, r, "failed to retrieve pressure history", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/pressure/history", "GET", "200")
	h.sendJSON(w, history, http.StatusOK)
}

// GetConditions handles GET /api/conditions
func (h *PressureHandler) GetConditions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conditions, err := h.pressureService.GetConditionCatalog(ctx)
	if err != nil {
		h.logger.Error(ctx, "[API_CONDITIONS_ERROR] Failed to get condition catalog", logging.Fields{}, err)
		h.metrics.RecordAPIError("internal_error", "/api/conditions")
		h.sendError(w, r, "failed to retrieve conditions", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/conditions", "GET", "200")
	h.sendJSON(w, conditions, http.StatusOK)
}

// UpsertSensitivity handles PUT /api/patients/{userID}/sensitivities
func (h *PressureHandler) UpsertSensitivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["userID"]

	var input models.SensitivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.sendError(w, r, "invalid request body", http.StatusBadRequest)
		return
	}
	input.UserID = userID

	row, err := h.sensitivityService.UpsertSensitivity(ctx, input)
	if err != nil {
		h.logger.Error(ctx, "[API_SENSITIVITY_ERROR] Sensitivity upsert failed", logging.Fields{
			"user_id":      userID,
			"condition_id": input.ConditionID,
		}, err)
		h.metrics.RecordAPIError("upsert_error", "/api/patients/sensitivities")
		h.sendError(w, r, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.metrics.RecordAPIRequest("/api/patients/sensitivities", "PUT", "200")
	h.sendJSON(w, row, http.StatusOK)
}

// RecordSymptomEvent handles POST /api/patients/{userID}/symptom-events
func (h *PressureHandler) RecordSymptomEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["userID"]

	var input models.SymptomEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.sendError(w, r, "invalid request body", http.StatusBadRequest)
		return
	}
	input.UserID = userID

	event, err := h.sensitivityService.RecordSymptomEvent(ctx, input)
	if err != nil {
		var notFound *repository.NotFoundError
		if errors.As(err, &notFound) {
			h.sendError(w, r, notFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error(ctx, "[API_SYMPTOM_ERROR] Symptom event rejected", logging.Fields{
			"user_id":        userID,
			"sensitivity_id": input.SensitivityID,
		}, err)
		h.metrics.RecordAPIError("symptom_event_error", "/api/patients/symptom-events")
		h.sendError(w, r, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.metrics.RecordAPIRequest("/api/patients/symptom-events", "POST", "201")
	h.sendJSON(w, event, http.StatusCreated)
}

// GetSymptomHistory handles GET /api/patients/{userID}/symptom-events
func (h *PressureHandler) GetSymptomHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["userID"]

	days := 30
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if n, err := strconv.Atoi(daysStr); err == nil {
			days = n
		}
	}

	events, err := h.sensitivityService.SymptomHistory(ctx, userID, days)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			h.sendError(w, r, validationErr.Message, http.StatusBadRequest)
			return
		}
		h.logger.Error(ctx, "[API_SYMPTOM_HISTORY_ERROR] Failed to get symptom history", logging.Fields{
			"user_id": userID,
			"days":    days,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/patients/symptom-events")
		h.sendError(w, r, "failed to retrieve symptom history", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/patients/symptom-events", "GET", "200")
	h.sendJSON(w, events, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *PressureHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *PressureHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *PressureHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all API routes
func (h *PressureHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/pressure/analysis", h.AnalyzePressure).Methods("GET")
	router.HandleFunc("/api/pressure/history", h.GetPressureHistory).Methods("GET")
	router.HandleFunc("/api/conditions", h.GetConditions).Methods("GET")
	router.HandleFunc("/api/patients/{userID}/sensitivities", h.UpsertSensitivity).Methods("PUT")
	router.HandleFunc("/api/patients/{userID}/symptom-events", h.RecordSymptomEvent).Methods("POST")
	router.HandleFunc("/api/patients/{userID}/symptom-events", h.GetSymptomHistory).Methods("GET")
	router.HandleFunc("/api/docs/openapi.json", OpenAPISpec).Methods("GET")
	router.HandleFunc("/api/docs", SwaggerUI).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}
