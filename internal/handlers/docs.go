package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the Pressure Health Platform API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Pressure Health Platform API",
			"description": "Barometric pressure dynamics analysis with patient-specific alerting, condition recommendations, and sensitivity tracking",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "Pressure Health Platform Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/pressure/analysis": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Analyze pressure dynamics for a location",
					"description": "Fetches the current observation, stores it, and returns trend, velocity, alerts, and condition recommendations",
					"parameters": []map[string]interface{}{
						{
							"name":        "latitude",
							"in":          "query",
							"description": "Latitude in degrees (-90 to 90)",
							"required":    true,
							"schema":      map[string]string{"type": "number"},
						},
						{
							"name":        "longitude",
							"in":          "query",
							"description": "Longitude in degrees (-180 to 180)",
							"required":    true,
							"schema":      map[string]string{"type": "number"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Pressure analysis report"},
						"400": map[string]interface{}{"description": "Missing or malformed coordinates"},
						"502": map[string]interface{}{"description": "Weather provider fetch failed"},
					},
				},
			},
			"/api/pressure/history": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Get stored pressure history for a location",
					"parameters": []map[string]interface{}{
						{
							"name":     "latitude",
							"in":       "query",
							"required": true,
							"schema":   map[string]string{"type": "number"},
						},
						{
							"name":     "longitude",
							"in":       "query",
							"required": true,
							"schema":   map[string]string{"type": "number"},
						},
						{
							"name":        "hours",
							"in":          "query",
							"description": "Trailing window in hours (default 24, max 720)",
							"required":    false,
							"schema":      map[string]string{"type": "integer"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Pressure history points, most recent first"},
						"400": map[string]interface{}{"description": "Invalid parameters"},
					},
				},
			},
			"/api/conditions": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "List pressure-sensitive conditions",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Condition catalog with alert associations"},
					},
				},
			},
			"/api/patients/{userID}/sensitivities": map[string]interface{}{
				"put": map[string]interface{}{
					"summary":     "Create or update a patient pressure sensitivity",
					"description": "Upserts the record for (user, condition); last write wins",
					"parameters": []map[string]interface{}{
						{
							"name":     "userID",
							"in":       "path",
							"required": true,
							"schema":   map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Resulting sensitivity record"},
						"422": map[string]interface{}{"description": "Invalid sensitivity payload"},
					},
				},
			},
			"/api/patients/{userID}/symptom-events": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Record a pressure-correlated symptom event",
					"description": "Appends to the audit trail; the referenced sensitivity must exist",
					"parameters": []map[string]interface{}{
						{
							"name":     "userID",
							"in":       "path",
							"required": true,
							"schema":   map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"201": map[string]interface{}{"description": "Created symptom event"},
						"404": map[string]interface{}{"description": "Referenced sensitivity does not exist"},
						"422": map[string]interface{}{"description": "Invalid event payload"},
					},
				},
				"get": map[string]interface{}{
					"summary": "Get patient symptom history",
					"parameters": []map[string]interface{}{
						{
							"name":     "userID",
							"in":       "path",
							"required": true,
							"schema":   map[string]string{"type": "string"},
						},
						{
							"name":        "days",
							"in":          "query",
							"description": "Trailing window in days (default 30)",
							"required":    false,
							"schema":      map[string]string{"type": "integer"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Symptom events, most recent first"},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Health check",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Service is healthy"},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
