package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"pressure-health-platform/internal/models"
	"pressure-health-platform/pkg/logging"
	"pressure-health-platform/pkg/metrics"
)

// Fetcher is the external weather collaborator consumed by the pipeline.
type Fetcher interface {
	FetchCurrentWeather(ctx context.Context, latitude, longitude float64) (*models.WeatherObservation, error)
}

var (
	// ErrInvalidCoordinates is returned before any HTTP call when the
	// requested coordinates are outside the valid geographic range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrMissingAPIKey is returned when the client has no credentials.
	ErrMissingAPIKey = errors.New("weather api key is not configured")

	errServerError = errors.New("weather provider server error")
	errRateLimited = errors.New("weather provider rate limited")
	errUnexpected  = errors.New("unexpected status code")
)

// Config holds client settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client fetches current weather from an OpenWeatherMap-compatible API,
// wrapped in a circuit breaker so a failing provider cannot stall the
// scheduled pipeline.
type Client struct {
	cfg     Config
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewClient creates a weather API client.
func NewClient(cfg Config, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openweathermap.org/data/2.5/weather"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather-provider",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		circuit: cb,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// openWeatherPayload mirrors the provider's current-weather response.
type openWeatherPayload struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
}

// FetchCurrentWeather fetches and normalizes the current observation for a
// coordinate. It fails fast for out-of-range coordinates and missing
// credentials; provider failures surface as errors rather than hanging the
// pipeline (bounded by the HTTP timeout and the circuit breaker).
func (c *Client) FetchCurrentWeather(ctx context.Context, latitude, longitude float64) (*models.WeatherObservation, error) {
	if latitude < models.MinLatitude || latitude > models.MaxLatitude ||
		longitude < models.MinLongitude || longitude > models.MaxLongitude {
		c.metrics.RecordWeatherFetch("invalid_coordinates")
		return nil, fmt.Errorf("%w: (%.4f, %.4f)", ErrInvalidCoordinates, latitude, longitude)
	}

	if c.cfg.APIKey == "" {
		c.metrics.RecordWeatherFetch("missing_credentials")
		return nil, ErrMissingAPIKey
	}

	timer := time.Now()
	defer func() {
		c.metrics.WeatherFetchDuration.Observe(time.Since(timer).Seconds())
	}()

	values := url.Values{}
	values.Set("appid", c.cfg.APIKey)
	values.Set("units", "metric")
	values.Set("lat", fmt.Sprintf("%.4f", latitude))
	values.Set("lon", fmt.Sprintf("%.4f", longitude))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.http.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: provider rejected credentials", ErrMissingAPIKey)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}

		var payload openWeatherPayload
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
			return nil, fmt.Errorf("failed to decode weather payload: %w", decodeErr)
		}
		return &payload, nil
	})

	if err != nil {
		c.metrics.RecordWeatherFetch("error")
		c.logger.Error(ctx, "[WEATHER_FETCH_ERROR] Weather fetch failed", logging.Fields{
			"latitude":  latitude,
			"longitude": longitude,
		}, err)
		return nil, fmt.Errorf("weather fetch for (%.4f, %.4f) failed: %w", latitude, longitude, err)
	}

	payload := result.(*openWeatherPayload)

	observedAt := time.Unix(payload.Dt, 0).UTC()
	if payload.Dt == 0 {
		observedAt = time.Now().UTC()
	}

	condition := ""
	if len(payload.Weather) > 0 {
		condition = payload.Weather[0].Main
	}

	obs := &models.WeatherObservation{
		Latitude:           latitude,
		Longitude:          longitude,
		CityName:           payload.Name,
		CountryCode:        payload.Sys.Country,
		PressureHPa:        payload.Main.Pressure,
		TemperatureCelsius: payload.Main.Temp,
		HumidityPercent:    payload.Main.Humidity,
		WeatherCondition:   condition,
		WindSpeedMS:        payload.Wind.Speed,
		ObservedAt:         observedAt,
	}

	c.metrics.RecordWeatherFetch("success")
	c.logger.Debug(ctx, "[WEATHER_FETCH] Observation fetched", logging.Fields{
		"latitude":     latitude,
		"longitude":    longitude,
		"city":         obs.CityName,
		"pressure_hpa": obs.PressureHPa,
	})

	return obs, nil
}
