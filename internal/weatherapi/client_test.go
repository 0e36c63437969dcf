package weatherapi_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressure-health-platform/internal/weatherapi"
	"pressure-health-platform/pkg/logging"
	"pressure-health-platform/pkg/metrics"
)

var testCollector = metrics.NewCollector("weatherapi_test")

func newTestClient(baseURL, apiKey string) *weatherapi.Client {
	logger := logging.NewStructuredLogger("weatherapi-test", "test", logging.ErrorLevel)
	return weatherapi.NewClient(weatherapi.Config{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, logger, testCollector)
}

func TestFetchCurrentWeather_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "57.7000", r.URL.Query().Get("lat"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"coord": {"lat": 57.70, "lon": 11.97},
			"main": {"temp": 8.5, "humidity": 82, "pressure": 1004.2},
			"wind": {"speed": 6.1},
			"weather": [{"main": "Rain"}],
			"sys": {"country": "SE"},
			"name": "Gothenburg",
			"dt": 1767778800
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	obs, err := client.FetchCurrentWeather(context.Background(), 57.70, 11.97)
	require.NoError(t, err)

	assert.Equal(t, "Gothenburg", obs.CityName)
	assert.Equal(t, "SE", obs.CountryCode)
	assert.Equal(t, 1004.2, obs.PressureHPa)
	assert.Equal(t, 8.5, obs.TemperatureCelsius)
	assert.Equal(t, 82.0, obs.HumidityPercent)
	assert.Equal(t, "Rain", obs.WeatherCondition)
	assert.Equal(t, time.Unix(1767778800, 0).UTC(), obs.ObservedAt)
	assert.NoError(t, obs.Validate())
}

func TestFetchCurrentWeather_InvalidCoordinates(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.FetchCurrentWeather(context.Background(), 999, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, weatherapi.ErrInvalidCoordinates)
	assert.False(t, called, "no HTTP call for out-of-range coordinates")
}

func TestFetchCurrentWeather_MissingAPIKey(t *testing.T) {
	client := newTestClient("http://unused.invalid", "")

	_, err := client.FetchCurrentWeather(context.Background(), 57.70, 11.97)
	require.Error(t, err)
	assert.ErrorIs(t, err, weatherapi.ErrMissingAPIKey)
}

func TestFetchCurrentWeather_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.FetchCurrentWeather(context.Background(), 57.70, 11.97)
	assert.Error(t, err)
}

func TestFetchCurrentWeather_RejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "bad-key")

	_, err := client.FetchCurrentWeather(context.Background(), 57.70, 11.97)
	require.Error(t, err)
	assert.ErrorIs(t, err, weatherapi.ErrMissingAPIKey)
}
