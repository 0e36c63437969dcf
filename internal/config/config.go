package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pressure-health-platform/internal/analysis"
)

// Config holds all application settings, populated from environment
// variables with sensible defaults. A .env file is honored when present.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Weather  WeatherConfig
	Monitor  MonitorConfig
	Analysis analysis.Thresholds
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// WeatherConfig holds weather provider client settings
type WeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// MonitorConfig holds the scheduled pipeline settings
type MonitorConfig struct {
	FetchInterval time.Duration
	Locations     []Location
}

// Location is one tracked coordinate.
type Location struct {
	Latitude  float64
	Longitude float64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getenvDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getenvInt("SERVER_PORT", 8080),
			ReadTimeout:  getenvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getenvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getenvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getenvDefault("DB_HOST", "localhost"),
			Port:            getenvInt("DB_PORT", 5432),
			User:            getenvDefault("DB_USER", "postgres"),
			Password:        getenvDefault("DB_PASSWORD", "postgres"),
			Database:        getenvDefault("DB_NAME", "pressure_health"),
			SSLMode:         getenvDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnMaxIdleTime: getenvDuration("DB_CONN_MAX_IDLE_TIME", 1*time.Minute),
		},
		Weather: WeatherConfig{
			APIKey:  os.Getenv("WEATHER_API_KEY"),
			BaseURL: getenvDefault("WEATHER_API_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
			Timeout: getenvDuration("WEATHER_API_TIMEOUT", 10*time.Second),
		},
		Monitor: MonitorConfig{
			FetchInterval: getenvDuration("FETCH_INTERVAL", time.Hour),
		},
		Analysis: analysis.Thresholds{
			RapidDropVelocity: getenvFloat("THRESHOLD_RAPID_DROP", 5.0),
			RapidRiseVelocity: getenvFloat("THRESHOLD_RAPID_RISE", 6.0),
			ExtremeLowHPa:     getenvFloat("THRESHOLD_EXTREME_LOW", 975.0),
			ExtremeHighHPa:    getenvFloat("THRESHOLD_EXTREME_HIGH", 1030.0),
			StableBandHPa:     getenvFloat("THRESHOLD_STABLE_BAND", 1.0),
		},
		Logging: LoggingConfig{
			Level: getenvDefault("LOG_LEVEL", "info"),
		},
	}

	locations, err := parseLocations(os.Getenv("TRACKED_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.Monitor.Locations = locations

	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Host == "" || c.Database.Database == "" {
		return fmt.Errorf("database host and name are required")
	}
	if c.Monitor.FetchInterval < time.Minute {
		return fmt.Errorf("fetch interval %s is below the 1 minute minimum", c.Monitor.FetchInterval)
	}
	if c.Analysis.RapidDropVelocity <= 0 || c.Analysis.RapidRiseVelocity <= 0 {
		return fmt.Errorf("velocity thresholds must be positive magnitudes")
	}
	if c.Analysis.ExtremeLowHPa >= c.Analysis.ExtremeHighHPa {
		return fmt.Errorf("extreme-low threshold %.1f must be below extreme-high %.1f",
			c.Analysis.ExtremeLowHPa, c.Analysis.ExtremeHighHPa)
	}
	for _, loc := range c.Monitor.Locations {
		if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
			return fmt.Errorf("tracked location out of range: (%.4f, %.4f)", loc.Latitude, loc.Longitude)
		}
	}
	return nil
}

// parseLocations parses TRACKED_LOCATIONS, a comma-separated list of
// "lat:lon" pairs, e.g. "57.70:11.97,40.71:-74.00".
func parseLocations(raw string) ([]Location, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var locations []Location
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid TRACKED_LOCATIONS entry %q, expected lat:lon", pair)
		}

		lat, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", pair, err)
		}
		lon, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", pair, err)
		}

		locations = append(locations, Location{Latitude: lat, Longitude: lon})
	}

	return locations, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
