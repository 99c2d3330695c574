package config

import (
	"os"
	"strconv"
)

// Clustering holds the zoom bands and grid cell sizes. The defaults
// match the marketplace backend: street level keeps every donation as
// its own marker, the two grid bands bucket by ~1km and ~5km cells.
type Clustering struct {
	StreetZoom       int     // zoom >= this: singleton clusters
	NeighborhoodZoom int     // zoom >= this (and < StreetZoom): fine grid
	NeighborhoodCell float64 // degrees
	RegionalCell     float64 // degrees
}

// Config holds all application-level configuration.
type Config struct {
	// External services
	NominatimURL    string
	StatisticsURL   string
	GeocoderBackend string // "nominatim" or "maps"

	// Geocoding
	GeocodeDelayMs   int // politeness delay between Nominatim calls
	GeocodeTimeoutMs int

	// Map engine
	Clustering      Clustering
	DebounceDelayMs int

	// Background jobs
	BackfillSchedule string

	// Server
	Port string
}

// Load reads configuration from environment variables or falls back to defaults.
func Load() *Config {
	return &Config{
		NominatimURL:     getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		StatisticsURL:    getEnv("STATISTICS_URL", ""),
		GeocoderBackend:  getEnv("GEOCODER_BACKEND", "nominatim"),
		GeocodeDelayMs:   getEnvInt("GEOCODE_DELAY_MS", 1000),
		GeocodeTimeoutMs: getEnvInt("GEOCODE_TIMEOUT_MS", 10000),
		Clustering: Clustering{
			StreetZoom:       getEnvInt("CLUSTER_STREET_ZOOM", 15),
			NeighborhoodZoom: getEnvInt("CLUSTER_NEIGHBORHOOD_ZOOM", 10),
			NeighborhoodCell: getEnvFloat("CLUSTER_NEIGHBORHOOD_CELL", 0.01),
			RegionalCell:     getEnvFloat("CLUSTER_REGIONAL_CELL", 0.05),
		},
		DebounceDelayMs:  getEnvInt("MAP_DEBOUNCE_MS", 300),
		BackfillSchedule: getEnv("GEOCODE_BACKFILL_CRON", "*/10 * * * *"),
		Port:             getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
