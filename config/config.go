package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the truckpath server
type Config struct {
	// HTTP
	Port        string
	GinMode     string
	CORSOrigins []string

	// Road data
	RoadsSource string
	RoadsTable  string

	// Routing
	SpeedLookup     string
	DefaultSpeedKmh float64
	Warmup          bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		// HTTP
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", ""),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),

		// Road data
		RoadsSource: getEnv("ROADS_SOURCE", "public/cdg_private_service_roads.geojson"),
		RoadsTable:  getEnv("ROADS_TABLE", "road_segments"),

		// Routing
		SpeedLookup:     strings.ToLower(getEnv("SPEED_LOOKUP", "geometry")),
		DefaultSpeedKmh: getEnvFloat("DEFAULT_SPEED_KMH", 20),
		Warmup:          getEnvBool("WARMUP", false),
	}
}

// AllowAllOrigins reports whether CORS_ORIGINS is the wildcard.
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.CORSOrigins) == 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
