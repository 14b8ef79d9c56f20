package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "CORS_ORIGINS", "ROADS_SOURCE", "ROADS_TABLE", "SPEED_LOOKUP", "DEFAULT_SPEED_KMH", "WARMUP"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.RoadsSource != "public/cdg_private_service_roads.geojson" || cfg.RoadsTable != "road_segments" {
		t.Errorf("roads = %q / %q", cfg.RoadsSource, cfg.RoadsTable)
	}
	if cfg.SpeedLookup != "geometry" || cfg.DefaultSpeedKmh != 20 || cfg.Warmup {
		t.Errorf("routing = %q %v %v", cfg.SpeedLookup, cfg.DefaultSpeedKmh, cfg.Warmup)
	}
	if !cfg.AllowAllOrigins() {
		t.Error("default CORS should allow all origins")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ROADS_SOURCE", "sqlite:///data/roads.db")
	t.Setenv("SPEED_LOOKUP", "Edge")
	t.Setenv("DEFAULT_SPEED_KMH", "15.5")
	t.Setenv("WARMUP", "true")
	t.Setenv("CORS_ORIGINS", "https://ops.example.com, https://fleet.example.com")

	cfg := Load()
	if cfg.Port != "9090" || cfg.RoadsSource != "sqlite:///data/roads.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SpeedLookup != "edge" || cfg.DefaultSpeedKmh != 15.5 || !cfg.Warmup {
		t.Errorf("routing = %q %v %v", cfg.SpeedLookup, cfg.DefaultSpeedKmh, cfg.Warmup)
	}
	if cfg.AllowAllOrigins() || len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://fleet.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("DEFAULT_SPEED_KMH", "-5")
	t.Setenv("WARMUP", "maybe")

	cfg := Load()
	if cfg.DefaultSpeedKmh != 20 || cfg.Warmup {
		t.Errorf("DefaultSpeedKmh = %v, Warmup = %v", cfg.DefaultSpeedKmh, cfg.Warmup)
	}
}
