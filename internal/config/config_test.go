package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MatchMode != "range" {
		t.Errorf("expected range mode, got %s", cfg.MatchMode)
	}
	if cfg.MatchTopK != 3 {
		t.Errorf("expected top_k 3, got %d", cfg.MatchTopK)
	}
	if cfg.MatchTolerance != 0.5 {
		t.Errorf("expected tolerance 0.5, got %v", cfg.MatchTolerance)
	}
	if !cfg.MatchFallback {
		t.Errorf("expected fallback enabled by default")
	}
	if cfg.SoilLookupTimeout != 5*time.Second {
		t.Errorf("expected 5s soil timeout, got %s", cfg.SoilLookupTimeout)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoad_ClampsSoilTimeout(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SOIL_LOOKUP_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SoilLookupTimeout != 5*time.Second {
		t.Errorf("expected timeout clamped to 5s, got %s", cfg.SoilLookupTimeout)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"MATCH_TOP_K":     "three",
		"MATCH_TOLERANCE": "-1",
		"MATCH_MODE":      "fuzzy",
		"MATCH_FALLBACK":  "maybe",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", "production")
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestR2Enabled(t *testing.T) {
	cfg := &Config{R2Endpoint: "https://r2.example", R2AccessKey: "a", R2SecretKey: "b"}
	if cfg.R2Enabled() {
		t.Fatal("expected R2 disabled without bucket")
	}
	cfg.R2Bucket = "scans"
	if !cfg.R2Enabled() {
		t.Fatal("expected R2 enabled")
	}
}

func TestLoadReferencePaths(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CROP_DATA_PATH", "/srv/crops.csv")

	cfg := LoadReferencePaths()
	if cfg.CropDataPath != "/srv/crops.csv" {
		t.Errorf("expected override, got %s", cfg.CropDataPath)
	}
	if cfg.SoilDataPath != "data/soil_data.json" {
		t.Errorf("expected default soil path, got %s", cfg.SoilDataPath)
	}
}
