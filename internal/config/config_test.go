package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadMissingFile verifies that a missing config file falls back to
// defaults instead of failing.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("base URL = %q, want default", cfg.BaseURL)
	}
}

// TestLoadYAML verifies YAML fields are read.
func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_key: abc123\nathlete_id: i98765\nworkout_dir: /data/workouts\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "abc123" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
	if cfg.AthleteID != "i98765" {
		t.Errorf("athlete ID = %q", cfg.AthleteID)
	}
	if cfg.WorkoutDir != "/data/workouts" {
		t.Errorf("workout dir = %q", cfg.WorkoutDir)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("base URL = %q, want default", cfg.BaseURL)
	}
}

// TestEnvOverrides verifies environment variables win over file values.
func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("INTERVALS_API_KEY", "from-env")
	t.Setenv("INTERVALS_ATHLETE_ID", "42")
	t.Setenv("INTERVALS_API_BASE_URL", "http://localhost:9999/api/v1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("api key = %q, want from-env", cfg.APIKey)
	}
	if cfg.AthleteID != "42" {
		t.Errorf("athlete ID = %q, want 42", cfg.AthleteID)
	}
	if cfg.BaseURL != "http://localhost:9999/api/v1" {
		t.Errorf("base URL = %q", cfg.BaseURL)
	}
}

// TestValidateAthleteID verifies the athlete ID shape check: digits, or
// 'i' followed by digits.
func TestValidateAthleteID(t *testing.T) {
	valid := []string{"123456", "i123456", ""}
	for _, id := range valid {
		cfg := &Config{BaseURL: DefaultBaseURL, AthleteID: id}
		if err := cfg.validate(); err != nil {
			t.Errorf("validate(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{"abc", "i", "12a4", "I123", "123 "}
	for _, id := range invalid {
		cfg := &Config{BaseURL: DefaultBaseURL, AthleteID: id}
		err := cfg.validate()
		if err == nil {
			t.Errorf("validate(%q) = nil, want error", id)
			continue
		}
		if !strings.Contains(err.Error(), "athlete_id") {
			t.Errorf("validate(%q) error = %v, want athlete_id mention", id, err)
		}
	}
}
