package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production Intervals.icu API root.
const DefaultBaseURL = "https://intervals.icu/api/v1"

// Athlete IDs are either all digits or 'i' followed by digits.
var athleteIDPattern = regexp.MustCompile(`^i?\d+$`)

type Config struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	AthleteID  string `yaml:"athlete_id"`
	WorkoutDir string `yaml:"workout_dir"`
	HTTPAddr   string `yaml:"http_addr"`
}

// Load reads config from an optional YAML file, then applies environment
// variable overrides. Env vars use the prefix INTERVALS_:
//
//	INTERVALS_API_BASE_URL, INTERVALS_API_KEY, INTERVALS_ATHLETE_ID,
//	INTERVALS_WORKOUT_DIR, INTERVALS_HTTP_ADDR
//
// A missing config file is not an error; env-only configuration is the
// normal mode for stdio MCP clients.
func Load(path string) (*Config, error) {
	cfg := &Config{BaseURL: DefaultBaseURL}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INTERVALS_API_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("INTERVALS_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("INTERVALS_ATHLETE_ID"); v != "" {
		cfg.AthleteID = v
	}
	if v := os.Getenv("INTERVALS_WORKOUT_DIR"); v != "" {
		cfg.WorkoutDir = v
	}
	if v := os.Getenv("INTERVALS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.AthleteID != "" && !athleteIDPattern.MatchString(c.AthleteID) {
		return fmt.Errorf("athlete_id must be all digits (e.g. 123456) or 'i' followed by digits (e.g. i123456), got %q", c.AthleteID)
	}
	return nil
}
