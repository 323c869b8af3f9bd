package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries tool-wide defaults. Flags always win over config values,
// and config values win over the built-in conventions.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Curve    CurveConfig    `yaml:"curve"`
}

// DefaultsConfig supplies parameter values the user did not set.
type DefaultsConfig struct {
	Power        float64 `yaml:"power"`
	Significance float64 `yaml:"significance"`
	Tails        string  `yaml:"tails"` // one-tailed | two-tailed
}

// CurveConfig tunes the power-curve sweep used for charts.
type CurveConfig struct {
	Points      int     `yaml:"points"`
	MinFraction float64 `yaml:"min_fraction"`
	MaxMultiple float64 `yaml:"max_multiple"`
}

// Default returns the conventional planning defaults: 80% power, 5%
// significance, two-tailed.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Power:        0.80,
			Significance: 0.05,
			Tails:        "two-tailed",
		},
		Curve: CurveConfig{
			Points:      50,
			MinFraction: 0.1,
			MaxMultiple: 3,
		},
	}
}

// Load reads the YAML config at path if it exists, then applies POWERPLAN_*
// environment overrides. A local .env file is honored first, so overrides
// can live next to the project (missing .env is not an error).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file is fine; built-ins and env apply.
		case err != nil:
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %q: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := envFloat("POWERPLAN_POWER"); ok {
		cfg.Defaults.Power = v
	}
	if v, ok := envFloat("POWERPLAN_SIGNIFICANCE"); ok {
		cfg.Defaults.Significance = v
	}
	if v := os.Getenv("POWERPLAN_TAILS"); v != "" {
		cfg.Defaults.Tails = v
	}
	if v, ok := envInt("POWERPLAN_CURVE_POINTS"); ok {
		cfg.Curve.Points = v
	}
}

func envFloat(key string) (float64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
