// Package config holds the gridpath CLI settings.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridastar"
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds search tuning and CLI behavior.
type Config struct {
	Search SearchConfig `yaml:"search"`

	// Workers bounds concurrent searches in batch mode.
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
	// Color is auto, always or never.
	Color string `yaml:"color"`
	// Debounce delays a watch-mode rerun until the file settles.
	Debounce time.Duration `yaml:"debounce"`
}

// SearchConfig holds the A* parameters.
type SearchConfig struct {
	HMultiplier     float64 `yaml:"h_multiplier"`
	CostSensitivity float64 `yaml:"cost_sensitivity"`
	// StepBudget of 0 means unlimited.
	StepBudget          int  `yaml:"step_budget"`
	NormalizedHeuristic bool `yaml:"normalized_heuristic"`
	ReverseOrder        bool `yaml:"reverse_order"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Search: SearchConfig{
			HMultiplier:     1,
			CostSensitivity: 1,
		},
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
		Color:    ColorAuto,
		Debounce: 150 * time.Millisecond,
	}
}

// Load reads path over the defaults, applies GRIDPATH_* environment
// overrides and validates the result. A missing path keeps the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("load config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	loadFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("GRIDPATH_H_MULTIPLIER"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.HMultiplier = f
		}
	}
	if v := os.Getenv("GRIDPATH_COST_SENSITIVITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.CostSensitivity = f
		}
	}
	if v := os.Getenv("GRIDPATH_STEP_BUDGET"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Search.StepBudget = i
		}
	}
	if v := os.Getenv("GRIDPATH_WORKERS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Workers = i
		}
	}
	if v := os.Getenv("GRIDPATH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GRIDPATH_COLOR"); v != "" {
		cfg.Color = v
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if math.IsNaN(c.Search.HMultiplier) || c.Search.HMultiplier < 0 {
		return fmt.Errorf("h_multiplier must be >= 0")
	}
	if math.IsNaN(c.Search.CostSensitivity) || c.Search.CostSensitivity < 0 {
		return fmt.Errorf("cost_sensitivity must be >= 0")
	}
	if c.Search.StepBudget < 0 {
		return fmt.Errorf("step_budget must be >= 0")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0")
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// SearchOptions converts the search settings into search options.
func (c Config) SearchOptions() []gridastar.Option {
	options := []gridastar.Option{
		gridastar.WithHMultiplier(c.Search.HMultiplier),
		gridastar.WithCostSensitivity(c.Search.CostSensitivity),
		gridastar.WithWorkers(c.Workers),
	}
	if c.Search.StepBudget > 0 {
		options = append(options, gridastar.WithStepBudget(c.Search.StepBudget))
	}
	if c.Search.NormalizedHeuristic {
		options = append(options, gridastar.WithNormalizedHeuristic())
	}
	if c.Search.ReverseOrder {
		options = append(options, gridastar.WithReverseOrder())
	}
	return options
}
