package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.0, cfg.Search.HMultiplier)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
search:
  h_multiplier: 1.5
  step_budget: 400
  normalized_heuristic: true
log_level: debug
debounce: 2s
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Search.HMultiplier)
	assert.Equal(t, 1.0, cfg.Search.CostSensitivity)
	assert.Equal(t, 400, cfg.Search.StepBudget)
	assert.True(t, cfg.Search.NormalizedHeuristic)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Debounce)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GRIDPATH_STEP_BUDGET", "77")
	t.Setenv("GRIDPATH_COLOR", "never")
	t.Setenv("GRIDPATH_WORKERS", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 77, cfg.Search.StepBudget)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, Default().Workers, cfg.Workers)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative budget", "search:\n  step_budget: -1\n"},
		{"negative multiplier", "search:\n  h_multiplier: -2\n"},
		{"bad color", "color: sometimes\n"},
		{"bad level", "log_level: loud\n"},
		{"no workers", "workers: 0\n"},
		{"not yaml", "search: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestSearchOptions(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.SearchOptions(), 3)

	cfg.Search.StepBudget = 10
	cfg.Search.ReverseOrder = true
	cfg.Search.NormalizedHeuristic = true
	assert.Len(t, cfg.SearchOptions(), 6)
}
