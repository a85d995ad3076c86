package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eqsolve/internal/config"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "x", cfg.Solver.Unknown)
	assert.InDelta(t, 1.0, cfg.Solver.InitialGuess, 0)
	assert.InDelta(t, 1e-9, cfg.Solver.Tolerance, 0)
	assert.InDelta(t, 1e-6, cfg.Solver.AcceptTolerance, 0)
	assert.Equal(t, 100, cfg.Solver.MaxIterations)
	assert.Equal(t, 8, cfg.Solver.Precision)
	assert.False(t, cfg.Solver.AlwaysNumeric)
}

func TestLoad_ReadsYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("solver:\n  unknown: t\n  maxIterations: 50\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "t", cfg.Solver.Unknown)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SOLVER_ALWAYS_NUMERIC", "true")
	t.Setenv("SOLVER_PRECISION", "4")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.True(t, cfg.Solver.AlwaysNumeric)
	assert.Equal(t, 4, cfg.Solver.Precision)
}
