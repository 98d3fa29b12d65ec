package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "data", cfg.DataDir)

	settings := cfg.Simulation()
	assert.Equal(t, 10, settings.MaxRounds)
	assert.Equal(t, 100, settings.DefaultBudget)
	assert.Equal(t, 70, settings.BaseReputation)
	assert.InDelta(t, 0.15, settings.InjectionBaseChance, 1e-9)
	assert.InDelta(t, 0.005, settings.InjectionRiskFactor, 1e-9)
	assert.InDelta(t, 0.7, settings.InjectionMaxChance, 1e-9)
	assert.Equal(t, 200, settings.TeamBudget)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CISOSIM_PORT", "9090")
	t.Setenv("CISOSIM_MAX_ROUNDS", "3")
	t.Setenv("CISOSIM_INJECTION_MAX_CHANCE", "0.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.MaxRounds)
	assert.InDelta(t, 0.5, cfg.Simulation().InjectionMaxChance, 1e-9)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CISOSIM_MAX_ROUNDS", "not-a-number")
	_, err := Load()
	require.Error(t, err)
}
