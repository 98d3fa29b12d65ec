package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"ciso-sim/internal/simulation"
)

// Config holds everything the server and CLI read from the environment.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Env      string `envconfig:"ENV" default:"development"`
	DataDir  string `envconfig:"DATA_DIR" default:"data"`

	// Simulation tunables.
	MaxRounds           int     `envconfig:"MAX_ROUNDS" default:"10"`
	DefaultBudget       int     `envconfig:"DEFAULT_BUDGET" default:"100"`
	BaseReputation      int     `envconfig:"BASE_REPUTATION" default:"70"`
	InjectionBaseChance float64 `envconfig:"INJECTION_BASE_CHANCE" default:"0.15"`
	InjectionRiskFactor float64 `envconfig:"INJECTION_RISK_FACTOR" default:"0.005"`
	InjectionMaxChance  float64 `envconfig:"INJECTION_MAX_CHANCE" default:"0.7"`
	TeamBudget          int     `envconfig:"TEAM_BUDGET" default:"200"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CISOSIM", &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return &cfg, nil
}

// Simulation returns the engine tunables carried by this configuration.
func (c *Config) Simulation() simulation.Settings {
	return simulation.Settings{
		MaxRounds:           c.MaxRounds,
		DefaultBudget:       c.DefaultBudget,
		BaseReputation:      c.BaseReputation,
		InjectionBaseChance: c.InjectionBaseChance,
		InjectionRiskFactor: c.InjectionRiskFactor,
		InjectionMaxChance:  c.InjectionMaxChance,
		TeamBudget:          c.TeamBudget,
	}
}
