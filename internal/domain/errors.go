package domain

import "errors"

// Application-wide standard errors
var (
	// Runtime lookup errors. These never mutate engine state.
	ErrOptionNotFound = errors.New("option not found in current challenge")
	ErrStageNotFound  = errors.New("stage not found in scenario")

	// Session/scenario resolution errors, surfaced by the API layer.
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrSessionNotFound  = errors.New("session not found")

	// Load-time data validation errors.
	ErrInvalidScenario = errors.New("invalid scenario definition")
	ErrInvalidRoster   = errors.New("invalid roster definition")

	// Team selection errors.
	ErrTeamOverBudget = errors.New("team cost exceeds budget")
)
