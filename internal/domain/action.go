package domain

import "fmt"

// Action is a special effect an outcome can trigger on top of its numeric
// deltas. The set is closed: anything else is a data error caught at load
// time, never silently ignored at play time.
type Action string

const (
	ActionNone         Action = ""
	ActionEnd          Action = "end"
	ActionRemoveMember Action = "remove-member"
	// ActionResetTeam is reserved for a future morale/stress mechanic. The
	// engine must accept it and treat it as a no-op.
	ActionResetTeam    Action = "reset-team"
	ActionBoostMorale  Action = "boost-morale"
	ActionDamageMorale Action = "damage-morale"
	ActionDoubleBudget Action = "double-budget"
	ActionBurnBudget   Action = "burn-budget"
)

// AllActions returns every action an outcome may declare, excluding the empty
// "no action" value.
func AllActions() []Action {
	return []Action{
		ActionEnd,
		ActionRemoveMember,
		ActionResetTeam,
		ActionBoostMorale,
		ActionDamageMorale,
		ActionDoubleBudget,
		ActionBurnBudget,
	}
}

// ParseAction validates a raw action string from scenario data.
func ParseAction(raw string) (Action, error) {
	if raw == "" {
		return ActionNone, nil
	}
	for _, a := range AllActions() {
		if Action(raw) == a {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: unknown action %q", ErrInvalidScenario, raw)
}
