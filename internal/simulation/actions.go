package simulation

import (
	"go.uber.org/zap"

	"ciso-sim/internal/domain"
)

// executeAction applies a special outcome action. ActionEnd is handled by the
// caller because it only flips the finished flag. Every team mutation syncs
// the state snapshot so the two never diverge.
func (e *Engine) executeAction(action domain.Action) {
	switch action {
	case domain.ActionRemoveMember:
		if removed, ok := e.team.RemoveFirst(); ok {
			e.state.SyncTeam(e.team)
			e.log.Info("team member removed", zap.String("name", removed.Name))
		}
	case domain.ActionResetTeam:
		// Reserved for a future morale/stress recovery mechanic.
	case domain.ActionBoostMorale:
		e.team.Score = min(100, e.team.Score+10)
		e.state.SyncTeam(e.team)
	case domain.ActionDamageMorale:
		e.team.Score = max(0, e.team.Score-10)
		e.state.SyncTeam(e.team)
	case domain.ActionDoubleBudget:
		e.state.Budget += e.settings.DefaultBudget / 2
	case domain.ActionBurnBudget:
		e.state.Budget = max(0, e.state.Budget-e.settings.DefaultBudget/2)
	default:
		// The loader rejects unknown actions; reaching this means the
		// scenario bypassed validation.
		e.log.Warn("unknown outcome action", zap.String("action", string(action)))
	}
}
