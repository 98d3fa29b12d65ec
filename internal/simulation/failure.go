package simulation

import "ciso-sim/internal/domain"

// failureOutcome returns the option's configured failure, or a synthesized
// default derived from its success outcome.
func failureOutcome(option domain.Option) domain.Outcome {
	if option.Failure != nil {
		return *option.Failure
	}
	return synthesizeFailure(option.Success)
}

// synthesizeFailure derives a default failure from a success outcome. It is a
// pure function: budget and reputation penalties mirror the success deltas
// with a minimum magnitude of 2 (a success delta of zero or none still costs
// 2), risk rises by the success magnitude plus 2, and next_stage carries over
// unchanged so failing never strands the player.
func synthesizeFailure(success domain.Outcome) domain.Outcome {
	budget := -penaltyMagnitude(success.BudgetDelta)
	reputation := -penaltyMagnitude(success.ReputationDelta)
	risk := magnitude(success.RiskDelta) + 2
	return domain.Outcome{
		Description:     "Failed: " + success.Description,
		BudgetDelta:     &budget,
		ReputationDelta: &reputation,
		RiskDelta:       &risk,
		NextStage:       success.NextStage,
	}
}

func magnitude(delta *int) int {
	if delta == nil {
		return 0
	}
	if *delta < 0 {
		return -*delta
	}
	return *delta
}

func penaltyMagnitude(delta *int) int {
	return max(magnitude(delta), 2)
}
