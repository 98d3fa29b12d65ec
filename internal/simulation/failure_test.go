package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ciso-sim/internal/domain"
)

func TestFailureOutcomePrefersConfigured(t *testing.T) {
	configured := domain.Outcome{Description: "It went badly.", BudgetDelta: intp(-30)}
	option := domain.Option{
		Success: domain.Outcome{Description: "It went well."},
		Failure: &configured,
	}
	assert.Equal(t, configured, failureOutcome(option))
}

func TestSynthesizeFailure(t *testing.T) {
	cases := []struct {
		name       string
		success    domain.Outcome
		budget     int
		reputation int
		risk       int
	}{
		{
			name:       "no deltas still costs the minimum",
			success:    domain.Outcome{Description: "Quiet win."},
			budget:     -2,
			reputation: -2,
			risk:       2,
		},
		{
			name: "zero deltas are treated like absent ones",
			success: domain.Outcome{
				Description: "Neutral.",
				BudgetDelta: intp(0),
				RiskDelta:   intp(0),
			},
			budget:     -2,
			reputation: -2,
			risk:       2,
		},
		{
			name: "large deltas mirror their magnitude",
			success: domain.Outcome{
				Description:     "Big win.",
				BudgetDelta:     intp(25),
				ReputationDelta: intp(-7),
				RiskDelta:       intp(-10),
			},
			budget:     -25,
			reputation: -7,
			risk:       12,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			failure := synthesizeFailure(tc.success)
			assert.Equal(t, "Failed: "+tc.success.Description, failure.Description)
			require.NotNil(t, failure.BudgetDelta)
			require.NotNil(t, failure.ReputationDelta)
			require.NotNil(t, failure.RiskDelta)
			assert.Equal(t, tc.budget, *failure.BudgetDelta)
			assert.Equal(t, tc.reputation, *failure.ReputationDelta)
			assert.Equal(t, tc.risk, *failure.RiskDelta)
		})
	}
}

func TestSynthesizeFailureCarriesNextStage(t *testing.T) {
	failure := synthesizeFailure(domain.Outcome{Description: "Onward.", NextStage: "contain"})
	assert.Equal(t, "contain", failure.NextStage, "failing must not strand the player")
}
