package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestNewCharacterDefaults(t *testing.T) {
	t.Run("empty spec gets full defaults", func(t *testing.T) {
		c := NewCharacter(CharacterSpec{})
		assert.Equal(t, "Analyst", c.Name)
		assert.Equal(t, "Analyst", c.Role)
		assert.Equal(t, 50, c.Cost)
		assert.Equal(t, StatBlock{Analysis: 50, Comms: 50, Engineering: 50, Leadership: 50}, c.Stats)
	})

	t.Run("explicit zeroes survive", func(t *testing.T) {
		c := NewCharacter(CharacterSpec{
			Name: "Mira",
			Cost: intp(0),
			Stats: StatSpec{
				Analysis: intp(0),
			},
		})
		assert.Equal(t, 0, c.Cost)
		assert.Equal(t, 0, c.Stats.Analysis)
		assert.Equal(t, 50, c.Stats.Comms, "unset axes still default")
	})
}

func TestTeamAggregates(t *testing.T) {
	team := NewTeam([]CharacterSpec{
		{Name: "Mira", Stats: StatSpec{Analysis: intp(80), Comms: intp(40), Engineering: intp(60), Leadership: intp(20)}},
		{Name: "Jonas", Stats: StatSpec{Analysis: intp(20), Comms: intp(60), Engineering: intp(40), Leadership: intp(80)}},
	})

	assert.Equal(t, 100, team.Totals[SkillAnalysis])
	assert.Equal(t, 100, team.Totals[SkillComms])
	assert.Equal(t, 100, team.Totals[SkillEngineering])
	assert.Equal(t, 100, team.Totals[SkillLeadership])
	// 400 total points over 4 axes and 2 members.
	assert.Equal(t, 50, team.Score)
	assert.Equal(t, 100, team.Total(SkillAnalysis))
}

func TestEmptyTeamScoresZero(t *testing.T) {
	team := NewTeam(nil)
	assert.Equal(t, 0, team.Score)
	assert.Equal(t, 0, team.Total(SkillAnalysis))
	assert.Equal(t, 0, team.Cost())

	_, ok := team.RemoveFirst()
	assert.False(t, ok)
}

func TestRemoveFirstRefreshesAggregates(t *testing.T) {
	team := NewTeam([]CharacterSpec{
		{Name: "Mira", Cost: intp(60), Stats: StatSpec{Analysis: intp(100), Comms: intp(0), Engineering: intp(0), Leadership: intp(0)}},
		{Name: "Jonas", Cost: intp(30), Stats: StatSpec{Analysis: intp(20), Comms: intp(20), Engineering: intp(20), Leadership: intp(20)}},
	})
	require.Equal(t, 90, team.Cost())

	removed, ok := team.RemoveFirst()
	require.True(t, ok)
	assert.Equal(t, "Mira", removed.Name)
	assert.Equal(t, 20, team.Totals[SkillAnalysis])
	assert.Equal(t, 20, team.Score)
	assert.Equal(t, 30, team.Cost())
}

func TestParseSkill(t *testing.T) {
	for _, skill := range AllSkills() {
		got, err := ParseSkill(string(skill))
		require.NoError(t, err)
		assert.Equal(t, skill, got)
	}

	_, err := ParseSkill("charisma")
	require.ErrorIs(t, err, ErrInvalidScenario)
}

func TestParseAction(t *testing.T) {
	t.Run("empty string is no action", func(t *testing.T) {
		got, err := ParseAction("")
		require.NoError(t, err)
		assert.Equal(t, ActionNone, got)
	})

	t.Run("known actions round-trip", func(t *testing.T) {
		for _, action := range AllActions() {
			got, err := ParseAction(string(action))
			require.NoError(t, err)
			assert.Equal(t, action, got)
		}
	})

	t.Run("unknown action is a data error", func(t *testing.T) {
		_, err := ParseAction("explode")
		require.ErrorIs(t, err, ErrInvalidScenario)
	})
}

func TestPlayerStateSnapshotIsIndependent(t *testing.T) {
	team := NewTeam([]CharacterSpec{{Name: "Mira"}})
	state := &PlayerState{Budget: 100, Reputation: 70, Risk: 50}
	state.SyncTeam(team)
	state.History = append(state.History, HistoryEntry{Stage: "detect", Option: "o1"})

	snapshot := state.Snapshot()
	state.History[0].Option = "mutated"
	state.History = append(state.History, HistoryEntry{Stage: "contain"})
	state.TeamTotals[SkillAnalysis] = -1

	require.Len(t, snapshot.History, 1)
	assert.Equal(t, "o1", snapshot.History[0].Option)
	assert.Equal(t, 50, snapshot.TeamTotals[SkillAnalysis])
}

func TestSyncTeamTracksSize(t *testing.T) {
	team := NewTeam([]CharacterSpec{{Name: "Mira"}, {Name: "Jonas"}})
	state := &PlayerState{}
	state.SyncTeam(team)
	assert.Equal(t, 2, state.TeamSize)
	assert.Equal(t, team.Score, state.TeamScore)

	team.RemoveFirst()
	state.SyncTeam(team)
	assert.Equal(t, 1, state.TeamSize)
}
