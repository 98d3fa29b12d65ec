package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ciso-sim/internal/domain"
)

func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const validScenarioYAML = `
id: breach
name: Breach
briefing: A breach.
starting_stage: detect
stages:
  - id: detect
    title: Detection
    summary: Find out what happened.
    challenges:
      - id: triage
        title: Triage
        prompt: What now?
        options:
          - id: investigate
            label: Investigate
            narrative: Dig in.
            skill: analysis
            outcome:
              description: Indicators extracted.
              budget_delta: 10
              next_stage: contain
            failure:
              description: Hours lost.
              risk_delta: 5
              next_stage: contain
  - id: contain
    title: Containment
    summary: Stop it.
    challenges:
      - id: reset
        prompt: Reset accounts?
        options:
          - id: mass-reset
            label: Reset everything
            difficulty: 30
            skill: leadership
            outcome:
              description: Done.
injections:
  - id: surprise
    title: Surprise
    prompt: Deal with it.
    weight: 8
    options:
      - id: react
        label: React
        outcome:
          description: Handled.
`

func TestLoadScenariosValid(t *testing.T) {
	dir := writeDataDir(t, map[string]string{"breach.yaml": validScenarioYAML})

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	scenario := scenarios["breach"]
	require.NotNil(t, scenario)
	assert.Equal(t, "Breach", scenario.Name)
	assert.Equal(t, "detect", scenario.StartingStage)
	require.Len(t, scenario.Stages, 2)

	investigate := scenario.Stages["detect"].Challenges[0].Options[0]
	assert.Equal(t, 100, investigate.Difficulty, "stage options default to difficulty 100")
	assert.Equal(t, domain.SkillAnalysis, investigate.Skill)
	require.NotNil(t, investigate.Success.BudgetDelta)
	assert.Equal(t, 10, *investigate.Success.BudgetDelta)
	assert.Nil(t, investigate.Success.RiskDelta, "absent deltas stay nil")
	require.NotNil(t, investigate.Failure)
	assert.Equal(t, "contain", investigate.Failure.NextStage)

	massReset := scenario.Stages["contain"].Challenges[0].Options[0]
	assert.Equal(t, 30, massReset.Difficulty)
	assert.Equal(t, domain.SkillLeadership, massReset.Skill)

	require.Len(t, scenario.Injections, 1)
	injection := scenario.Injections[0]
	assert.Equal(t, 8, injection.Weight)
	assert.Equal(t, 50, injection.Options[0].Difficulty, "injection options default to difficulty 50")
	assert.Equal(t, domain.SkillAnalysis, injection.Options[0].Skill, "missing skill defaults to analysis")
}

func TestLoadScenariosMergesGlobalInjections(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"breach.yaml": validScenarioYAML,
		"injections.yaml": `
injections:
  - id: journalist-call
    title: A journalist has the story
    prompt: Comment before the deadline?
    options:
      - id: no-comment
        label: Decline to comment
        outcome:
          description: The story runs short.
`,
	})

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	scenario := scenarios["breach"]
	require.NotNil(t, scenario)

	// Global pool first, then the scenario's own.
	require.Len(t, scenario.Injections, 2)
	assert.Equal(t, "journalist-call", scenario.Injections[0].ID)
	assert.Equal(t, 5, scenario.Injections[0].Weight, "weight defaults to 5")
	assert.Equal(t, "surprise", scenario.Injections[1].ID)
}

func TestLoadScenariosSkipsNonScenarioFiles(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"breach.yaml":      validScenarioYAML,
		"team_roster.yaml": "members:\n  - name: Mira\n",
		"notes.txt":        "not yaml",
	})

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	assert.Len(t, scenarios, 1)
}

func TestLoadScenariosRejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{
			name: "missing starting stage",
			yaml: `
id: broken
starting_stage: nowhere
stages:
  - id: detect
    challenges:
      - id: c1
        options:
          - id: o1
            outcome: {description: ok}
`,
		},
		{
			name: "dangling next_stage",
			yaml: `
id: broken
starting_stage: detect
stages:
  - id: detect
    challenges:
      - id: c1
        options:
          - id: o1
            outcome: {description: ok, next_stage: nowhere}
`,
		},
		{
			name: "stage without challenges",
			yaml: `
id: broken
starting_stage: detect
stages:
  - id: detect
    challenges:
      - id: c1
        options:
          - id: o1
            outcome: {description: ok}
  - id: empty
    challenges: []
`,
		},
		{
			name: "challenge without options",
			yaml: `
id: broken
starting_stage: detect
stages:
  - id: detect
    challenges:
      - id: c1
        options: []
`,
		},
		{
			name: "duplicate stage id",
			yaml: `
id: broken
starting_stage: detect
stages:
  - id: detect
    challenges:
      - id: c1
        options:
          - id: o1
            outcome: {description: ok}
  - id: detect
    challenges:
      - id: c2
        options:
          - id: o2
            outcome: {description: ok}
`,
		},
		{
			name: "unknown action",
			yaml: `
id: broken
starting_stage: detect
stages:
  - id: detect
    challenges:
      - id: c1
        options:
          - id: o1
            outcome: {description: ok, action: explode}
`,
		},
		{
			name: "unknown skill",
			yaml: `
id: broken
starting_stage: detect
stages:
  - id: detect
    challenges:
      - id: c1
        options:
          - id: o1
            skill: charisma
            outcome: {description: ok}
`,
		},
		{
			name: "zero injection weight",
			yaml: `
id: broken
starting_stage: detect
stages:
  - id: detect
    challenges:
      - id: c1
        options:
          - id: o1
            outcome: {description: ok}
injections:
  - id: surprise
    weight: 0
    options:
      - id: react
        outcome: {description: ok}
`,
		},
		{
			name: "injection without options",
			yaml: `
id: broken
starting_stage: detect
stages:
  - id: detect
    challenges:
      - id: c1
        options:
          - id: o1
            outcome: {description: ok}
injections:
  - id: surprise
    weight: 3
    options: []
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeDataDir(t, map[string]string{"broken.yaml": tc.yaml})
			_, err := LoadScenarios(dir)
			require.ErrorIs(t, err, domain.ErrInvalidScenario)
		})
	}
}

func TestLoadScenariosMissingDir(t *testing.T) {
	_, err := LoadScenarios(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
