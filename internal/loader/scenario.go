package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ciso-sim/internal/domain"
)

const (
	injectionsFile = "injections.yaml"

	defaultStageDifficulty     = 100
	defaultInjectionDifficulty = 50
	defaultInjectionWeight     = 5
)

// Raw YAML payloads. Optional numerics are pointers so absent values can be
// defaulted without losing explicit zeroes.

type scenarioPayload struct {
	ID            string             `yaml:"id"`
	Name          string             `yaml:"name"`
	Briefing      string             `yaml:"briefing"`
	StartingStage string             `yaml:"starting_stage"`
	Stages        []stagePayload     `yaml:"stages"`
	Injections    []injectionPayload `yaml:"injections"`
}

type stagePayload struct {
	ID         string             `yaml:"id"`
	Title      string             `yaml:"title"`
	Summary    string             `yaml:"summary"`
	Challenges []challengePayload `yaml:"challenges"`
}

type challengePayload struct {
	ID      string          `yaml:"id"`
	Title   string          `yaml:"title"`
	Prompt  string          `yaml:"prompt"`
	Options []optionPayload `yaml:"options"`
}

type optionPayload struct {
	ID         string          `yaml:"id"`
	Label      string          `yaml:"label"`
	Narrative  string          `yaml:"narrative"`
	Outcome    outcomePayload  `yaml:"outcome"`
	Failure    *outcomePayload `yaml:"failure"`
	Difficulty *int            `yaml:"difficulty"`
	Skill      string          `yaml:"skill"`
}

type outcomePayload struct {
	Description     string `yaml:"description"`
	BudgetDelta     *int   `yaml:"budget_delta"`
	ReputationDelta *int   `yaml:"reputation_delta"`
	RiskDelta       *int   `yaml:"risk_delta"`
	NextStage       string `yaml:"next_stage"`
	Action          string `yaml:"action"`
}

type injectionPayload struct {
	ID      string          `yaml:"id"`
	Title   string          `yaml:"title"`
	Prompt  string          `yaml:"prompt"`
	Weight  *int            `yaml:"weight"`
	Options []optionPayload `yaml:"options"`
}

type injectionsPayload struct {
	Injections []injectionPayload `yaml:"injections"`
}

// LoadScenarios reads every scenario YAML in dataDir and returns them keyed
// by id. Non-scenario YAML files (roster, injections) are skipped. Global
// injections from injections.yaml are merged into every scenario ahead of the
// scenario-specific ones.
func LoadScenarios(dataDir string) (map[string]*domain.Scenario, error) {
	global, err := loadGlobalInjections(dataDir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir %q: %w", dataDir, err)
	}

	scenarios := make(map[string]*domain.Scenario)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dataDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", entry.Name(), err)
		}
		var payload scenarioPayload
		if err := yaml.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidScenario, entry.Name(), err)
		}
		if len(payload.Stages) == 0 {
			// Roster, injections and other non-scenario YAML.
			continue
		}
		scenario, err := buildScenario(payload, global)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		scenarios[scenario.ID] = scenario
	}
	return scenarios, nil
}

// loadGlobalInjections reads injections.yaml if present. A missing file means
// no global pool, not an error.
func loadGlobalInjections(dataDir string) ([]domain.Injection, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, injectionsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", injectionsFile, err)
	}
	var payload injectionsPayload
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidScenario, injectionsFile, err)
	}
	injections := make([]domain.Injection, 0, len(payload.Injections))
	for _, p := range payload.Injections {
		injection, err := buildInjection(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", injectionsFile, err)
		}
		injections = append(injections, injection)
	}
	return injections, nil
}

func buildScenario(payload scenarioPayload, global []domain.Injection) (*domain.Scenario, error) {
	stages := make(map[string]*domain.Stage, len(payload.Stages))
	for _, sp := range payload.Stages {
		if _, exists := stages[sp.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate stage id %q", domain.ErrInvalidScenario, sp.ID)
		}
		stage, err := buildStage(sp)
		if err != nil {
			return nil, err
		}
		stages[stage.ID] = stage
	}

	injections := make([]domain.Injection, 0, len(global)+len(payload.Injections))
	injections = append(injections, global...)
	for _, ip := range payload.Injections {
		injection, err := buildInjection(ip)
		if err != nil {
			return nil, err
		}
		injections = append(injections, injection)
	}

	scenario := &domain.Scenario{
		ID:            payload.ID,
		Name:          payload.Name,
		Briefing:      payload.Briefing,
		Stages:        stages,
		StartingStage: payload.StartingStage,
		Injections:    injections,
	}
	if err := validateScenario(scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

func buildStage(payload stagePayload) (*domain.Stage, error) {
	challenges := make([]domain.Challenge, 0, len(payload.Challenges))
	for _, cp := range payload.Challenges {
		challenge, err := buildChallenge(cp, defaultStageDifficulty)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", payload.ID, err)
		}
		challenges = append(challenges, challenge)
	}
	return &domain.Stage{
		ID:         payload.ID,
		Title:      payload.Title,
		Summary:    payload.Summary,
		Challenges: challenges,
	}, nil
}

func buildChallenge(payload challengePayload, defaultDifficulty int) (domain.Challenge, error) {
	options := make([]domain.Option, 0, len(payload.Options))
	for _, op := range payload.Options {
		option, err := buildOption(op, defaultDifficulty)
		if err != nil {
			return domain.Challenge{}, fmt.Errorf("challenge %q: %w", payload.ID, err)
		}
		options = append(options, option)
	}
	return domain.Challenge{
		ID:      payload.ID,
		Title:   payload.Title,
		Prompt:  payload.Prompt,
		Options: options,
	}, nil
}

func buildOption(payload optionPayload, defaultDifficulty int) (domain.Option, error) {
	success, err := buildOutcome(payload.Outcome)
	if err != nil {
		return domain.Option{}, fmt.Errorf("option %q: %w", payload.ID, err)
	}
	var failure *domain.Outcome
	if payload.Failure != nil {
		built, err := buildOutcome(*payload.Failure)
		if err != nil {
			return domain.Option{}, fmt.Errorf("option %q: %w", payload.ID, err)
		}
		failure = &built
	}

	difficulty := defaultDifficulty
	if payload.Difficulty != nil {
		difficulty = *payload.Difficulty
	}
	skill := domain.SkillAnalysis
	if payload.Skill != "" {
		skill, err = domain.ParseSkill(payload.Skill)
		if err != nil {
			return domain.Option{}, fmt.Errorf("option %q: %w", payload.ID, err)
		}
	}

	return domain.Option{
		ID:         payload.ID,
		Label:      payload.Label,
		Narrative:  payload.Narrative,
		Success:    success,
		Failure:    failure,
		Difficulty: difficulty,
		Skill:      skill,
	}, nil
}

func buildOutcome(payload outcomePayload) (domain.Outcome, error) {
	action, err := domain.ParseAction(payload.Action)
	if err != nil {
		return domain.Outcome{}, err
	}
	return domain.Outcome{
		Description:     payload.Description,
		BudgetDelta:     payload.BudgetDelta,
		ReputationDelta: payload.ReputationDelta,
		RiskDelta:       payload.RiskDelta,
		NextStage:       payload.NextStage,
		Action:          action,
	}, nil
}

func buildInjection(payload injectionPayload) (domain.Injection, error) {
	challenge, err := buildChallenge(challengePayload{
		ID:      payload.ID,
		Title:   payload.Title,
		Prompt:  payload.Prompt,
		Options: payload.Options,
	}, defaultInjectionDifficulty)
	if err != nil {
		return domain.Injection{}, err
	}
	weight := defaultInjectionWeight
	if payload.Weight != nil {
		weight = *payload.Weight
	}
	if weight <= 0 {
		return domain.Injection{}, fmt.Errorf("%w: injection %q has non-positive weight %d", domain.ErrInvalidScenario, payload.ID, weight)
	}
	return domain.Injection{Challenge: challenge, Weight: weight}, nil
}

// validateScenario enforces the structural invariants the engine assumes:
// the starting stage exists, every stage has challenges, every challenge has
// options, and every next_stage reference resolves.
func validateScenario(s *domain.Scenario) error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing scenario id", domain.ErrInvalidScenario)
	}
	if _, ok := s.Stages[s.StartingStage]; !ok {
		return fmt.Errorf("%w: starting stage %q not defined", domain.ErrInvalidScenario, s.StartingStage)
	}
	for _, stage := range s.Stages {
		if len(stage.Challenges) == 0 {
			return fmt.Errorf("%w: stage %q has no challenges", domain.ErrInvalidScenario, stage.ID)
		}
		for _, challenge := range stage.Challenges {
			if len(challenge.Options) == 0 {
				return fmt.Errorf("%w: challenge %q has no options", domain.ErrInvalidScenario, challenge.ID)
			}
			for _, option := range challenge.Options {
				if err := checkNextStage(s, option.Success.NextStage); err != nil {
					return fmt.Errorf("option %q: %w", option.ID, err)
				}
				if option.Failure != nil {
					if err := checkNextStage(s, option.Failure.NextStage); err != nil {
						return fmt.Errorf("option %q: %w", option.ID, err)
					}
				}
			}
		}
	}
	for _, injection := range s.Injections {
		if len(injection.Options) == 0 {
			return fmt.Errorf("%w: injection %q has no options", domain.ErrInvalidScenario, injection.ID)
		}
	}
	return nil
}

func checkNextStage(s *domain.Scenario, nextStage string) error {
	if nextStage == "" {
		return nil
	}
	if _, ok := s.Stages[nextStage]; !ok {
		return fmt.Errorf("%w: next_stage %q not defined", domain.ErrInvalidScenario, nextStage)
	}
	return nil
}
