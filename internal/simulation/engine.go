package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"ciso-sim/internal/domain"
)

// Settings are the engine-wide tunables. They are fixed for the lifetime of a
// session; per-call behavior never reads configuration elsewhere.
type Settings struct {
	MaxRounds           int
	DefaultBudget       int
	BaseReputation      int
	InjectionBaseChance float64
	InjectionRiskFactor float64
	InjectionMaxChance  float64
	TeamBudget          int
}

// DefaultSettings returns the baseline tuning.
func DefaultSettings() Settings {
	return Settings{
		MaxRounds:           10,
		DefaultBudget:       100,
		BaseReputation:      70,
		InjectionBaseChance: 0.15,
		InjectionRiskFactor: 0.005,
		InjectionMaxChance:  0.7,
		TeamBudget:          200,
	}
}

// Rand is the source of randomness the engine draws from. *rand.Rand
// satisfies it; tests script it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

const (
	initialRisk      = 50
	injectionSummary = "Unplanned event disrupts your plan."

	// Success chance bounds and scaling for the skill-vs-difficulty roll.
	minChance   = 0.05
	maxChance   = 0.95
	chanceScale = 200.0
)

// Engine is the mutable simulation runtime for one session. It performs no
// internal locking; callers must serialize ApplyOption per engine.
type Engine struct {
	scenario *domain.Scenario
	team     *domain.Team
	state    *domain.PlayerState
	settings Settings
	rng      Rand
	log      *zap.Logger

	round   int
	pending []domain.Injection
	active  *domain.Injection
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand overrides the engine's randomness source.
func WithRand(rng Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger attaches a logger to the engine.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine builds a runtime for one play-through of a scenario. Member
// records may omit cost and stats; those default to 50.
func NewEngine(scenario *domain.Scenario, members []domain.CharacterSpec, settings Settings, opts ...Option) *Engine {
	team := domain.NewTeam(members)
	pending := make([]domain.Injection, len(scenario.Injections))
	copy(pending, scenario.Injections)

	e := &Engine{
		scenario: scenario,
		team:     team,
		state: &domain.PlayerState{
			Budget:       settings.DefaultBudget,
			Reputation:   settings.BaseReputation,
			Risk:         initialRisk,
			CurrentStage: scenario.StartingStage,
		},
		settings: settings,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      zap.NewNop(),
		pending:  pending,
	}
	e.state.SyncTeam(team)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a snapshot of the current player state.
func (e *Engine) State() domain.PlayerState {
	return e.state.Snapshot()
}

// Round returns the number of decisions resolved so far.
func (e *Engine) Round() int {
	return e.round
}

// Presentable is the decision point to show the player: either the current
// stage challenge or the active injection wrapped as a stage-like payload.
// Probabilities is a request-scoped annotation keyed by option id; it is
// recomputed on every call because team composition can change between calls.
type Presentable struct {
	ID            string
	Title         string
	Summary       string
	IsInjection   bool
	Challenges    []domain.Challenge
	Probabilities map[string]int
}

// CurrentPresentable returns the decision point to show the player. The error
// path only fires when an option referenced a stage the scenario does not
// define, which the loader rejects up front.
func (e *Engine) CurrentPresentable() (Presentable, error) {
	if e.active != nil {
		return Presentable{
			ID:            "injection-" + e.active.ID,
			Title:         "Injection: " + e.active.Title,
			Summary:       injectionSummary,
			IsInjection:   true,
			Challenges:    []domain.Challenge{e.active.Challenge},
			Probabilities: e.annotateProbabilities(e.active.Challenge),
		}, nil
	}

	stage, ok := e.scenario.Stages[e.state.CurrentStage]
	if !ok {
		return Presentable{}, fmt.Errorf("%w: %q", domain.ErrStageNotFound, e.state.CurrentStage)
	}
	challenge := stage.Challenges[e.state.CurrentChallengeIndex]
	return Presentable{
		ID:            stage.ID,
		Title:         stage.Title,
		Summary:       stage.Summary,
		Challenges:    []domain.Challenge{challenge},
		Probabilities: e.annotateProbabilities(challenge),
	}, nil
}

// Result is what one resolved decision reports back to the caller.
type Result struct {
	State    domain.PlayerState `json:"state"`
	Round    int                `json:"round"`
	Finished bool               `json:"finished"`
	Outcome  string             `json:"outcome"`
	Success  bool               `json:"success"`
}

// ApplyOption resolves one decision: rolls for success, applies the outcome's
// deltas and special action, advances the position or clears the injection,
// maybe schedules a new injection, and checks termination. A lookup failure
// leaves the state untouched.
func (e *Engine) ApplyOption(optionID string) (Result, error) {
	presentable, err := e.CurrentPresentable()
	if err != nil {
		return Result{}, err
	}
	option, err := findOption(presentable, optionID)
	if err != nil {
		return Result{}, err
	}

	success := e.rng.Float64() < e.chance(option)
	outcome := option.Success
	if !success {
		outcome = failureOutcome(option)
	}
	e.round++

	if outcome.BudgetDelta != nil {
		e.state.Budget += *outcome.BudgetDelta
	}
	// Upkeep cost on every decision, independent of the outcome.
	e.state.Budget -= e.team.Score / 10

	if outcome.ReputationDelta != nil {
		e.state.Reputation += *outcome.ReputationDelta
	}
	if outcome.RiskDelta != nil {
		e.state.Risk = min(100, max(0, e.state.Risk+*outcome.RiskDelta))
	}

	// History is written before actions and termination checks so that a
	// terminating decision is still on record.
	e.state.History = append(e.state.History, domain.HistoryEntry{
		Stage:   presentable.ID,
		Option:  option.ID,
		Label:   option.Label,
		Outcome: outcome.Description,
	})

	finished := false
	if outcome.Action == domain.ActionEnd {
		finished = true
	} else if outcome.Action != domain.ActionNone {
		e.executeAction(outcome.Action)
	}

	if presentable.IsInjection {
		e.active = nil
	} else {
		finished = e.advance(outcome) || finished
		e.maybeScheduleInjection()
		if e.round >= e.settings.MaxRounds {
			finished = true
		}
	}

	e.log.Debug("decision resolved",
		zap.String("presentable", presentable.ID),
		zap.String("option", option.ID),
		zap.Bool("success", success),
		zap.Int("round", e.round),
		zap.Bool("finished", finished),
	)

	return Result{
		State:    e.state.Snapshot(),
		Round:    e.round,
		Finished: finished,
		Outcome:  outcome.Description,
		Success:  success,
	}, nil
}

// advance moves the position within the current stage or across stages.
// Stage transitions are deferred to the last challenge of a stage; a missing
// next_stage there is the natural end of the scenario.
func (e *Engine) advance(outcome domain.Outcome) (finished bool) {
	stage := e.scenario.Stages[e.state.CurrentStage]
	if e.state.CurrentChallengeIndex >= len(stage.Challenges)-1 {
		if outcome.NextStage != "" {
			e.state.CurrentStage = outcome.NextStage
			e.state.CurrentChallengeIndex = 0
			return false
		}
		return true
	}
	e.state.CurrentChallengeIndex++
	return false
}

// maybeScheduleInjection rolls a risk-weighted trigger and, if it fires,
// moves one pending injection into the active slot. A drawn injection is
// consumed for the rest of the session.
func (e *Engine) maybeScheduleInjection() {
	if e.active != nil || len(e.pending) == 0 {
		return
	}
	chance := e.settings.InjectionBaseChance + float64(e.state.Risk)*e.settings.InjectionRiskFactor
	chance = min(chance, e.settings.InjectionMaxChance)
	if e.rng.Float64() >= chance {
		return
	}
	chosen := e.pickWeighted()
	e.active = &chosen
	e.log.Info("injection triggered",
		zap.String("injection", chosen.ID),
		zap.Int("risk", e.state.Risk),
		zap.Int("remaining", len(e.pending)),
	)
}

// pickWeighted removes one pending injection via a cumulative-weight draw.
// The loader guarantees every weight is positive.
func (e *Engine) pickWeighted() domain.Injection {
	total := 0
	for _, inj := range e.pending {
		total += inj.Weight
	}
	roll := e.rng.Intn(total)
	idx := 0
	for i, inj := range e.pending {
		if roll < inj.Weight {
			idx = i
			break
		}
		roll -= inj.Weight
	}
	chosen := e.pending[idx]
	e.pending = append(e.pending[:idx], e.pending[idx+1:]...)
	return chosen
}

// chance computes the success probability for an option against the current
// team: 0.5 shifted by (skill total - difficulty)/200, clamped to [0.05, 0.95].
func (e *Engine) chance(option domain.Option) float64 {
	total := e.team.Total(option.Skill)
	raw := 0.5 + float64(total-option.Difficulty)/chanceScale
	return min(maxChance, max(minChance, raw))
}

// annotateProbabilities derives the display probability for each option of a
// challenge. The annotation lives next to the challenge, never on the
// immutable Option itself.
func (e *Engine) annotateProbabilities(challenge domain.Challenge) map[string]int {
	probs := make(map[string]int, len(challenge.Options))
	for _, opt := range challenge.Options {
		probs[opt.ID] = int(math.Round(e.chance(opt) * 100))
	}
	return probs
}

func findOption(presentable Presentable, optionID string) (domain.Option, error) {
	for _, challenge := range presentable.Challenges {
		for _, opt := range challenge.Options {
			if opt.ID == optionID {
				return opt, nil
			}
		}
	}
	return domain.Option{}, fmt.Errorf("%w: option %q in %q", domain.ErrOptionNotFound, optionID, presentable.ID)
}
