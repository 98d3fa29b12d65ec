package domain

// Outcome describes the impacts of resolving an option one way (success or
// failure). Delta fields are pointers so "no delta" and "delta of zero" stay
// distinguishable, which matters for default-failure synthesis.
type Outcome struct {
	Description     string `json:"description" yaml:"description"`
	BudgetDelta     *int   `json:"budget_delta,omitempty" yaml:"budget_delta"`
	ReputationDelta *int   `json:"reputation_delta,omitempty" yaml:"reputation_delta"`
	RiskDelta       *int   `json:"risk_delta,omitempty" yaml:"risk_delta"`
	NextStage       string `json:"next_stage,omitempty" yaml:"next_stage"`
	Action          Action `json:"action,omitempty" yaml:"action"`
}

// Option is a single decision the player can take for a challenge.
// Failure may be nil; the engine synthesizes a default failure outcome then.
type Option struct {
	ID         string   `json:"id" yaml:"id"`
	Label      string   `json:"label" yaml:"label"`
	Narrative  string   `json:"narrative" yaml:"narrative"`
	Success    Outcome  `json:"outcome" yaml:"outcome"`
	Failure    *Outcome `json:"failure,omitempty" yaml:"failure"`
	Difficulty int      `json:"difficulty" yaml:"difficulty"` // 0-100 baseline, higher = harder
	Skill      Skill    `json:"skill" yaml:"skill"`           // which team axis applies
}

// Challenge is one decision point presented to the player.
type Challenge struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []Option `json:"options" yaml:"options"`
}

// Injection is an unplanned event that can pre-empt the normal stage flow.
// Weight drives the weighted random draw from the pending pool.
type Injection struct {
	Challenge `yaml:",inline"`

	Weight int `json:"weight" yaml:"weight"`
}

// Stage is one phase of a scenario (e.g. detection, containment). Its
// challenges are visited in order before any stage transition happens.
type Stage struct {
	ID         string      `json:"id" yaml:"id"`
	Title      string      `json:"title" yaml:"title"`
	Summary    string      `json:"summary" yaml:"summary"`
	Challenges []Challenge `json:"challenges" yaml:"challenges"`
}

// Scenario is the top-level game definition. Immutable for the lifetime of
// every engine constructed from it; engines never write through it.
type Scenario struct {
	ID            string
	Name          string
	Briefing      string
	Stages        map[string]*Stage
	StartingStage string
	// Global and scenario-specific injections combined at load time.
	Injections []Injection
}
