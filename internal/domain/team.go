package domain

import "fmt"

// Skill names one of the four competency axes every character is rated on.
type Skill string

const (
	SkillAnalysis    Skill = "analysis"
	SkillComms       Skill = "comms"
	SkillEngineering Skill = "engineering"
	SkillLeadership  Skill = "leadership"
)

// AllSkills returns the four axes in their canonical order.
func AllSkills() []Skill {
	return []Skill{SkillAnalysis, SkillComms, SkillEngineering, SkillLeadership}
}

// ParseSkill validates a raw skill string from scenario data.
func ParseSkill(raw string) (Skill, error) {
	for _, s := range AllSkills() {
		if Skill(raw) == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown skill %q", ErrInvalidScenario, raw)
}

// StatBlock holds a character's ratings on the four axes (0-100 scale,
// not hard-clamped).
type StatBlock struct {
	Analysis    int `json:"analysis" yaml:"analysis"`
	Comms       int `json:"comms" yaml:"comms"`
	Engineering int `json:"engineering" yaml:"engineering"`
	Leadership  int `json:"leadership" yaml:"leadership"`
}

// Value returns the rating for one axis.
func (s StatBlock) Value(skill Skill) int {
	switch skill {
	case SkillAnalysis:
		return s.Analysis
	case SkillComms:
		return s.Comms
	case SkillEngineering:
		return s.Engineering
	case SkillLeadership:
		return s.Leadership
	}
	return 0
}

// Character is a single team member, immutable once loaded.
type Character struct {
	Name  string    `json:"name"`
	Role  string    `json:"role"`
	Cost  int       `json:"cost"`
	Stats StatBlock `json:"stats"`
}

const (
	defaultCost     = 50
	defaultStat     = 50
	defaultRoleName = "Analyst"
)

// CharacterSpec is a raw roster record as it arrives from YAML or an API
// payload. Optional fields are pointers so that absent values can be defaulted
// to 50 without swallowing explicit zeroes.
type CharacterSpec struct {
	ID    string    `json:"id,omitempty" yaml:"id"`
	Name  string    `json:"name" yaml:"name"`
	Role  string    `json:"role" yaml:"role"`
	Cost  *int      `json:"cost,omitempty" yaml:"cost"`
	Stats StatSpec  `json:"stats" yaml:"stats"`
}

// StatSpec mirrors StatBlock with optional fields.
type StatSpec struct {
	Analysis    *int `json:"analysis,omitempty" yaml:"analysis"`
	Comms       *int `json:"comms,omitempty" yaml:"comms"`
	Engineering *int `json:"engineering,omitempty" yaml:"engineering"`
	Leadership  *int `json:"leadership,omitempty" yaml:"leadership"`
}

func orDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// NewCharacter materializes a spec, filling in the documented defaults.
func NewCharacter(spec CharacterSpec) Character {
	name := spec.Name
	if name == "" {
		name = defaultRoleName
	}
	role := spec.Role
	if role == "" {
		role = defaultRoleName
	}
	return Character{
		Name: name,
		Role: role,
		Cost: orDefault(spec.Cost, defaultCost),
		Stats: StatBlock{
			Analysis:    orDefault(spec.Stats.Analysis, defaultStat),
			Comms:       orDefault(spec.Stats.Comms, defaultStat),
			Engineering: orDefault(spec.Stats.Engineering, defaultStat),
			Leadership:  orDefault(spec.Stats.Leadership, defaultStat),
		},
	}
}

// Team is the active roster for one run. Totals and Score are derived caches;
// every mutation site must call Recalculate so state snapshots never see stale
// aggregates.
type Team struct {
	Members []Character
	Totals  map[Skill]int
	Score   int
}

// NewTeam builds a team from raw member records and computes its aggregates.
func NewTeam(specs []CharacterSpec) *Team {
	t := &Team{Members: make([]Character, 0, len(specs))}
	for _, spec := range specs {
		t.Members = append(t.Members, NewCharacter(spec))
	}
	t.Recalculate()
	return t
}

// Recalculate rebuilds the per-skill totals and the aggregate score. The score
// is the mean of the four totals divided by 4*len(members); an empty team
// scores 0.
func (t *Team) Recalculate() {
	totals := make(map[Skill]int, len(AllSkills()))
	sum := 0
	for _, skill := range AllSkills() {
		total := 0
		for _, m := range t.Members {
			total += m.Stats.Value(skill)
		}
		totals[skill] = total
		sum += total
	}
	t.Totals = totals
	if len(t.Members) == 0 {
		t.Score = 0
		return
	}
	t.Score = sum / (4 * len(t.Members))
}

// RemoveFirst drops the first member, if any, and refreshes the aggregates.
func (t *Team) RemoveFirst() (Character, bool) {
	if len(t.Members) == 0 {
		return Character{}, false
	}
	removed := t.Members[0]
	t.Members = t.Members[1:]
	t.Recalculate()
	return removed, true
}

// Total returns the summed rating for one axis. An axis missing from the
// cache falls back to the team score.
func (t *Team) Total(skill Skill) int {
	if total, ok := t.Totals[skill]; ok {
		return total
	}
	return t.Score
}

// Cost returns the summed hiring cost of the current members.
func (t *Team) Cost() int {
	total := 0
	for _, m := range t.Members {
		total += m.Cost
	}
	return total
}
