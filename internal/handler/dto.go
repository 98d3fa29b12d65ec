package handler

import (
	"ciso-sim/internal/domain"
	"ciso-sim/internal/simulation"
)

type createSessionRequest struct {
	ScenarioID string              `json:"scenario_id" binding:"required"`
	Team       []teamMemberRequest `json:"team"`
}

type teamMemberRequest struct {
	Name string `json:"name"`
}

type decisionRequest struct {
	OptionID string `json:"option_id" binding:"required"`
}

type scenarioSummaryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Briefing string `json:"briefing"`
}

type rosterResponse struct {
	Budget  int              `json:"budget"`
	Members []rosterMemberDTO `json:"members"`
}

type rosterMemberDTO struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Role  string           `json:"role"`
	Cost  int              `json:"cost"`
	Stats domain.StatBlock `json:"stats"`
}

type optionDTO struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Narrative   string       `json:"narrative"`
	Skill       domain.Skill `json:"skill"`
	Difficulty  int          `json:"difficulty"`
	Probability *int         `json:"probability"`
}

type challengeDTO struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Prompt  string      `json:"prompt"`
	Options []optionDTO `json:"options"`
}

type stageDTO struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Summary     string         `json:"summary"`
	IsInjection bool           `json:"is_injection"`
	Challenges  []challengeDTO `json:"challenges"`
}

type createSessionResponse struct {
	SessionID string             `json:"session_id"`
	State     domain.PlayerState `json:"state"`
	Stage     *stageDTO          `json:"stage"`
}

type decisionResponse struct {
	State    domain.PlayerState `json:"state"`
	Round    int                `json:"round"`
	Finished bool               `json:"finished"`
	Outcome  string             `json:"outcome"`
	Success  bool               `json:"success"`
	Stage    *stageDTO          `json:"stage"`
}

// serializeStage shapes a presentable for the wire, attaching the per-option
// display probability computed for this request.
func serializeStage(presentable simulation.Presentable) *stageDTO {
	challenges := make([]challengeDTO, 0, len(presentable.Challenges))
	for _, challenge := range presentable.Challenges {
		options := make([]optionDTO, 0, len(challenge.Options))
		for _, option := range challenge.Options {
			dto := optionDTO{
				ID:         option.ID,
				Label:      option.Label,
				Narrative:  option.Narrative,
				Skill:      option.Skill,
				Difficulty: option.Difficulty,
			}
			if probability, ok := presentable.Probabilities[option.ID]; ok {
				p := probability
				dto.Probability = &p
			}
			options = append(options, dto)
		}
		challenges = append(challenges, challengeDTO{
			ID:      challenge.ID,
			Title:   challenge.Title,
			Prompt:  challenge.Prompt,
			Options: options,
		})
	}
	return &stageDTO{
		ID:          presentable.ID,
		Title:       presentable.Title,
		Summary:     presentable.Summary,
		IsInjection: presentable.IsInjection,
		Challenges:  challenges,
	}
}
