package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ciso-sim/internal/domain"
	"ciso-sim/internal/loader"
	"ciso-sim/internal/simulation"
)

// GameHandler serves the simulation API: scenario/roster listings, session
// creation and decision submission.
type GameHandler struct {
	scenarios    map[string]*domain.Scenario
	roster       []domain.CharacterSpec
	rosterByName map[string]domain.CharacterSpec
	registry     *simulation.Registry
	settings     simulation.Settings
	logger       *zap.Logger
}

// NewGameHandler wires the handler with its loaded data and session store.
func NewGameHandler(
	scenarios map[string]*domain.Scenario,
	roster []domain.CharacterSpec,
	registry *simulation.Registry,
	settings simulation.Settings,
	logger *zap.Logger,
) *GameHandler {
	byName := make(map[string]domain.CharacterSpec, len(roster))
	for _, member := range roster {
		byName[member.Name] = member
	}
	return &GameHandler{
		scenarios:    scenarios,
		roster:       roster,
		rosterByName: byName,
		registry:     registry,
		settings:     settings,
		logger:       logger,
	}
}

// RegisterRoutes attaches the API routes to the router.
func (h *GameHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/scenarios", h.listScenarios)
		api.GET("/roster", h.listRoster)
		api.POST("/session", h.createSession)
		api.POST("/session/:session_id/decision", h.submitDecision)
	}
}

func (h *GameHandler) listScenarios(c *gin.Context) {
	out := make([]scenarioSummaryResponse, 0, len(h.scenarios))
	for _, scenario := range h.scenarios {
		out = append(out, scenarioSummaryResponse{
			ID:       scenario.ID,
			Name:     scenario.Name,
			Briefing: scenario.Briefing,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *GameHandler) listRoster(c *gin.Context) {
	members := make([]rosterMemberDTO, 0, len(h.roster))
	for _, spec := range h.roster {
		character := domain.NewCharacter(spec)
		members = append(members, rosterMemberDTO{
			ID:    loader.RosterKey(spec),
			Name:  character.Name,
			Role:  character.Role,
			Cost:  character.Cost,
			Stats: character.Stats,
		})
	}
	c.JSON(http.StatusOK, rosterResponse{
		Budget:  h.settings.TeamBudget,
		Members: members,
	})
}

func (h *GameHandler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	scenario, ok := h.scenarios[req.ScenarioID]
	if !ok {
		handleServiceError(c, h.logger, fmt.Errorf("%w: %q", domain.ErrScenarioNotFound, req.ScenarioID))
		return
	}

	team, err := h.validateTeam(req.Team)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	sessionID := uuid.NewString()
	session := h.registry.Create(sessionID, scenario, team, h.settings)
	presentable, err := session.CurrentPresentable()
	if err != nil {
		h.registry.Delete(sessionID)
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, createSessionResponse{
		SessionID: sessionID,
		State:     session.State(),
		Stage:     serializeStage(presentable),
	})
}

// validateTeam resolves requested members against the server-side roster and
// enforces the hiring budget. Unknown names are skipped, matching the
// roster-authoritative contract: clients cannot invent stats.
func (h *GameHandler) validateTeam(requested []teamMemberRequest) ([]domain.CharacterSpec, error) {
	team := make([]domain.CharacterSpec, 0, len(requested))
	totalCost := 0
	for _, entry := range requested {
		spec, ok := h.rosterByName[entry.Name]
		if !ok {
			continue
		}
		totalCost += domain.NewCharacter(spec).Cost
		team = append(team, spec)
	}
	if totalCost > h.settings.TeamBudget {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrTeamOverBudget, totalCost, h.settings.TeamBudget)
	}
	return team, nil
}

func (h *GameHandler) submitDecision(c *gin.Context) {
	sessionID := c.Param("session_id")
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	session, ok := h.registry.Get(sessionID)
	if !ok {
		handleServiceError(c, h.logger, fmt.Errorf("%w: %q", domain.ErrSessionNotFound, sessionID))
		return
	}

	result, err := session.ApplyOption(req.OptionID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	resp := decisionResponse{
		State:    result.State,
		Round:    result.Round,
		Finished: result.Finished,
		Outcome:  result.Outcome,
		Success:  result.Success,
	}
	if result.Finished {
		// Finished sessions are evicted; callers start a new one to replay.
		h.registry.Delete(sessionID)
	} else {
		presentable, err := session.CurrentPresentable()
		if err != nil {
			handleServiceError(c, h.logger, err)
			return
		}
		resp.Stage = serializeStage(presentable)
	}
	c.JSON(http.StatusOK, resp)
}
