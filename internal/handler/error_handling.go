package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ciso-sim/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleServiceError maps domain errors to HTTP statuses. Anything unmapped
// is an internal error and gets logged with its cause.
func handleServiceError(c *gin.Context, log *zap.Logger, err error) {
	var statusCode int

	switch {
	case errors.Is(err, domain.ErrScenarioNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrTeamOverBudget):
		statusCode = http.StatusBadRequest
	case errors.Is(err, domain.ErrStageNotFound),
		errors.Is(err, domain.ErrInvalidScenario):
		// Scenario data violated an invariant the loader should have caught.
		log.Error("Scenario invariant violated at runtime", zap.Error(err))
		statusCode = http.StatusInternalServerError
	default:
		log.Error("Unhandled internal error", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "an unexpected internal error occurred"})
		return
	}

	c.AbortWithStatusJSON(statusCode, errorResponse{Error: err.Error()})
}
