package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"roster/internal/core/apperror"
	"roster/internal/domain/roster"
	"roster/internal/infrastructure/http/v1/dto"
)

// TeamFinder runs the find-team query.
type TeamFinder interface {
	Execute(ctx context.Context, teamID string) (*roster.Team, error)
}

// TeamHandler handles /teams.
type TeamHandler struct {
	*BaseHandler
	find TeamFinder
}

func NewTeamHandler(find TeamFinder) *TeamHandler {
	return &TeamHandler{BaseHandler: NewBaseHandler(), find: find}
}

// Get handles GET /teams/:id.
func (h *TeamHandler) Get(c *gin.Context) {
	teamID := c.Param("id")

	team, err := h.find.Execute(c.Request.Context(), teamID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if team == nil {
		h.Error(c, apperror.NewNotFound("team", teamID))
		return
	}

	h.OK(c, dto.FromTeam(*team))
}
