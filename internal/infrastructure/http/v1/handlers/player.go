package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"roster/internal/core/apperror"
	"roster/internal/domain/roster"
	"roster/internal/infrastructure/http/v1/dto"
)

// PlayerCreator runs the create-player command.
type PlayerCreator interface {
	Execute(ctx context.Context, in roster.PlayerInput) (roster.Player, error)
}

// PlayerFinder runs the find-player query.
type PlayerFinder interface {
	Execute(ctx context.Context, playerID string) (*roster.Player, error)
}

// PlayerHandler handles /players.
type PlayerHandler struct {
	*BaseHandler
	create PlayerCreator
	find   PlayerFinder
}

func NewPlayerHandler(create PlayerCreator, find PlayerFinder) *PlayerHandler {
	return &PlayerHandler{
		BaseHandler: NewBaseHandler(),
		create:      create,
		find:        find,
	}
}

// Create handles POST /players.
func (h *PlayerHandler) Create(c *gin.Context) {
	var req dto.CreatePlayerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.Error(c, err)
		return
	}

	player, err := h.create.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromPlayer(player))
}

// Get handles GET /players/:id.
func (h *PlayerHandler) Get(c *gin.Context) {
	playerID := c.Param("id")

	player, err := h.find.Execute(c.Request.Context(), playerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if player == nil {
		h.Error(c, apperror.NewNotFound("player", playerID))
		return
	}

	h.OK(c, dto.FromPlayer(*player))
}
