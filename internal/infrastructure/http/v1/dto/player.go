// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"strings"

	"roster/internal/core/apperror"
	"roster/internal/domain/roster"
)

// CreatePlayerRequest is the body of POST /api/v1/players.
type CreatePlayerRequest struct {
	Name   string `json:"name"`
	TeamID string `json:"team_id"`
}

// Validate rejects a name that is empty or only whitespace. Everything else,
// including whether the team exists, is decided by the command.
func (r CreatePlayerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperror.NewValidation("player name is required").WithDetail("field", "name")
	}
	return nil
}

// ToInput converts the request to the command payload unchanged.
func (r CreatePlayerRequest) ToInput() roster.PlayerInput {
	return roster.PlayerInput{Name: r.Name, TeamID: r.TeamID}
}

// PlayerResponse is the API view of a player.
type PlayerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TeamID string `json:"team_id"`
}

// FromPlayer creates a response from the domain model.
func FromPlayer(p roster.Player) PlayerResponse {
	return PlayerResponse{ID: p.ID, Name: p.Name, TeamID: p.TeamID}
}

// TeamResponse is the API view of a team.
type TeamResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MissingPlayers uint64 `json:"missing_players"`
}

func FromTeam(t roster.Team) TeamResponse {
	return TeamResponse{ID: t.ID, Name: t.Name, MissingPlayers: t.MissingPlayers}
}
