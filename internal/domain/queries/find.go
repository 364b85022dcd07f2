// Package queries holds the read-side executors. They pass straight through to
// a roster.Reader and never open a unit of work.
package queries

import (
	"context"
	"strings"

	"roster/internal/core/apperror"
	"roster/internal/domain/roster"
)

// FindPlayer looks a player up by id.
type FindPlayer struct {
	reader roster.Reader
}

func NewFindPlayer(reader roster.Reader) *FindPlayer {
	return &FindPlayer{reader: reader}
}

// Execute returns nil, nil when no player has the id.
func (q *FindPlayer) Execute(ctx context.Context, playerID string) (*roster.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, nil
	}
	p, err := q.reader.PlayerByID(ctx, playerID)
	if err != nil {
		return nil, apperror.NewBackendUnavailable("read player", err).WithDetail("player_id", playerID)
	}
	return p, nil
}

// FindTeam looks a team up by id.
type FindTeam struct {
	reader roster.Reader
}

func NewFindTeam(reader roster.Reader) *FindTeam {
	return &FindTeam{reader: reader}
}

// Execute returns nil, nil when no team has the id.
func (q *FindTeam) Execute(ctx context.Context, teamID string) (*roster.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, nil
	}
	t, err := q.reader.TeamByID(ctx, teamID)
	if err != nil {
		return nil, apperror.NewBackendUnavailable("read team", err).WithDetail("team_id", teamID)
	}
	return t, nil
}
