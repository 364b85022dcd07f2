package rostertest

import (
	"context"
	"sync"

	"roster/internal/domain/roster"
)

// Reader is a map-backed roster.Reader with failure injection.
type Reader struct {
	mu sync.Mutex

	Teams   map[string]roster.Team
	Players map[string]roster.Player

	FailTeam   error
	FailPlayer error

	TeamCalls   int
	PlayerCalls int
}

var _ roster.Reader = (*Reader)(nil)

// NewReader returns a Reader preloaded with teams.
func NewReader(teams ...roster.Team) *Reader {
	r := &Reader{
		Teams:   make(map[string]roster.Team, len(teams)),
		Players: make(map[string]roster.Player),
	}
	for _, t := range teams {
		r.Teams[t.ID] = t
	}
	return r
}

func (r *Reader) TeamByID(ctx context.Context, id string) (*roster.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.TeamCalls++
	if r.FailTeam != nil {
		return nil, r.FailTeam
	}
	t, ok := r.Teams[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *Reader) PlayerByID(ctx context.Context, id string) (*roster.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PlayerCalls++
	if r.FailPlayer != nil {
		return nil, r.FailPlayer
	}
	p, ok := r.Players[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
