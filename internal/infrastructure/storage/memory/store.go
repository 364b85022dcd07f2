// Package memory is a non-durable roster backend kept in process memory.
// A unit of work buffers its writes and applies them under the store lock on Commit.
package memory

import (
	"context"
	"fmt"
	"sync"

	"roster/internal/core/id"
	"roster/internal/core/tx"
	"roster/internal/domain/roster"
)

// Store is an in-memory implementation of roster.Backend.
type Store struct {
	mu sync.RWMutex

	teams   map[string]roster.Team
	players map[string]roster.Player
}

// New creates an empty store.
func New() *Store {
	return &Store{
		teams:   make(map[string]roster.Team),
		players: make(map[string]roster.Player),
	}
}

// Ensure Store implements the backend contracts
var (
	_ roster.Backend    = (*Store)(nil)
	_ roster.TeamSeeder = (*Store)(nil)
)

// Begin opens a unit of work. It allocates nothing on the store.
func (s *Store) Begin(ctx context.Context) (roster.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &unitOfWork{store: s}, nil
}

func (s *Store) TeamByID(ctx context.Context, teamID string) (*roster.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[teamID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *Store) PlayerByID(ctx context.Context, playerID string) (*roster.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[playerID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) SeedTeam(ctx context.Context, team roster.Team) error {
	if team.ID == "" {
		return fmt.Errorf("team id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[team.ID] = team
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

type unitOfWork struct {
	store   *Store
	state   tx.State
	pending []roster.Player
}

func (u *unitOfWork) CreatePlayer(ctx context.Context, in roster.PlayerInput) (roster.Player, error) {
	if err := u.state.Active(); err != nil {
		return roster.Player{}, err
	}
	if err := ctx.Err(); err != nil {
		return roster.Player{}, fmt.Errorf("insert player: %w", err)
	}
	p := roster.Player{ID: id.New(), Name: in.Name, TeamID: in.TeamID}
	u.pending = append(u.pending, p)
	return p, nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if err := u.state.Finish(tx.StatusCommitted); err != nil {
		return err
	}
	pending := u.pending
	u.pending = nil
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, p := range pending {
		u.store.players[p.ID] = p
	}
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.state.Finish(tx.StatusRolledBack) != nil {
		return nil
	}
	u.pending = nil
	return nil
}
