// Package rostertest provides in-process doubles for the roster storage
// contracts with failure injection and call counters.
package rostertest

import (
	"context"
	"sync"

	"roster/internal/core/id"
	"roster/internal/core/tx"
	"roster/internal/domain/roster"
)

// Provider is a roster.Provider that never touches a backend. Each failure
// field, when set, is returned by the matching step of every unit of work.
type Provider struct {
	mu sync.Mutex

	FailBegin    error
	FailCreate   error
	FailCommit   error
	FailRollback error

	BeginCalls    int
	CreateCalls   int
	CommitCalls   int
	RollbackCalls int

	// Committed holds every player made durable by a successful Commit.
	Committed []roster.Player
}

var _ roster.Provider = (*Provider)(nil)

func (p *Provider) Begin(ctx context.Context) (roster.UnitOfWork, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.BeginCalls++
	if p.FailBegin != nil {
		return nil, p.FailBegin
	}
	return &unitOfWork{provider: p}, nil
}

// Calls returns a snapshot of the counters as begin, create, commit, rollback.
func (p *Provider) Calls() (begin, create, commit, rollback int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.BeginCalls, p.CreateCalls, p.CommitCalls, p.RollbackCalls
}

// CommittedPlayers returns a copy of the durable players.
func (p *Provider) CommittedPlayers() []roster.Player {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]roster.Player(nil), p.Committed...)
}

type unitOfWork struct {
	provider *Provider
	state    tx.State
	pending  []roster.Player
}

func (u *unitOfWork) CreatePlayer(ctx context.Context, in roster.PlayerInput) (roster.Player, error) {
	if err := u.state.Active(); err != nil {
		return roster.Player{}, err
	}
	p := u.provider
	p.mu.Lock()
	p.CreateCalls++
	failCreate := p.FailCreate
	p.mu.Unlock()
	if failCreate != nil {
		return roster.Player{}, failCreate
	}

	player := roster.Player{ID: id.New(), Name: in.Name, TeamID: in.TeamID}
	u.pending = append(u.pending, player)
	return player, nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if err := u.state.Finish(tx.StatusCommitted); err != nil {
		return err
	}
	p := u.provider
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CommitCalls++
	if p.FailCommit != nil {
		return p.FailCommit
	}
	p.Committed = append(p.Committed, u.pending...)
	u.pending = nil
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.state.Finish(tx.StatusRolledBack) != nil {
		return nil
	}
	p := u.provider
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RollbackCalls++
	u.pending = nil
	return p.FailRollback
}
