package rostertest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/internal/core/tx"
	"roster/internal/domain/roster"
)

func TestProviderCommitsOnSuccess(t *testing.T) {
	p := &Provider{}
	ctx := context.Background()

	u, err := p.Begin(ctx)
	require.NoError(t, err)
	player, err := u.CreatePlayer(ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	require.NoError(t, err)
	require.NoError(t, u.Commit(ctx))

	assert.Equal(t, []roster.Player{player}, p.CommittedPlayers())
	begin, create, commit, rollback := p.Calls()
	assert.Equal(t, [4]int{1, 1, 1, 0}, [4]int{begin, create, commit, rollback})
}

func TestProviderRollbackDiscards(t *testing.T) {
	p := &Provider{}
	ctx := context.Background()

	u, err := p.Begin(ctx)
	require.NoError(t, err)
	_, err = u.CreatePlayer(ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	require.NoError(t, err)
	require.NoError(t, u.Rollback(ctx))

	assert.Empty(t, p.CommittedPlayers())
	assert.ErrorIs(t, u.Commit(ctx), tx.ErrDone)
	_, err = u.CreatePlayer(ctx, roster.PlayerInput{Name: "Ann", TeamID: "T1"})
	assert.ErrorIs(t, err, tx.ErrDone)
}

func TestProviderFailCommitKeepsNothing(t *testing.T) {
	commitErr := errors.New("commit failed")
	p := &Provider{FailCommit: commitErr}
	ctx := context.Background()

	u, err := p.Begin(ctx)
	require.NoError(t, err)
	_, err = u.CreatePlayer(ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	require.NoError(t, err)

	assert.ErrorIs(t, u.Commit(ctx), commitErr)
	assert.NoError(t, u.Rollback(ctx))
	assert.Empty(t, p.CommittedPlayers())
	_, _, _, rollback := p.Calls()
	assert.Zero(t, rollback)
}

func TestReaderAbsentIsNotAnError(t *testing.T) {
	r := NewReader(roster.Team{ID: "T1", Name: "Lions", MissingPlayers: 1})

	team, err := r.TeamByID(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, team)

	team, err = r.TeamByID(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "Lions", team.Name)
}
