package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"roster/internal/domain/roster"
	"roster/internal/infrastructure/storage/storagetest"
)

func TestStoreConformance(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		Open: func(t *testing.T) storagetest.Backend { return New() },
	})
}

func TestBeginHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Begin(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCommitOnCancelledContextStoresNothing(t *testing.T) {
	s := New()
	require.NoError(t, s.SeedTeam(context.Background(), roster.Team{ID: "T1", MissingPlayers: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	u, err := s.Begin(ctx)
	require.NoError(t, err)
	player, err := u.CreatePlayer(ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	require.NoError(t, err)

	cancel()
	assert.ErrorIs(t, u.Commit(ctx), context.Canceled)

	got, err := s.PlayerByID(context.Background(), player.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSeedTeamRequiresID(t *testing.T) {
	assert.Error(t, New().SeedTeam(context.Background(), roster.Team{Name: "Lions"}))
}
