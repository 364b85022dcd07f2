package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"roster/internal/core/apperror"
	"roster/internal/domain/commands"
	"roster/internal/domain/roster"
	"roster/internal/infrastructure/storage/storagetest"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	s := NewWithClient(redis.NewClient(&redis.Options{Addr: mini.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	return s, mini
}

func TestConformance(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		Open: func(t *testing.T) storagetest.Backend {
			s, _ := newTestStore(t)
			return s
		},
	})
}

func TestNewConnects(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()
	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Ping(context.Background()))
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(context.Background(), Config{URL: "not a url"})
	assert.Error(t, err)
}

func TestCommitIndexesPlayerByTeam(t *testing.T) {
	ctx := context.Background()
	s, mini := newTestStore(t)

	u, err := s.Begin(ctx)
	require.NoError(t, err)
	p, err := u.CreatePlayer(ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	require.NoError(t, err)

	// Queued only: nothing reached the server yet.
	assert.False(t, mini.Exists(playerKey(p.ID)))
	assert.False(t, mini.Exists(teamPlayersKey("T1")))

	require.NoError(t, u.Commit(ctx))

	ids, err := mini.SMembers(teamPlayersKey("T1"))
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, ids)
}

func TestReadFailureSurfacesAsBackendUnavailable(t *testing.T) {
	ctx := context.Background()
	s, mini := newTestStore(t)
	require.NoError(t, s.SeedTeam(ctx, roster.Team{ID: "T1", Name: "Lions", MissingPlayers: 1}))

	mini.Close()

	_, err := commands.NewCreatePlayer(s, s).Execute(ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	assert.True(t, apperror.IsBackendUnavailable(err), "got %v", err)
}

func TestCorruptRecordIsAnError(t *testing.T) {
	ctx := context.Background()
	s, mini := newTestStore(t)
	require.NoError(t, mini.Set(teamKey("T1"), "{not json"))

	team, err := s.TeamByID(ctx, "T1")
	assert.Nil(t, team)
	assert.Error(t, err)
}

func TestRollbackLeavesTeamIndexUntouched(t *testing.T) {
	ctx := context.Background()
	s, mini := newTestStore(t)

	u, err := s.Begin(ctx)
	require.NoError(t, err)
	_, err = u.CreatePlayer(ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	require.NoError(t, err)
	require.NoError(t, u.Rollback(ctx))

	assert.False(t, mini.Exists(teamPlayersKey("T1")))
}
