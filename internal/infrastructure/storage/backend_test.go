package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/internal/config"
	"roster/internal/domain/roster"
	"roster/internal/infrastructure/storage/memory"
	"roster/internal/infrastructure/storage/redis"
	"roster/internal/infrastructure/storage/sqlite"
)

func TestOpenMemory(t *testing.T) {
	b, err := Open(context.Background(), config.Config{Backend: config.BackendMemory})
	require.NoError(t, err)
	defer b.Close()

	assert.IsType(t, &memory.Store{}, b)
	assert.NoError(t, b.Ping(context.Background()))
}

func TestOpenSQLite(t *testing.T) {
	b, err := Open(context.Background(), config.Config{
		Backend:    config.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "roster.db"),
	})
	require.NoError(t, err)
	defer b.Close()

	assert.IsType(t, &sqlite.Store{}, b)
}

func TestOpenRedis(t *testing.T) {
	mini := miniredis.RunT(t)

	b, err := Open(context.Background(), config.Config{
		Backend:  config.BackendRedis,
		RedisURL: "redis://" + mini.Addr(),
	})
	require.NoError(t, err)
	defer b.Close()

	assert.IsType(t, &redis.Store{}, b)
}

func TestOpenPostgresFailsWithoutServer(t *testing.T) {
	_, err := Open(context.Background(), config.Config{
		Backend:     config.BackendPostgres,
		DatabaseURL: "::not a dsn::",
	})
	assert.Error(t, err)
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open(context.Background(), config.Config{Backend: "mongo"})
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, Seed(ctx, s, []roster.Team{
		{ID: "T1", Name: "Lions", MissingPlayers: 1},
		{ID: "T2", Name: "Tigers"},
	}))

	team, err := s.TeamByID(ctx, "T2")
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "Tigers", team.Name)

	assert.Error(t, Seed(ctx, s, []roster.Team{{Name: "nameless"}}))
}
