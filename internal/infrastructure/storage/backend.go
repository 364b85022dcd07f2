// Package storage selects and opens the roster backend named by configuration.
package storage

import (
	"context"
	"fmt"

	"roster/internal/config"
	"roster/internal/domain/roster"
	"roster/internal/infrastructure/storage/memory"
	"roster/internal/infrastructure/storage/postgres"
	"roster/internal/infrastructure/storage/redis"
	"roster/internal/infrastructure/storage/sqlite"
	"roster/pkg/logger"
)

// Backend is an opened storage adapter together with its lifecycle.
type Backend interface {
	roster.Backend
	roster.TeamSeeder
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Backend = (*memory.Store)(nil)
	_ Backend = (*postgres.Store)(nil)
	_ Backend = (*sqlite.Store)(nil)
	_ Backend = (*redis.Store)(nil)
)

// Open connects the backend selected by cfg.Backend. The caller owns the
// result and must Close it.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil

	case config.BackendPostgres:
		return openPostgres(ctx, cfg)

	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return s, nil

	case config.BackendRedis:
		rc := redis.DefaultConfig()
		rc.URL = cfg.RedisURL
		s, err := redis.New(ctx, rc)
		if err != nil {
			return nil, fmt.Errorf("open redis backend: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (Backend, error) {
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, fmt.Errorf("open postgres backend: %w", err)
	}

	opts := postgres.DefaultTxOptions()
	if cfg.Serializable {
		opts = postgres.SerializableTxOptions()
	}
	opts.StatementTimeout = cfg.StatementTimeout

	s := postgres.New(pool, opts)
	if cfg.Migrate {
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("migrate postgres backend: %w", err)
		}
	}
	return s, nil
}

// Seed upserts teams into b.
func Seed(ctx context.Context, b roster.TeamSeeder, teams []roster.Team) error {
	for _, team := range teams {
		if err := b.SeedTeam(ctx, team); err != nil {
			return fmt.Errorf("seed team %s: %w", team.ID, err)
		}
		logger.Debug(ctx, "team seeded", "team_id", team.ID, "missing_players", team.MissingPlayers)
	}
	return nil
}
