// Package redis is a roster backend on Redis. A unit of work is a MULTI/EXEC
// pipeline: writes are queued on the client and sent atomically on Commit, so
// a rolled-back unit of work never reaches the server.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"roster/internal/core/id"
	"roster/internal/core/tx"
	"roster/internal/domain/roster"
)

// Store is a Redis-backed implementation of roster.Backend.
type Store struct {
	client *redis.Client
}

// New connects using cfg and verifies the connection.
func New(ctx context.Context, cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client (for testing).
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

var (
	_ roster.Backend    = (*Store)(nil)
	_ roster.TeamSeeder = (*Store)(nil)
)

// Begin opens a transactional pipeline. Nothing is sent to the server until
// Commit, so Begin itself cannot fail on a healthy process.
func (s *Store) Begin(ctx context.Context) (roster.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &unitOfWork{pipe: s.client.TxPipeline()}, nil
}

func (s *Store) TeamByID(ctx context.Context, teamID string) (*roster.Team, error) {
	var t roster.Team
	found, err := s.getJSON(ctx, teamKey(teamID), &t)
	if err != nil || !found {
		return nil, err
	}
	return &t, nil
}

func (s *Store) PlayerByID(ctx context.Context, playerID string) (*roster.Player, error) {
	var p roster.Player
	found, err := s.getJSON(ctx, playerKey(playerID), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SeedTeam(ctx context.Context, team roster.Team) error {
	if team.ID == "" {
		return fmt.Errorf("team id is required")
	}
	data, err := json.Marshal(team)
	if err != nil {
		return fmt.Errorf("marshal team: %w", err)
	}
	if err := s.client.Set(ctx, teamKey(team.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("set team %s: %w", team.ID, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

type unitOfWork struct {
	pipe  redis.Pipeliner
	state tx.State
}

func (u *unitOfWork) CreatePlayer(ctx context.Context, in roster.PlayerInput) (roster.Player, error) {
	if err := u.state.Active(); err != nil {
		return roster.Player{}, err
	}

	p := roster.Player{ID: id.New(), Name: in.Name, TeamID: in.TeamID}
	data, err := json.Marshal(p)
	if err != nil {
		return roster.Player{}, fmt.Errorf("marshal player: %w", err)
	}

	u.pipe.Set(ctx, playerKey(p.ID), data, 0)
	u.pipe.SAdd(ctx, teamPlayersKey(p.TeamID), p.ID)
	return p, nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if err := u.state.Finish(tx.StatusCommitted); err != nil {
		return err
	}
	if _, err := u.pipe.Exec(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.state.Finish(tx.StatusRolledBack) != nil {
		return nil
	}
	u.pipe.Discard()
	return nil
}
