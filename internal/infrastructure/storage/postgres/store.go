package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"roster/internal/core/id"
	"roster/internal/domain/roster"
	"roster/internal/infrastructure/storage/postgres/schema"
)

// Store implements roster.Backend on a pgx pool.
type Store struct {
	db   database
	opts TxOptions
}

// New wraps pool. The store owns the pool from here on and closes it on Close.
func New(pool *pgxpool.Pool, opts TxOptions) *Store {
	return newStore(pool, opts)
}

func newStore(db database, opts TxOptions) *Store {
	return &Store{db: db, opts: opts}
}

var (
	_ roster.Backend    = (*Store)(nil)
	_ roster.TeamSeeder = (*Store)(nil)
)

func (s *Store) TeamByID(ctx context.Context, teamID string) (*roster.Team, error) {
	sql, args, err := selectTeam(teamID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var t roster.Team
	if err := pgxscan.Get(ctx, s.db, &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select team: %w", err)
	}
	return &t, nil
}

// PlayerByID treats an id that is not a UUID as absent: no such row can exist.
func (s *Store) PlayerByID(ctx context.Context, playerID string) (*roster.Player, error) {
	if !id.Valid(playerID) {
		return nil, nil
	}

	sql, args, err := selectPlayer(playerID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var p roster.Player
	if err := pgxscan.Get(ctx, s.db, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select player: %w", err)
	}
	return &p, nil
}

func (s *Store) SeedTeam(ctx context.Context, team roster.Team) error {
	if team.ID == "" {
		return fmt.Errorf("team id is required")
	}
	sql, args, err := upsertTeam(team).ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert team %s: %w", team.ID, err)
	}
	return nil
}

// Migrate applies the embedded schema files in lexical order.
// Every file is idempotent, so Migrate may run on each start.
func (s *Store) Migrate(ctx context.Context) error {
	names, err := fs.Glob(schema.FS, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := fs.ReadFile(schema.FS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}
