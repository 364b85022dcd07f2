// Package sqlite is a single-file roster backend on SQLite (modernc.org/sqlite,
// no cgo). Units of work map to deferred SQLite transactions, and WAL mode
// keeps reads running while a unit of work is open.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"roster/internal/core/id"
	"roster/internal/core/tx"
	"roster/internal/domain/roster"
	"roster/internal/infrastructure/storage/sqlite/migrations"
)

const (
	tableTeams   = "teams"
	tablePlayers = "players"
)

// Store persists the roster in a SQLite file.
type Store struct {
	db *sql.DB
}

var (
	_ roster.Backend    = (*Store)(nil)
	_ roster.TeamSeeder = (*Store)(nil)
)

// Open opens (creating if needed) the database at path and applies the
// embedded migrations. ":memory:" is rejected: every pooled connection would
// see its own empty database.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if path == ":memory:" {
		return nil, fmt.Errorf("sqlite path must be a file")
	}

	dsn := filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

func (s *Store) Begin(ctx context.Context) (roster.UnitOfWork, error) {
	native, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &unitOfWork{native: native}, nil
}

func (s *Store) TeamByID(ctx context.Context, teamID string) (*roster.Team, error) {
	query, args, err := builder().
		Select("id", "name", "missing_players").
		From(tableTeams).
		Where(squirrel.Eq{"id": teamID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var t roster.Team
	var missing int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.Name, &missing)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select team: %w", err)
	}
	t.MissingPlayers = uint64(missing)
	return &t, nil
}

func (s *Store) PlayerByID(ctx context.Context, playerID string) (*roster.Player, error) {
	query, args, err := builder().
		Select("id", "name", "team_id").
		From(tablePlayers).
		Where(squirrel.Eq{"id": playerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var p roster.Player
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.TeamID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select player: %w", err)
	}
	return &p, nil
}

func (s *Store) SeedTeam(ctx context.Context, team roster.Team) error {
	if team.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if team.MissingPlayers > math.MaxInt64 {
		return fmt.Errorf("team %s: missing players %d overflows INTEGER", team.ID, team.MissingPlayers)
	}
	query, args, err := builder().
		Insert(tableTeams).
		Columns("id", "name", "missing_players").
		Values(team.ID, team.Name, int64(team.MissingPlayers)).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = excluded.name, missing_players = excluded.missing_players").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team %s: %w", team.ID, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type unitOfWork struct {
	native *sql.Tx
	state  tx.State
}

func (u *unitOfWork) CreatePlayer(ctx context.Context, in roster.PlayerInput) (roster.Player, error) {
	if err := u.state.Active(); err != nil {
		return roster.Player{}, err
	}

	p := roster.Player{ID: id.New(), Name: in.Name, TeamID: in.TeamID}
	query, args, err := builder().
		Insert(tablePlayers).
		Columns("id", "name", "team_id", "created_at").
		Values(p.ID, p.Name, p.TeamID, time.Now().UTC().UnixMilli()).
		ToSql()
	if err != nil {
		return roster.Player{}, fmt.Errorf("build insert: %w", err)
	}
	if _, err := u.native.ExecContext(ctx, query, args...); err != nil {
		return roster.Player{}, fmt.Errorf("insert player: %w", err)
	}
	return p, nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if err := u.state.Finish(tx.StatusCommitted); err != nil {
		return err
	}
	if err := u.native.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.state.Finish(tx.StatusRolledBack) != nil {
		return nil
	}
	if err := u.native.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}
