package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"roster/internal/core/tx"
	"roster/internal/domain/roster"
)

var tracer = otel.Tracer("roster/storage/postgres")

// TxOptions configures every unit of work opened by a Store.
type TxOptions struct {
	// IsolationLevel: pgx.Serializable, pgx.RepeatableRead, pgx.ReadCommitted
	IsolationLevel pgx.TxIsoLevel

	// AccessMode: pgx.ReadWrite, pgx.ReadOnly
	AccessMode pgx.TxAccessMode

	// StatementTimeout protects against long-running queries (0 disables it)
	StatementTimeout time.Duration
}

// DefaultTxOptions returns production-safe defaults.
func DefaultTxOptions() TxOptions {
	return TxOptions{
		IsolationLevel:   pgx.ReadCommitted,
		AccessMode:       pgx.ReadWrite,
		StatementTimeout: 30 * time.Second,
	}
}

// SerializableTxOptions for deployments that want the strictest isolation.
func SerializableTxOptions() TxOptions {
	opts := DefaultTxOptions()
	opts.IsolationLevel = pgx.Serializable
	return opts
}

// Begin opens a native transaction. If configuring it fails, the transaction
// is rolled back before returning so the pooled connection is released.
func (s *Store) Begin(ctx context.Context) (roster.UnitOfWork, error) {
	ctx, span := tracer.Start(ctx, "postgres.Begin",
		trace.WithAttributes(
			attribute.String("tx.isolation", string(s.opts.IsolationLevel)),
		))
	defer span.End()

	native, err := s.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   s.opts.IsolationLevel,
		AccessMode: s.opts.AccessMode,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	if s.opts.StatementTimeout > 0 {
		_, err = native.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", s.opts.StatementTimeout.Milliseconds()))
		if err != nil {
			_ = native.Rollback(context.WithoutCancel(ctx))
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	return &unitOfWork{native: native}, nil
}

type unitOfWork struct {
	native pgx.Tx
	state  tx.State
}

// CreatePlayer inserts the player and its outbox event on the same transaction.
func (u *unitOfWork) CreatePlayer(ctx context.Context, in roster.PlayerInput) (roster.Player, error) {
	if err := u.state.Active(); err != nil {
		return roster.Player{}, err
	}

	sql, args, err := insertPlayer(in).ToSql()
	if err != nil {
		return roster.Player{}, fmt.Errorf("build insert: %w", err)
	}

	var p roster.Player
	if err := pgxscan.Get(ctx, u.native, &p, sql, args...); err != nil {
		return roster.Player{}, fmt.Errorf("insert player: %w", err)
	}

	if err := recordEvent(ctx, u.native, PlayerCreatedEvent(p)); err != nil {
		return roster.Player{}, err
	}
	return p, nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if err := u.state.Finish(tx.StatusCommitted); err != nil {
		return err
	}
	if err := u.native.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.state.Finish(tx.StatusRolledBack) != nil {
		return nil
	}
	if err := u.native.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}
