// Package commands holds the write-side executors. Each executor drives exactly
// one unit of work: open, validate, write, commit, and roll back on any failure.
package commands

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"roster/internal/core/apperror"
	"roster/internal/core/tx"
	"roster/internal/domain/roster"
	"roster/pkg/logger"
)

var tracer = otel.Tracer("roster/commands")

// CreatePlayer adds a player to a team that still has an open slot.
// It is safe for concurrent use; every call opens its own unit of work.
type CreatePlayer struct {
	provider roster.Provider
	reader   roster.Reader
}

// NewCreatePlayer creates the executor. provider and reader usually come from
// the same backend adapter.
func NewCreatePlayer(provider roster.Provider, reader roster.Reader) *CreatePlayer {
	return &CreatePlayer{provider: provider, reader: reader}
}

// Execute runs one create-player command. The input is stored as given; shape
// checks belong to the transport. Errors are always *apperror.AppError:
// BACKEND_UNAVAILABLE, TEAM_NOT_FOUND, TEAM_FULL or WRITE_FAILED.
// Nothing is retried, and once the unit of work is open every failure rolls it back.
//
// The team is read outside the unit of work, so a concurrent command can take
// the last slot between the check and the commit.
func (c *CreatePlayer) Execute(ctx context.Context, in roster.PlayerInput) (roster.Player, error) {
	ctx, span := tracer.Start(ctx, "commands.CreatePlayer",
		trace.WithAttributes(attribute.String("team.id", in.TeamID)))
	defer span.End()

	player, err := c.execute(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return roster.Player{}, err
	}
	span.SetAttributes(attribute.String("player.id", player.ID))
	return player, nil
}

func (c *CreatePlayer) execute(ctx context.Context, in roster.PlayerInput) (roster.Player, error) {
	uow, err := c.provider.Begin(ctx)
	if err != nil {
		return roster.Player{}, apperror.NewBackendUnavailable("begin", err)
	}

	player, err := c.inUnitOfWork(ctx, uow, in)
	if err != nil {
		tx.Discard(ctx, uow, err)
		logger.Debug(ctx, "create player rejected", "team_id", in.TeamID, "error", err)
		return roster.Player{}, err
	}

	logger.Debug(ctx, "player created", "player_id", player.ID, "team_id", player.TeamID)
	return player, nil
}

func (c *CreatePlayer) inUnitOfWork(ctx context.Context, uow roster.UnitOfWork, in roster.PlayerInput) (roster.Player, error) {
	team, err := c.reader.TeamByID(ctx, in.TeamID)
	if err != nil {
		return roster.Player{}, apperror.NewBackendUnavailable("read team", err).WithDetail("team_id", in.TeamID)
	}
	if team == nil {
		return roster.Player{}, apperror.NewTeamNotFound(in.TeamID)
	}
	if !team.HasOpenSlot() {
		return roster.Player{}, apperror.NewTeamFull(team.ID)
	}

	player, err := uow.CreatePlayer(ctx, in)
	if err != nil {
		return roster.Player{}, apperror.NewWriteFailed("create player", err)
	}

	// The write is not durable until Commit returns.
	if err := uow.Commit(ctx); err != nil {
		return roster.Player{}, apperror.NewWriteFailed("commit", err)
	}
	return player, nil
}
