package roster

import (
	"context"

	"roster/internal/core/tx"
)

// Reader is backend-agnostic lookup by id. A nil result with a nil error means
// the record does not exist; an error always means the backend failed.
// Reads do not take part in any unit of work.
type Reader interface {
	TeamByID(ctx context.Context, id string) (*Team, error)
	PlayerByID(ctx context.Context, id string) (*Player, error)
}

// PlayerWriter is the write capability carried by a unit of work.
type PlayerWriter interface {
	// CreatePlayer stores a new player inside the unit of work and returns it
	// with its backend-assigned ID. The write stays invisible to readers until
	// Commit and never finalizes the unit of work by itself.
	CreatePlayer(ctx context.Context, in PlayerInput) (Player, error)
}

// UnitOfWork is one open transaction against a backend. The concrete type is
// private to the adapter. It is owned by a single caller, must not be shared
// between goroutines, and every method returns tx.ErrDone once it has been
// committed or rolled back.
type UnitOfWork interface {
	PlayerWriter
	tx.Finisher
}

// Provider opens units of work. Every call returns an independent unit of work;
// if opening fails nothing is left allocated on the backend.
type Provider interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// Backend is what a storage adapter must implement to be usable by the executors.
type Backend interface {
	Provider
	Reader
}

// TeamSeeder inserts or replaces teams. Teams are read-only for the domain,
// so this is only used by setup tooling and tests.
type TeamSeeder interface {
	SeedTeam(ctx context.Context, team Team) error
}
