// Package tx provides the backend-neutral lifecycle of a unit of work.
// Domain packages build their transactional contracts on Finisher and storage
// adapters embed State so every backend enforces the same finish rules.
package tx

import (
	"context"
	"errors"
	"sync/atomic"

	"roster/pkg/logger"
)

// ErrDone is returned by any operation on a unit of work that was already
// committed or rolled back.
var ErrDone = errors.New("tx: unit of work already finished")

// Finisher is the finalization half of a unit of work.
//
// Commit makes every write issued on the unit of work durable. Rollback
// discards them. Exactly one of the two takes effect: a second Commit returns
// ErrDone, while Rollback after a finish is a no-op returning nil, which makes
// `defer u.Rollback(ctx)` safe on every path.
type Finisher interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Status is the lifecycle position of a unit of work.
type Status int32

const (
	StatusActive Status = iota
	StatusCommitted
	StatusRolledBack
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCommitted:
		return "committed"
	case StatusRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// State tracks whether a unit of work is still usable. The zero value is active.
// Transitions are atomic, so a unit of work misused from two goroutines still
// finishes exactly once.
type State struct {
	status atomic.Int32
}

// Status returns the current lifecycle position.
func (s *State) Status() Status {
	return Status(s.status.Load())
}

// Active returns ErrDone once the unit of work has finished.
func (s *State) Active() error {
	if s.Status() != StatusActive {
		return ErrDone
	}
	return nil
}

// Finish moves an active unit of work to the terminal status to.
// It returns ErrDone if another finish already happened.
func (s *State) Finish(to Status) error {
	if !s.status.CompareAndSwap(int32(StatusActive), int32(to)) {
		return ErrDone
	}
	return nil
}

// Discard rolls back f after a failure. It runs on a context that ignores the
// caller's cancellation so the backend still releases its resources, and logs a
// rollback failure instead of returning it: cause is what the caller sees.
func Discard(ctx context.Context, f Finisher, cause error) {
	if rbErr := f.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
		logger.Error(ctx, "rollback failed", "error", rbErr, "original_error", cause)
	}
}
