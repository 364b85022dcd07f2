package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"roster/internal/core/id"
	"roster/internal/domain/roster"
)

// statusPending is the only status this service writes; publishing is left
// to whatever relay reads roster_outbox.
const statusPending = "pending"

// Event types recorded by this backend.
const (
	EventPlayerCreated = "player_created"
)

// DomainEvent is written to roster_outbox in the same transaction as the
// change it describes, so a relay can publish it after commit.
type DomainEvent struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       any
}

// PlayerCreatedEvent describes a newly inserted player.
func PlayerCreatedEvent(p roster.Player) DomainEvent {
	return DomainEvent{
		AggregateType: "player",
		AggregateID:   p.ID,
		EventType:     EventPlayerCreated,
		Payload:       p,
	}
}

// recordEvent inserts event through q, which must be the unit of work's
// transaction: outside one the event could outlive a rolled-back change.
func recordEvent(ctx context.Context, q Querier, event DomainEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	sql, args, err := builder().
		Insert(tableOutbox).
		Columns("id", "aggregate_type", "aggregate_id", "event_type", "payload", "status").
		Values(id.New(), event.AggregateType, event.AggregateID, event.EventType, payload, statusPending).
		ToSql()
	if err != nil {
		return fmt.Errorf("build outbox insert: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}
	return nil
}
