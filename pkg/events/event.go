package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	TenantID() string
	OccurredAt() time.Time
}

// BaseEvent carries the envelope shared by every event. It is embedded in
// concrete events so the envelope is serialised alongside the payload.
type BaseEvent struct {
	OccurredAtUTC time.Time `json:"occurred_at"`
	ID            string    `json:"event_id"`
	Type          string    `json:"event_type"`
	Aggregate     string    `json:"aggregate_id"`
	AggregateKind string    `json:"aggregate_type"`
	Tenant        string    `json:"tenant_id,omitempty"`
}

// NewBaseEvent stamps a new envelope with a random ID and the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType, tenantID string) BaseEvent {
	return NewBaseEventAt(eventType, aggregateID, aggregateType, tenantID, time.Now().UTC())
}

// NewBaseEventAt is NewBaseEvent with a caller-supplied timestamp.
func NewBaseEventAt(eventType, aggregateID, aggregateType, tenantID string, at time.Time) BaseEvent {
	return BaseEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		Aggregate:     aggregateID,
		AggregateKind: aggregateType,
		Tenant:        tenantID,
		OccurredAtUTC: at.UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.AggregateKind }
func (e BaseEvent) TenantID() string      { return e.Tenant }
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredAtUTC }
