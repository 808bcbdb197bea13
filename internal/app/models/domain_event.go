package models

import (
	"time"

	"github.com/goccy/go-json"
)

// DomainEvent is published after every successful write. Name is
// "<entity>.<action>", e.g. "appointment.created".
type DomainEvent struct {
	Name       string          `json:"name"`
	Entity     string          `json:"entity"`
	Action     string          `json:"action"`
	EntityID   string          `json:"entity_id"`
	ActorID    string          `json:"actor_id"`
	TenantID   string          `json:"tenant_id"`
	RequestID  string          `json:"request_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}
