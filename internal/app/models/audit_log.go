package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditLog struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Entity    string             `json:"entity" bson:"entity"`
	EntityID  string             `json:"entity_id" bson:"entity_id"`
	Action    string             `json:"action" bson:"action"`
	ActorID   string             `json:"actor_id" bson:"actor_id"`
	TenantID  string             `json:"tenant_id" bson:"tenant_id"`
	RequestID string             `json:"request_id" bson:"request_id"`
	At        time.Time          `json:"at" bson:"at"`
}
