package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RecipientID string             `json:"recipient_id" bson:"recipient_id"`
	Event       string             `json:"event" bson:"event"`
	Entity      string             `json:"entity" bson:"entity"`
	EntityID    string             `json:"entity_id" bson:"entity_id"`
	Message     string             `json:"message" bson:"message"`
	Read        bool               `json:"read" bson:"read"`
	ReadAt      *time.Time         `json:"read_at,omitempty" bson:"read_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
